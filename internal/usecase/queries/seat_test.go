//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/queries"
	queriesmock "eventgo-ticketing/tests/mock/queries"
	sharedmock "eventgo-ticketing/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type SeatQueriesTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockStore   *queriesmock.MockSeatReadStore
	mockCatalog *sharedmock.MockCatalogReader
	uc          queries.SeatQueries
}

func (s *SeatQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockSeatReadStore(s.mockCtrl)
	s.mockCatalog = sharedmock.NewMockCatalogReader(s.mockCtrl)
	pricing := ticket.NewTablePriceCalculator(5000, map[string]int64{"VIP": 12000})
	s.uc = queries.NewSeatQueries(s.mockStore, s.mockCatalog, pricing, clock.NewMockClock(testNow))
}

func (s *SeatQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSeatQueriesSuite(t *testing.T) {
	suite.Run(t, new(SeatQueriesTestSuite))
}

func (s *SeatQueriesTestSuite) TestBookedSeats() {
	s.Run("success", func() {
		s.mockStore.EXPECT().BookedSeatIDs(gomock.Any(), int64(7), testNow).Return([]int64{101, 103}, nil)

		ids, err := s.uc.BookedSeats(context.Background(), 7)
		s.Require().NoError(err)
		s.Equal([]int64{101, 103}, ids)
	})

	s.Run("nothing booked is an empty list", func() {
		s.mockStore.EXPECT().BookedSeatIDs(gomock.Any(), int64(8), testNow).Return(nil, nil)

		ids, err := s.uc.BookedSeats(context.Background(), 8)
		s.Require().NoError(err)
		s.NotNil(ids)
		s.Empty(ids)
	})

	s.Run("error: store", func() {
		dbErr := errors.New("connection reset")
		s.mockStore.EXPECT().BookedSeatIDs(gomock.Any(), int64(9), testNow).Return(nil, dbErr)

		_, err := s.uc.BookedSeats(context.Background(), 9)
		s.ErrorIs(err, dbErr)
	})
}

func (s *SeatQueriesTestSuite) TestSeatsWithStatus() {
	event := &catalog.Event{
		ID:   7,
		Name: "Front row",
		Seats: []catalog.Seat{
			{ID: 103, SeatNumber: "A3", Category: "standard"},
			{ID: 101, SeatNumber: "A1", Category: "vip"},
			{ID: 102, SeatNumber: "A2", Category: "standard"},
		},
	}

	s.Run("success: merged with ledger status in id order", func() {
		s.mockCatalog.EXPECT().Event(gomock.Any(), int64(7)).Return(event, nil)
		s.mockStore.EXPECT().LiveStatuses(gomock.Any(), []int64{101, 102, 103}, testNow).
			Return(map[int64]ticket.Status{101: ticket.StatusSold, 103: ticket.StatusReserved}, nil)

		views, err := s.uc.SeatsWithStatus(context.Background(), 7)
		s.Require().NoError(err)

		want := []queries.SeatView{
			{ID: 101, EventID: 7, SeatNumber: "A1", Category: "vip", Status: "SOLD", PriceCents: 12000},
			{ID: 102, EventID: 7, SeatNumber: "A2", Category: "standard", Status: "AVAILABLE", PriceCents: 5000},
			{ID: 103, EventID: 7, SeatNumber: "A3", Category: "standard", Status: "RESERVED", PriceCents: 5000},
		}
		if diff := cmp.Diff(want, views); diff != "" {
			s.T().Errorf("SeatsWithStatus() mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: repeated reads are identical whatever the catalog order", func() {
		reordered := &catalog.Event{ID: 7, Name: "Front row", Seats: []catalog.Seat{
			event.Seats[2], event.Seats[0], event.Seats[1],
		}}
		gomock.InOrder(
			s.mockCatalog.EXPECT().Event(gomock.Any(), int64(7)).Return(event, nil),
			s.mockCatalog.EXPECT().Event(gomock.Any(), int64(7)).Return(reordered, nil),
		)
		s.mockStore.EXPECT().LiveStatuses(gomock.Any(), []int64{101, 102, 103}, testNow).
			Return(map[int64]ticket.Status{102: ticket.StatusReserved}, nil).Times(2)

		first, err := s.uc.SeatsWithStatus(context.Background(), 7)
		s.Require().NoError(err)
		second, err := s.uc.SeatsWithStatus(context.Background(), 7)
		s.Require().NoError(err)

		if diff := cmp.Diff(first, second); diff != "" {
			s.T().Errorf("SeatsWithStatus() changed between reads (-first +second):\n%s", diff)
		}
		s.Equal(int64(101), second[0].ID)
	})

	s.Run("event without seats skips the ledger", func() {
		s.mockCatalog.EXPECT().Event(gomock.Any(), int64(8)).Return(&catalog.Event{ID: 8}, nil)

		views, err := s.uc.SeatsWithStatus(context.Background(), 8)
		s.Require().NoError(err)
		s.Empty(views)
	})

	s.Run("error: unknown event", func() {
		s.mockCatalog.EXPECT().Event(gomock.Any(), int64(99)).Return(nil, errs.ErrEventNotFound)

		_, err := s.uc.SeatsWithStatus(context.Background(), 99)
		s.ErrorIs(err, errs.ErrEventNotFound)
	})
}
