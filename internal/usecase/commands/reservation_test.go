//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/commands"
	"eventgo-ticketing/internal/usecase/shared"
	"eventgo-ticketing/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	store   *memstore.Store
	clock   *clock.MockClock
	catalog staticCatalog
	userID  uuid.UUID
	eventID int64
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.store = memstore.New()
	s.clock = clock.NewMockClock(testNow)
	s.eventID = 7
	s.catalog = staticCatalog{events: []catalog.Event{eventWithSeats(s.eventID, 10)}}
	s.userID = uuid.New()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) useCase(ttl time.Duration) commands.ReservationCommands {
	factory := ticket.NewFactory(&ticket.Services{
		Clock:           s.clock,
		PriceCalculator: ticket.NewTablePriceCalculator(5000, nil),
		ReservationTTL:  ttl,
	})
	return commands.NewReservationUseCase(s.store, s.catalog, factory, discardLogger())
}

func (s *ReservationCommandsTestSuite) reserve(uc commands.ReservationCommands, seats ...int64) (*commands.ReserveResult, error) {
	return uc.Reserve(context.Background(), commands.ReserveRequest{EventID: &s.eventID, SeatIDs: seats}, s.userID)
}

func (s *ReservationCommandsTestSuite) TestReserve() {
	s.Run("success: one ticket per seat in seat order", func() {
		s.SetupTest()
		res, err := s.reserve(s.useCase(0), 3, 1, 2, 1)
		s.Require().NoError(err)
		s.Len(res.TicketIDs, 3)

		rows := s.store.Tickets()
		s.Require().Len(rows, 3)
		for i, row := range rows {
			s.Equal(int64(i+1), row.SeatID)
			s.Equal(ticket.StatusReserved, row.Status)
			s.Equal(s.userID, *row.UserID)
			s.Equal(s.eventID, *row.EventID)
			s.Equal(int64(5000), row.PriceCents)
			s.Nil(row.ExpiresAt)
		}
		s.Equal([]string{shared.TopicTicketsReserved}, s.store.Topics())
	})

	s.Run("success: without event id every catalog event is searched", func() {
		s.SetupTest()
		s.catalog = staticCatalog{events: []catalog.Event{eventWithSeats(1, 2), {ID: 2, Seats: []catalog.Seat{{ID: 50}}}}}
		res, err := s.useCase(0).Reserve(context.Background(), commands.ReserveRequest{SeatIDs: []int64{50}}, s.userID)
		s.Require().NoError(err)
		s.Len(res.TicketIDs, 1)

		row, ok := s.store.Ticket(res.TicketIDs[0])
		s.Require().True(ok)
		s.Equal(int64(2), *row.EventID)
	})

	s.Run("error: overlapping request reserves nothing", func() {
		s.SetupTest()
		uc := s.useCase(0)
		_, err := s.reserve(uc, 1, 2, 3)
		s.Require().NoError(err)

		_, err = s.reserve(uc, 3, 4)
		s.ErrorIs(err, errs.ErrSeatsAlreadyTaken)
		var taken *errs.SeatsTakenError
		s.Require().True(errors.As(err, &taken))
		s.Equal([]int64{3}, taken.SeatIDs)

		s.False(s.store.LiveSeat(4), "seat 4 must stay available")
		s.Len(s.store.Tickets(), 3)
	})

	s.Run("error: seats outside the event", func() {
		s.SetupTest()
		_, err := s.reserve(s.useCase(0), 1, 99, 98)
		s.ErrorIs(err, errs.ErrInvalidSeatSelection)
		var invalid *errs.InvalidSeatsError
		s.Require().True(errors.As(err, &invalid))
		s.Equal([]int64{98, 99}, invalid.SeatIDs)
		s.Empty(s.store.Tickets())
	})

	s.Run("error: empty selection", func() {
		s.SetupTest()
		_, err := s.reserve(s.useCase(0))
		s.ErrorIs(err, errs.ErrInvalidSeatSelection)
	})

	s.Run("error: anonymous caller", func() {
		s.SetupTest()
		_, err := s.useCase(0).Reserve(context.Background(), commands.ReserveRequest{SeatIDs: []int64{1}}, uuid.Nil)
		s.ErrorIs(err, errs.ErrUnauthorized)
	})

	s.Run("error: catalog failures pass through", func() {
		s.SetupTest()
		s.catalog = staticCatalog{err: errs.Mark(errors.New("dial tcp: refused"), errs.ErrUpstreamUnavailable)}
		_, err := s.reserve(s.useCase(0), 1)
		s.ErrorIs(err, errs.ErrUpstreamUnavailable)

		s.SetupTest()
		other := int64(404)
		_, err = s.useCase(0).Reserve(context.Background(), commands.ReserveRequest{EventID: &other, SeatIDs: []int64{1}}, s.userID)
		s.ErrorIs(err, errs.ErrEventNotFound)
	})

	s.Run("error: unique violation from a racing writer names the seat", func() {
		s.SetupTest()
		conflict := &pgconn.PgError{Code: "23505", Detail: "Key (seat_id)=(2) already exists."}
		s.store.FailOn("CreateReserved", infra.ClassifyDBErr(discardLogger(), "insert", conflict))

		_, err := s.reserve(s.useCase(0), 1, 2, 3)
		s.ErrorIs(err, errs.ErrSeatsAlreadyTaken)
		var taken *errs.SeatsTakenError
		s.Require().ErrorAs(err, &taken)
		s.Equal([]int64{2}, taken.SeatIDs)
		s.Contains(err.Error(), "Seats [2] are already taken.")
		s.Empty(s.store.Topics())
	})

	s.Run("error: unique violation without detail names every requested seat", func() {
		s.SetupTest()
		conflict := &pgconn.PgError{Code: "23505"}
		s.store.FailOn("CreateReserved", infra.ClassifyDBErr(discardLogger(), "insert", conflict))

		_, err := s.reserve(s.useCase(0), 3, 1)
		var taken *errs.SeatsTakenError
		s.Require().ErrorAs(err, &taken)
		s.Equal([]int64{1, 3}, taken.SeatIDs)
	})

	s.Run("error: storage failure is a database error and rolls back", func() {
		s.SetupTest()
		s.store.FailOn("Enqueue", errors.New("disk full"))
		_, err := s.reserve(s.useCase(0), 1, 2)
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
		s.Empty(s.store.Tickets())
	})
}

func (s *ReservationCommandsTestSuite) TestReserveConcurrent() {
	uc := s.useCase(0)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Reserve(context.Background(), commands.ReserveRequest{EventID: &s.eventID, SeatIDs: []int64{5, 6}}, uuid.New())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, errs.ErrSeatsAlreadyTaken):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, wins)
	s.Equal(callers-1, conflicts)
	s.Len(s.store.Tickets(), 2)
}

func (s *ReservationCommandsTestSuite) TestReserveReleasesLapsedHolds() {
	uc := s.useCase(10 * time.Minute)

	_, err := s.reserve(uc, 1)
	s.Require().NoError(err)

	_, err = s.reserve(uc, 1)
	s.ErrorIs(err, errs.ErrSeatsAlreadyTaken, "hold is still live")

	s.clock.Add(10 * time.Minute)
	res, err := s.reserve(uc, 1)
	s.Require().NoError(err)
	s.Equal(1, res.Released)

	rows := s.store.Tickets()
	s.Require().Len(rows, 2)
	s.Equal(ticket.StatusReleased, rows[0].Status)
	s.Equal(ticket.StatusReserved, rows[1].Status)
	s.Equal([]string{
		shared.TopicTicketsReserved,
		shared.TopicTicketsReleased,
		shared.TopicTicketsReserved,
	}, s.store.Topics())
}
