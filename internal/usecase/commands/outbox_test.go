//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/commands"
	"eventgo-ticketing/internal/usecase/shared"
	"eventgo-ticketing/tests/common/memstore"
	commandsmock "eventgo-ticketing/tests/mock/commands"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OutboxRelayTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockPublisher *commandsmock.MockEventPublisher
	store         *memstore.Store
	relay         *commands.OutboxRelay
}

func (s *OutboxRelayTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPublisher = commandsmock.NewMockEventPublisher(s.mockCtrl)
	s.store = memstore.New()
	s.relay = commands.NewOutboxRelay(s.store, s.mockPublisher, clock.NewMockClock(testNow), 2, 3, discardLogger())
}

func (s *OutboxRelayTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOutboxRelaySuite(t *testing.T) {
	suite.Run(t, new(OutboxRelayTestSuite))
}

func (s *OutboxRelayTestSuite) enqueue(topics ...string) {
	err := s.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		for _, topic := range topics {
			if err := tx.Outbox().Enqueue(ctx, tx.DB(), shared.OutboxMessage{
				Topic:     topic,
				Key:       "7:101",
				Payload:   []byte(`{}`),
				CreatedAt: testNow,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)
}

func (s *OutboxRelayTestSuite) TestRelayOnce() {
	s.Run("publishes in batches", func() {
		s.SetupTest()
		s.enqueue(shared.TopicTicketsReserved, shared.TopicTicketsSold, shared.TopicBookingConfirmed)

		var seen []string
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg shared.OutboxMessage) error {
				seen = append(seen, msg.Topic)
				return nil
			}).Times(3)

		n, err := s.relay.RelayOnce(context.Background())
		s.Require().NoError(err)
		s.Equal(2, n)

		n, err = s.relay.RelayOnce(context.Background())
		s.Require().NoError(err)
		s.Equal(1, n)

		n, err = s.relay.RelayOnce(context.Background())
		s.Require().NoError(err)
		s.Zero(n)

		s.Equal([]string{shared.TopicTicketsReserved, shared.TopicTicketsSold, shared.TopicBookingConfirmed}, seen)
		for _, row := range s.store.Outbox() {
			s.True(row.Published)
		}
	})

	s.Run("failed publish is retried until max attempts", func() {
		s.SetupTest()
		s.enqueue(shared.TopicTicketsReserved)

		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			Return(errors.New("broker down")).Times(3)

		for range 4 {
			n, err := s.relay.RelayOnce(context.Background())
			s.Require().NoError(err)
			s.Zero(n)
		}

		rows := s.store.Outbox()
		s.Require().Len(rows, 1)
		s.False(rows[0].Published)
		s.Equal(3, rows[0].Attempts)
		s.Equal("broker down", rows[0].LastError)
	})

	s.Run("one failure does not block the rest of the batch", func() {
		s.SetupTest()
		s.enqueue(shared.TopicTicketsReserved, shared.TopicTicketsSold)

		gomock.InOrder(
			s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down")),
			s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
		)

		n, err := s.relay.RelayOnce(context.Background())
		s.Require().NoError(err)
		s.Equal(1, n)

		rows := s.store.Outbox()
		s.False(rows[0].Published)
		s.True(rows[1].Published)
	})

	s.Run("error: claim failure", func() {
		s.SetupTest()
		s.enqueue(shared.TopicTicketsReserved)
		s.store.FailOn("MarkPublished", errors.New("connection reset"))
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.relay.RelayOnce(context.Background())
		s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
		s.False(s.store.Outbox()[0].Published)
	})
}
