package commands

import (
	"context"
	"log/slog"
	"time"

	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"
)

const defaultSweepBatch = 500

// ExpirySweeper releases RESERVED tickets whose hold has lapsed. It is a no-op while
// reservations are configured not to expire.
type ExpirySweeper struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	ttl       time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewExpirySweeper(uow shared.UnitOfWork, clk clock.Clock, ttl time.Duration, logger *slog.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		uow:       uow,
		clock:     clk,
		ttl:       ttl,
		batchSize: defaultSweepBatch,
		logger:    logger,
	}
}

func (s *ExpirySweeper) Enabled() bool {
	return s.ttl > 0
}

// SweepOnce releases at most one batch and reports how many tickets were released.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}

	now := s.clock.Now()
	var released []shared.ReleasedTicket
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		released, err = tx.Tickets().ReleaseLapsed(ctx, tx.DB(), nil, now, s.batchSize)
		if err != nil {
			return err
		}
		return enqueueReleased(ctx, tx, released, now)
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if len(released) > 0 {
		s.logger.Info("lapsed reservations released", "count", len(released))
	}
	return len(released), nil
}

func enqueueReleased(ctx context.Context, tx shared.Tx, released []shared.ReleasedTicket, now time.Time) error {
	for _, r := range released {
		if err := enqueue(ctx, tx, shared.TopicTicketsReleased, eventKey(r.EventID, r.SeatID), ticketEvent{
			TicketIDs: []int64{r.TicketID},
			SeatIDs:   []int64{r.SeatID},
			EventID:   r.EventID,
			At:        now,
		}, now); err != nil {
			return err
		}
	}
	return nil
}
