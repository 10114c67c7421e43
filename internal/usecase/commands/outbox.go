package commands

import (
	"context"
	"log/slog"

	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"
)

// OutboxRelay publishes committed outbox events to the broker. Delivery is at least once:
// an event published right before a failed commit is sent again on the next run.
type OutboxRelay struct {
	uow         shared.UnitOfWork
	publisher   EventPublisher
	clock       clock.Clock
	batchSize   int
	maxAttempts int
	logger      *slog.Logger
}

func NewOutboxRelay(
	uow shared.UnitOfWork,
	publisher EventPublisher,
	clk clock.Clock,
	batchSize, maxAttempts int,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// RelayOnce claims one batch and reports how many events were published.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	published := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		published = 0
		msgs, err := tx.Outbox().ClaimPending(ctx, tx.DB(), r.batchSize, r.maxAttempts)
		if err != nil {
			return err
		}

		for _, msg := range msgs {
			if perr := r.publisher.Publish(ctx, msg); perr != nil {
				r.logger.Warn("outbox publish failed",
					"outbox_id", msg.ID,
					"topic", msg.Topic,
					"attempt", msg.Attempts+1,
					"error", perr.Error())
				if err := tx.Outbox().MarkFailed(ctx, tx.DB(), msg.ID, perr.Error()); err != nil {
					return err
				}
				continue
			}
			if err := tx.Outbox().MarkPublished(ctx, tx.DB(), msg.ID, r.clock.Now()); err != nil {
				return err
			}
			published++
		}
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return published, nil
}
