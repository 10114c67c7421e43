package repository

import (
	"context"
	"log/slog"
	"time"

	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

const (
	insertOutboxSQL = `
INSERT INTO outbox_events (topic, aggregate_key, payload, created_at)
VALUES ($1, $2, $3, $4)`

	claimOutboxSQL = `
SELECT id, topic, aggregate_key, payload, created_at, attempts
FROM outbox_events
WHERE published_at IS NULL AND attempts < $2
ORDER BY id
LIMIT $1
FOR UPDATE SKIP LOCKED`

	markOutboxPublishedSQL = `UPDATE outbox_events SET published_at = $2, last_error = NULL WHERE id = $1`

	markOutboxFailedSQL = `UPDATE outbox_events SET attempts = attempts + 1, last_error = $2 WHERE id = $1`
)

type OutboxRepository struct {
	logger *slog.Logger
}

func NewOutboxRepository(logger *slog.Logger) *OutboxRepository {
	return &OutboxRepository{logger: logger}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, tx db.DBTX, msg shared.OutboxMessage) error {
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if _, err := tx.Exec(ctx, insertOutboxSQL, msg.Topic, msg.Key, msg.Payload, createdAt); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to enqueue outbox event", err)
	}
	return nil
}

// ClaimPending locks up to limit unpublished events; other relays skip them until commit.
func (r *OutboxRepository) ClaimPending(ctx context.Context, tx db.DBTX, limit, maxAttempts int) ([]shared.OutboxMessage, error) {
	rows, err := tx.Query(ctx, claimOutboxSQL, limit, maxAttempts)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to claim outbox events", err)
	}
	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.OutboxMessage, error) {
		var m shared.OutboxMessage
		err := row.Scan(&m.ID, &m.Topic, &m.Key, &m.Payload, &m.CreatedAt, &m.Attempts)
		return m, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan outbox events", err)
	}
	return msgs, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, tx db.DBTX, id int64, at time.Time) error {
	if _, err := tx.Exec(ctx, markOutboxPublishedSQL, id, at); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to mark outbox event published", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, tx db.DBTX, id int64, reason string) error {
	if _, err := tx.Exec(ctx, markOutboxFailedSQL, id, reason); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to mark outbox event failed", err)
	}
	return nil
}
