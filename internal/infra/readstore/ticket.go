package readstore

import (
	"context"
	"log/slog"
	"time"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/infra/repository/converter"
	"eventgo-ticketing/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// A RESERVED row past its expiry no longer holds the seat even before the sweeper releases it.
const liveUnexpired = `status IN ('RESERVED', 'SOLD') AND NOT (status = 'RESERVED' AND expires_at IS NOT NULL AND expires_at <= $2)`

const (
	bookedSeatIDsSQL = `SELECT seat_id FROM tickets WHERE event_id = $1 AND ` + liveUnexpired + ` ORDER BY seat_id`

	liveStatusesSQL = `SELECT seat_id, status FROM tickets WHERE seat_id = ANY($1::bigint[]) AND ` + liveUnexpired

	ticketsByUserSQL = `
SELECT id, seat_id, event_id, user_id, price_cents, status, payment_intent_id, reserved_at, expires_at, sold_at
FROM tickets WHERE user_id = $1
ORDER BY reserved_at DESC, id DESC
LIMIT $2`
)

type TicketReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewTicketReadStore(dbtx db.DBTX, logger *slog.Logger) *TicketReadStore {
	return &TicketReadStore{
		db:     dbtx,
		logger: logger,
	}
}

func (r *TicketReadStore) BookedSeatIDs(ctx context.Context, eventID int64, now time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, bookedSeatIDsSQL, eventID, now)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query booked seats", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booked seats", err)
	}
	return ids, nil
}

func (r *TicketReadStore) LiveStatuses(ctx context.Context, seatIDs []int64, now time.Time) (map[int64]ticket.Status, error) {
	rows, err := r.db.Query(ctx, liveStatusesSQL, seatIDs, now)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query seat statuses", err)
	}
	defer rows.Close()

	out := make(map[int64]ticket.Status, len(seatIDs))
	for rows.Next() {
		var (
			seatID int64
			status string
		)
		if err := rows.Scan(&seatID, &status); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan seat status", err)
		}
		out[seatID] = ticket.Status(status)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read seat statuses", err)
	}
	return out, nil
}

func (r *TicketReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*queries.TicketView, error) {
	rows, err := r.db.Query(ctx, ticketsByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query user tickets", err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.TicketRow])
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan user tickets", err)
	}

	views := make([]*queries.TicketView, len(recs))
	for i, rec := range recs {
		views[i] = toTicketView(converter.TicketRowToDomain(rec))
	}
	return views, nil
}

func toTicketView(t *ticket.Ticket) *queries.TicketView {
	return &queries.TicketView{
		ID:              t.ID(),
		SeatID:          t.SeatID(),
		EventID:         t.EventID(),
		UserID:          t.UserID(),
		Status:          t.Status().String(),
		PriceCents:      t.Price().Cents(),
		PaymentIntentID: t.PaymentIntentID(),
		ReservedAt:      t.ReservedAt(),
		ExpiresAt:       t.ExpiresAt(),
		SoldAt:          t.SoldAt(),
	}
}
