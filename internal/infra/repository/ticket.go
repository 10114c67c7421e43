package repository

import (
	"context"
	"log/slog"
	"math"
	"time"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/infra/repository/converter"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// SeatLockNamespace is the first advisory lock key of every seat lock ("tick").
const SeatLockNamespace int32 = 0x7469636b

const ticketColumns = `id, seat_id, event_id, user_id, price_cents, status, payment_intent_id, reserved_at, expires_at, sold_at`

const (
	// Two-key form keeps seat locks apart from single-key users such as the migration lock.
	lockSeatSQL = `SELECT pg_advisory_xact_lock($1::int4, $2::int4)`

	releaseLapsedSQL = `
UPDATE tickets
SET status = 'RELEASED', released_at = $1, updated_at = $1
WHERE id IN (
	SELECT id FROM tickets
	WHERE status = 'RESERVED'
	  AND expires_at IS NOT NULL
	  AND expires_at <= $1
	  AND ($2::bigint[] IS NULL OR seat_id = ANY($2::bigint[]))
	ORDER BY id
	LIMIT $3
	FOR UPDATE SKIP LOCKED
)
RETURNING id, seat_id, event_id`

	liveSeatIDsSQL = `
SELECT seat_id FROM tickets
WHERE seat_id = ANY($1::bigint[]) AND status IN ('RESERVED', 'SOLD')
ORDER BY seat_id`

	insertReservedSQL = `
INSERT INTO tickets (seat_id, event_id, user_id, price_cents, status, reserved_at, expires_at, updated_at)
SELECT s.seat_id, s.event_id, s.user_id, s.price_cents, 'RESERVED', s.reserved_at, s.expires_at, s.reserved_at
FROM unnest($1::bigint[], $2::bigint[], $3::uuid[], $4::bigint[], $5::timestamptz[], $6::timestamptz[])
	AS s(seat_id, event_id, user_id, price_cents, reserved_at, expires_at)
RETURNING id, seat_id`

	selectForUpdateSQL = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ANY($1::bigint[]) ORDER BY id FOR UPDATE`

	markSoldSQL = `
UPDATE tickets
SET status = 'SOLD',
    sold_at = $2,
    payment_intent_id = COALESCE($3, payment_intent_id),
    expires_at = NULL,
    updated_at = $2
WHERE id = ANY($1::bigint[]) AND status = 'RESERVED'`
)

type TicketRepository struct {
	logger *slog.Logger
}

func NewTicketRepository(logger *slog.Logger) *TicketRepository {
	return &TicketRepository{logger: logger}
}

func (r *TicketRepository) LockSeats(ctx context.Context, tx db.DBTX, seatIDs []int64) error {
	for _, id := range seatIDs {
		ns, key := SeatLockKey(id)
		if _, err := tx.Exec(ctx, lockSeatSQL, ns, key); err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to lock seat", err)
		}
	}
	return nil
}

// SeatLockKey maps a seat id onto the namespaced two-key advisory lock. Ids beyond int32
// are folded, which at worst serializes two unrelated seats.
func SeatLockKey(seatID int64) (int32, int32) {
	if seatID >= math.MinInt32 && seatID <= math.MaxInt32 {
		return SeatLockNamespace, int32(seatID)
	}
	// #nosec G115 -- folding is intended
	return SeatLockNamespace, int32(seatID ^ (seatID >> 32))
}

func (r *TicketRepository) ReleaseLapsed(ctx context.Context, tx db.DBTX, seatIDs []int64, now time.Time, limit int) ([]shared.ReleasedTicket, error) {
	var limitArg pgtype.Int8
	if limit > 0 {
		limitArg = pgtype.Int8{Int64: int64(limit), Valid: true}
	}

	rows, err := tx.Query(ctx, releaseLapsedSQL, now, seatIDs, limitArg)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to release lapsed reservations", err)
	}
	released, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.ReleasedTicket, error) {
		var (
			out     shared.ReleasedTicket
			eventID pgtype.Int8
		)
		if err := row.Scan(&out.TicketID, &out.SeatID, &eventID); err != nil {
			return out, err
		}
		if eventID.Valid {
			out.EventID = &eventID.Int64
		}
		return out, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan released reservations", err)
	}
	return released, nil
}

func (r *TicketRepository) LiveSeatIDs(ctx context.Context, tx db.DBTX, seatIDs []int64) ([]int64, error) {
	rows, err := tx.Query(ctx, liveSeatIDsSQL, seatIDs)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to query live seats", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan live seats", err)
	}
	return ids, nil
}

// CreateReserved inserts the whole batch in one statement and returns ids in input order.
func (r *TicketRepository) CreateReserved(ctx context.Context, tx db.DBTX, tickets []*ticket.Ticket) ([]int64, error) {
	if len(tickets) == 0 {
		return nil, nil
	}
	p := converter.TicketsToInsertParams(tickets)

	rows, err := tx.Query(ctx, insertReservedSQL, p.SeatIDs, p.EventIDs, p.UserIDs, p.PriceCents, p.ReservedAt, p.ExpiresAt)
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to insert reserved tickets", err)
	}

	bySeat := make(map[int64]int64, len(tickets))
	for rows.Next() {
		var id, seatID int64
		if err := rows.Scan(&id, &seatID); err != nil {
			rows.Close()
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan inserted ticket", err)
		}
		bySeat[seatID] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to insert reserved tickets", err)
	}

	ids := make([]int64, len(tickets))
	for i, t := range tickets {
		id, ok := bySeat[t.SeatID()]
		if !ok {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "inserted ticket missing from result",
				errs.Newf("seat %d", t.SeatID()))
		}
		ids[i] = id
	}
	return ids, nil
}

func (r *TicketRepository) FindByIDsForUpdate(ctx context.Context, tx db.DBTX, ids []int64) ([]*ticket.Ticket, error) {
	rows, err := tx.Query(ctx, selectForUpdateSQL, ids)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to lock tickets", err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.TicketRow])
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan tickets", err)
	}
	return converter.TicketRowsToDomain(recs), nil
}

func (r *TicketRepository) MarkSold(ctx context.Context, tx db.DBTX, ids []int64, paymentIntentID *string, soldAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, markSoldSQL, ids, soldAt, paymentIntentID)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to mark tickets sold", err)
	}
	return tag.RowsAffected(), nil
}
