//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type TicketFixture struct {
	SeatID          int64
	EventID         *int64
	UserID          *uuid.UUID
	PriceCents      int64
	Status          string
	PaymentIntentID *string
	ExpiresAt       *time.Time
}

func InsertTicket(t *testing.T, db DBLike, f TicketFixture) int64 {
	t.Helper()

	if f.Status == "" {
		f.Status = "RESERVED"
	}
	var soldAt *time.Time
	if f.Status == "SOLD" {
		now := time.Now().UTC()
		soldAt = &now
	}

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO tickets (seat_id, event_id, user_id, price_cents, status, payment_intent_id, expires_at, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		f.SeatID, f.EventID, f.UserID, f.PriceCents, f.Status, f.PaymentIntentID, f.ExpiresAt, soldAt,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TicketStatus(t *testing.T, db DBLike, id int64) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM tickets WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountOutbox(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM outbox_events WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
