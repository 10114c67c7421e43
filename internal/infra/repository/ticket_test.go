//go:build unit

package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/repository"
	"eventgo-ticketing/tests/common/builder"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDBTX records statements and returns canned results.
type stubDBTX struct {
	execTag  pgconn.CommandTag
	execErr  error
	queryErr error
	execs    []string
	execArgs [][]any
	queries  []string
}

func (s *stubDBTX) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, sql)
	s.execArgs = append(s.execArgs, args)
	return s.execTag, s.execErr
}

func (s *stubDBTX) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	s.queries = append(s.queries, sql)
	return nil, s.queryErr
}

func (s *stubDBTX) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTicketRepository_LockSeats(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTicketRepository(discardLogger())

	t.Run("success: one advisory lock per seat", func(t *testing.T) {
		db := &stubDBTX{}
		require.NoError(t, repo.LockSeats(ctx, db, []int64{1, 2, 3}))
		assert.Len(t, db.execs, 3)
		assert.Contains(t, db.execs[0], "pg_advisory_xact_lock($1::int4, $2::int4)")
		assert.Equal(t, []any{repository.SeatLockNamespace, int32(1)}, db.execArgs[0])
		assert.Equal(t, []any{repository.SeatLockNamespace, int32(3)}, db.execArgs[2])
	})

	t.Run("error: database failure", func(t *testing.T) {
		db := &stubDBTX{execErr: errors.New("connection reset")}
		err := repo.LockSeats(ctx, db, []int64{1})
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestSeatLockKey(t *testing.T) {
	testCases := []struct {
		name   string
		seatID int64
		key    int32
	}{
		{name: "small id is used as is", seatID: 104, key: 104},
		{name: "int32 max", seatID: math.MaxInt32, key: math.MaxInt32},
		{name: "large id is folded", seatID: 1<<32 | 5, key: 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ns, key := repository.SeatLockKey(tc.seatID)
			assert.Equal(t, repository.SeatLockNamespace, ns)
			assert.Equal(t, tc.key, key)
		})
	}
}

func TestTicketRepository_CreateReserved(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTicketRepository(discardLogger())
	tickets := []*ticket.Ticket{builder.NewTicketBuilder().BuildDomain()}

	testCases := []struct {
		name       string
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:       "error: live seat already exists",
			queryErr:   &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: database failure",
			queryErr:   errors.New("connection reset"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &stubDBTX{queryErr: tc.queryErr}
			_, err := repo.CreateReserved(ctx, db, tickets)
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
		})
	}

	t.Run("empty batch skips the database", func(t *testing.T) {
		db := &stubDBTX{}
		ids, err := repo.CreateReserved(ctx, db, nil)
		require.NoError(t, err)
		assert.Nil(t, ids)
		assert.Empty(t, db.queries)
	})
}

func TestTicketRepository_MarkSold(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTicketRepository(discardLogger())
	pi := "pi_test_123"

	t.Run("success: reports affected rows", func(t *testing.T) {
		db := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 2")}
		n, err := repo.MarkSold(ctx, db, []int64{1, 2}, &pi, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("error: database failure", func(t *testing.T) {
		db := &stubDBTX{execErr: errors.New("connection reset")}
		_, err := repo.MarkSold(ctx, db, []int64{1}, nil, time.Now())
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
