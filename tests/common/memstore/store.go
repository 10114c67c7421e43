//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork. Transactions run one at a time
// and roll back to a snapshot when fn fails, which is enough to exercise the commands'
// all-or-nothing behaviour without Postgres.
package memstore

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"eventgo-ticketing/internal/domain/split"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

type TicketRow struct {
	ID              int64
	SeatID          int64
	EventID         *int64
	UserID          *uuid.UUID
	PriceCents      int64
	Status          ticket.Status
	PaymentIntentID *string
	ReservedAt      time.Time
	ExpiresAt       *time.Time
	SoldAt          *time.Time
}

type OutboxRow struct {
	shared.OutboxMessage
	Published bool
	LastError string
}

type state struct {
	tickets  map[int64]TicketRow
	nextID   int64
	splits   map[uuid.UUID]split.SplitPayment
	outbox   []OutboxRow
	nextMsg  int64
	failures map[string]error
}

func (s state) clone() state {
	c := state{
		tickets:  maps.Clone(s.tickets),
		nextID:   s.nextID,
		splits:   make(map[uuid.UUID]split.SplitPayment, len(s.splits)),
		outbox:   slices.Clone(s.outbox),
		nextMsg:  s.nextMsg,
		failures: maps.Clone(s.failures),
	}
	for k, v := range s.splits {
		v.Links = slices.Clone(v.Links)
		c.splits[k] = v
	}
	return c
}

type Store struct {
	mu     sync.Mutex
	st     state
	logger *slog.Logger
}

func New() *Store {
	return &Store{
		st: state{
			tickets:  map[int64]TicketRow{},
			splits:   map[uuid.UUID]split.SplitPayment{},
			failures: map[string]error{},
		},
		logger: slog.New(slog.DiscardHandler),
	}
}

// FailOn makes the named repository operation return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.st.failures, op)
		return
	}
	s.st.failures[op] = err
}

// SeedTicket inserts a row as is and returns its id.
func (s *Store) SeedTicket(row TicketRow) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.nextID++
	row.ID = s.st.nextID
	if row.ReservedAt.IsZero() {
		row.ReservedAt = time.Now().UTC()
	}
	s.st.tickets[row.ID] = row
	return row.ID
}

func (s *Store) Ticket(id int64) (TicketRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.st.tickets[id]
	return row, ok
}

// Tickets returns every row ordered by id.
func (s *Store) Tickets() []TicketRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Collect(maps.Values(s.st.tickets))
	slices.SortFunc(out, func(a, b TicketRow) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// LiveSeat reports whether seatID holds a RESERVED or SOLD ticket.
func (s *Store) LiveSeat(seatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.st.tickets {
		if t.SeatID == seatID && t.Status.IsLive() {
			return true
		}
	}
	return false
}

func (s *Store) Outbox() []OutboxRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.outbox)
}

// Topics lists outbox topics in insertion order.
func (s *Store) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	topics := make([]string, 0, len(s.st.outbox))
	for _, m := range s.st.outbox {
		topics = append(topics, m.Topic)
	}
	return topics
}

func (s *Store) SplitPayment(id uuid.UUID) (split.SplitPayment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.st.splits[id]
	return sp, ok
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return commandReads{s: s}
}

type commandReads struct {
	s *Store
}

func (r commandReads) SplitPaymentByID(_ context.Context, id uuid.UUID) (*split.SplitPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.st.splits[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "split payment not found", nil)
	}
	sp.Links = slices.Clone(sp.Links)
	return &sp, nil
}

type memTx struct {
	s *Store
}

func (t *memTx) Tickets() shared.TicketRepository             { return ticketRepo{st: &t.s.st} }
func (t *memTx) SplitPayments() shared.SplitPaymentRepository { return splitRepo{s: t.s} }
func (t *memTx) Outbox() shared.OutboxRepository              { return outboxRepo{st: &t.s.st} }
func (t *memTx) DB() db.DBTX                                  { return nil }

func (st *state) fail(op string) error {
	return st.failures[op]
}
