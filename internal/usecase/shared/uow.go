package shared

import (
	"context"
	"time"

	"eventgo-ticketing/internal/domain/split"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads outside transactions
	CommandReads() CommandReads
}

// Tx is retried as a whole on serialization failures and deadlocks, so fn must be
// free of side effects outside the database.
type Tx interface {
	Tickets() TicketRepository
	SplitPayments() SplitPaymentRepository
	Outbox() OutboxRepository
	DB() db.DBTX
}

type CommandReads interface {
	SplitPaymentByID(ctx context.Context, id uuid.UUID) (*split.SplitPayment, error)
}

type TicketRepository interface {
	// LockSeats takes transaction-scoped advisory locks in the given (ascending) order.
	LockSeats(ctx context.Context, tx db.DBTX, seatIDs []int64) error
	// ReleaseLapsed moves expired reservations to RELEASED. Nil seatIDs means any seat.
	ReleaseLapsed(ctx context.Context, tx db.DBTX, seatIDs []int64, now time.Time, limit int) ([]ReleasedTicket, error)
	LiveSeatIDs(ctx context.Context, tx db.DBTX, seatIDs []int64) ([]int64, error)
	CreateReserved(ctx context.Context, tx db.DBTX, tickets []*ticket.Ticket) ([]int64, error)
	FindByIDsForUpdate(ctx context.Context, tx db.DBTX, ids []int64) ([]*ticket.Ticket, error)
	MarkSold(ctx context.Context, tx db.DBTX, ids []int64, paymentIntentID *string, soldAt time.Time) (int64, error)
}

type SplitPaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, sp *split.SplitPayment) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*split.SplitPayment, error)
	UpdateLinks(ctx context.Context, tx db.DBTX, links []split.Link) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, tx db.DBTX, msg OutboxMessage) error
	ClaimPending(ctx context.Context, tx db.DBTX, limit, maxAttempts int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, tx db.DBTX, id int64, at time.Time) error
	MarkFailed(ctx context.Context, tx db.DBTX, id int64, reason string) error
}
