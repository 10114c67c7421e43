package shared

import (
	"context"
	"time"

	"eventgo-ticketing/internal/domain/catalog"
)

type ReleasedTicket struct {
	TicketID int64
	SeatID   int64
	EventID  *int64
}

// OutboxMessage is an event written in the same transaction as the change it describes.
type OutboxMessage struct {
	ID        int64
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
	Attempts  int
}

// Outbox topics.
const (
	TopicTicketsReserved     = "tickets.reserved"
	TopicTicketsSold         = "tickets.sold"
	TopicTicketsReleased     = "tickets.released"
	TopicBookingConfirmed    = "booking.confirmed"
	TopicSplitPaymentCreated = "split_payment.created"
	TopicSplitPaymentSettled = "split_payment.completed"
)

// CatalogReader fetches seats from the events service.
// Errors are errs.ErrEventNotFound or errs.ErrUpstreamUnavailable.
type CatalogReader interface {
	Event(ctx context.Context, eventID int64) (*catalog.Event, error)
	Events(ctx context.Context) ([]catalog.Event, error)
}
