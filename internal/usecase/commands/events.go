package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

type ticketEvent struct {
	TicketIDs []int64    `json:"ticket_ids"`
	SeatIDs   []int64    `json:"seat_ids,omitempty"`
	EventID   *int64     `json:"event_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	PaymentID string     `json:"payment_intent_id,omitempty"`
	At        time.Time  `json:"at"`
}

type bookingEvent struct {
	EventID         string    `json:"event_id"`
	Seats           []string  `json:"seats"`
	PaymentIntentID string    `json:"payment_intent_id"`
	TicketIDs       []int64   `json:"ticket_ids,omitempty"`
	At              time.Time `json:"at"`
}

type splitEvent struct {
	SplitPaymentID uuid.UUID `json:"split_payment_id"`
	EventID        string    `json:"event_id"`
	ReservationID  string    `json:"reservation_id,omitempty"`
	TotalAmount    int64     `json:"total_amount"`
	AmountPaid     int64     `json:"amount_paid"`
	Links          int       `json:"links"`
	At             time.Time `json:"at"`
}

func enqueue(ctx context.Context, tx shared.Tx, topic, key string, payload any, now time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrapf(err, "marshal %s event", topic)
	}
	return tx.Outbox().Enqueue(ctx, tx.DB(), shared.OutboxMessage{
		Topic:     topic,
		Key:       key,
		Payload:   body,
		CreatedAt: now,
	})
}

// eventKey partitions ledger events by event when known, so consumers see one event's changes in order.
func eventKey(eventID *int64, fallback int64) string {
	if eventID != nil {
		return "event-" + strconv.FormatInt(*eventID, 10)
	}
	return "seat-" + strconv.FormatInt(fallback, 10)
}
