package queries

import (
	"time"

	"github.com/google/uuid"
)

// SeatView is a catalog seat merged with its ledger status.
type SeatView struct {
	ID         int64  `json:"id"`
	EventID    int64  `json:"event_id"`
	SeatNumber string `json:"seat_number"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	PriceCents int64  `json:"price_cents"`
}

type TicketView struct {
	ID              int64      `json:"id"`
	SeatID          int64      `json:"seat_id"`
	EventID         *int64     `json:"event_id,omitempty"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Status          string     `json:"status"`
	PriceCents      int64      `json:"price_cents"`
	PaymentIntentID *string    `json:"payment_intent_id,omitempty"`
	ReservedAt      time.Time  `json:"reserved_at"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	SoldAt          *time.Time `json:"sold_at,omitempty"`
}
