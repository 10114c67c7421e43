package ticket

import (
	"time"

	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"

	"github.com/google/uuid"
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	// Zero means reservations do not lapse.
	ReservationTTL time.Duration
}

// SeatSpec is the catalog information a ticket is priced and attributed from.
type SeatSpec struct {
	SeatID   int64
	EventID  int64
	Category string
}

type Ticket struct {
	id              int64
	seatID          int64
	eventID         *int64
	userID          *uuid.UUID
	price           Money
	status          Status
	paymentIntentID *string
	reservedAt      time.Time
	expiresAt       *time.Time
	soldAt          *time.Time
}

func NewReservedTicket(services *Services, seat SeatSpec, userID uuid.UUID) (*Ticket, error) {
	price, err := NewMoney(services.PriceCalculator.PriceCents(seat))
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	t := &Ticket{
		seatID:     seat.SeatID,
		price:      price,
		status:     StatusReserved,
		reservedAt: now,
	}
	if seat.EventID > 0 {
		eventID := seat.EventID
		t.eventID = &eventID
	}
	if userID != uuid.Nil {
		uid := userID
		t.userID = &uid
	}
	if services.ReservationTTL > 0 {
		exp := now.Add(services.ReservationTTL)
		t.expiresAt = &exp
	}
	return t, nil
}

func ReconstructTicket(
	id, seatID int64,
	eventID *int64,
	userID *uuid.UUID,
	price Money,
	status Status,
	paymentIntentID *string,
	reservedAt time.Time,
	expiresAt, soldAt *time.Time,
) *Ticket {
	return &Ticket{
		id:              id,
		seatID:          seatID,
		eventID:         eventID,
		userID:          userID,
		price:           price,
		status:          status,
		paymentIntentID: paymentIntentID,
		reservedAt:      reservedAt,
		expiresAt:       expiresAt,
		soldAt:          soldAt,
	}
}

// IsLapsed reports a reservation whose hold expired before now.
func (t *Ticket) IsLapsed(now time.Time) bool {
	return t.status == StatusReserved && t.expiresAt != nil && !now.Before(*t.expiresAt)
}

// SoldWith reports a ticket already finalized by the given payment.
func (t *Ticket) SoldWith(paymentIntentID string) bool {
	return t.status == StatusSold && paymentIntentID != "" &&
		t.paymentIntentID != nil && *t.paymentIntentID == paymentIntentID
}

// CheckPurchasable enforces that only a live, unexpired reservation held by actor can be sold.
// Tickets reserved without a user are purchasable by any authenticated caller.
func (t *Ticket) CheckPurchasable(actor uuid.UUID, now time.Time) error {
	if t.status != StatusReserved || t.IsLapsed(now) {
		return &errs.TicketNotReservedError{TicketID: t.id}
	}
	if t.userID != nil && *t.userID != actor {
		return &errs.TicketNotOwnedError{TicketID: t.id}
	}
	return nil
}

func (t *Ticket) ID() int64                { return t.id }
func (t *Ticket) SeatID() int64            { return t.seatID }
func (t *Ticket) EventID() *int64          { return t.eventID }
func (t *Ticket) UserID() *uuid.UUID       { return t.userID }
func (t *Ticket) Price() Money             { return t.price }
func (t *Ticket) Status() Status           { return t.status }
func (t *Ticket) PaymentIntentID() *string { return t.paymentIntentID }
func (t *Ticket) ReservedAt() time.Time    { return t.reservedAt }
func (t *Ticket) ExpiresAt() *time.Time    { return t.expiresAt }
func (t *Ticket) SoldAt() *time.Time       { return t.soldAt }
