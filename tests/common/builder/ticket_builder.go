//go:build unit || e2e

package builder

import (
	"time"

	"eventgo-ticketing/internal/domain/ticket"
	reqdto "eventgo-ticketing/internal/handler/dto/request"
	"eventgo-ticketing/internal/usecase/queries"

	"github.com/google/uuid"
)

type TicketBuilder struct {
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

func NewTicketBuilder() *TicketBuilder {
	eventID := int64(7)
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	return &TicketBuilder{
		ID:         1,
		SeatID:     101,
		EventID:    &eventID,
		UserID:     &userID,
		PriceCents: 5000,
		Status:     ticket.StatusReserved,
		ReservedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *TicketBuilder) WithID(id int64) *TicketBuilder {
	b.ID = id
	return b
}

func (b *TicketBuilder) WithSeat(seatID int64) *TicketBuilder {
	b.SeatID = seatID
	return b
}

func (b *TicketBuilder) WithEvent(eventID *int64) *TicketBuilder {
	b.EventID = eventID
	return b
}

func (b *TicketBuilder) WithUser(userID *uuid.UUID) *TicketBuilder {
	b.UserID = userID
	return b
}

func (b *TicketBuilder) WithStatus(status ticket.Status) *TicketBuilder {
	b.Status = status
	return b
}

func (b *TicketBuilder) WithExpiresAt(t time.Time) *TicketBuilder {
	b.ExpiresAt = &t
	return b
}

func (b *TicketBuilder) Sold(paymentIntentID string, at time.Time) *TicketBuilder {
	b.Status = ticket.StatusSold
	b.SoldAt = &at
	b.ExpiresAt = nil
	if paymentIntentID != "" {
		b.PaymentIntentID = &paymentIntentID
	}
	return b
}

func (b *TicketBuilder) BuildDomain() *ticket.Ticket {
	price, _ := ticket.NewMoney(b.PriceCents)
	return ticket.ReconstructTicket(
		b.ID, b.SeatID, b.EventID, b.UserID, price, b.Status,
		b.PaymentIntentID, b.ReservedAt, b.ExpiresAt, b.SoldAt,
	)
}

func (b *TicketBuilder) BuildView() *queries.TicketView {
	return &queries.TicketView{
		ID:              b.ID,
		SeatID:          b.SeatID,
		EventID:         b.EventID,
		UserID:          b.UserID,
		Status:          string(b.Status),
		PriceCents:      b.PriceCents,
		PaymentIntentID: b.PaymentIntentID,
		ReservedAt:      b.ReservedAt,
		ExpiresAt:       b.ExpiresAt,
		SoldAt:          b.SoldAt,
	}
}

func BuildReserveRequestDTO(eventID int64, seatIDs ...int64) reqdto.ReserveTicketsRequest {
	return reqdto.ReserveTicketsRequest{EventID: &eventID, SeatIDs: seatIDs}
}
