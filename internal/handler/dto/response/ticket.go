package response

import (
	"eventgo-ticketing/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ReserveTicketsResponse struct {
	Message string  `json:"message"`
	Tickets []int64 `json:"tickets"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SeatResponse struct {
	ID         int64  `json:"id"`
	EventID    int64  `json:"event_id"`
	SeatNumber string `json:"seat_number"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	// Price in major units, as the frontend renders it.
	Price      float64 `json:"price"`
	PriceCents int64   `json:"price_cents"`
}

func FromSeatViews(views []queries.SeatView) []SeatResponse {
	out := make([]SeatResponse, len(views))
	for i, v := range views {
		_ = copier.Copy(&out[i], &v)
		out[i].Price = float64(v.PriceCents) / 100
	}
	return out
}

type TicketResponse struct {
	ID              int64   `json:"id"`
	SeatID          int64   `json:"seat_id"`
	EventID         *int64  `json:"event_id,omitempty"`
	Status          string  `json:"status"`
	PriceCents      int64   `json:"price_cents"`
	PaymentIntentID *string `json:"payment_intent_id,omitempty"`
	ReservedAt      int64   `json:"reserved_at"`
	ExpiresAt       *int64  `json:"expires_at,omitempty"`
	SoldAt          *int64  `json:"sold_at,omitempty"`
}

func FromTicketViews(views []*queries.TicketView) []TicketResponse {
	out := make([]TicketResponse, len(views))
	for i, v := range views {
		out[i] = TicketResponse{
			ID:              v.ID,
			SeatID:          v.SeatID,
			EventID:         v.EventID,
			Status:          v.Status,
			PriceCents:      v.PriceCents,
			PaymentIntentID: v.PaymentIntentID,
			ReservedAt:      v.ReservedAt.Unix(),
		}
		if v.ExpiresAt != nil {
			ts := v.ExpiresAt.Unix()
			out[i].ExpiresAt = &ts
		}
		if v.SoldAt != nil {
			ts := v.SoldAt.Unix()
			out[i].SoldAt = &ts
		}
	}
	return out
}
