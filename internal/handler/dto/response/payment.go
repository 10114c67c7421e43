package response

import (
	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/usecase/commands"
)

type PaymentValidationResponse struct {
	Valid         bool   `json:"valid"`
	PaymentStatus string `json:"payment_status"`
}

func FromValidation(r *commands.ValidationResult) PaymentValidationResponse {
	return PaymentValidationResponse{Valid: r.Valid, PaymentStatus: r.PaymentStatus}
}

type BookingConfirmationResponse struct {
	Status          string   `json:"status"`
	EventID         string   `json:"event_id"`
	Seats           []string `json:"seats"`
	PaymentIntentID string   `json:"payment_intent_id"`
	TicketIDs       []int64  `json:"ticket_ids,omitempty"`
}

func FromConfirmation(c *payment.Confirmation) BookingConfirmationResponse {
	return BookingConfirmationResponse{
		Status:          c.Status,
		EventID:         c.EventID,
		Seats:           c.Seats,
		PaymentIntentID: c.PaymentIntentID,
		TicketIDs:       c.TicketIDs,
	}
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type PaymentStatusResponse struct {
	Status   string            `json:"status"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

func FromPaymentRecord(r *payment.Record) PaymentStatusResponse {
	md := r.Metadata
	if md == nil {
		md = map[string]string{}
	}
	return PaymentStatusResponse{
		Status:   r.Status,
		Amount:   r.Amount,
		Currency: r.Currency,
		Metadata: md,
	}
}

type RefundResponse struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
}

func FromRefund(r *payment.Refund) RefundResponse {
	return RefundResponse{
		ID:            r.ID,
		PaymentIntent: r.PaymentIntentID,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Status:        r.Status,
	}
}

type PaymentLinkResponse struct {
	PaymentLinkID string `json:"payment_link_id"`
	URL           string `json:"url"`
	Amount        int64  `json:"amount"`
	ExpiresAt     int64  `json:"expires_at"`
}

func FromPaymentLink(r *commands.PaymentLinkResult) PaymentLinkResponse {
	return PaymentLinkResponse{
		PaymentLinkID: r.PaymentLinkID,
		URL:           r.URL,
		Amount:        r.Amount,
		ExpiresAt:     r.ExpiresAt.Unix(),
	}
}
