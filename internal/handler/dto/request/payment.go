package request

import (
	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/pkg/patch"
	"eventgo-ticketing/internal/usecase/commands"
)

type ValidatePaymentRequest struct {
	PaymentIntentID string   `json:"payment_intent_id" binding:"required"`
	EventID         string   `json:"event_id" binding:"required"`
	Seats           []string `json:"seats" binding:"required,min=1"`
}

func (r *ValidatePaymentRequest) ToCommand() commands.ValidatePaymentRequest {
	return commands.ValidatePaymentRequest{
		PaymentIntentID: r.PaymentIntentID,
		EventID:         r.EventID,
		Seats:           r.Seats,
	}
}

type ConfirmPaymentRequest struct {
	ValidatePaymentRequest
	TicketIDs []int64 `json:"ticket_ids" binding:"omitempty,max=100,dive,gt=0"`
}

func (r *ConfirmPaymentRequest) ToCommand() commands.ConfirmBookingRequest {
	return commands.ConfirmBookingRequest{
		ValidatePaymentRequest: r.ValidatePaymentRequest.ToCommand(),
		TicketIDs:              r.TicketIDs,
	}
}

type CreatePaymentIntentRequest struct {
	Amount   int64    `json:"amount" binding:"required,gt=0"`
	Currency string   `json:"currency" binding:"required,len=3"`
	EventID  string   `json:"event_id" binding:"required"`
	Seats    []string `json:"seats" binding:"required,min=1"`
}

func (r *CreatePaymentIntentRequest) ToDomain() payment.IntentRequest {
	return payment.IntentRequest{
		Amount:   r.Amount,
		Currency: r.Currency,
		EventID:  r.EventID,
		Seats:    r.Seats,
	}
}

type RefundRequest struct {
	PaymentIntentID string  `json:"payment_intent_id" binding:"required"`
	Amount          *int64  `json:"amount" binding:"omitempty,gt=0"`
	Reason          *string `json:"reason" binding:"omitempty,oneof=duplicate fraudulent requested_by_customer"`
}

func (r *RefundRequest) ToDomain() payment.RefundRequest {
	return payment.RefundRequest{
		PaymentIntentID: r.PaymentIntentID,
		Amount:          r.Amount,
		Reason:          patch.Coalesce(r.Reason, ""),
	}
}

type CreatePaymentLinkRequest struct {
	Amount      int64             `json:"amount" binding:"required,gt=0"`
	Currency    string            `json:"currency" binding:"required,len=3"`
	Description string            `json:"description" binding:"max=200"`
	Email       string            `json:"email" binding:"required,email"`
	RedirectURL string            `json:"redirect_url" binding:"required,url"`
	Metadata    map[string]string `json:"metadata"`
}

func (r *CreatePaymentLinkRequest) ToCommand() commands.PaymentLinkRequest {
	return commands.PaymentLinkRequest{
		Amount:      r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
		Email:       r.Email,
		RedirectURL: r.RedirectURL,
		Metadata:    r.Metadata,
	}
}
