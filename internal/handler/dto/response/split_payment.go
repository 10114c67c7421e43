package response

import (
	"eventgo-ticketing/internal/domain/split"
	"eventgo-ticketing/internal/usecase/commands"
)

type SplitLinkResponse struct {
	PaymentLinkID    string `json:"payment_link_id"`
	URL              string `json:"url"`
	Email            string `json:"email"`
	ParticipantEmail string `json:"participant_email"`
	UserID           string `json:"user_id"`
	TicketID         string `json:"ticket_id"`
	Amount           int64  `json:"amount"`
	Status           string `json:"status"`
	ExpiresAt        int64  `json:"expires_at"`
}

type SplitPaymentResponse struct {
	SplitPaymentID string              `json:"split_payment_id"`
	PaymentLinks   []SplitLinkResponse `json:"payment_links"`
	TotalAmount    int64               `json:"total_amount"`
	EventID        string              `json:"event_id"`
}

func FromSplitPayment(sp *split.SplitPayment) SplitPaymentResponse {
	return SplitPaymentResponse{
		SplitPaymentID: sp.ID.String(),
		PaymentLinks:   fromLinks(sp.Links),
		TotalAmount:    sp.TotalAmount,
		EventID:        sp.EventID,
	}
}

type SplitPaymentStatusResponse struct {
	SplitPaymentID string              `json:"split_payment_id"`
	EventID        string              `json:"event_id"`
	ReservationID  string              `json:"reservation_id,omitempty"`
	TotalAmount    int64               `json:"total_amount"`
	Status         string              `json:"status"`
	PaymentLinks   []SplitLinkResponse `json:"payment_links"`
	AmountPaid     int64               `json:"amount_paid"`
	AmountPending  int64               `json:"amount_pending"`
}

func FromSplitStatus(r *commands.SplitStatusResult) SplitPaymentStatusResponse {
	sp := r.SplitPayment
	return SplitPaymentStatusResponse{
		SplitPaymentID: sp.ID.String(),
		EventID:        sp.EventID,
		ReservationID:  sp.ReservationID,
		TotalAmount:    sp.TotalAmount,
		Status:         string(r.Status),
		PaymentLinks:   fromLinks(sp.Links),
		AmountPaid:     r.AmountPaid,
		AmountPending:  sp.TotalAmount - r.AmountPaid,
	}
}

func fromLinks(links []split.Link) []SplitLinkResponse {
	out := make([]SplitLinkResponse, len(links))
	for i, l := range links {
		out[i] = SplitLinkResponse{
			PaymentLinkID:    l.PaymentLinkID,
			URL:              l.URL,
			Email:            l.ParticipantEmail,
			ParticipantEmail: l.ParticipantEmail,
			UserID:           l.UserID,
			TicketID:         l.TicketID,
			Amount:           l.Amount,
			Status:           string(l.Status),
			ExpiresAt:        l.ExpiresAt.Unix(),
		}
	}
	return out
}
