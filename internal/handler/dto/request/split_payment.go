package request

import (
	"eventgo-ticketing/internal/domain/split"

	"github.com/jinzhu/copier"
)

type SplitParticipantRequest struct {
	Email       string `json:"email" binding:"required,email"`
	UserID      string `json:"user_id"`
	TicketID    string `json:"ticket_id"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	RedirectURL string `json:"redirect_url" binding:"required,url"`
}

type CreateSplitPaymentRequest struct {
	EventID       string                    `json:"event_id" binding:"required"`
	ReservationID string                    `json:"reservation_id"`
	Currency      string                    `json:"currency" binding:"required,len=3"`
	Description   string                    `json:"description" binding:"max=200"`
	Participants  []SplitParticipantRequest `json:"participants" binding:"required,min=1,max=20,dive"`
}

func (r *CreateSplitPaymentRequest) ToDomain() (split.Request, error) {
	var req split.Request
	if err := copier.Copy(&req, r); err != nil {
		return split.Request{}, err
	}
	return req, nil
}
