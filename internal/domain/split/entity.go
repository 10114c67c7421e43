package split

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoParticipants     = errors.New("at least one participant is required")
	ErrInvalidAmount      = errors.New("participant amount must be positive")
	ErrInvalidEmail       = errors.New("participant email is invalid")
	ErrMissingCurrency    = errors.New("currency is required")
	ErrMissingEventID     = errors.New("event id is required")
	ErrMissingRedirectURL = errors.New("participant redirect url is required")
)

type Participant struct {
	Email       string
	UserID      string
	TicketID    string
	Amount      int64
	RedirectURL string
}

type Request struct {
	EventID       string
	ReservationID string
	Currency      string
	Description   string
	Participants  []Participant
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.EventID) == "" {
		return ErrMissingEventID
	}
	if strings.TrimSpace(r.Currency) == "" {
		return ErrMissingCurrency
	}
	if len(r.Participants) == 0 {
		return ErrNoParticipants
	}
	for i, p := range r.Participants {
		if p.Amount <= 0 {
			return fmt.Errorf("participant %d: %w", i, ErrInvalidAmount)
		}
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return fmt.Errorf("participant %d: %w", i, ErrInvalidEmail)
		}
		if strings.TrimSpace(p.RedirectURL) == "" {
			return fmt.Errorf("participant %d: %w", i, ErrMissingRedirectURL)
		}
	}
	return nil
}

func (r Request) TotalAmount() int64 {
	var total int64
	for _, p := range r.Participants {
		total += p.Amount
	}
	return total
}

// Metadata is attached to the participant's payment link so the payment can be traced back.
func (r Request) Metadata(splitID uuid.UUID, p Participant) map[string]string {
	return map[string]string{
		"split_payment_id":  splitID.String(),
		"reservation_id":    r.ReservationID,
		"event_id":          r.EventID,
		"ticket_id":         p.TicketID,
		"participant_email": p.Email,
		"user_id":           p.UserID,
		"description":       "Your ticket is " + p.TicketID,
	}
}

func (r Request) ProductName(p Participant) string {
	return fmt.Sprintf("Split payment for %s - %s", r.Description, p.Email)
}

type Link struct {
	PaymentLinkID    string
	URL              string
	ParticipantEmail string
	UserID           string
	TicketID         string
	Amount           int64
	Status           LinkStatus
	ExpiresAt        time.Time
	PaidAt           *time.Time
}

// Observe applies a gateway observation. Paid is terminal; an unpaid link past its
// expiry becomes expired, and an expired link may still turn paid if a late payment lands.
// It reports whether the link changed.
func (l *Link) Observe(paid bool, now time.Time) bool {
	if l.Status == LinkPaid {
		return false
	}
	if paid {
		l.Status = LinkPaid
		at := now
		l.PaidAt = &at
		return true
	}
	if l.Status == LinkUnpaid && !now.Before(l.ExpiresAt) {
		l.Status = LinkExpired
		return true
	}
	return false
}

type SplitPayment struct {
	ID            uuid.UUID
	EventID       string
	ReservationID string
	Currency      string
	Description   string
	TotalAmount   int64
	CreatedAt     time.Time
	Links         []Link
}

func (s *SplitPayment) PaidCount() int {
	n := 0
	for _, l := range s.Links {
		if l.Status == LinkPaid {
			n++
		}
	}
	return n
}

func (s *SplitPayment) AmountPaid() int64 {
	var total int64
	for _, l := range s.Links {
		if l.Status == LinkPaid {
			total += l.Amount
		}
	}
	return total
}

// Status aggregates link states. With nothing paid, the split is expired once the first
// link's expiry has passed.
func (s *SplitPayment) Status(now time.Time) Status {
	paid := s.PaidCount()
	switch {
	case len(s.Links) == 0:
		return StatusPending
	case paid == 0 && !now.Before(s.Links[0].ExpiresAt):
		return StatusExpired
	case paid == len(s.Links):
		return StatusCompleted
	case paid > 0:
		return StatusPartiallyPaid
	default:
		return StatusPending
	}
}

// PendingLinkIDs lists links whose payment state can still change.
func (s *SplitPayment) PendingLinkIDs() []string {
	var ids []string
	for _, l := range s.Links {
		if l.Status != LinkPaid {
			ids = append(ids, l.PaymentLinkID)
		}
	}
	return ids
}
