package payment

import (
	"slices"
	"strings"

	"eventgo-ticketing/internal/pkg/errs"
)

const (
	StatusSucceeded = "succeeded"

	MetadataEventID = "event_id"
	MetadataSeats   = "seats"
)

// Record is the gateway's view of a payment intent.
type Record struct {
	ID       string
	Amount   int64
	Currency string
	Status   string
	Metadata map[string]string
}

func (r *Record) EventID() string {
	return r.Metadata[MetadataEventID]
}

func (r *Record) Seats() []string {
	return ParseSeats(r.Metadata[MetadataSeats])
}

// Validate checks status, then event, then seats. The first failure wins.
func (r *Record) Validate(eventID string, seats []string) error {
	if r.Status != StatusSucceeded {
		return errs.ErrPaymentNotSucceeded
	}
	if r.EventID() != eventID {
		return errs.ErrEventMismatch
	}
	if !SameSeats(r.Seats(), seats) {
		return errs.ErrSeatMismatch
	}
	return nil
}

// ParseSeats splits the comma-joined metadata form.
func ParseSeats(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	seats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			seats = append(seats, p)
		}
	}
	return seats
}

func JoinSeats(seats []string) string {
	return strings.Join(seats, ",")
}

// SameSeats compares two seat lists as multisets; order is irrelevant.
func SameSeats(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := normalize(a)
	y := normalize(b)
	return slices.Equal(x, y)
}

func normalize(seats []string) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = strings.TrimSpace(s)
	}
	slices.Sort(out)
	return out
}

// Confirmation is returned once a booking is authorized by a validated payment.
type Confirmation struct {
	Status          string
	EventID         string
	Seats           []string
	PaymentIntentID string
	TicketIDs       []int64
}

type Intent struct {
	ID           string
	ClientSecret string
}

type IntentRequest struct {
	Amount   int64
	Currency string
	EventID  string
	Seats    []string
}

type RefundRequest struct {
	PaymentIntentID string
	Amount          *int64
	Reason          string
}

type Refund struct {
	ID              string
	PaymentIntentID string
	Amount          int64
	Currency        string
	Status          string
}

type LinkRequest struct {
	Amount      int64
	Currency    string
	ProductName string
	Email       string
	RedirectURL string
	Metadata    map[string]string
}

type Link struct {
	ID  string
	URL string
}
