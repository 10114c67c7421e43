//go:build unit || e2e

package builder

import (
	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/domain/split"
)

type PaymentRecordBuilder struct {
	record payment.Record
}

// NewPaymentRecordBuilder starts from a succeeded intent for event 7, seats 1 and 2.
func NewPaymentRecordBuilder() *PaymentRecordBuilder {
	return &PaymentRecordBuilder{record: payment.Record{
		ID:       "pi_test_123",
		Amount:   10000,
		Currency: "usd",
		Status:   payment.StatusSucceeded,
		Metadata: map[string]string{
			payment.MetadataEventID: "7",
			payment.MetadataSeats:   "1,2",
		},
	}}
}

func (b *PaymentRecordBuilder) WithID(id string) *PaymentRecordBuilder {
	b.record.ID = id
	return b
}

func (b *PaymentRecordBuilder) WithStatus(status string) *PaymentRecordBuilder {
	b.record.Status = status
	return b
}

func (b *PaymentRecordBuilder) WithEvent(eventID string) *PaymentRecordBuilder {
	b.record.Metadata[payment.MetadataEventID] = eventID
	return b
}

func (b *PaymentRecordBuilder) WithSeats(joined string) *PaymentRecordBuilder {
	b.record.Metadata[payment.MetadataSeats] = joined
	return b
}

func (b *PaymentRecordBuilder) Build() *payment.Record {
	r := b.record
	meta := make(map[string]string, len(r.Metadata))
	for k, v := range r.Metadata {
		meta[k] = v
	}
	r.Metadata = meta
	return &r
}

// NewSplitRequest returns a valid two-participant request.
func NewSplitRequest() split.Request {
	return split.Request{
		EventID:       "7",
		ReservationID: "res-1",
		Currency:      "usd",
		Description:   "Concert",
		Participants: []split.Participant{
			{Email: "alice@example.com", UserID: "u-1", TicketID: "10", Amount: 2500, RedirectURL: "https://example.com/done"},
			{Email: "bob@example.com", UserID: "u-2", TicketID: "11", Amount: 3500, RedirectURL: "https://example.com/done"},
		},
	}
}
