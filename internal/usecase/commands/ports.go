package commands

import (
	"context"

	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/usecase/shared"
)

// PaymentGateway is the payment provider. Transport failures and timeouts surface as
// errs.ErrUpstreamUnavailable, unknown ids as errs.ErrPaymentNotFound.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*payment.Record, error)
	Refund(ctx context.Context, req payment.RefundRequest) (*payment.Refund, error)
	CreatePaymentLink(ctx context.Context, req payment.LinkRequest) (*payment.Link, error)
	// LinkPaid reports whether any checkout session of the link completed with payment.
	LinkPaid(ctx context.Context, linkID string) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, msg shared.OutboxMessage) error
	Close() error
}
