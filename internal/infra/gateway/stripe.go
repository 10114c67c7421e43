package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/pkg/errs"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

var errNotConfigured = errs.New("payment gateway is not configured")

// StripeGateway adapts the Stripe API. Every call shares the configured HTTP timeout.
type StripeGateway struct {
	api        *client.API
	configured bool
	logger     *slog.Logger
}

func NewStripeGateway(cfg config.PaymentConfig, logger *slog.Logger) *StripeGateway {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	backendCfg := func(base string) *stripe.BackendConfig {
		c := &stripe.BackendConfig{
			HTTPClient:        httpClient,
			MaxNetworkRetries: stripe.Int64(0),
		}
		if base != "" {
			c.URL = stripe.String(base)
		}
		return c
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg(cfg.APIBase)),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg("")),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg("")),
	})

	return &StripeGateway{
		api:        api,
		configured: cfg.SecretKey != "",
		logger:     logger,
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	if !g.configured {
		return nil, errs.Mark(errNotConfigured, errs.ErrUpstreamUnavailable)
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx
	params.AddMetadata(payment.MetadataEventID, req.EventID)
	params.AddMetadata(payment.MetadataSeats, payment.JoinSeats(req.Seats))

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, g.mapErr("create payment intent", err)
	}
	return &payment.Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*payment.Record, error) {
	if !g.configured {
		return nil, errs.Mark(errNotConfigured, errs.ErrUpstreamUnavailable)
	}
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, g.mapErr("retrieve payment intent", err)
	}
	return &payment.Record{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
		Status:   string(pi.Status),
		Metadata: pi.Metadata,
	}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, req payment.RefundRequest) (*payment.Refund, error) {
	if !g.configured {
		return nil, errs.Mark(errNotConfigured, errs.ErrUpstreamUnavailable)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.PaymentIntentID),
	}
	params.Context = ctx
	if req.Amount != nil {
		params.Amount = stripe.Int64(*req.Amount)
	}
	if req.Reason != "" {
		params.Reason = stripe.String(req.Reason)
	}

	r, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, g.mapErr("create refund", err)
	}
	return &payment.Refund{
		ID:              r.ID,
		PaymentIntentID: req.PaymentIntentID,
		Amount:          r.Amount,
		Currency:        string(r.Currency),
		Status:          string(r.Status),
	}, nil
}

// CreatePaymentLink creates a one-off price and a link selling it once.
func (g *StripeGateway) CreatePaymentLink(ctx context.Context, req payment.LinkRequest) (*payment.Link, error) {
	if !g.configured {
		return nil, errs.Mark(errNotConfigured, errs.ErrUpstreamUnavailable)
	}
	priceParams := &stripe.PriceParams{
		UnitAmount: stripe.Int64(req.Amount),
		Currency:   stripe.String(req.Currency),
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(req.ProductName),
		},
	}
	priceParams.Context = ctx

	price, err := g.api.Prices.New(priceParams)
	if err != nil {
		return nil, g.mapErr("create price", err)
	}

	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{Price: stripe.String(price.ID), Quantity: stripe.Int64(1)},
		},
		AfterCompletion: &stripe.PaymentLinkAfterCompletionParams{
			Type: stripe.String(string(stripe.PaymentLinkAfterCompletionTypeRedirect)),
			Redirect: &stripe.PaymentLinkAfterCompletionRedirectParams{
				URL: stripe.String(req.RedirectURL),
			},
		},
	}
	linkParams.Context = ctx
	for k, v := range req.Metadata {
		linkParams.AddMetadata(k, v)
	}

	link, err := g.api.PaymentLinks.New(linkParams)
	if err != nil {
		return nil, g.mapErr("create payment link", err)
	}
	return &payment.Link{ID: link.ID, URL: link.URL}, nil
}

func (g *StripeGateway) LinkPaid(ctx context.Context, linkID string) (bool, error) {
	if !g.configured {
		return false, errs.Mark(errNotConfigured, errs.ErrUpstreamUnavailable)
	}
	params := &stripe.CheckoutSessionListParams{
		PaymentLink: stripe.String(linkID),
	}
	params.Context = ctx

	it := g.api.CheckoutSessions.List(params)
	for it.Next() {
		if it.CheckoutSession().PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			return true, nil
		}
	}
	if err := it.Err(); err != nil {
		return false, g.mapErr("list checkout sessions", err)
	}
	return false, nil
}

// mapErr: no API response means the provider was unreachable; a missing resource is
// ErrPaymentNotFound; any other API error is a rejected request.
func (g *StripeGateway) mapErr(op string, err error) error {
	var se *stripe.Error
	if !errors.As(err, &se) {
		g.logger.Warn("payment gateway unreachable", "op", op, "error", err.Error())
		return errs.Mark(errs.Wrap(err, op), errs.ErrUpstreamUnavailable)
	}

	g.logger.Info("payment gateway rejected request",
		"op", op,
		"status", se.HTTPStatusCode,
		"code", string(se.Code),
		"request_id", se.RequestID)

	switch {
	case se.HTTPStatusCode == http.StatusNotFound || se.Code == stripe.ErrorCodeResourceMissing:
		return errs.Mark(errs.Wrap(err, op), errs.ErrPaymentNotFound)
	case se.HTTPStatusCode >= http.StatusInternalServerError || se.HTTPStatusCode == http.StatusTooManyRequests:
		return errs.Mark(errs.Wrap(err, op), errs.ErrUpstreamUnavailable)
	default:
		return errs.Mark(errs.Wrap(err, op), errs.ErrPaymentRejected)
	}
}
