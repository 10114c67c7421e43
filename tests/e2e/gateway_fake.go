//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"sync"

	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/pkg/errs"
)

// FakeGateway keeps payment intents and links in memory so flows can be driven without Stripe.
type FakeGateway struct {
	mu      sync.Mutex
	seq     int
	intents map[string]*payment.Record
	paid    map[string]bool
	links   map[string]payment.LinkRequest
}

func NewFakeGateway() *FakeGateway {
	g := &FakeGateway{}
	g.Reset()
	return g
}

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
	g.intents = make(map[string]*payment.Record)
	g.paid = make(map[string]bool)
	g.links = make(map[string]payment.LinkRequest)
}

func (g *FakeGateway) next(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s_%04d", prefix, g.seq)
}

func (g *FakeGateway) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.next("pi")
	g.intents[id] = &payment.Record{
		ID:       id,
		Amount:   req.Amount,
		Currency: req.Currency,
		Status:   "requires_payment_method",
		Metadata: map[string]string{
			payment.MetadataEventID: req.EventID,
			payment.MetadataSeats:   payment.JoinSeats(req.Seats),
		},
	}
	return &payment.Intent{ID: id, ClientSecret: id + "_secret"}, nil
}

// Succeed flips an intent to succeeded, as the card flow would.
func (g *FakeGateway) Succeed(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rec, ok := g.intents[id]; ok {
		rec.Status = payment.StatusSucceeded
	}
}

func (g *FakeGateway) RetrieveIntent(_ context.Context, id string) (*payment.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.intents[id]
	if !ok {
		return nil, errs.ErrPaymentNotFound
	}
	cp := *rec
	return &cp, nil
}

func (g *FakeGateway) Refund(_ context.Context, req payment.RefundRequest) (*payment.Refund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.intents[req.PaymentIntentID]
	if !ok {
		return nil, errs.ErrPaymentNotFound
	}
	amount := rec.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	return &payment.Refund{
		ID:              g.next("re"),
		PaymentIntentID: rec.ID,
		Amount:          amount,
		Currency:        rec.Currency,
		Status:          "succeeded",
	}, nil
}

func (g *FakeGateway) CreatePaymentLink(_ context.Context, req payment.LinkRequest) (*payment.Link, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.next("plink")
	g.links[id] = req
	return &payment.Link{ID: id, URL: "https://pay.example.test/" + id}, nil
}

// PayLink marks a link's checkout as completed.
func (g *FakeGateway) PayLink(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paid[id] = true
}

func (g *FakeGateway) LinkPaid(_ context.Context, linkID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.links[linkID]; !ok {
		return false, errs.ErrPaymentNotFound
	}
	return g.paid[linkID], nil
}
