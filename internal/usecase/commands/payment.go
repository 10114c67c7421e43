package commands

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

const bookingStatusSuccess = "success"

type ValidatePaymentRequest struct {
	PaymentIntentID string
	EventID         string
	Seats           []string
}

type ValidationResult struct {
	Valid         bool
	PaymentStatus string
}

type ConfirmBookingRequest struct {
	ValidatePaymentRequest
	// Optional. When set, the tickets are sold in the same call.
	TicketIDs []int64
}

type PaymentLinkRequest struct {
	Amount      int64
	Currency    string
	Description string
	Email       string
	RedirectURL string
	Metadata    map[string]string
}

type PaymentLinkResult struct {
	PaymentLinkID string
	URL           string
	Amount        int64
	ExpiresAt     time.Time
}

type PaymentCommands interface {
	ValidatePayment(ctx context.Context, req ValidatePaymentRequest) (*ValidationResult, error)
	ConfirmBooking(ctx context.Context, req ConfirmBookingRequest, userID uuid.UUID) (*payment.Confirmation, error)
	CreatePaymentIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error)
	PaymentStatus(ctx context.Context, paymentIntentID string) (*payment.Record, error)
	Refund(ctx context.Context, req payment.RefundRequest) (*payment.Refund, error)
	CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLinkResult, error)
}

type paymentUseCaseImpl struct {
	gateway PaymentGateway
	uow     shared.UnitOfWork
	clock   clock.Clock
	linkTTL time.Duration
	logger  *slog.Logger
}

func NewPaymentUseCase(
	gateway PaymentGateway,
	uow shared.UnitOfWork,
	clk clock.Clock,
	linkTTL time.Duration,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentUseCaseImpl{
		gateway: gateway,
		uow:     uow,
		clock:   clk,
		linkTTL: linkTTL,
		logger:  logger,
	}
}

func (p *paymentUseCaseImpl) ValidatePayment(ctx context.Context, req ValidatePaymentRequest) (*ValidationResult, error) {
	record, err := p.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ValidationResult{Valid: true, PaymentStatus: record.Status}, nil
}

func (p *paymentUseCaseImpl) validate(ctx context.Context, req ValidatePaymentRequest) (*payment.Record, error) {
	if strings.TrimSpace(req.PaymentIntentID) == "" {
		return nil, errs.Mark(errs.New("payment_intent_id is required"), errs.ErrPaymentNotFound)
	}
	record, err := p.gateway.RetrieveIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if err := record.Validate(req.EventID, req.Seats); err != nil {
		p.logger.Info("payment validation failed",
			"payment_intent_id", req.PaymentIntentID,
			"event_id", req.EventID,
			"reason", err.Error())
		return nil, err
	}
	return record, nil
}

// ConfirmBooking authorizes a booking from a validated payment. Supplied tickets are sold under
// the payment intent in one transaction; confirming them again with the same payment succeeds.
func (p *paymentUseCaseImpl) ConfirmBooking(ctx context.Context, req ConfirmBookingRequest, userID uuid.UUID) (*payment.Confirmation, error) {
	if _, err := p.validate(ctx, req.ValidatePaymentRequest); err != nil {
		return nil, err
	}

	confirmation := &payment.Confirmation{
		Status:          bookingStatusSuccess,
		EventID:         req.EventID,
		Seats:           req.Seats,
		PaymentIntentID: req.PaymentIntentID,
	}

	var sel *ticket.Selection
	if len(req.TicketIDs) > 0 {
		if userID == uuid.Nil {
			return nil, errs.ErrUnauthorized
		}
		s, err := ticket.NewSelection(req.TicketIDs)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTicketSelection)
		}
		sel = &s
		confirmation.TicketIDs = s.IDs()
	}

	now := p.clock.Now()
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if sel != nil {
			piID := req.PaymentIntentID
			tickets, sold, err := sellTickets(ctx, tx, *sel, userID, &piID, now)
			if err != nil {
				return err
			}
			if err := matchPaidSeats(tickets, req.EventID, req.Seats); err != nil {
				return err
			}
			// a retry over tickets already sold under this payment confirms nothing new
			if sold == 0 {
				return nil
			}
		}
		return enqueue(ctx, tx, shared.TopicBookingConfirmed, "payment-"+req.PaymentIntentID, bookingEvent{
			EventID:         req.EventID,
			Seats:           req.Seats,
			PaymentIntentID: req.PaymentIntentID,
			TicketIDs:       confirmation.TicketIDs,
			At:              now,
		}, now)
	})
	if err != nil {
		return nil, classifyLedgerErr(err)
	}

	p.logger.Info("booking confirmed",
		"payment_intent_id", req.PaymentIntentID,
		"event_id", req.EventID,
		"ticket_ids", confirmation.TicketIDs)
	return confirmation, nil
}

// matchPaidSeats requires the tickets to cover exactly the seats recorded on the payment.
func matchPaidSeats(tickets []*ticket.Ticket, eventID string, seats []string) error {
	ticketSeats := make([]string, len(tickets))
	for i, t := range tickets {
		if t.EventID() != nil && strconv.FormatInt(*t.EventID(), 10) != eventID {
			return errs.ErrEventMismatch
		}
		ticketSeats[i] = strconv.FormatInt(t.SeatID(), 10)
	}
	if !payment.SameSeats(ticketSeats, seats) {
		return errs.ErrSeatMismatch
	}
	return nil
}

func (p *paymentUseCaseImpl) CreatePaymentIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	if req.Amount <= 0 || strings.TrimSpace(req.Currency) == "" {
		return nil, errs.Mark(errs.New("amount and currency are required"), errs.ErrPaymentRejected)
	}
	return p.gateway.CreateIntent(ctx, req)
}

func (p *paymentUseCaseImpl) PaymentStatus(ctx context.Context, paymentIntentID string) (*payment.Record, error) {
	return p.gateway.RetrieveIntent(ctx, paymentIntentID)
}

func (p *paymentUseCaseImpl) Refund(ctx context.Context, req payment.RefundRequest) (*payment.Refund, error) {
	if strings.TrimSpace(req.PaymentIntentID) == "" {
		return nil, errs.Mark(errs.New("payment_intent_id is required"), errs.ErrPaymentRejected)
	}
	refund, err := p.gateway.Refund(ctx, req)
	if err != nil {
		return nil, err
	}
	p.logger.Info("payment refunded", "payment_intent_id", req.PaymentIntentID, "refund_id", refund.ID)
	return refund, nil
}

// CreatePaymentLink issues a single link, used when a ticket is transferred to another payer.
func (p *paymentUseCaseImpl) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLinkResult, error) {
	if req.Amount <= 0 || strings.TrimSpace(req.Currency) == "" || strings.TrimSpace(req.RedirectURL) == "" {
		return nil, errs.Mark(errs.New("amount, currency and redirect_url are required"), errs.ErrPaymentRejected)
	}
	link, err := p.gateway.CreatePaymentLink(ctx, payment.LinkRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		ProductName: "Payment for " + req.Description,
		Email:       req.Email,
		RedirectURL: req.RedirectURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return &PaymentLinkResult{
		PaymentLinkID: link.ID,
		URL:           link.URL,
		Amount:        req.Amount,
		ExpiresAt:     p.clock.Now().Add(p.linkTTL),
	}, nil
}
