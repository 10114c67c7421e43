package commands

import (
	"context"
	"log/slog"
	"time"

	"eventgo-ticketing/internal/domain/payment"
	"eventgo-ticketing/internal/domain/split"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

// SplitStatusResult is a split payment after the latest gateway observations were applied.
type SplitStatusResult struct {
	SplitPayment *split.SplitPayment
	Status       split.Status
	AmountPaid   int64
}

type SplitPaymentCommands interface {
	Create(ctx context.Context, req split.Request) (*split.SplitPayment, error)
	Status(ctx context.Context, id uuid.UUID) (*SplitStatusResult, error)
}

type splitPaymentUseCaseImpl struct {
	gateway PaymentGateway
	uow     shared.UnitOfWork
	clock   clock.Clock
	linkTTL time.Duration
	logger  *slog.Logger
}

func NewSplitPaymentUseCase(
	gateway PaymentGateway,
	uow shared.UnitOfWork,
	clk clock.Clock,
	linkTTL time.Duration,
	logger *slog.Logger,
) SplitPaymentCommands {
	return &splitPaymentUseCaseImpl{
		gateway: gateway,
		uow:     uow,
		clock:   clk,
		linkTTL: linkTTL,
		logger:  logger,
	}
}

// Create issues one payment link per participant and stores the split with its links.
func (s *splitPaymentUseCaseImpl) Create(ctx context.Context, req split.Request) (*split.SplitPayment, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSplitRequest)
	}

	now := s.clock.Now()
	sp := &split.SplitPayment{
		ID:            uuid.New(),
		EventID:       req.EventID,
		ReservationID: req.ReservationID,
		Currency:      req.Currency,
		Description:   req.Description,
		TotalAmount:   req.TotalAmount(),
		CreatedAt:     now,
		Links:         make([]split.Link, 0, len(req.Participants)),
	}
	expiresAt := now.Add(s.linkTTL)

	for _, p := range req.Participants {
		link, err := s.gateway.CreatePaymentLink(ctx, payment.LinkRequest{
			Amount:      p.Amount,
			Currency:    req.Currency,
			ProductName: req.ProductName(p),
			Email:       p.Email,
			RedirectURL: p.RedirectURL,
			Metadata:    req.Metadata(sp.ID, p),
		})
		if err != nil {
			// Links already issued stay unreferenced at the provider and lapse on their own.
			s.logger.Warn("split payment aborted",
				"split_payment_id", sp.ID.String(),
				"links_created", len(sp.Links),
				"error", err.Error())
			return nil, err
		}
		sp.Links = append(sp.Links, split.Link{
			PaymentLinkID:    link.ID,
			URL:              link.URL,
			ParticipantEmail: p.Email,
			UserID:           p.UserID,
			TicketID:         p.TicketID,
			Amount:           p.Amount,
			Status:           split.LinkUnpaid,
			ExpiresAt:        expiresAt,
		})
	}

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.SplitPayments().Create(ctx, tx.DB(), sp); err != nil {
			return err
		}
		return enqueue(ctx, tx, shared.TopicSplitPaymentCreated, sp.ID.String(), splitEvent{
			SplitPaymentID: sp.ID,
			EventID:        sp.EventID,
			ReservationID:  sp.ReservationID,
			TotalAmount:    sp.TotalAmount,
			Links:          len(sp.Links),
			At:             now,
		}, now)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	s.logger.Info("split payment created",
		"split_payment_id", sp.ID.String(),
		"event_id", sp.EventID,
		"participants", len(sp.Links))
	return sp, nil
}

// Status polls the gateway for links that can still change, then applies the observations
// under row locks so concurrent pollers converge on the same state.
func (s *splitPaymentUseCaseImpl) Status(ctx context.Context, id uuid.UUID) (*SplitStatusResult, error) {
	current, err := s.uow.CommandReads().SplitPaymentByID(ctx, id)
	if err != nil {
		return nil, mapSplitErr(err)
	}

	paid := make(map[string]bool, len(current.Links))
	for _, linkID := range current.PendingLinkIDs() {
		ok, err := s.gateway.LinkPaid(ctx, linkID)
		if err != nil {
			return nil, err
		}
		paid[linkID] = ok
	}

	now := s.clock.Now()
	var result *SplitStatusResult
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sp, err := tx.SplitPayments().FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		before := sp.Status(now)

		var changed []split.Link
		for i := range sp.Links {
			link := &sp.Links[i]
			if link.Observe(paid[link.PaymentLinkID], now) {
				changed = append(changed, *link)
			}
		}
		if len(changed) > 0 {
			if err := tx.SplitPayments().UpdateLinks(ctx, tx.DB(), changed); err != nil {
				return err
			}
		}

		status := sp.Status(now)
		if status == split.StatusCompleted && before != split.StatusCompleted {
			if err := enqueue(ctx, tx, shared.TopicSplitPaymentSettled, sp.ID.String(), splitEvent{
				SplitPaymentID: sp.ID,
				EventID:        sp.EventID,
				ReservationID:  sp.ReservationID,
				TotalAmount:    sp.TotalAmount,
				AmountPaid:     sp.AmountPaid(),
				Links:          len(sp.Links),
				At:             now,
			}, now); err != nil {
				return err
			}
		}

		result = &SplitStatusResult{
			SplitPayment: sp,
			Status:       status,
			AmountPaid:   sp.AmountPaid(),
		}
		return nil
	})
	if err != nil {
		return nil, mapSplitErr(err)
	}
	return result, nil
}

func mapSplitErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrSplitPaymentNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
