package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

type PurchaseCommands interface {
	Purchase(ctx context.Context, ticketIDs []int64, userID uuid.UUID) error
}

type purchaseUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewPurchaseUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) PurchaseCommands {
	return &purchaseUseCaseImpl{
		uow:    uow,
		clock:  clk,
		logger: logger,
	}
}

// Purchase moves the whole batch from RESERVED to SOLD or leaves every ticket untouched.
func (p *purchaseUseCaseImpl) Purchase(ctx context.Context, ticketIDs []int64, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errs.ErrUnauthorized
	}
	sel, err := ticket.NewSelection(ticketIDs)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidTicketSelection)
	}

	now := p.clock.Now()
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, _, err := sellTickets(ctx, tx, sel, userID, nil, now)
		return err
	})
	if err != nil {
		return classifyLedgerErr(err)
	}

	p.logger.Info("tickets sold", "user_id", userID.String(), "ticket_ids", sel.IDs())
	return nil
}

// sellTickets locks the selected tickets, checks each is purchasable by actor and marks them SOLD.
// With a payment intent id, tickets already sold under that payment are accepted as is.
// The count is the number of tickets this call transitioned.
func sellTickets(
	ctx context.Context,
	tx shared.Tx,
	sel ticket.Selection,
	actor uuid.UUID,
	paymentIntentID *string,
	now time.Time,
) ([]*ticket.Ticket, int, error) {
	repo := tx.Tickets()

	tickets, err := repo.FindByIDsForUpdate(ctx, tx.DB(), sel.IDs())
	if err != nil {
		return nil, 0, err
	}

	found := make(map[int64]struct{}, len(tickets))
	for _, t := range tickets {
		found[t.ID()] = struct{}{}
	}
	if missing := sel.Missing(func(id int64) bool { _, ok := found[id]; return ok }); len(missing) > 0 {
		return nil, 0, &errs.MissingTicketsError{TicketIDs: missing}
	}

	toSell := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		if paymentIntentID != nil && t.SoldWith(*paymentIntentID) {
			continue
		}
		if err := t.CheckPurchasable(actor, now); err != nil {
			return nil, 0, err
		}
		toSell = append(toSell, t.ID())
	}
	if len(toSell) == 0 {
		return tickets, 0, nil
	}

	n, err := repo.MarkSold(ctx, tx.DB(), toSell, paymentIntentID, now)
	if err != nil {
		return nil, 0, err
	}
	if n != int64(len(toSell)) {
		// Rows are locked above, so this only happens if the ledger changed underneath us.
		return nil, 0, errs.Newf("marked %d of %d tickets sold", n, len(toSell))
	}

	var piID string
	if paymentIntentID != nil {
		piID = *paymentIntentID
	}
	if err := enqueue(ctx, tx, shared.TopicTicketsSold, eventKey(tickets[0].EventID(), tickets[0].SeatID()), ticketEvent{
		TicketIDs: toSell,
		EventID:   tickets[0].EventID(),
		UserID:    &actor,
		PaymentID: piID,
		At:        now,
	}, now); err != nil {
		return nil, 0, err
	}
	return tickets, len(toSell), nil
}

var ledgerErrors = []error{
	errs.ErrSeatsAlreadyTaken,
	errs.ErrInvalidTicketSelection,
	errs.ErrTicketNotReserved,
	errs.ErrTicketNotOwned,
	errs.ErrSeatMismatch,
	errs.ErrEventMismatch,
}

// classifyLedgerErr passes business errors through and marks everything else as a database failure.
func classifyLedgerErr(err error) error {
	for _, target := range ledgerErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
