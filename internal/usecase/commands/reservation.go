package commands

import (
	"context"
	"log/slog"
	"slices"
	"strconv"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReserveRequest struct {
	// Nil validates against every event in the catalog.
	EventID *int64
	SeatIDs []int64
}

type ReserveResult struct {
	TicketIDs []int64
	Released  int
}

type ReservationCommands interface {
	Reserve(ctx context.Context, req ReserveRequest, userID uuid.UUID) (*ReserveResult, error)
}

type reservationUseCaseImpl struct {
	uow     shared.UnitOfWork
	catalog shared.CatalogReader
	factory *ticket.Factory
	logger  *slog.Logger
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	catalog shared.CatalogReader,
	factory *ticket.Factory,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:     uow,
		catalog: catalog,
		factory: factory,
		logger:  logger,
	}
}

// Reserve claims every requested seat or none of them.
func (r *reservationUseCaseImpl) Reserve(ctx context.Context, req ReserveRequest, userID uuid.UUID) (*ReserveResult, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}

	sel, err := ticket.NewSelection(req.SeatIDs)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSeatSelection)
	}

	index, err := r.loadSeatIndex(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if missing := sel.Missing(index.Has); len(missing) > 0 {
		return nil, &errs.InvalidSeatsError{SeatIDs: missing}
	}

	tickets, err := r.factory.NewReservation(index.Specs(sel), userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSeatSelection)
	}

	seatIDs := sel.IDs()
	ttl := r.factory.Services().ReservationTTL
	now := r.factory.Services().Clock.Now()

	var result ReserveResult
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = ReserveResult{}
		repo := tx.Tickets()

		if err := repo.LockSeats(ctx, tx.DB(), seatIDs); err != nil {
			return err
		}

		if ttl > 0 {
			released, err := repo.ReleaseLapsed(ctx, tx.DB(), seatIDs, now, 0)
			if err != nil {
				return err
			}
			if len(released) > 0 {
				result.Released = len(released)
				if err := enqueueReleased(ctx, tx, released, now); err != nil {
					return err
				}
			}
		}

		taken, err := repo.LiveSeatIDs(ctx, tx.DB(), seatIDs)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return &errs.SeatsTakenError{SeatIDs: taken}
		}

		ids, err := repo.CreateReserved(ctx, tx.DB(), tickets)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return &errs.SeatsTakenError{SeatIDs: conflictingSeats(err, seatIDs)}
			}
			return err
		}
		result.TicketIDs = ids

		return enqueue(ctx, tx, shared.TopicTicketsReserved, eventKey(req.EventID, seatIDs[0]), ticketEvent{
			TicketIDs: ids,
			SeatIDs:   seatIDs,
			EventID:   req.EventID,
			UserID:    &userID,
			At:        now,
		}, now)
	})
	if err != nil {
		return nil, classifyLedgerErr(err)
	}

	r.logger.Info("seats reserved",
		"user_id", userID.String(),
		"seat_ids", seatIDs,
		"ticket_ids", result.TicketIDs)
	return &result, nil
}

func (r *reservationUseCaseImpl) loadSeatIndex(ctx context.Context, eventID *int64) (catalog.SeatIndex, error) {
	if eventID != nil {
		event, err := r.catalog.Event(ctx, *eventID)
		if err != nil {
			return catalog.SeatIndex{}, err
		}
		return catalog.NewSeatIndex(*event), nil
	}

	events, err := r.catalog.Events(ctx)
	if err != nil {
		return catalog.SeatIndex{}, err
	}
	return catalog.NewSeatIndex(events...), nil
}

// conflictingSeats names the seat from the unique violation, or every requested seat
// when the database did not say which one collided.
func conflictingSeats(err error, requested []int64) []int64 {
	if column, value, ok := db.UniqueViolationKey(err); ok && column == "seat_id" {
		if id, perr := strconv.ParseInt(value, 10, 64); perr == nil && slices.Contains(requested, id) {
			return []int64{id}
		}
	}
	return requested
}
