package queries

import (
	"context"
	"time"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/usecase/shared"
)

type SeatReadStore interface {
	// BookedSeatIDs returns seats of the event held by an unexpired reservation or a sale.
	BookedSeatIDs(ctx context.Context, eventID int64, now time.Time) ([]int64, error)
	// LiveStatuses maps each seat with a live, unexpired ticket to that ticket's status.
	LiveStatuses(ctx context.Context, seatIDs []int64, now time.Time) (map[int64]ticket.Status, error)
}

type SeatQueries interface {
	BookedSeats(ctx context.Context, eventID int64) ([]int64, error)
	SeatsWithStatus(ctx context.Context, eventID int64) ([]SeatView, error)
}

type seatQueriesImpl struct {
	store   SeatReadStore
	catalog shared.CatalogReader
	pricing ticket.PriceCalculator
	clock   clock.Clock
}

func NewSeatQueries(store SeatReadStore, catalog shared.CatalogReader, pricing ticket.PriceCalculator, clk clock.Clock) SeatQueries {
	return &seatQueriesImpl{
		store:   store,
		catalog: catalog,
		pricing: pricing,
		clock:   clk,
	}
}

func (q *seatQueriesImpl) BookedSeats(ctx context.Context, eventID int64) ([]int64, error) {
	ids, err := q.store.BookedSeatIDs(ctx, eventID, q.clock.Now())
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// SeatsWithStatus lists the catalog seats of an event in id order; seats without a live ticket are AVAILABLE.
func (q *seatQueriesImpl) SeatsWithStatus(ctx context.Context, eventID int64) ([]SeatView, error) {
	event, err := q.catalog.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	seats := catalog.NewSeatIndex(*event).Seats()
	if len(seats) == 0 {
		return []SeatView{}, nil
	}

	ids := make([]int64, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
	}
	statuses, err := q.store.LiveStatuses(ctx, ids, q.clock.Now())
	if err != nil {
		return nil, err
	}

	views := make([]SeatView, len(seats))
	for i, s := range seats {
		status := ticket.SeatAvailable
		if st, ok := statuses[s.ID]; ok {
			status = st.SeatStatus()
		}
		views[i] = SeatView{
			ID:         s.ID,
			EventID:    s.EventID,
			SeatNumber: s.SeatNumber,
			Category:   s.Category,
			Status:     string(status),
			PriceCents: q.pricing.PriceCents(s.Spec()),
		}
	}
	return views, nil
}
