package queries

import (
	"context"

	"eventgo-ticketing/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	defaultTicketLimit = 50
	maxTicketLimit     = 200
)

type TicketReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*TicketView, error)
}

type TicketQueries interface {
	ListMine(ctx context.Context, userID uuid.UUID, limit int) ([]*TicketView, error)
}

type ticketQueriesImpl struct {
	store TicketReadStore
}

func NewTicketQueries(store TicketReadStore) TicketQueries {
	return &ticketQueriesImpl{store: store}
}

func (q *ticketQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, limit int) ([]*TicketView, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	switch {
	case limit <= 0:
		limit = defaultTicketLimit
	case limit > maxTicketLimit:
		limit = maxTicketLimit
	}
	return q.store.ListByUser(ctx, userID, limit)
}
