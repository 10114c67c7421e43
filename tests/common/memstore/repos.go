//go:build unit || e2e

package memstore

import (
	"context"
	"slices"
	"time"

	"eventgo-ticketing/internal/domain/split"
	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra"
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

type ticketRepo struct {
	st *state
}

func (r ticketRepo) LockSeats(_ context.Context, _ db.DBTX, _ []int64) error {
	return r.st.fail("LockSeats")
}

func (r ticketRepo) ReleaseLapsed(_ context.Context, _ db.DBTX, seatIDs []int64, now time.Time, limit int) ([]shared.ReleasedTicket, error) {
	if err := r.st.fail("ReleaseLapsed"); err != nil {
		return nil, err
	}
	var released []shared.ReleasedTicket
	for _, id := range r.sortedIDs() {
		t := r.st.tickets[id]
		if t.Status != ticket.StatusReserved || t.ExpiresAt == nil || t.ExpiresAt.After(now) {
			continue
		}
		if seatIDs != nil && !slices.Contains(seatIDs, t.SeatID) {
			continue
		}
		if limit > 0 && len(released) >= limit {
			break
		}
		t.Status = ticket.StatusReleased
		r.st.tickets[id] = t
		released = append(released, shared.ReleasedTicket{TicketID: t.ID, SeatID: t.SeatID, EventID: t.EventID})
	}
	return released, nil
}

func (r ticketRepo) LiveSeatIDs(_ context.Context, _ db.DBTX, seatIDs []int64) ([]int64, error) {
	if err := r.st.fail("LiveSeatIDs"); err != nil {
		return nil, err
	}
	var live []int64
	for _, t := range r.st.tickets {
		if t.Status.IsLive() && slices.Contains(seatIDs, t.SeatID) {
			live = append(live, t.SeatID)
		}
	}
	slices.Sort(live)
	return slices.Compact(live), nil
}

func (r ticketRepo) CreateReserved(_ context.Context, _ db.DBTX, tickets []*ticket.Ticket) ([]int64, error) {
	if err := r.st.fail("CreateReserved"); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		for _, existing := range r.st.tickets {
			if existing.SeatID == t.SeatID() && existing.Status.IsLive() {
				return nil, infra.RepositoryError{Kind: infra.KindDuplicateKey}
			}
		}
		r.st.nextID++
		r.st.tickets[r.st.nextID] = TicketRow{
			ID:         r.st.nextID,
			SeatID:     t.SeatID(),
			EventID:    t.EventID(),
			UserID:     t.UserID(),
			PriceCents: t.Price().Cents(),
			Status:     ticket.StatusReserved,
			ReservedAt: t.ReservedAt(),
			ExpiresAt:  t.ExpiresAt(),
		}
		ids = append(ids, r.st.nextID)
	}
	return ids, nil
}

func (r ticketRepo) FindByIDsForUpdate(_ context.Context, _ db.DBTX, ids []int64) ([]*ticket.Ticket, error) {
	if err := r.st.fail("FindByIDsForUpdate"); err != nil {
		return nil, err
	}
	var out []*ticket.Ticket
	for _, id := range r.sortedIDs() {
		if !slices.Contains(ids, id) {
			continue
		}
		t := r.st.tickets[id]
		price, _ := ticket.NewMoney(t.PriceCents)
		out = append(out, ticket.ReconstructTicket(
			t.ID, t.SeatID, t.EventID, t.UserID, price, t.Status,
			t.PaymentIntentID, t.ReservedAt, t.ExpiresAt, t.SoldAt,
		))
	}
	return out, nil
}

func (r ticketRepo) MarkSold(_ context.Context, _ db.DBTX, ids []int64, paymentIntentID *string, soldAt time.Time) (int64, error) {
	if err := r.st.fail("MarkSold"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		t, ok := r.st.tickets[id]
		if !ok || t.Status != ticket.StatusReserved {
			continue
		}
		at := soldAt
		t.Status = ticket.StatusSold
		t.SoldAt = &at
		t.ExpiresAt = nil
		if paymentIntentID != nil {
			pi := *paymentIntentID
			t.PaymentIntentID = &pi
		}
		r.st.tickets[id] = t
		n++
	}
	return n, nil
}

func (r ticketRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.st.tickets))
	for id := range r.st.tickets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type splitRepo struct {
	s *Store
}

func (r splitRepo) Create(_ context.Context, _ db.DBTX, sp *split.SplitPayment) error {
	if err := r.s.st.fail("SplitCreate"); err != nil {
		return err
	}
	if _, ok := r.s.st.splits[sp.ID]; ok {
		return infra.RepositoryError{Kind: infra.KindDuplicateKey}
	}
	c := *sp
	c.Links = slices.Clone(sp.Links)
	r.s.st.splits[sp.ID] = c
	return nil
}

func (r splitRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*split.SplitPayment, error) {
	sp, ok := r.s.st.splits[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.s.logger, infra.KindNotFound, "split payment not found", nil)
	}
	sp.Links = slices.Clone(sp.Links)
	return &sp, nil
}

func (r splitRepo) UpdateLinks(_ context.Context, _ db.DBTX, links []split.Link) error {
	if err := r.s.st.fail("UpdateLinks"); err != nil {
		return err
	}
	for id, sp := range r.s.st.splits {
		for i := range sp.Links {
			for _, l := range links {
				if sp.Links[i].PaymentLinkID == l.PaymentLinkID {
					sp.Links[i] = l
				}
			}
		}
		r.s.st.splits[id] = sp
	}
	return nil
}

type outboxRepo struct {
	st *state
}

func (r outboxRepo) Enqueue(_ context.Context, _ db.DBTX, msg shared.OutboxMessage) error {
	if err := r.st.fail("Enqueue"); err != nil {
		return err
	}
	r.st.nextMsg++
	msg.ID = r.st.nextMsg
	r.st.outbox = append(r.st.outbox, OutboxRow{OutboxMessage: msg})
	return nil
}

func (r outboxRepo) ClaimPending(_ context.Context, _ db.DBTX, limit, maxAttempts int) ([]shared.OutboxMessage, error) {
	if err := r.st.fail("ClaimPending"); err != nil {
		return nil, err
	}
	var out []shared.OutboxMessage
	for _, m := range r.st.outbox {
		if m.Published || m.Attempts >= maxAttempts {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, m.OutboxMessage)
	}
	return out, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, _ db.DBTX, id int64, _ time.Time) error {
	if err := r.st.fail("MarkPublished"); err != nil {
		return err
	}
	for i := range r.st.outbox {
		if r.st.outbox[i].ID == id {
			r.st.outbox[i].Published = true
			r.st.outbox[i].LastError = ""
		}
	}
	return nil
}

func (r outboxRepo) MarkFailed(_ context.Context, _ db.DBTX, id int64, reason string) error {
	for i := range r.st.outbox {
		if r.st.outbox[i].ID == id {
			r.st.outbox[i].Attempts++
			r.st.outbox[i].LastError = reason
		}
	}
	return nil
}
