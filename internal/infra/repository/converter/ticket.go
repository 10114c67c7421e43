package converter

import (
	"time"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// TicketRow matches ticketColumns positionally.
type TicketRow struct {
	ID              int64
	SeatID          int64
	EventID         pgtype.Int8
	UserID          pgtype.UUID
	PriceCents      int64
	Status          string
	PaymentIntentID pgtype.Text
	ReservedAt      time.Time
	ExpiresAt       pgtype.Timestamptz
	SoldAt          pgtype.Timestamptz
}

// TicketInsertParams are the column arrays fed to unnest for a batch insert.
type TicketInsertParams struct {
	SeatIDs    []int64
	EventIDs   []pgtype.Int8
	UserIDs    []pgtype.UUID
	PriceCents []int64
	ReservedAt []time.Time
	ExpiresAt  []pgtype.Timestamptz
}

func TicketsToInsertParams(tickets []*ticket.Ticket) TicketInsertParams {
	p := TicketInsertParams{
		SeatIDs:    make([]int64, len(tickets)),
		EventIDs:   make([]pgtype.Int8, len(tickets)),
		UserIDs:    make([]pgtype.UUID, len(tickets)),
		PriceCents: make([]int64, len(tickets)),
		ReservedAt: make([]time.Time, len(tickets)),
		ExpiresAt:  make([]pgtype.Timestamptz, len(tickets)),
	}
	for i, t := range tickets {
		p.SeatIDs[i] = t.SeatID()
		p.EventIDs[i] = pgconv.Int64PtrToPgtype(t.EventID())
		p.UserIDs[i] = pgconv.UUIDPtrToPgtype(t.UserID())
		p.PriceCents[i] = t.Price().Cents()
		p.ReservedAt[i] = t.ReservedAt()
		p.ExpiresAt[i] = pgconv.TimePtrToPgtype(t.ExpiresAt())
	}
	return p
}

func TicketRowToDomain(row TicketRow) *ticket.Ticket {
	price, err := ticket.NewMoney(row.PriceCents)
	if err != nil {
		price, _ = ticket.NewMoney(0)
	}
	return ticket.ReconstructTicket(
		row.ID,
		row.SeatID,
		pgconv.Int64PtrFromPgtype(row.EventID),
		pgconv.UUIDPtrFromPgtype(row.UserID),
		price,
		ticket.Status(row.Status),
		pgconv.StringPtrFromPgtype(row.PaymentIntentID),
		row.ReservedAt,
		pgconv.TimePtrFromPgtype(row.ExpiresAt),
		pgconv.TimePtrFromPgtype(row.SoldAt),
	)
}

func TicketRowsToDomain(rows []TicketRow) []*ticket.Ticket {
	out := make([]*ticket.Ticket, len(rows))
	for i, row := range rows {
		out[i] = TicketRowToDomain(row)
	}
	return out
}
