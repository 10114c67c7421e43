package catalog

import (
	"slices"

	"eventgo-ticketing/internal/domain/ticket"
)

// Seat is owned by the events service; this service never mutates it.
type Seat struct {
	ID         int64  `json:"id"`
	EventID    int64  `json:"event_id"`
	SeatNumber string `json:"seat_number"`
	Category   string `json:"category"`
}

type Event struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Seats []Seat `json:"seats"`
}

func (s Seat) Spec() ticket.SeatSpec {
	return ticket.SeatSpec{
		SeatID:   s.ID,
		EventID:  s.EventID,
		Category: s.Category,
	}
}

// SeatIndex is the set of valid seats for one event or for the whole catalog.
type SeatIndex struct {
	seats map[int64]Seat
}

func NewSeatIndex(events ...Event) SeatIndex {
	idx := SeatIndex{seats: make(map[int64]Seat)}
	for _, ev := range events {
		for _, seat := range ev.Seats {
			if seat.EventID == 0 {
				seat.EventID = ev.ID
			}
			idx.seats[seat.ID] = seat
		}
	}
	return idx
}

func (i SeatIndex) Has(id int64) bool {
	_, ok := i.seats[id]
	return ok
}

func (i SeatIndex) Len() int {
	return len(i.seats)
}

// Specs returns pricing specs for the selected seats, in selection order.
// Callers check Missing first; unknown ids are skipped.
func (i SeatIndex) Specs(sel ticket.Selection) []ticket.SeatSpec {
	specs := make([]ticket.SeatSpec, 0, sel.Len())
	for _, id := range sel.IDs() {
		if seat, ok := i.seats[id]; ok {
			specs = append(specs, seat.Spec())
		}
	}
	return specs
}

// Seats returns every indexed seat ordered by id.
func (i SeatIndex) Seats() []Seat {
	out := make([]Seat, 0, len(i.seats))
	for _, s := range i.seats {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Seat) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out
}
