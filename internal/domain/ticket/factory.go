package ticket

import (
	"github.com/google/uuid"
)

type Factory struct {
	services *Services
}

func NewFactory(services *Services) *Factory {
	return &Factory{services: services}
}

// NewReservation builds one RESERVED ticket per seat, in seat order.
func (f *Factory) NewReservation(seats []SeatSpec, userID uuid.UUID) ([]*Ticket, error) {
	if len(seats) == 0 {
		return nil, ErrEmptySelection
	}
	tickets := make([]*Ticket, 0, len(seats))
	for _, seat := range seats {
		t, err := NewReservedTicket(f.services, seat, userID)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (f *Factory) Services() *Services {
	return f.services
}
