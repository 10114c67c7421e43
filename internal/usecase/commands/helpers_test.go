//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/pkg/errs"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// staticCatalog serves a fixed set of events.
type staticCatalog struct {
	events []catalog.Event
	err    error
}

func (c staticCatalog) Event(_ context.Context, eventID int64) (*catalog.Event, error) {
	if c.err != nil {
		return nil, c.err
	}
	for _, ev := range c.events {
		if ev.ID == eventID {
			return &ev, nil
		}
	}
	return nil, errs.ErrEventNotFound
}

func (c staticCatalog) Events(_ context.Context) ([]catalog.Event, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.events, nil
}

// eventWithSeats builds an event whose seats are numbered from 1 to n.
func eventWithSeats(id int64, n int) catalog.Event {
	ev := catalog.Event{ID: id, Name: "Test Event"}
	for i := 1; i <= n; i++ {
		ev.Seats = append(ev.Seats, catalog.Seat{ID: int64(i), EventID: id, SeatNumber: fmt.Sprintf("A%d", i)})
	}
	return ev
}
