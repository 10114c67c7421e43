//go:build unit

package ticket_test

import (
	"errors"
	"testing"
	"time"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {
	t.Run("sorts and de-duplicates", func(t *testing.T) {
		sel, err := ticket.NewSelection([]int64{3, 1, 2, 3, 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, sel.IDs())
		assert.Equal(t, 3, sel.Len())
		assert.True(t, sel.Contains(2))
		assert.False(t, sel.Contains(4))
	})

	t.Run("rejects empty and non-positive ids", func(t *testing.T) {
		_, err := ticket.NewSelection(nil)
		assert.ErrorIs(t, err, ticket.ErrEmptySelection)

		_, err = ticket.NewSelection([]int64{1, 0})
		assert.ErrorIs(t, err, ticket.ErrInvalidID)

		_, err = ticket.NewSelection([]int64{-5})
		assert.ErrorIs(t, err, ticket.ErrInvalidID)
	})

	t.Run("missing keeps ascending order", func(t *testing.T) {
		sel, err := ticket.NewSelection([]int64{9, 4, 6})
		require.NoError(t, err)
		missing := sel.Missing(func(id int64) bool { return id == 6 })
		assert.Equal(t, []int64{4, 9}, missing)
	})

	t.Run("IDs returns a copy", func(t *testing.T) {
		sel, err := ticket.NewSelection([]int64{1, 2})
		require.NoError(t, err)
		ids := sel.IDs()
		ids[0] = 99
		assert.Equal(t, []int64{1, 2}, sel.IDs())
	})
}

func TestMoney(t *testing.T) {
	m, err := ticket.NewMoney(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Cents())

	_, err = ticket.NewMoney(-1)
	assert.ErrorIs(t, err, ticket.ErrNegativePrice)
}

func TestNewReservedTicket(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	calc := ticket.NewTablePriceCalculator(5000, map[string]int64{"VIP": 12000})

	t.Run("prices by category and stamps reservation time", func(t *testing.T) {
		services := &ticket.Services{Clock: clock.NewMockClock(now), PriceCalculator: calc}
		tk, err := ticket.NewReservedTicket(services, ticket.SeatSpec{SeatID: 3, EventID: 7, Category: "vip"}, userID)
		require.NoError(t, err)

		assert.Equal(t, int64(3), tk.SeatID())
		require.NotNil(t, tk.EventID())
		assert.Equal(t, int64(7), *tk.EventID())
		require.NotNil(t, tk.UserID())
		assert.Equal(t, userID, *tk.UserID())
		assert.Equal(t, int64(12000), tk.Price().Cents())
		assert.Equal(t, ticket.StatusReserved, tk.Status())
		assert.Equal(t, now, tk.ReservedAt())
		assert.Nil(t, tk.ExpiresAt())
	})

	t.Run("unknown event and anonymous user stay nil", func(t *testing.T) {
		services := &ticket.Services{Clock: clock.NewMockClock(now), PriceCalculator: calc}
		tk, err := ticket.NewReservedTicket(services, ticket.SeatSpec{SeatID: 3}, uuid.Nil)
		require.NoError(t, err)
		assert.Nil(t, tk.EventID())
		assert.Nil(t, tk.UserID())
		assert.Equal(t, int64(5000), tk.Price().Cents())
	})

	t.Run("ttl sets an expiry", func(t *testing.T) {
		services := &ticket.Services{Clock: clock.NewMockClock(now), PriceCalculator: calc, ReservationTTL: 15 * time.Minute}
		tk, err := ticket.NewReservedTicket(services, ticket.SeatSpec{SeatID: 3}, userID)
		require.NoError(t, err)
		require.NotNil(t, tk.ExpiresAt())
		assert.Equal(t, now.Add(15*time.Minute), *tk.ExpiresAt())
	})
}

func TestCheckPurchasable(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := uuid.New()
	other := uuid.New()

	testCases := []struct {
		name   string
		build  func() *ticket.Ticket
		actor  uuid.UUID
		target error
	}{
		{
			name:  "reserved by actor",
			build: func() *ticket.Ticket { return builder.NewTicketBuilder().WithUser(&owner).BuildDomain() },
			actor: owner,
		},
		{
			name:  "reserved without a user",
			build: func() *ticket.Ticket { return builder.NewTicketBuilder().WithUser(nil).BuildDomain() },
			actor: other,
		},
		{
			name:   "reserved by someone else",
			build:  func() *ticket.Ticket { return builder.NewTicketBuilder().WithUser(&owner).BuildDomain() },
			actor:  other,
			target: errs.ErrTicketNotOwned,
		},
		{
			name:   "already sold",
			build:  func() *ticket.Ticket { return builder.NewTicketBuilder().WithUser(&owner).Sold("", now).BuildDomain() },
			actor:  owner,
			target: errs.ErrTicketNotReserved,
		},
		{
			name: "released",
			build: func() *ticket.Ticket {
				return builder.NewTicketBuilder().WithStatus(ticket.StatusReleased).BuildDomain()
			},
			actor:  owner,
			target: errs.ErrTicketNotReserved,
		},
		{
			name: "reservation lapsed",
			build: func() *ticket.Ticket {
				return builder.NewTicketBuilder().WithUser(&owner).WithExpiresAt(now.Add(-time.Second)).BuildDomain()
			},
			actor:  owner,
			target: errs.ErrTicketNotReserved,
		},
		{
			name: "reservation still held",
			build: func() *ticket.Ticket {
				return builder.NewTicketBuilder().WithUser(&owner).WithExpiresAt(now.Add(time.Minute)).BuildDomain()
			},
			actor: owner,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build().CheckPurchasable(tc.actor, now)
			if tc.target == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestSoldWith(t *testing.T) {
	now := time.Now()
	sold := builder.NewTicketBuilder().Sold("pi_1", now).BuildDomain()
	assert.True(t, sold.SoldWith("pi_1"))
	assert.False(t, sold.SoldWith("pi_2"))
	assert.False(t, sold.SoldWith(""))

	reserved := builder.NewTicketBuilder().BuildDomain()
	assert.False(t, reserved.SoldWith("pi_1"))
}

func TestStatus(t *testing.T) {
	assert.True(t, ticket.StatusReserved.IsLive())
	assert.True(t, ticket.StatusSold.IsLive())
	assert.False(t, ticket.StatusReleased.IsLive())
	assert.False(t, ticket.Status("BOGUS").IsValid())

	assert.Equal(t, ticket.SeatReserved, ticket.StatusReserved.SeatStatus())
	assert.Equal(t, ticket.SeatSold, ticket.StatusSold.SeatStatus())
	assert.Equal(t, ticket.SeatAvailable, ticket.StatusReleased.SeatStatus())
}

func TestTablePriceCalculator(t *testing.T) {
	calc := ticket.NewTablePriceCalculator(5000, map[string]int64{" Balcony ": 3000})
	assert.Equal(t, int64(3000), calc.PriceCents(ticket.SeatSpec{Category: "balcony"}))
	assert.Equal(t, int64(5000), calc.PriceCents(ticket.SeatSpec{Category: "floor"}))
	assert.Equal(t, int64(5000), calc.PriceCents(ticket.SeatSpec{}))
}
