//go:build unit

package catalog_test

import (
	"testing"

	"eventgo-ticketing/internal/domain/catalog"
	"eventgo-ticketing/internal/domain/ticket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatIndex(t *testing.T) {
	idx := catalog.NewSeatIndex(
		catalog.Event{ID: 1, Seats: []catalog.Seat{{ID: 3, Category: "vip"}, {ID: 1}}},
		catalog.Event{ID: 2, Seats: []catalog.Seat{{ID: 2, EventID: 2}}},
	)

	assert.Equal(t, 3, idx.Len())
	assert.True(t, idx.Has(3))
	assert.False(t, idx.Has(4))

	seats := idx.Seats()
	require.Len(t, seats, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{seats[0].ID, seats[1].ID, seats[2].ID})
	assert.Equal(t, int64(1), seats[0].EventID, "event id is inherited from the enclosing event")

	sel, err := ticket.NewSelection([]int64{3, 4, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, sel.Missing(idx.Has))

	specs := idx.Specs(sel)
	assert.Equal(t, []ticket.SeatSpec{
		{SeatID: 1, EventID: 1},
		{SeatID: 3, EventID: 1, Category: "vip"},
	}, specs)
}
