package ticket

import (
	"errors"
	"slices"
)

var (
	ErrEmptySelection = errors.New("at least one id is required")
	ErrInvalidID      = errors.New("ids must be positive")
	ErrNegativePrice  = errors.New("price cannot be negative")
)

// Selection is a de-duplicated, ascending set of seat or ticket ids.
// Ascending order is also the lock acquisition order.
type Selection struct {
	ids []int64
}

func NewSelection(ids []int64) (Selection, error) {
	if len(ids) == 0 {
		return Selection{}, ErrEmptySelection
	}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return Selection{}, ErrInvalidID
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return Selection{ids: slices.Compact(out)}, nil
}

func (s Selection) IDs() []int64 {
	return slices.Clone(s.ids)
}

func (s Selection) Len() int {
	return len(s.ids)
}

func (s Selection) Contains(id int64) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// Missing returns the ids of s that are absent from present, ascending.
func (s Selection) Missing(present func(int64) bool) []int64 {
	var missing []int64
	for _, id := range s.ids {
		if !present(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}
