package ticket

import "strings"

type PriceCalculator interface {
	PriceCents(seat SeatSpec) int64
}

// TablePriceCalculator prices a seat by its catalog category, falling back to a flat default.
type TablePriceCalculator struct {
	DefaultCents int64
	Categories   map[string]int64
}

func NewTablePriceCalculator(defaultCents int64, categories map[string]int64) *TablePriceCalculator {
	normalized := make(map[string]int64, len(categories))
	for k, v := range categories {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &TablePriceCalculator{
		DefaultCents: defaultCents,
		Categories:   normalized,
	}
}

func (pc *TablePriceCalculator) PriceCents(seat SeatSpec) int64 {
	if cents, ok := pc.Categories[strings.ToLower(strings.TrimSpace(seat.Category))]; ok {
		return cents
	}
	return pc.DefaultCents
}
