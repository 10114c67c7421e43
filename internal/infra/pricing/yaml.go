package pricing

import (
	"os"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// File is the pricing table on disk:
//
//	default_cents: 5000
//	categories:
//	  standard: 5000
//	  vip: 12000
type File struct {
	DefaultCents *int64           `yaml:"default_cents"`
	Categories   map[string]int64 `yaml:"categories"`
}

// Load builds the price table. Without a pricing file every seat costs the configured default.
func Load(cfg config.BookingConfig) (*ticket.TablePriceCalculator, error) {
	if cfg.PricingFile == "" {
		return ticket.NewTablePriceCalculator(cfg.DefaultPriceCents, nil), nil
	}

	data, err := os.ReadFile(cfg.PricingFile)
	if err != nil {
		return nil, errs.Wrapf(err, "read pricing file %s", cfg.PricingFile)
	}
	return Parse(data, cfg.DefaultPriceCents)
}

func Parse(data []byte, fallbackCents int64) (*ticket.TablePriceCalculator, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(err, "parse pricing file")
	}

	defaultCents := fallbackCents
	if f.DefaultCents != nil {
		defaultCents = *f.DefaultCents
	}
	if defaultCents < 0 {
		return nil, errs.Newf("default_cents must not be negative, got %d", defaultCents)
	}
	for category, cents := range f.Categories {
		if cents < 0 {
			return nil, errs.Newf("price for category %q must not be negative, got %d", category, cents)
		}
	}
	return ticket.NewTablePriceCalculator(defaultCents, f.Categories), nil
}
