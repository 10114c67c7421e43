package bootstrap

import (
	"context"
	"log/slog"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/infra/broker"
	"eventgo-ticketing/internal/infra/catalog"
	"eventgo-ticketing/internal/infra/gateway"
	"eventgo-ticketing/internal/infra/pricing"
	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/usecase/commands"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// InfraModule wires the adapters for services outside this process.
var InfraModule = fx.Module("infra",
	fx.Provide(
		NewCatalogReader,
		NewPriceCalculator,
		NewEventPublisher,
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewCatalogReader(cfg config.Config, rdb *redis.Client, logger *slog.Logger) shared.CatalogReader {
	client := catalog.NewClient(cfg.Catalog, logger)
	if rdb == nil || cfg.Catalog.CacheTTL <= 0 {
		return client
	}
	return catalog.NewCachedReader(client, rdb, cfg.Catalog.CacheTTL, logger)
}

func NewPriceCalculator(cfg config.Config) (ticket.PriceCalculator, error) {
	return pricing.Load(cfg.Booking)
}

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) *gateway.StripeGateway {
	return gateway.NewStripeGateway(cfg.Payment, logger)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (commands.EventPublisher, error) {
	publisher, err := broker.NewPublisher(cfg.Broker, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
