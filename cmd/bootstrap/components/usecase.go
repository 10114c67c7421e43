package components

import (
	"log/slog"

	"eventgo-ticketing/internal/domain/ticket"
	"eventgo-ticketing/internal/pkg/clock"
	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/usecase"
	"eventgo-ticketing/internal/usecase/commands"
	"eventgo-ticketing/internal/usecase/queries"
	"eventgo-ticketing/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	usecaseWorkersModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock, calc ticket.PriceCalculator, cfg config.Config) *ticket.Services {
		return &ticket.Services{
			Clock:           clk,
			PriceCalculator: calc,
			ReservationTTL:  cfg.Booking.ReservationTTL,
		}
	},
	ticket.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewPurchaseUseCase,
		func(gw commands.PaymentGateway, uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, logger *slog.Logger) commands.PaymentCommands {
			return commands.NewPaymentUseCase(gw, uow, clk, cfg.Payment.LinkTTL, logger)
		},
		func(gw commands.PaymentGateway, uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, logger *slog.Logger) commands.SplitPaymentCommands {
			return commands.NewSplitPaymentUseCase(gw, uow, clk, cfg.Payment.LinkTTL, logger)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSeatQueries,
		queries.NewTicketQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseWorkersModule = fx.Module("usecase/workers",
	fx.Provide(
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, logger *slog.Logger) *commands.ExpirySweeper {
			return commands.NewExpirySweeper(uow, clk, cfg.Booking.ReservationTTL, logger)
		},
		func(uow shared.UnitOfWork, pub commands.EventPublisher, clk clock.Clock, cfg config.Config, logger *slog.Logger) *commands.OutboxRelay {
			return commands.NewOutboxRelay(uow, pub, clk, cfg.Worker.OutboxBatchSize, cfg.Worker.OutboxMaxAttempts, logger)
		},
	),
)
