package components

import (
	"eventgo-ticketing/internal/handler"
	"eventgo-ticketing/internal/handler/api"
	"eventgo-ticketing/internal/handler/middleware"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(pool *pgxpool.Pool) *api.HealthHandler {
			return api.NewHealthHandler(pool)
		},
		api.NewSeatHandler,
		api.NewTicketHandler,
		api.NewPaymentHandler,
		api.NewSplitPaymentHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	health *api.HealthHandler,
	seat *api.SeatHandler,
	ticket *api.TicketHandler,
	payment *api.PaymentHandler,
	splitPayment *api.SplitPaymentHandler,
) handler.Handlers {
	return handler.Handlers{
		Health:       health,
		Seat:         seat,
		Ticket:       ticket,
		Payment:      payment,
		SplitPayment: splitPayment,
	}
}
