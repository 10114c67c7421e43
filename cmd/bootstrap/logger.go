package bootstrap

import (
	"log/slog"

	"eventgo-ticketing/internal/handler/middleware"
	"eventgo-ticketing/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger shares the request logger's level and time format so API and worker logs line up.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
