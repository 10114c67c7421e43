package bootstrap

import (
	"time"

	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_DURATION")
	}
	return jwt.NewService(cfg.JWT.Secret, tokenDuration), nil
}
