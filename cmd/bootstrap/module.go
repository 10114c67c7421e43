package bootstrap

import (
	"eventgo-ticketing/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Core is everything the API server and the worker share.
var Core = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	InfraModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	Core,
	JWTModule,
	components.HandlerModule,
)
