package components

import (
	"eventgo-ticketing/internal/infra/db"
	"eventgo-ticketing/internal/infra/readstore"
	"eventgo-ticketing/internal/infra/uow"
	"eventgo-ticketing/internal/usecase/queries"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewTicketReadStore,
			fx.As(new(queries.SeatReadStore)),
			fx.As(new(queries.TicketReadStore)),
		),
	),
)

// Write-side repositories are created per transaction by the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
