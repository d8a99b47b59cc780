package components

import (
	"civicdesk/internal/infra/db"
	"civicdesk/internal/infra/readstore"
	repo_impl "civicdesk/internal/infra/repository"
	"civicdesk/internal/infra/uow"
	"civicdesk/internal/usecase/queries"
	"civicdesk/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(shared.NotificationRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestViewRepo)),
		),
		fx.Annotate(
			readstore.NewCommandReadStore,
			fx.As(new(queries.CommandViewRepo)),
		),
		fx.Annotate(
			readstore.NewSnapshotReadStore,
			fx.As(new(queries.SnapshotViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
