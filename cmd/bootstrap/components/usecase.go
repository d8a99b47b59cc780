package components

import (
	"civicdesk/internal/domain/request"
	"civicdesk/internal/infra/notify"
	"civicdesk/internal/pkg/clock"
	"civicdesk/internal/pkg/config"
	"civicdesk/internal/usecase"
	"civicdesk/internal/usecase/queries"
	"civicdesk/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		notify.NewOutboxNotifier,
		fx.As(new(usecase.Notifier)),
	),
	usecase.NewLifecycleHooks,
	request.NewRegistry,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		usecase.NewLifecycleUseCase,
		func(u shared.UnitOfWork, registry *request.Registry, clk clock.Clock, cfg config.Config) usecase.CommandInvoker {
			return usecase.NewCommandInvoker(u, registry, clk, cfg.Lifecycle.UndoDepth)
		},
		func(u shared.UnitOfWork, clk clock.Clock, cfg config.Config) usecase.SnapshotCommands {
			return usecase.NewSnapshotUseCase(u, clk, cfg.Lifecycle.SnapshotsPerRequest)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRequestQueries,
		queries.NewCommandQueries,
		queries.NewSnapshotQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
