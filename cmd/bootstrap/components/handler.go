package components

import (
	"civicdesk/internal/handler"
	"civicdesk/internal/handler/api"
	"civicdesk/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRequestHandler,
		api.NewCommandHandler,
		api.NewSnapshotHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
