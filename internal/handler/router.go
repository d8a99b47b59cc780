package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"civicdesk/internal/domain/user"
	"civicdesk/internal/handler/api"
	"civicdesk/internal/handler/middleware"
	"civicdesk/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	requestHandler *api.RequestHandler,
	commandHandler *api.CommandHandler,
	snapshotHandler *api.SnapshotHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, requestHandler, commandHandler, snapshotHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	requestHandler *api.RequestHandler,
	commandHandler *api.CommandHandler,
	snapshotHandler *api.SnapshotHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		requests := apiGroup.Group("/requests")
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: requestHandler.CreateRequest},
				{Method: http.MethodGet, Path: "", Handler: requestHandler.ListRequests},
				{Method: http.MethodGet, Path: "/:id", Handler: requestHandler.GetRequest},
			})

			staffOnly := requests.Group("")
			staffOnly.Use(authMiddleware.RequireRoleAtLeast(user.RoleStaff))
			addRoutes(staffOnly, []route{
				{Method: http.MethodPost, Path: "/:id/transition", Handler: requestHandler.Transition},
			})
		}

		commands := apiGroup.Group("/commands")
		commands.Use(authMiddleware.RequireRoleAtLeast(user.RoleStaff))
		{
			addRoutes(commands, []route{
				{Method: http.MethodPost, Path: "/execute", Handler: commandHandler.Execute},
				{Method: http.MethodPost, Path: "/undo", Handler: commandHandler.Undo},
				{Method: http.MethodPost, Path: "/redo", Handler: commandHandler.Redo},
				{Method: http.MethodGet, Path: "/history", Handler: commandHandler.History},
				{Method: http.MethodGet, Path: "/availability", Handler: commandHandler.Availability},
			})
		}

		// Snapshot restore bypasses transition validation, so the whole
		// surface is admin only.
		snapshots := apiGroup.Group("/snapshots")
		snapshots.Use(authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(snapshots, []route{
				{Method: http.MethodPost, Path: "", Handler: snapshotHandler.CreateSnapshot},
				{Method: http.MethodGet, Path: "", Handler: snapshotHandler.ListSnapshots},
				{Method: http.MethodPost, Path: "/restore", Handler: snapshotHandler.RestoreSnapshot},
				{Method: http.MethodDelete, Path: "/:key", Handler: snapshotHandler.DeleteSnapshot},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
