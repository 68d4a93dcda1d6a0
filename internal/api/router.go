// Package api serves projections over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rpgo/wealth-projector/internal/api/handlers"
	"github.com/rpgo/wealth-projector/internal/api/middleware"
	"github.com/rpgo/wealth-projector/internal/api/models"
	"github.com/rpgo/wealth-projector/internal/calculation"
	"github.com/rpgo/wealth-projector/internal/log"
)

// Dependencies wires the router. Provider may be nil to serve fallback
// assumptions only.
type Dependencies struct {
	Engine         *calculation.ProjectionEngine
	Provider       handlers.AssumptionProvider
	Logger         *log.Logger
	AllowedOrigins []string
	MaxTrials      int
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentAPI)

	engine := deps.Engine
	if engine == nil {
		engine = calculation.NewProjectionEngine()
		engine.SetLogger(logger.WithComponent(log.ComponentEngine).Printf())
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	projectionHandler := handlers.NewProjectionHandler(engine, deps.Provider)
	if deps.MaxTrials > 0 {
		projectionHandler.MaxTrials = deps.MaxTrials
	}
	assumptionsHandler := handlers.NewAssumptionsHandler(deps.Provider)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/projections", projectionHandler.CreateProjection)
		v1.GET("/assumptions", assumptionsHandler.GetAssumptions)
		v1.GET("/presets", handlers.ListPresets)
		v1.GET("/formats", handlers.ListFormats)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "route not found: "+c.Request.URL.Path))
	})
	return router
}
