package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/herdtrack/herdtrack/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(cows *handlers.CowHandler, dash *handlers.DashboardHandler, settings *handlers.SettingsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/cows", cows.List)
		api.POST("/cows", cows.Create)
		api.GET("/cows/:id", cows.Get)
		api.PUT("/cows/:id", cows.Update)
		api.DELETE("/cows/:id", cows.Delete)
		api.POST("/cows/:id/location", cows.UpdateLocation)

		api.GET("/dashboard/stats", dash.Stats)

		api.GET("/yield/:id", cows.ListYield)
		api.POST("/yield/:id", cows.AppendYield)

		api.GET("/feed/:id", cows.FeedRequirements)
		api.GET("/health/:id", cows.HealthDetail)

		api.GET("/farm/settings", settings.Get)
		api.PUT("/farm/settings", settings.Update)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
