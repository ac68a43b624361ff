package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/quotes"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	var sessionStore SessionStoreFunc
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.Middleware())
		sessionStore = func(ctx context.Context) quotes.KeyValueStore {
			return cfg.SessionManager.Store(ctx)
		}
	}

	var auditor ImportAuditor
	if cfg.Auditor != nil {
		auditor = cfg.Auditor
	}

	var queue TaskQueue
	if cfg.TaskClient != nil {
		queue = cfg.TaskClient
	}

	var counter quoteCounter
	if lc, ok := cfg.Quotes.(quoteCounter); ok {
		counter = lc
	}

	health := NewHealthController(cfg.Database, counter, cfg.Version)
	quotesController := NewQuotesController(cfg.Quotes, sessionStore, auditor)
	categoriesController := NewCategoriesController(cfg.Quotes)
	syncController := NewSyncController(cfg.SyncRunner, cfg.SyncStatus, queue)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api")

	// Quotes
	api.GET("/quotes", quotesController.List)
	api.POST("/quotes", quotesController.Add)
	api.GET("/quotes/random", quotesController.Random)
	api.GET("/quotes/current", quotesController.Current)
	api.POST("/quotes/import", quotesController.Import)
	api.GET("/quotes/export", quotesController.Export)

	// Categories
	api.GET("/categories", categoriesController.List)
	api.GET("/categories/selected", categoriesController.GetSelected)
	api.PUT("/categories/selected", categoriesController.SetSelected)

	// Quote sync
	api.POST("/sync", syncController.Trigger)
	api.GET("/sync/status", syncController.Status)
	api.GET("/sync/tasks/:id", syncController.TaskStatus)

	return router
}
