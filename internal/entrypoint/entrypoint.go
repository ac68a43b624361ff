package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/audit"
	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/database"
	"github.com/mrlokans/quotekeeper/internal/metrics"
	http_controllers "github.com/mrlokans/quotekeeper/internal/http"
	"github.com/mrlokans/quotekeeper/internal/quotes"
	"github.com/mrlokans/quotekeeper/internal/quotesync"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/scheduler"
	"github.com/mrlokans/quotekeeper/internal/sessions"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
	"github.com/mrlokans/quotekeeper/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so nothing writes after the server is gone
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Quote Keeper v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	store := quotes.NewStore(db.Settings())
	log.Printf("Loaded %d quotes", store.Len())

	appMetrics := metrics.New(store)

	// Archive of incoming import payloads
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := sessions.NewManager(sqlDB, sessions.Config{
		Lifetime:      cfg.Sessions.Lifetime,
		SecureCookies: cfg.Sessions.SecureCookies,
	})
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// Quote sync: the scheduler also serves on-demand syncs, so it is built
	// even when periodic polling is disabled.
	syncStatus := settingsstore.New(db.Settings())
	remoteClient := remote.NewClient(cfg.QuoteSync.Endpoint, cfg.QuoteSync.Timeout)
	syncer := quotesync.NewSyncer(store, remoteClient, appMetrics.WrapStatusRecorder(syncStatus), quotesync.Config{
		FetchLimit: cfg.QuoteSync.FetchLimit,
		Category:   cfg.QuoteSync.Category,
	})
	syncScheduler := scheduler.NewQuoteSyncScheduler(syncer, cfg.QuoteSync.Interval)

	if cfg.QuoteSync.Enabled {
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Printf("WARNING: Failed to start quote sync scheduler: %v", err)
		} else {
			log.Printf("Quote sync enabled against %s", remoteClient.Endpoint())
		}
	} else {
		log.Printf("Quote sync scheduler disabled (set QUOTE_SYNC_ENABLED=true to enable)")
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg, syncScheduler, auditor)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Prune old import payloads once per start
		if _, err := taskClient.EnqueueAuditCleanup(cfg.Audit.RetentionDays); err != nil {
			log.Printf("WARNING: Failed to enqueue audit cleanup: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Quotes:         store,
		Database:       db,
		Auditor:        auditor,
		SessionManager: sessionManager,
		SyncRunner:     syncScheduler,
		SyncStatus:     syncStatus,
		TaskClient:     taskClient,
		Metrics:        appMetrics,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		sessionManager.Close()
	}

	Serve(router, cfg, onShutdown)
}
