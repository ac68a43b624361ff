package http

import (
	"github.com/mrlokans/quotekeeper/internal/audit"
	"github.com/mrlokans/quotekeeper/internal/database"
	"github.com/mrlokans/quotekeeper/internal/metrics"
	"github.com/mrlokans/quotekeeper/internal/sessions"
	"github.com/mrlokans/quotekeeper/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Quotes   QuoteStore
	Database *database.Database
	Auditor  *audit.Auditor

	// Per-visitor session storage. Without it the last shown quote is not
	// remembered between requests.
	SessionManager *sessions.Manager

	// Quote sync
	SyncRunner SyncRunner
	SyncStatus SyncStatusReader

	// Task queue (optional, nil if disabled)
	TaskClient *tasks.Client

	// Prometheus metrics (optional)
	Metrics *metrics.Metrics

	// Application info
	Version string
}
