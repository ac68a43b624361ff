package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/quotes"
	"github.com/mrlokans/quotekeeper/internal/quotesync"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

// This file collects the interfaces HTTP controllers depend on.

// QuoteStore is the quote collection as seen by the API. quotes.Store
// satisfies it.
type QuoteStore interface {
	All() []entities.Quote
	Categories() []string
	PickQuote(session quotes.KeyValueStore, category string) (entities.Quote, bool)
	CurrentQuote(session quotes.KeyValueStore, category string) (entities.Quote, bool)
	AddQuote(text, category string) (entities.Quote, error)
	ImportQuotes(payload []byte) (int, error)
	ExportQuotes() ([]byte, error)
	SelectedCategory() string
	SaveSelectedCategory(category string) error
}

// SessionStoreFunc returns the ephemeral store for the request in ctx.
type SessionStoreFunc func(ctx context.Context) quotes.KeyValueStore

// ImportAuditor archives import payloads.
type ImportAuditor interface {
	RecordImport(source string, payload []byte, added int, importErr error) (string, error)
}

// SyncRunner runs syncs on demand and reports on the background schedule.
// scheduler.QuoteSyncScheduler satisfies it.
type SyncRunner interface {
	SyncNow(ctx context.Context) (quotesync.Report, error)
	IsRunning() bool
	IsSyncing() bool
	GetNextRunTime() *time.Time
}

// SyncStatusReader reads the outcome of the last sync.
type SyncStatusReader interface {
	GetQuoteSyncStatus() settingsstore.QuoteSyncStatus
}

// TaskQueue enqueues quote syncs in the background. tasks.Client satisfies it.
type TaskQueue interface {
	EnqueueSync(reason string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}
