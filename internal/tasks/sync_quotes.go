package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotekeeper/internal/quotesync"
)

// QuoteSyncer runs a single sync round against the remote quote endpoint.
type QuoteSyncer interface {
	SyncNow(ctx context.Context) (quotesync.Report, error)
}

// SyncQuotesTask syncs the quote collection with the remote endpoint once.
type SyncQuotesTask struct {
	// Reason is free text describing who asked for the sync, for logs only.
	Reason string `json:"reason,omitempty"`
}

// Config returns the queue configuration for quote sync tasks.
// A failed sync is not retried here; the scheduler polls again on its own.
func (t SyncQuotesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sync_quotes",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SyncQuotesProcessor creates a processor function for SyncQuotesTask.
func SyncQuotesProcessor(syncer QuoteSyncer) backlite.QueueProcessor[SyncQuotesTask] {
	return func(ctx context.Context, task SyncQuotesTask) error {
		if syncer == nil {
			return fmt.Errorf("quote syncer not configured")
		}

		report, err := syncer.SyncNow(ctx)
		if err != nil {
			return fmt.Errorf("sync quotes: %w", err)
		}

		log.Printf("[TASK] Synced quotes (%s): fetched %d, merged %d, total %d",
			task.Reason, report.Fetched, report.Merged, report.Total)
		return nil
	}
}

// NewSyncQuotesQueue creates a backlite queue for quote sync tasks.
func NewSyncQuotesQueue(syncer QuoteSyncer) backlite.Queue {
	return backlite.NewQueue(SyncQuotesProcessor(syncer))
}
