package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAuditRetentionDays applies when a task carries no retention.
const DefaultAuditRetentionDays = 30

// ImportAuditCleaner deletes archived import payloads.
type ImportAuditCleaner interface {
	DeleteOlderThan(retention time.Duration) (int, error)
}

// CleanupImportAuditTask removes archived import payloads older than the
// configured retention period.
type CleanupImportAuditTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit cleanup tasks.
func (t CleanupImportAuditTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_import_audit",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupImportAuditProcessor creates a processor function for CleanupImportAuditTask.
func CleanupImportAuditProcessor(cleaner ImportAuditCleaner) backlite.QueueProcessor[CleanupImportAuditTask] {
	return func(ctx context.Context, task CleanupImportAuditTask) error {
		if cleaner == nil {
			return fmt.Errorf("import audit cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = DefaultAuditRetentionDays
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOlderThan(retention)
		if err != nil {
			return fmt.Errorf("cleanup import audit: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d import payloads older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupImportAuditQueue creates a backlite queue for audit cleanup tasks.
func NewCleanupImportAuditQueue(cleaner ImportAuditCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupImportAuditProcessor(cleaner))
}
