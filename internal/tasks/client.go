package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotekeeper/internal/config"
)

// Client runs on-demand quote syncs and import audit cleanup on a backlite
// queue stored next to the quote database.
type Client struct {
	client  *backlite.Client
	db      *sql.DB
	workers int

	mu      sync.RWMutex
	started bool
}

// DBPath returns the task queue database path for a quote database path:
// "./quotes.db" becomes "./quotes-tasks.db".
func DBPath(quotesDBPath string) string {
	ext := filepath.Ext(quotesDBPath)
	return strings.TrimSuffix(quotesDBPath, ext) + "-tasks" + ext
}

// NewClient opens the task queue database derived from cfg.Database.Path and
// registers the sync_quotes and cleanup_import_audit queues. cleaner may be
// nil, in which case cleanup tasks fail.
func NewClient(cfg *config.Config, syncer QuoteSyncer, cleaner ImportAuditCleaner) (*Client, error) {
	workers := cfg.Tasks.Workers
	if workers < 1 {
		workers = 1
	}

	db, err := sql.Open("sqlite3", DBPath(cfg.Database.Path)+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	db.SetMaxOpenConns(workers + 5)
	db.SetMaxIdleConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      workers,
		ReleaseAfter:    cfg.Tasks.ReleaseAfter,
		CleanupInterval: cfg.Tasks.CleanupInterval,
		Logger:          &stdLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create backlite client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install backlite schema: %w", err)
	}

	client.Register(NewSyncQuotesQueue(syncer))
	client.Register(NewCleanupImportAuditQueue(cleaner))

	return &Client{
		client:  client,
		db:      db,
		workers: workers,
	}, nil
}

// Start begins processing tasks. It does not block; call Stop to drain.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	log.Printf("Task queue started with %d workers", c.workers)
	c.client.Start(ctx)
}

// Stop waits for running tasks until ctx expires.
// Returns true if all workers finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	started := c.started
	c.mu.RUnlock()
	if !started {
		return true
	}

	log.Println("Stopping task queue...")
	success := c.client.Stop(ctx)
	if success {
		log.Println("Task queue stopped gracefully")
	} else {
		log.Println("Task queue stopped with timeout (a quote sync may not have completed)")
	}
	return success
}

// Close releases the task database. Call it after Stop.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// EnqueueSync queues one quote sync round and returns its task ID.
func (c *Client) EnqueueSync(reason string) (string, error) {
	return c.enqueue(SyncQuotesTask{Reason: reason})
}

// EnqueueAuditCleanup queues removal of import payloads older than
// retentionDays and returns the task ID.
func (c *Client) EnqueueAuditCleanup(retentionDays int) (string, error) {
	return c.enqueue(CleanupImportAuditTask{RetentionDays: retentionDays})
}

func (c *Client) enqueue(task backlite.Task) (string, error) {
	ids, err := c.client.Add(task).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", task.Config().Name, err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue %s: no task id returned", task.Config().Name)
	}
	return ids[0], nil
}

// Status returns the status of a task by ID.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// stdLogger routes backlite logs through the standard logger.
type stdLogger struct{}

func (l *stdLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (l *stdLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
