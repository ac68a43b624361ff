package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/quotekeeper/internal/quotesync"
)

// DefaultQuoteSyncInterval is how often the remote endpoint is polled.
const DefaultQuoteSyncInterval = 30 * time.Second

const quoteSyncTimeout = 2 * time.Minute

// ErrSyncInProgress is returned by SyncNow while another sync is running.
var ErrSyncInProgress = errors.New("quote sync already in progress")

// Syncer runs a single sync round.
type Syncer interface {
	Sync(ctx context.Context) (quotesync.Report, error)
}

// QuoteSyncScheduler polls the remote quote endpoint on a fixed interval.
// There is no backoff: a failed round is simply retried on the next tick.
type QuoteSyncScheduler struct {
	syncer   Syncer
	interval time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	runCtx     context.Context
	cancelFunc context.CancelFunc
}

// NewQuoteSyncScheduler creates a new scheduler instance
func NewQuoteSyncScheduler(syncer Syncer, interval time.Duration) *QuoteSyncScheduler {
	if interval <= 0 {
		interval = DefaultQuoteSyncInterval
	}
	return &QuoteSyncScheduler{
		syncer:   syncer,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start begins polling. It stops by itself when ctx is cancelled.
func (s *QuoteSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.interval < time.Second {
		return fmt.Errorf("invalid sync interval %v: must be at least one second", s.interval)
	}

	s.entryID = s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(s.runSync))

	cancelCtx, cancel := context.WithCancel(ctx)
	s.runCtx = cancelCtx
	s.cancelFunc = cancel

	s.cron.Start()
	s.isRunning = true

	log.Printf("Quote sync scheduler: started, polling every %v", s.interval)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler. A scheduled sync still in flight is cancelled
// and Stop waits for it to return.
func (s *QuoteSyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cron.Remove(s.entryID)
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	log.Printf("Quote sync scheduler: stopped")
}

// SyncNow runs a sync on the calling goroutine and returns its report.
func (s *QuoteSyncScheduler) SyncNow(ctx context.Context) (quotesync.Report, error) {
	if !s.beginSync() {
		return quotesync.Report{}, ErrSyncInProgress
	}
	defer s.endSync()

	return s.syncer.Sync(ctx)
}

// IsRunning returns whether the scheduler is active
func (s *QuoteSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a sync is currently in progress
func (s *QuoteSyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// GetNextRunTime returns when the next sync will occur
func (s *QuoteSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() || entry.Next.IsZero() {
		return nil
	}
	next := entry.Next
	return &next
}

func (s *QuoteSyncScheduler) beginSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isSyncing {
		return false
	}
	s.isSyncing = true
	return true
}

func (s *QuoteSyncScheduler) endSync() {
	s.mu.Lock()
	s.isSyncing = false
	s.mu.Unlock()
}

// runSync performs one scheduled sync round. Errors are logged only; the
// syncer records them in the sync status.
func (s *QuoteSyncScheduler) runSync() {
	if !s.beginSync() {
		log.Printf("Quote sync: skipped (already syncing)")
		return
	}
	defer s.endSync()

	s.mu.RLock()
	base := s.runCtx
	s.mu.RUnlock()
	if base == nil {
		base = context.Background()
	}

	ctx, cancel := context.WithTimeout(base, quoteSyncTimeout)
	defer cancel()

	if _, err := s.syncer.Sync(ctx); err != nil {
		log.Printf("Quote sync: failed, will retry on next tick: %v", err)
	}
}
