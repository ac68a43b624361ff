// Package quotesync exchanges the local quote collection with a remote
// endpoint: remote posts are appended locally as quotes, and the local
// collection is pushed back on a best-effort basis.
package quotesync

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

const (
	DefaultFetchLimit = 5
	DefaultCategory   = "Server"
)

// RemoteQuoteService is the remote side of a sync. remote.Client satisfies it.
type RemoteQuoteService interface {
	FetchQuotes(ctx context.Context, limit int) ([]remote.Post, error)
	PushQuotes(ctx context.Context, quotes []entities.Quote) error
}

// QuoteStore is the local side of a sync. quotes.Store satisfies it.
type QuoteStore interface {
	All() []entities.Quote
	Merge(quotes []entities.Quote) (int, error)
}

// StatusRecorder persists the outcome of each sync.
type StatusRecorder interface {
	SetQuoteSyncStatus(status, message string, merged int) error
}

// Report summarises a successful sync.
type Report struct {
	Fetched int `json:"fetched"`
	Merged  int `json:"merged"`
	Total   int `json:"total"`
}

// Config controls what a sync fetches and how it labels remote quotes.
type Config struct {
	FetchLimit int
	Category   string
}

// Syncer runs one sync round at a time against a remote service.
type Syncer struct {
	store  QuoteStore
	remote RemoteQuoteService
	status StatusRecorder
	config Config
}

// NewSyncer creates a syncer. status may be nil.
func NewSyncer(store QuoteStore, remote RemoteQuoteService, status StatusRecorder, cfg Config) *Syncer {
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = DefaultFetchLimit
	}
	cfg.Category = strings.TrimSpace(cfg.Category)
	if cfg.Category == "" {
		cfg.Category = DefaultCategory
	}
	return &Syncer{
		store:  store,
		remote: remote,
		status: status,
		config: cfg,
	}
}

// Sync fetches remote quotes and pushes the current collection concurrently.
// Only when both calls succeed are the fetched quotes appended to the
// collection; on error the collection is left as it was.
func (s *Syncer) Sync(ctx context.Context) (Report, error) {
	startTime := time.Now()
	snapshot := s.store.All()

	var posts []remote.Post
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.remote.FetchQuotes(gctx, s.config.FetchLimit)
		if err != nil {
			return fmt.Errorf("fetch remote quotes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.remote.PushQuotes(gctx, snapshot); err != nil {
			return fmt.Errorf("push local quotes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.recordStatus(settingsstore.QuoteSyncStatusFailed, err.Error(), 0)
		return Report{}, err
	}

	fetched := s.toQuotes(posts)
	total, err := s.store.Merge(fetched)
	if err != nil {
		err = fmt.Errorf("merge remote quotes: %w", err)
		s.recordStatus(settingsstore.QuoteSyncStatusFailed, err.Error(), 0)
		return Report{}, err
	}

	report := Report{
		Fetched: len(posts),
		Merged:  len(fetched),
		Total:   total,
	}
	message := fmt.Sprintf("Merged %d of %d remote quotes in %v",
		report.Merged, report.Fetched, time.Since(startTime).Round(time.Millisecond))
	log.Printf("Quote sync: %s", message)
	s.recordStatus(settingsstore.QuoteSyncStatusSuccess, message, report.Merged)

	return report, nil
}

// toQuotes maps remote posts to quotes under the configured category.
// Posts with a blank title cannot form a valid quote and are dropped.
func (s *Syncer) toQuotes(posts []remote.Post) []entities.Quote {
	quotes := make([]entities.Quote, 0, len(posts))
	for _, p := range posts {
		text := strings.TrimSpace(p.Title)
		if text == "" {
			continue
		}
		quotes = append(quotes, entities.Quote{Text: text, Category: s.config.Category})
	}
	return quotes
}

func (s *Syncer) recordStatus(status, message string, merged int) {
	if s.status == nil {
		return
	}
	if err := s.status.SetQuoteSyncStatus(status, message, merged); err != nil {
		log.Printf("Quote sync: failed to record status: %v", err)
	}
}
