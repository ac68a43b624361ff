package quotesync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/quotes"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

type fakeRemote struct {
	mu       sync.Mutex
	posts    []remote.Post
	fetchErr error
	pushErr  error
	pushed   []entities.Quote
	// beforeReturn runs inside FetchQuotes before it returns, simulating work
	// that happens while the request is in flight.
	beforeReturn func()
}

func (f *fakeRemote) FetchQuotes(ctx context.Context, limit int) ([]remote.Post, error) {
	if f.beforeReturn != nil {
		f.beforeReturn()
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	posts := f.posts
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeRemote) PushQuotes(ctx context.Context, quotes []entities.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = quotes
	return f.pushErr
}

type recordedStatus struct {
	status  string
	message string
	merged  int
}

type fakeRecorder struct {
	calls []recordedStatus
}

func (f *fakeRecorder) SetQuoteSyncStatus(status, message string, merged int) error {
	f.calls = append(f.calls, recordedStatus{status, message, merged})
	return nil
}

func posts(n int) []remote.Post {
	result := make([]remote.Post, n)
	for i := range result {
		result[i] = remote.Post{ID: i + 1, Title: fmt.Sprintf("remote %d", i+1)}
	}
	return result
}

func TestSyncer_Sync_MergesFetchedQuotes(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{posts: posts(8)}
	recorder := &fakeRecorder{}
	syncer := NewSyncer(store, rem, recorder, Config{})

	report, err := syncer.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Report{Fetched: 5, Merged: 5, Total: 8}, report)
	all := store.All()
	require.Len(t, all, 8)
	for _, q := range all[3:] {
		assert.Equal(t, "Server", q.Category)
	}
	assert.Equal(t, "remote 1", all[3].Text)
	assert.Equal(t, quotes.DefaultQuotes(), rem.pushed, "the pre-merge collection is pushed")
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, settingsstore.QuoteSyncStatusSuccess, recorder.calls[0].status)
	assert.Equal(t, 5, recorder.calls[0].merged)
}

func TestSyncer_Sync_NetworkFailureLeavesCollection(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{fetchErr: fmt.Errorf("%w: connection refused", remote.ErrNetworkFailure)}
	recorder := &fakeRecorder{}
	syncer := NewSyncer(store, rem, recorder, Config{})

	_, err := syncer.Sync(context.Background())

	assert.ErrorIs(t, err, remote.ErrNetworkFailure)
	assert.Equal(t, 3, store.Len())
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, settingsstore.QuoteSyncStatusFailed, recorder.calls[0].status)
}

func TestSyncer_Sync_RemoteUnavailable(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{fetchErr: &remote.StatusError{StatusCode: 503}}
	syncer := NewSyncer(store, rem, nil, Config{})

	_, err := syncer.Sync(context.Background())

	assert.ErrorIs(t, err, remote.ErrRemoteUnavailable)
	assert.Equal(t, 3, store.Len())
}

func TestSyncer_Sync_PushFailureAbortsMerge(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{posts: posts(5), pushErr: fmt.Errorf("%w: reset by peer", remote.ErrNetworkFailure)}
	syncer := NewSyncer(store, rem, nil, Config{})

	_, err := syncer.Sync(context.Background())

	assert.ErrorIs(t, err, remote.ErrNetworkFailure)
	assert.Equal(t, 3, store.Len())
}

func TestSyncer_Sync_KeepsQuotesAddedDuringRoundTrip(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{posts: posts(5)}
	rem.beforeReturn = func() {
		_, err := store.AddQuote("added while syncing", "Local")
		assert.NoError(t, err)
	}
	syncer := NewSyncer(store, rem, nil, Config{})

	report, err := syncer.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 9, report.Total)
	all := store.All()
	assert.Equal(t, "added while syncing", all[3].Text)
	assert.Equal(t, "remote 1", all[4].Text)
}

func TestSyncer_Sync_CustomConfig(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{posts: posts(5)}
	syncer := NewSyncer(store, rem, nil, Config{FetchLimit: 2, Category: "Remote"})

	report, err := syncer.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Merged)
	assert.Equal(t, "Remote", store.All()[4].Category)
}

func TestSyncer_Sync_TrimsConfiguredCategory(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{posts: posts(1)}
	syncer := NewSyncer(store, rem, nil, Config{Category: "  Remote "})

	_, err := syncer.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Remote", store.All()[3].Category)
	assert.Contains(t, store.Categories(), "Remote")
}

func TestSyncer_Sync_SkipsBlankTitles(t *testing.T) {
	store := quotes.NewStore(quotes.NewMemoryStore())
	rem := &fakeRemote{posts: []remote.Post{{ID: 1, Title: "  "}, {ID: 2, Title: "kept"}}}
	syncer := NewSyncer(store, rem, nil, Config{})

	report, err := syncer.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Report{Fetched: 2, Merged: 1, Total: 4}, report)
}

type failingSaveStore struct{}

func (failingSaveStore) Get(string) (string, bool, error) { return "", false, nil }
func (failingSaveStore) Set(string, string) error        { return errors.New("disk full") }

func TestSyncer_Sync_SaveFailure(t *testing.T) {
	store := quotes.NewStore(failingSaveStore{})
	rem := &fakeRemote{posts: posts(5)}
	recorder := &fakeRecorder{}
	syncer := NewSyncer(store, rem, recorder, Config{})

	_, err := syncer.Sync(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, settingsstore.QuoteSyncStatusFailed, recorder.calls[0].status)
}
