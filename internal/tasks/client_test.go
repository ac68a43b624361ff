package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/quotesync"
)

func testConfig(dir string) *config.Config {
	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(dir, "quotes.db")
	cfg.Tasks.Workers = 1
	cfg.Tasks.ReleaseAfter = time.Minute
	cfg.Tasks.CleanupInterval = time.Hour
	return cfg
}

func TestDBPath(t *testing.T) {
	assert.Equal(t, "./quotes-tasks.db", DBPath("./quotes.db"))
	assert.Equal(t, filepath.Join("data", "store-tasks.sqlite"), DBPath(filepath.Join("data", "store.sqlite")))
	assert.Equal(t, "quotes-tasks", DBPath("quotes"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()

	client, err := NewClient(testConfig(tmpDir), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, client)

	// Verify tasks database was created
	tasksDBPath := filepath.Join(tmpDir, "quotes-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestNewClient_ClampsWorkers(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Tasks.Workers = 0

	client, err := NewClient(cfg, nil, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 1, client.workers)
}

func TestClientStartStop(t *testing.T) {
	client, err := NewClient(testConfig(t.TempDir()), nil, nil)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

type fakeQuoteSyncer struct {
	calls chan struct{}
	err   error
}

func (f *fakeQuoteSyncer) SyncNow(ctx context.Context) (quotesync.Report, error) {
	f.calls <- struct{}{}
	return quotesync.Report{Fetched: 5, Merged: 5, Total: 8}, f.err
}

func TestSyncQuotesTaskRuns(t *testing.T) {
	syncer := &fakeQuoteSyncer{calls: make(chan struct{}, 1)}
	client, err := NewClient(testConfig(t.TempDir()), syncer, nil)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.EnqueueSync("test")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case <-syncer.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("sync task was not executed within timeout")
	}
}

func TestSyncQuotesProcessor(t *testing.T) {
	t.Run("fails without a syncer", func(t *testing.T) {
		err := SyncQuotesProcessor(nil)(context.Background(), SyncQuotesTask{})

		assert.Error(t, err)
	})

	t.Run("wraps sync errors", func(t *testing.T) {
		syncErr := errors.New("quote endpoint unreachable")
		syncer := &fakeQuoteSyncer{calls: make(chan struct{}, 1), err: syncErr}

		err := SyncQuotesProcessor(syncer)(context.Background(), SyncQuotesTask{Reason: "api"})

		assert.ErrorIs(t, err, syncErr)
	})
}

func TestSyncQuotesTaskConfig(t *testing.T) {
	cfg := SyncQuotesTask{}.Config()

	assert.Equal(t, "sync_quotes", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

type fakeCleaner struct {
	calls chan time.Duration
}

func (f *fakeCleaner) DeleteOlderThan(retention time.Duration) (int, error) {
	f.calls <- retention
	return 2, nil
}

func TestAuditCleanupTaskRuns(t *testing.T) {
	cleaner := &fakeCleaner{calls: make(chan time.Duration, 1)}
	client, err := NewClient(testConfig(t.TempDir()), nil, cleaner)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.EnqueueAuditCleanup(7)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case retention := <-cleaner.calls:
		assert.Equal(t, 7*24*time.Hour, retention)
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task was not executed within timeout")
	}
}

var _ backlite.Task = SyncQuotesTask{}
