package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/quotesync"
)

type countingSyncer struct {
	calls   atomic.Int32
	err     error
	block   chan struct{}
	started chan struct{}
}

func (c *countingSyncer) Sync(ctx context.Context) (quotesync.Report, error) {
	c.calls.Add(1)
	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.block != nil {
		<-c.block
	}
	return quotesync.Report{Fetched: 5, Merged: 5, Total: 8}, c.err
}

func TestNewQuoteSyncScheduler_DefaultInterval(t *testing.T) {
	s := NewQuoteSyncScheduler(&countingSyncer{}, 0)

	assert.Equal(t, DefaultQuoteSyncInterval, s.interval)
	assert.Equal(t, 30*time.Second, DefaultQuoteSyncInterval)
}

func TestQuoteSyncScheduler_StartRejectsSubSecondInterval(t *testing.T) {
	s := NewQuoteSyncScheduler(&countingSyncer{}, 100*time.Millisecond)

	err := s.Start(context.Background())

	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestQuoteSyncScheduler_RunsOnInterval(t *testing.T) {
	syncer := &countingSyncer{}
	s := NewQuoteSyncScheduler(syncer, time.Second)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Eventually(t, func() bool {
		next := s.GetNextRunTime()
		return next != nil && next.Before(time.Now().Add(3*time.Second))
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return syncer.calls.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestQuoteSyncScheduler_FailuresDoNotStopPolling(t *testing.T) {
	syncer := &countingSyncer{err: errors.New("quote endpoint unreachable")}
	s := NewQuoteSyncScheduler(syncer, time.Second)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return syncer.calls.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestQuoteSyncScheduler_StopsWhenContextCancelled(t *testing.T) {
	s := NewQuoteSyncScheduler(&countingSyncer{}, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool {
		return !s.IsRunning()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Nil(t, s.GetNextRunTime())
}

func TestQuoteSyncScheduler_StartTwiceIsNoop(t *testing.T) {
	s := NewQuoteSyncScheduler(&countingSyncer{}, time.Minute)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
}

func TestQuoteSyncScheduler_SyncNow(t *testing.T) {
	t.Run("returns the report", func(t *testing.T) {
		s := NewQuoteSyncScheduler(&countingSyncer{}, time.Minute)

		report, err := s.SyncNow(context.Background())

		require.NoError(t, err)
		assert.Equal(t, quotesync.Report{Fetched: 5, Merged: 5, Total: 8}, report)
		assert.False(t, s.IsSyncing())
	})

	t.Run("refuses to overlap a running sync", func(t *testing.T) {
		syncer := &countingSyncer{block: make(chan struct{}), started: make(chan struct{}, 1)}
		s := NewQuoteSyncScheduler(syncer, time.Minute)

		go func() {
			_, _ = s.SyncNow(context.Background())
		}()
		<-syncer.started
		assert.True(t, s.IsSyncing())

		_, err := s.SyncNow(context.Background())
		assert.ErrorIs(t, err, ErrSyncInProgress)

		close(syncer.block)
		assert.Eventually(t, func() bool { return !s.IsSyncing() }, time.Second, 10*time.Millisecond)
		assert.Equal(t, int32(1), syncer.calls.Load())
	})
}

type ctxAwareSyncer struct {
	started chan struct{}
	result  chan error
}

func (c *ctxAwareSyncer) Sync(ctx context.Context) (quotesync.Report, error) {
	c.started <- struct{}{}
	<-ctx.Done()
	c.result <- ctx.Err()
	return quotesync.Report{}, ctx.Err()
}

func TestQuoteSyncScheduler_StopCancelsInFlightSync(t *testing.T) {
	syncer := &ctxAwareSyncer{started: make(chan struct{}, 1), result: make(chan error, 1)}
	s := NewQuoteSyncScheduler(syncer, time.Second)
	require.NoError(t, s.Start(context.Background()))

	select {
	case <-syncer.started:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled sync did not start")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on the in-flight sync")
	}
	assert.ErrorIs(t, <-syncer.result, context.Canceled)
	assert.False(t, s.IsSyncing())
}
