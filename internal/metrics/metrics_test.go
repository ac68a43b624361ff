package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter int

func (f fixedCounter) Len() int { return int(f) }

type fakeRecorder struct {
	calls int
	err   error
}

func (f *fakeRecorder) SetQuoteSyncStatus(status, message string, merged int) error {
	f.calls++
	return f.err
}

func TestMetrics_QuoteGauge(t *testing.T) {
	m := New(fixedCounter(7))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quotekeeper_quotes 7")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestMetrics_WrapStatusRecorder(t *testing.T) {
	m := New(nil)
	next := &fakeRecorder{}
	recorder := m.WrapStatusRecorder(next)

	require.NoError(t, recorder.SetQuoteSyncStatus("success", "ok", 5))
	require.NoError(t, recorder.SetQuoteSyncStatus("failed", "boom", 0))
	require.NoError(t, recorder.SetQuoteSyncStatus("success", "ok", 2))

	assert.Equal(t, 3, next.calls)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.syncRuns.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.syncRuns.WithLabelValues("failed")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.syncedTotal))
}

func TestMetrics_WrapStatusRecorderPropagatesErrors(t *testing.T) {
	m := New(nil)
	storeErr := errors.New("db locked")

	err := m.WrapStatusRecorder(&fakeRecorder{err: storeErr}).SetQuoteSyncStatus("success", "", 1)

	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.syncRuns.WithLabelValues("success")))
}

func TestMetrics_NilNext(t *testing.T) {
	m := New(nil)

	assert.NoError(t, m.WrapStatusRecorder(nil).SetQuoteSyncStatus("failed", "", 0))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.syncRuns.WithLabelValues("failed")))
}
