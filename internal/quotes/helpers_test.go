package quotes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// failingStore fails every read and/or write.
type failingStore struct {
	failGet bool
	failSet bool
	values  map[string]string
}

var errStorage = errors.New("storage unavailable")

func (f *failingStore) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errStorage
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *failingStore) Set(key, value string) error {
	if f.failSet {
		return errStorage
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
	return nil
}

// fixedRandom returns a random source that always yields v.
func fixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

func newSeededStore(t *testing.T) (*Store, *MemoryStore) {
	t.Helper()
	durable := NewMemoryStore()
	store := NewStore(durable)
	require.Len(t, store.All(), 3)
	return store, durable
}

func storedQuotes(t *testing.T, durable KeyValueStore) []entities.Quote {
	t.Helper()
	raw, found, err := durable.Get(entities.SettingKeyQuotes)
	require.NoError(t, err)
	require.True(t, found, "quotes should have been saved")
	quotes, err := decodeQuotes([]byte(raw), false)
	require.NoError(t, err)
	return quotes
}
