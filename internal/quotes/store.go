package quotes

import (
	"math/rand/v2"
	"sync"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// KeyValueStore is the storage the quote store persists into.
// Get reports found=false for a missing key rather than an error.
type KeyValueStore interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// Store holds the quote collection in memory and keeps the durable store in
// step with it. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	durable KeyValueStore
	quotes  []entities.Quote
	random  func() float64
}

// NewStore loads the collection from durable, falling back to DefaultQuotes.
func NewStore(durable KeyValueStore) *Store {
	s := &Store{
		durable: durable,
		random:  rand.Float64,
	}
	s.quotes = s.load()
	return s
}

// SetRandom replaces the source of uniform [0,1) values used by PickQuote.
func (s *Store) SetRandom(random func() float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.random = random
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []entities.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]entities.Quote, len(s.quotes))
	copy(result, s.quotes)
	return result
}

// Len returns the number of quotes in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}
