package quotes

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// load reads the collection from the durable store. Any failure is logged and
// the default collection is used instead.
func (s *Store) load() []entities.Quote {
	raw, found, err := s.durable.Get(entities.SettingKeyQuotes)
	if err != nil {
		log.Printf("Quotes: failed to read stored quotes, using defaults: %v", err)
		return DefaultQuotes()
	}
	if !found {
		return DefaultQuotes()
	}

	quotes, err := decodeQuotes([]byte(raw), false)
	if err != nil {
		log.Printf("Quotes: stored quotes are invalid, using defaults: %v", err)
		return DefaultQuotes()
	}
	return quotes
}

// save writes quotes to the durable store, replacing what was there.
func (s *Store) save(quotes []entities.Quote) error {
	data, err := encodeQuotes(quotes, false)
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %w", err)
	}
	if err := s.durable.Set(entities.SettingKeyQuotes, string(data)); err != nil {
		return fmt.Errorf("failed to save quotes: %w", err)
	}
	return nil
}

// SelectedCategory returns the persisted category filter. A missing value, or
// one that no longer matches any quote's category, yields "all".
func (s *Store) SelectedCategory() string {
	value, found, err := s.durable.Get(entities.SettingKeySelectedCategory)
	if err != nil {
		log.Printf("Quotes: failed to read selected category: %v", err)
		return entities.CategoryAll
	}
	if !found {
		return entities.CategoryAll
	}

	value = normalizeCategory(value)
	if !slices.Contains(s.Categories(), value) {
		return entities.CategoryAll
	}
	return value
}

// SaveSelectedCategory persists the category filter. An empty value is stored
// as "all".
func (s *Store) SaveSelectedCategory(category string) error {
	category = normalizeCategory(category)
	if err := s.durable.Set(entities.SettingKeySelectedCategory, category); err != nil {
		return fmt.Errorf("failed to save selected category: %w", err)
	}
	return nil
}

func loadLastShown(session KeyValueStore) (entities.LastShown, bool) {
	if session == nil {
		return entities.LastShown{}, false
	}
	raw, found, err := session.Get(entities.SessionKeyLastQuote)
	if err != nil {
		log.Printf("Quotes: failed to read last shown quote: %v", err)
		return entities.LastShown{}, false
	}
	if !found {
		return entities.LastShown{}, false
	}

	var record entities.LastShown
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return entities.LastShown{}, false
	}
	return record, true
}

func saveLastShown(session KeyValueStore, record entities.LastShown) {
	if session == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := session.Set(entities.SessionKeyLastQuote, string(data)); err != nil {
		log.Printf("Quotes: failed to record last shown quote: %v", err)
	}
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return entities.CategoryAll
	}
	return category
}
