package quotes

import (
	"fmt"
	"strings"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// AddQuote trims text and category and appends them as a new quote.
// It returns ErrValidation, without touching the collection, when either is
// empty.
func (s *Store) AddQuote(text, category string) (entities.Quote, error) {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)
	if text == "" || category == "" {
		return entities.Quote{}, ErrValidation
	}

	quote := entities.Quote{Text: text, Category: category}
	if _, err := s.appendAndSave([]entities.Quote{quote}); err != nil {
		return entities.Quote{}, err
	}
	return quote, nil
}

// ImportQuotes appends the quotes in a JSON payload, which may be an array of
// quotes or a single quote object. The payload is validated as a whole: on
// ErrMalformedPayload or ErrInvalidShape nothing is added.
func (s *Store) ImportQuotes(payload []byte) (int, error) {
	imported, err := decodeQuotes(payload, true)
	if err != nil {
		return 0, err
	}
	if _, err := s.appendAndSave(imported); err != nil {
		return 0, err
	}
	return len(imported), nil
}

// ExportQuotes renders the whole collection as a JSON array indented with two
// spaces. The same collection always produces the same bytes.
func (s *Store) ExportQuotes() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := encodeQuotes(s.quotes, true)
	if err != nil {
		return nil, fmt.Errorf("failed to export quotes: %w", err)
	}
	return data, nil
}

// Merge appends quotes to the end of the collection and returns the new
// collection size. Existing quotes are never replaced or deduplicated.
func (s *Store) Merge(quotes []entities.Quote) (int, error) {
	return s.appendAndSave(quotes)
}

func (s *Store) appendAndSave(quotes []entities.Quote) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := len(s.quotes)
	s.quotes = append(s.quotes, quotes...)
	if err := s.save(s.quotes); err != nil {
		s.quotes = s.quotes[:previous]
		return previous, err
	}
	return len(s.quotes), nil
}
