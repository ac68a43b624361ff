package quotes

import (
	"math"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// Pick draws one quote uniformly from the quotes matching category ("all"
// matches every quote). It returns the quote and its position within the
// matching subset, or ok=false when nothing matches.
func Pick(quotes []entities.Quote, category string, random func() float64) (quote entities.Quote, index int, ok bool) {
	subset := filterByCategory(quotes, normalizeCategory(category))
	if len(subset) == 0 {
		return entities.Quote{}, 0, false
	}

	index = int(math.Floor(random() * float64(len(subset))))
	if index >= len(subset) {
		index = len(subset) - 1
	}
	return subset[index], index, true
}

// ListCategories returns "all" followed by every distinct category in the
// order it first appears.
func ListCategories(quotes []entities.Quote) []string {
	categories := []string{entities.CategoryAll}
	seen := make(map[string]bool)
	for _, q := range quotes {
		if seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		categories = append(categories, q.Category)
	}
	return categories
}

func filterByCategory(quotes []entities.Quote, category string) []entities.Quote {
	if category == entities.CategoryAll {
		return quotes
	}
	var subset []entities.Quote
	for _, q := range quotes {
		if q.Category == category {
			subset = append(subset, q)
		}
	}
	return subset
}

// Categories lists the categories of the current collection.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ListCategories(s.quotes)
}

// PickQuote picks a random quote under category and records it as the last
// quote shown to session. session may be nil.
func (s *Store) PickQuote(session KeyValueStore, category string) (entities.Quote, bool) {
	category = normalizeCategory(category)

	s.mu.RLock()
	quote, index, ok := Pick(s.quotes, category, s.random)
	s.mu.RUnlock()

	if !ok {
		return entities.Quote{}, false
	}

	saveLastShown(session, entities.LastShown{
		Category: category,
		Index:    index,
		Text:     quote.Text,
	})
	return quote, true
}

// CurrentQuote returns the quote session saw last under category, as long as
// that record still points at the same quote. Otherwise it picks a new one.
func (s *Store) CurrentQuote(session KeyValueStore, category string) (entities.Quote, bool) {
	category = normalizeCategory(category)

	if record, found := loadLastShown(session); found && record.Category == category {
		s.mu.RLock()
		subset := filterByCategory(s.quotes, category)
		var quote entities.Quote
		valid := record.Index >= 0 && record.Index < len(subset)
		if valid {
			quote = subset[record.Index]
			valid = quote.Text == record.Text
		}
		s.mu.RUnlock()

		if valid {
			return quote, true
		}
	}

	return s.PickQuote(session, category)
}
