package quotes

import "github.com/mrlokans/quotekeeper/internal/entities"

// DefaultQuotes returns the collection used when nothing has been stored yet.
func DefaultQuotes() []entities.Quote {
	return []entities.Quote{
		{Text: "The best way to get started is to quit talking and begin doing.", Category: "Motivation"},
		{Text: "Success is not in what you have, but who you are.", Category: "Success"},
		{Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
	}
}
