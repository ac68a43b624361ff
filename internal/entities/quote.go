package entities

// Quote is a single quotation with the category it is filed under.
// Quotes carry no identifier: two quotes are equal when both fields match.
type Quote struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// CategoryAll is the filter value that selects every quote.
const CategoryAll = "all"

// LastShown records which quote a session saw last and under which filter.
// Index is the position within the filtered subset, so it is only meaningful
// together with Category.
type LastShown struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Text     string `json:"text"`
}
