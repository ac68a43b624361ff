package quotes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// decodeQuotes parses a JSON payload into quotes. A top-level array is always
// accepted; a single quote object only when allowSingle is set. Either every
// record is valid or nothing is returned.
func decodeQuotes(payload []byte, allowSingle bool) ([]entities.Quote, error) {
	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var records []any
	switch v := raw.(type) {
	case []any:
		records = v
	case map[string]any:
		if !allowSingle {
			return nil, fmt.Errorf("%w: expected an array", ErrInvalidShape)
		}
		records = []any{v}
	default:
		return nil, fmt.Errorf("%w: expected an array or an object", ErrInvalidShape)
	}

	result := make([]entities.Quote, 0, len(records))
	for i, record := range records {
		quote, ok := asQuote(record)
		if !ok {
			return nil, fmt.Errorf("%w: record %d needs non-empty string text and category", ErrInvalidShape, i)
		}
		result = append(result, quote)
	}
	return result, nil
}

// asQuote validates one decoded record. Text and category are stored trimmed
// so a category always matches the filter it is listed under.
func asQuote(record any) (entities.Quote, bool) {
	obj, ok := record.(map[string]any)
	if !ok {
		return entities.Quote{}, false
	}
	text, ok := obj["text"].(string)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return entities.Quote{}, false
	}
	category, ok := obj["category"].(string)
	category = strings.TrimSpace(category)
	if !ok || category == "" {
		return entities.Quote{}, false
	}
	return entities.Quote{Text: text, Category: category}, true
}

// encodeQuotes renders quotes as a JSON array. With indent set the output is
// indented by two spaces, otherwise it is compact. HTML characters are kept
// as-is and there is no trailing newline.
func encodeQuotes(quotes []entities.Quote, indent bool) ([]byte, error) {
	if quotes == nil {
		quotes = []entities.Quote{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(quotes); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
