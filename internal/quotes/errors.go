package quotes

import "errors"

// ErrValidation indicates a quote was submitted with an empty text or category.
var ErrValidation = errors.New("both quote text and category are required")

// ErrMalformedPayload indicates an import payload is not valid JSON.
var ErrMalformedPayload = errors.New("import payload is not valid JSON")

// ErrInvalidShape indicates an import payload parsed but is not a quote or a
// list of quotes with string text and category fields.
var ErrInvalidShape = errors.New("import payload does not contain valid quotes")
