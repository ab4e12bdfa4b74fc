package table

import (
	"strconv"
	"strings"
)

// NormalizeDraft converts raw draft text into a store-ready patch value for
// the given field. A nil result clears the field. Normalization happens
// before any mutation is attempted; a ValidationError means the mutation must
// not be issued.
func NormalizeDraft(field Field, draft string) (any, error) {
	trimmed := strings.TrimSpace(draft)

	if field == FieldLegacyID {
		if trimmed == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, &ValidationError{Field: field, Reason: "must be a whole number"}
		}
		if n < 0 {
			return nil, &ValidationError{Field: field, Reason: "must not be negative"}
		}
		return n, nil
	}

	if trimmed == "" {
		return nil, nil
	}
	return trimmed, nil
}
