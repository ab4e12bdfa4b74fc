package table

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation that referenced a record no longer in the
// working set. Under correct UI sequencing this cannot happen; callers treat
// it as a no-op and log it rather than surfacing it to the user.
var ErrNotFound = errors.New("record not in working set")

// ValidationError reports a draft that failed local normalization. The
// mutation is never attempted and the draft stays visible for correction.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a local pre-flight rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
