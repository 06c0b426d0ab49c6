package tree

import (
	"errors"
	"fmt"
)

// SearchError reports an invalid search expression: unknown or empty tokens,
// an operator outside the allowed set, a value that does not match its
// declared type, or an unknown resource type. These are caller errors raised
// during conversion, never retried, and surfaced verbatim.
type SearchError struct {
	Message string
}

func (e *SearchError) Error() string { return e.Message }

// IsSearchError reports whether err is (or wraps) a SearchError.
func IsSearchError(err error) bool {
	var se *SearchError
	return errors.As(err, &se)
}

func searchErrorf(format string, args ...any) error {
	return &SearchError{Message: fmt.Sprintf(format, args...)}
}
