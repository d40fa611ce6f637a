package ofcrse

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no article has the requested slug.
	ErrNotFound = errors.New("ofcrse: not found")

	// ErrCoverDisabled is returned when cover properties are requested for
	// an article with `cover: false`.
	ErrCoverDisabled = errors.New("ofcrse: cover disabled")
)

// ValidationError reports a content entry whose front-matter failed to parse
// or validate.
type ValidationError struct {
	Path  string
	Field string // empty when the whole document is malformed
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the slug has no cover to serve.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCoverDisabled)
}
