// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a 404 from the API; callers render a distinct
	// "not found" view instead of a generic failure.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks a request short-circuited by the circuit
	// breaker before reaching the network.
	ErrUnavailable = errors.New("api unavailable")
)

// StatusError is a non-2xx response the server returned deliberately.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server rejected request: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err stems from a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
