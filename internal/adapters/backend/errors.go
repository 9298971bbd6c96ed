package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any call whose session was missing or
// rejected by the backend. The client's AuthFailureHandler has already run
// when a caller sees it.
var ErrUnauthorized = errors.New("not authorized")

// Error reasons the backend uses to signal an invalid session.
var authFailureReasons = map[string]struct{}{
	"not authorized":    {},
	"session not found": {},
}

// DomainError carries a non-empty Error field from a response envelope.
// Reason is the backend's machine-readable string, unchanged.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Reason extracts the backend reason from err, or "" when err is not a
// DomainError.
func Reason(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
