package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials indicates AccessKey or SecretKey is empty.
	ErrMissingCredentials = errors.New("catalog: access key and secret key are required")

	// ErrMissingPartnerTag indicates PartnerTag is empty.
	ErrMissingPartnerTag = errors.New("catalog: partner tag is required")

	// ErrEmptyRequest indicates a request is missing its required field,
	// such as search keywords or item identifiers.
	ErrEmptyRequest = errors.New("catalog: request has no query parameters")
)

// APIError is a non-2xx response from the remote catalog API.
type APIError struct {
	// Op is the operation that failed.
	Op string

	// StatusCode is the HTTP status returned.
	StatusCode int

	// Body is the response body, truncated for error messages.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("catalog: %s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Throttled reports whether the remote rejected the request for rate
// reasons. A throttled response means the local limiter is configured
// above the provider's real quota.
func (e *APIError) Throttled() bool {
	return e.StatusCode == 429
}
