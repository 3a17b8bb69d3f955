package govern

import (
	"errors"
	"fmt"
)

// Sentinel errors for governed calls. Both are local conditions: no remote
// call was attempted and no breaker state was mutated.
var (
	// ErrQuotaExceeded is returned when the per-second or per-day quota
	// budget is exhausted.
	ErrQuotaExceeded = errors.New("govern: quota exceeded")

	// ErrDependencyUnavailable is returned when the circuit breaker is
	// rejecting calls to the remote dependency.
	ErrDependencyUnavailable = errors.New("govern: dependency unavailable")
)

// RemoteError wraps an error raised by the remote call function. It always
// corresponds to a recorded breaker failure.
type RemoteError struct {
	// Op is the operation name from the governed Call.
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("govern: remote call %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Kind classifies a failure returned by Facade.Execute so callers can decide
// whether to retry immediately, retry later, or give up without knowing which
// tier failed.
type Kind int

const (
	// KindUnknown means the error did not originate from the facade.
	KindUnknown Kind = iota
	// KindQuotaExceeded means a quota budget was exhausted locally.
	KindQuotaExceeded
	// KindDependencyUnavailable means the breaker is open.
	KindDependencyUnavailable
	// KindRemoteFailure means the remote call itself failed.
	KindRemoteFailure
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindDependencyUnavailable:
		return "dependency_unavailable"
	case KindRemoteFailure:
		return "remote_failure"
	default:
		return "unknown"
	}
}

// Classify returns the failure kind for an error returned by Execute.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrQuotaExceeded):
		return KindQuotaExceeded
	case errors.Is(err, ErrDependencyUnavailable):
		return KindDependencyUnavailable
	default:
		var re *RemoteError
		if errors.As(err, &re) {
			return KindRemoteFailure
		}
		return KindUnknown
	}
}

// Retryable reports whether the failure is transient. Quota and breaker
// rejections are always retryable after a backoff; remote failures are not
// classified further here.
func Retryable(err error) bool {
	k := Classify(err)
	return k == KindQuotaExceeded || k == KindDependencyUnavailable
}
