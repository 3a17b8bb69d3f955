package govern

import (
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the dependency is presumed healthy.
	StateClosed State = iota
	// StateOpen means all calls are rejected.
	StateOpen
	// StateHalfOpen means a single recovery probe is permitted.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures before the
	// circuit opens.
	// Default: 5
	FailureThreshold int

	// ResetTimeout is how long the circuit stays open before a recovery
	// probe is allowed.
	// Default: 60 seconds
	ResetTimeout time.Duration

	// OnStateChange is called, under the breaker lock, when the state
	// changes. Must not call back into the breaker.
	OnStateChange func(from, to State)
}

// CircuitBreaker isolates one remote dependency. After FailureThreshold
// consecutive failures the circuit opens and every call is rejected until
// ResetTimeout elapses; the first Allow afterwards is granted a single probe.
// Exactly one probe is ever in flight: concurrent callers observing the
// half-open state are rejected until the probe outcome is recorded.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu            sync.Mutex
	state         State
	failures      int
	lastFailure   time.Time
	probeInFlight bool
}

// NewCircuitBreaker creates a new circuit breaker in the closed state.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 60 * time.Second
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Allow reports whether a call may proceed. When the open-state timeout has
// elapsed, the circuit transitions to half-open as a side effect and the
// caller is granted the probe; until that probe's outcome is recorded all
// other callers are rejected.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if time.Since(cb.lastFailure) < cb.config.ResetTimeout {
			return false
		}
		cb.setStateLocked(StateHalfOpen)
		cb.probeInFlight = true
		return true

	case StateHalfOpen:
		if cb.probeInFlight {
			return false
		}
		cb.probeInFlight = true
		return true

	default:
		return false
	}
}

// RecordSuccess records a successful call. A successful half-open probe
// closes the circuit; any success resets the failure streak.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.probeInFlight = false
		cb.setStateLocked(StateClosed)
	}
	cb.failures = 0
}

// RecordFailure records a failed call. A failed half-open probe reopens the
// circuit immediately; in the closed state the circuit opens once the
// consecutive failure count reaches the threshold.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = time.Now()

	switch cb.state {
	case StateHalfOpen:
		cb.probeInFlight = false
		cb.setStateLocked(StateOpen)
	case StateClosed:
		if cb.failures >= cb.config.FailureThreshold {
			cb.setStateLocked(StateOpen)
		}
	}
}

func (cb *CircuitBreaker) setStateLocked(state State) {
	if cb.state == state {
		return
	}
	old := cb.state
	cb.state = state
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(old, state)
	}
}

// BreakerSnapshot is a read-only view of the breaker state.
type BreakerSnapshot struct {
	State       State
	Failures    int
	LastFailure time.Time
}

// Snapshot returns a read-only view of the breaker. It reports the recorded
// state without granting or stealing a recovery probe: an elapsed open-state
// timeout is only acted on by Allow.
func (cb *CircuitBreaker) Snapshot() BreakerSnapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return BreakerSnapshot{
		State:       cb.state,
		Failures:    cb.failures,
		LastFailure: cb.lastFailure,
	}
}
