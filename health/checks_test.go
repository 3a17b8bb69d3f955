package health

import (
	"context"
	"errors"
	"testing"
)

// TestQuotaChecker_Healthy verifies quota below the warning ratio is healthy.
func TestQuotaChecker_Healthy(t *testing.T) {
	checker := NewQuotaChecker(QuotaCheckerConfig{}, func() (int64, int64) {
		return 100, 8000
	})

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %v: %s", result.Status, result.Message)
	}
	if result.Details["daily_used"] != int64(100) {
		t.Errorf("expected daily_used=100, got %v", result.Details["daily_used"])
	}
}

// TestQuotaChecker_Degraded verifies quota past the warning ratio is degraded.
func TestQuotaChecker_Degraded(t *testing.T) {
	checker := NewQuotaChecker(QuotaCheckerConfig{}, func() (int64, int64) {
		return 7300, 8000 // 91.25%
	})

	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("expected degraded, got %v: %s", result.Status, result.Message)
	}
}

// TestQuotaChecker_Unhealthy verifies quota past the critical ratio is unhealthy.
func TestQuotaChecker_Unhealthy(t *testing.T) {
	checker := NewQuotaChecker(QuotaCheckerConfig{}, func() (int64, int64) {
		return 7800, 8000 // 97.5%
	})

	result := checker.Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %v: %s", result.Status, result.Message)
	}
	if !errors.Is(result.Error, ErrCheckFailed) {
		t.Errorf("expected ErrCheckFailed, got %v", result.Error)
	}
}

// TestQuotaChecker_CustomThresholds verifies configured ratios are applied.
func TestQuotaChecker_CustomThresholds(t *testing.T) {
	checker := NewQuotaChecker(QuotaCheckerConfig{
		WarningRatio:  0.5,
		CriticalRatio: 0.8,
	}, func() (int64, int64) {
		return 60, 100
	})

	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("expected degraded at 60%% with 50%% warning, got %v", result.Status)
	}
}

// TestQuotaChecker_NoBudget verifies a zero limit reports healthy.
func TestQuotaChecker_NoBudget(t *testing.T) {
	checker := NewQuotaChecker(QuotaCheckerConfig{}, func() (int64, int64) {
		return 0, 0
	})

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy with no budget, got %v", result.Status)
	}
}

// TestQuotaChecker_CancelledContext verifies cancellation short-circuits.
func TestQuotaChecker_CancelledContext(t *testing.T) {
	checker := NewQuotaChecker(QuotaCheckerConfig{}, func() (int64, int64) {
		t.Error("snapshot should not be called with cancelled context")
		return 0, 0
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := checker.Check(ctx)
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy on cancelled context, got %v", result.Status)
	}
}

// TestBreakerChecker_States verifies the mapping from breaker state to health.
func TestBreakerChecker_States(t *testing.T) {
	tests := []struct {
		state    string
		failures int
		want     Status
	}{
		{"closed", 0, StatusHealthy},
		{"closed", 3, StatusHealthy},
		{"half-open", 5, StatusDegraded},
		{"open", 5, StatusUnhealthy},
	}

	for _, tt := range tests {
		checker := NewBreakerChecker(func() (string, int) {
			return tt.state, tt.failures
		})

		result := checker.Check(context.Background())
		if result.Status != tt.want {
			t.Errorf("state %q: expected %v, got %v", tt.state, tt.want, result.Status)
		}
		if result.Details["failures"] != tt.failures {
			t.Errorf("state %q: expected failures=%d, got %v", tt.state, tt.failures, result.Details["failures"])
		}
	}
}

// TestCacheChecker_NoSharedTier verifies a nil ping callback is healthy.
func TestCacheChecker_NoSharedTier(t *testing.T) {
	checker := NewCacheChecker(nil)

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy with no shared tier, got %v", result.Status)
	}
}

// TestCacheChecker_PingOK verifies a reachable shared tier is healthy.
func TestCacheChecker_PingOK(t *testing.T) {
	checker := NewCacheChecker(func(ctx context.Context) error {
		return nil
	})

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %v", result.Status)
	}
}

// TestCacheChecker_PingFails verifies an unreachable shared tier is degraded,
// not unhealthy, since governed calls still work against the local tier.
func TestCacheChecker_PingFails(t *testing.T) {
	checker := NewCacheChecker(func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("expected degraded, got %v", result.Status)
	}
	if result.Details["error"] != "connection refused" {
		t.Errorf("expected error detail, got %v", result.Details["error"])
	}
}
