package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func staticChecker(name string, result Result) Checker {
	return NewCheckerFunc(name, func(ctx context.Context) Result {
		return result
	})
}

// TestAggregator_RegisterAndCheckAll verifies all registered checks run.
func TestAggregator_RegisterAndCheckAll(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register("quota", staticChecker("quota", Healthy("ok")))
	agg.Register("breaker", staticChecker("breaker", Healthy("ok")))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for name, result := range results {
		if result.Status != StatusHealthy {
			t.Errorf("check %q: expected healthy, got %v", name, result.Status)
		}
		if result.Duration < 0 {
			t.Errorf("check %q: expected non-negative duration", name)
		}
	}
}

// TestAggregator_OverallStatus verifies the folding rules.
func TestAggregator_OverallStatus(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})

	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{
			name:    "empty",
			results: map[string]Result{},
			want:    StatusHealthy,
		},
		{
			name: "all healthy",
			results: map[string]Result{
				"a": Healthy("ok"),
				"b": Healthy("ok"),
			},
			want: StatusHealthy,
		},
		{
			name: "one degraded",
			results: map[string]Result{
				"a": Healthy("ok"),
				"b": Degraded("slow"),
			},
			want: StatusDegraded,
		},
		{
			name: "unhealthy wins over degraded",
			results: map[string]Result{
				"a": Degraded("slow"),
				"b": Unhealthy("down", ErrCheckFailed),
			},
			want: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agg.OverallStatus(tt.results); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestAggregator_CheckByName verifies single-check lookup.
func TestAggregator_CheckByName(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register("quota", staticChecker("quota", Degraded("running low")))

	result, err := agg.Check(context.Background(), "quota")
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if result.Status != StatusDegraded {
		t.Errorf("expected degraded, got %v", result.Status)
	}

	_, err = agg.Check(context.Background(), "missing")
	if !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("expected ErrCheckerNotFound, got: %v", err)
	}
}

// TestAggregator_Unregister verifies removal.
func TestAggregator_Unregister(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register("quota", staticChecker("quota", Healthy("ok")))
	agg.Register("breaker", staticChecker("breaker", Healthy("ok")))

	agg.Unregister("quota")

	names := agg.CheckerNames()
	if len(names) != 1 || names[0] != "breaker" {
		t.Errorf("expected [breaker], got %v", names)
	}
}

// TestAggregator_RegistrationOrder verifies CheckerNames preserves order.
func TestAggregator_RegistrationOrder(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register("quota", staticChecker("quota", Healthy("ok")))
	agg.Register("breaker", staticChecker("breaker", Healthy("ok")))
	agg.Register("cache", staticChecker("cache", Healthy("ok")))

	names := agg.CheckerNames()
	want := []string{"quota", "breaker", "cache"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

// TestAggregator_SlowCheckTimesOut verifies the aggregate timeout applies.
func TestAggregator_SlowCheckTimesOut(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 20 * time.Millisecond})
	agg.Register("slow", NewCheckerFunc("slow", func(ctx context.Context) Result {
		select {
		case <-time.After(time.Second):
			return Healthy("finally")
		case <-ctx.Done():
			return Unhealthy("cancelled", ctx.Err())
		}
	}))

	results := agg.CheckAll(context.Background())
	result, ok := results["slow"]
	if !ok {
		t.Fatal("expected result for slow checker")
	}
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy on timeout, got %v", result.Status)
	}
}

// TestAggregator_Sequential verifies sequential mode produces the same results.
func TestAggregator_Sequential(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Sequential: true})
	agg.Register("a", staticChecker("a", Healthy("ok")))
	agg.Register("b", staticChecker("b", Degraded("slow")))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if agg.OverallStatus(results) != StatusDegraded {
		t.Errorf("expected degraded overall")
	}
}
