package health

import (
	"context"
	"testing"
)

func BenchmarkQuotaChecker_Check(b *testing.B) {
	checker := NewQuotaChecker(QuotaCheckerConfig{}, func() (int64, int64) {
		return 4000, 8000
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = checker.Check(ctx)
	}
}

func BenchmarkAggregator_CheckAll(b *testing.B) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register("quota", NewQuotaChecker(QuotaCheckerConfig{}, func() (int64, int64) {
		return 4000, 8000
	}))
	agg.Register("breaker", NewBreakerChecker(func() (string, int) {
		return "closed", 0
	}))
	agg.Register("cache", NewCacheChecker(nil))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = agg.CheckAll(ctx)
	}
}
