package profiling

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCatalog_AllocationsSumToHundred(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	for _, a := range Catalog() {
		sum := a.StockAllocation.
			Add(a.BondAllocation).
			Add(a.AlternativeAllocation).
			Add(a.CashAllocation)
		if !sum.Equal(hundred) {
			t.Fatalf("%s allocations sum to %s, want 100", a.StrategyName, sum)
		}
	}
}

func TestCatalog_AscendingRisk(t *testing.T) {
	entries := Catalog()
	if len(entries) != 3 {
		t.Fatalf("catalog size=%d want=3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i].ExpectedReturn.GreaterThan(entries[i-1].ExpectedReturn) {
			t.Fatalf("expected return not ascending at %s", entries[i].StrategyName)
		}
		if !entries[i].Volatility.GreaterThan(entries[i-1].Volatility) {
			t.Fatalf("volatility not ascending at %s", entries[i].StrategyName)
		}
	}
}

func TestRecommendationsFor_BucketBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{1, "Conservative Income"},
		{29, "Conservative Income"},
		{30, "Balanced Growth"},
		{59, "Balanced Growth"},
		{60, "Aggressive Growth"},
		{100, "Aggressive Growth"},
	}
	for _, tc := range cases {
		got := RecommendationsFor(tc.score)
		if len(got) != 1 {
			t.Fatalf("RecommendationsFor(%d) returned %d entries, want 1", tc.score, len(got))
		}
		if got[0].StrategyName != tc.want {
			t.Fatalf("RecommendationsFor(%d)=%q want=%q", tc.score, got[0].StrategyName, tc.want)
		}
	}
}

// Scores the 4-tier classifier calls very aggressive still land in the
// aggressive catalog bucket; the 3-bucket catalog has no fourth entry.
func TestRecommendationsFor_VeryAggressiveCollapses(t *testing.T) {
	for _, score := range []int{80, 90, 100} {
		tol, _ := Classify(score)
		if tol != VeryAggressive {
			t.Fatalf("Classify(%d)=%s want=very_aggressive", score, tol)
		}
		got := RecommendationsFor(score)
		if len(got) != 1 || got[0].StrategyName != "Aggressive Growth" {
			t.Fatalf("RecommendationsFor(%d)=%v want Aggressive Growth", score, got)
		}
	}
}
