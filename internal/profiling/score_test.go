package profiling

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validInput() Input {
	return Input{
		Age:                 25,
		InvestmentAmount:    decimal.NewFromInt(10000),
		InvestmentGoal:      GoalRetirement,
		TimeHorizonYears:    30,
		LossTolerance:       8,
		InvestmentKnowledge: 7,
	}
}

func TestScore_YoungLongHorizon(t *testing.T) {
	// age 25 -> 75*0.2=15, horizon 30 -> capped 100*0.3=30,
	// loss 8 -> 80*0.3=24, knowledge 7 -> 70*0.2=14 => 83.
	got := Score(validInput())
	if got != 83 {
		t.Fatalf("score=%d want=83", got)
	}
}

func TestScore_TruncatesTowardZero(t *testing.T) {
	in := validInput()
	in.Age = 27 // raw = 14.6 + 30 + 24 + 14 = 82.6
	if got := Score(in); got != 82 {
		t.Fatalf("score=%d want=82 (truncated, not rounded)", got)
	}
}

func TestScore_HorizonCappedAt100(t *testing.T) {
	in := validInput()
	in.TimeHorizonYears = 20 // exactly 100 after *5
	base := Score(in)
	in.TimeHorizonYears = 50
	if got := Score(in); got != base {
		t.Fatalf("horizon 50 score=%d want=%d (horizon contribution capped)", got, base)
	}
}

func TestScore_ClampedToFloor(t *testing.T) {
	// Raw zero input; Score itself does not validate.
	if got := Score(Input{Age: 120}); got != 1 {
		t.Fatalf("score=%d want=1", got)
	}
}

func TestScore_IgnoresAmountAndGoal(t *testing.T) {
	in := validInput()
	base := Score(in)
	in.InvestmentAmount = decimal.NewFromInt(9_000_000)
	in.InvestmentGoal = GoalEmergencyFund
	if got := Score(in); got != base {
		t.Fatalf("score=%d want=%d (amount and goal must not affect score)", got, base)
	}
}

func TestScore_MonotonicInLossTolerance(t *testing.T) {
	in := validInput()
	prev := -1
	for loss := 1; loss <= 10; loss++ {
		in.LossTolerance = loss
		got := Score(in)
		if got < prev {
			t.Fatalf("score decreased from %d to %d at lossTolerance=%d", prev, got, loss)
		}
		prev = got
	}
}

func TestClassify_TierBoundaries(t *testing.T) {
	cases := []struct {
		score    int
		want     Tolerance
		strategy string
	}{
		{1, Conservative, "Conservative Income"},
		{29, Conservative, "Conservative Income"},
		{30, Moderate, "Balanced Growth"},
		{59, Moderate, "Balanced Growth"},
		{60, Aggressive, "Growth Portfolio"},
		{79, Aggressive, "Growth Portfolio"},
		{80, VeryAggressive, "Aggressive Growth"},
		{100, VeryAggressive, "Aggressive Growth"},
	}
	for _, tc := range cases {
		tol, strategy := Classify(tc.score)
		if tol != tc.want || strategy != tc.strategy {
			t.Fatalf("Classify(%d)=(%s,%q) want=(%s,%q)", tc.score, tol, strategy, tc.want, tc.strategy)
		}
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	in := Input{
		Age:                 17,
		InvestmentAmount:    decimal.NewFromInt(-1),
		InvestmentGoal:      "day_trading",
		TimeHorizonYears:    0,
		LossTolerance:       11,
		InvestmentKnowledge: 0,
	}
	err := in.Validate()
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != 6 {
		t.Fatalf("fields=%d want=6: %v", len(verr.Fields), verr.Fields)
	}
}

func TestValidate_AcceptsBoundaryValues(t *testing.T) {
	in := Input{
		Age:                 18,
		InvestmentAmount:    decimal.Zero,
		InvestmentGoal:      GoalTaxOptimization,
		TimeHorizonYears:    50,
		LossTolerance:       1,
		InvestmentKnowledge: 10,
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProcessAssessment_NormalizesGoal(t *testing.T) {
	svc := &Service{}
	in := validInput()
	in.InvestmentGoal = "RETIREMENT"
	result, err := svc.ProcessAssessment(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Assessment.InvestmentGoal != GoalRetirement {
		t.Fatalf("goal=%q want=%q", result.Assessment.InvestmentGoal, GoalRetirement)
	}
	if result.RiskScore != 83 || result.RiskTolerance != VeryAggressive {
		t.Fatalf("result=(%d,%s) want=(83,very_aggressive)", result.RiskScore, result.RiskTolerance)
	}
	if result.RecommendedStrategy != "Aggressive Growth" {
		t.Fatalf("recommended=%q want=Aggressive Growth", result.RecommendedStrategy)
	}
}

func TestProcessAssessment_InvalidInput(t *testing.T) {
	svc := &Service{}
	in := validInput()
	in.Age = 121
	result, err := svc.ProcessAssessment(in)
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestFormatEnumLabel(t *testing.T) {
	if got := FormatEnumLabel("wealth_building"); got != "Wealth Building" {
		t.Fatalf("label=%q want=%q", got, "Wealth Building")
	}
	if got := FormatEnumLabel("retirement"); got != "Retirement" {
		t.Fatalf("label=%q want=%q", got, "Retirement")
	}
}
