package profiling

import "encoding/json"

// Tolerance is the discrete risk-tolerance classification, ordered by
// increasing score range.
type Tolerance int

const (
	Conservative Tolerance = iota
	Moderate
	Aggressive
	VeryAggressive
)

// Tolerances lists every tier in ascending order.
var Tolerances = []Tolerance{Conservative, Moderate, Aggressive, VeryAggressive}

func (t Tolerance) String() string {
	switch t {
	case Conservative:
		return "conservative"
	case Moderate:
		return "moderate"
	case Aggressive:
		return "aggressive"
	case VeryAggressive:
		return "very_aggressive"
	}
	return "unknown"
}

// Description is the human explanation served by the enum endpoint.
func (t Tolerance) Description() string {
	switch t {
	case Conservative:
		return "Low risk, stable returns"
	case Moderate:
		return "Balanced risk/reward"
	case Aggressive:
		return "High risk, high potential returns"
	case VeryAggressive:
		return "Maximum risk tolerance"
	}
	return ""
}

func (t Tolerance) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Score computes the 1-100 risk score for a validated input.
//
// The weighted sum is truncated toward zero, not rounded; boundary scores
// depend on that and downstream consumers round-trip against it.
// InvestmentAmount and InvestmentGoal are intentionally not part of the
// formula.
func Score(in Input) int {
	ageScore := 100 - in.Age
	if ageScore < 0 {
		ageScore = 0
	}
	horizonScore := in.TimeHorizonYears * 5
	if horizonScore > 100 {
		horizonScore = 100
	}
	toleranceScore := in.LossTolerance * 10
	knowledgeScore := in.InvestmentKnowledge * 10

	raw := float64(ageScore)*0.2 +
		float64(horizonScore)*0.3 +
		float64(toleranceScore)*0.3 +
		float64(knowledgeScore)*0.2

	score := int(raw)
	if score < 1 {
		score = 1
	}
	if score > 100 {
		score = 100
	}
	return score
}

// classifier thresholds, lower bound inclusive. The final tier runs to 100.
var toleranceThresholds = []struct {
	lower     int
	tolerance Tolerance
	strategy  string
}{
	{80, VeryAggressive, "Aggressive Growth"},
	{60, Aggressive, "Growth Portfolio"},
	{30, Moderate, "Balanced Growth"},
	{1, Conservative, "Conservative Income"},
}

// Classify maps a risk score onto a tolerance tier and the name of the
// recommended catalog strategy for that tier.
func Classify(score int) (Tolerance, string) {
	for _, row := range toleranceThresholds {
		if score >= row.lower {
			return row.tolerance, row.strategy
		}
	}
	return Conservative, "Conservative Income"
}
