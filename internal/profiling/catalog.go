package profiling

import "github.com/shopspring/decimal"

// Archetype is one fixed catalog entry: a portfolio allocation template with
// its static risk-match confidence. The four allocation percentages sum to
// exactly 100.
type Archetype struct {
	StrategyName          string          `json:"strategyName"`
	StrategyType          string          `json:"strategyType"`
	ExpectedReturn        decimal.Decimal `json:"expectedReturn"`
	Volatility            decimal.Decimal `json:"volatility"`
	StockAllocation       decimal.Decimal `json:"stockAllocation"`
	BondAllocation        decimal.Decimal `json:"bondAllocation"`
	AlternativeAllocation decimal.Decimal `json:"alternativeAllocation"`
	CashAllocation        decimal.Decimal `json:"cashAllocation"`
	Reasoning             string          `json:"reasoning"`
	RiskMatchScore        int             `json:"riskMatchScore"`
}

var (
	conservativeIncome = Archetype{
		StrategyName:          "Conservative Income",
		StrategyType:          "conservative",
		ExpectedReturn:        decimal.RequireFromString("4.5"),
		Volatility:            decimal.RequireFromString("5.0"),
		StockAllocation:       decimal.RequireFromString("20.0"),
		BondAllocation:        decimal.RequireFromString("70.0"),
		AlternativeAllocation: decimal.RequireFromString("5.0"),
		CashAllocation:        decimal.RequireFromString("5.0"),
		Reasoning:             "Low risk tolerance with focus on capital preservation and steady income",
		RiskMatchScore:        95,
	}

	balancedGrowth = Archetype{
		StrategyName:          "Balanced Growth",
		StrategyType:          "moderate",
		ExpectedReturn:        decimal.RequireFromString("7.5"),
		Volatility:            decimal.RequireFromString("10.0"),
		StockAllocation:       decimal.RequireFromString("60.0"),
		BondAllocation:        decimal.RequireFromString("35.0"),
		AlternativeAllocation: decimal.RequireFromString("5.0"),
		CashAllocation:        decimal.RequireFromString("0.0"),
		Reasoning:             "Balanced approach with moderate risk for steady growth",
		RiskMatchScore:        90,
	}

	aggressiveGrowth = Archetype{
		StrategyName:          "Aggressive Growth",
		StrategyType:          "aggressive",
		ExpectedReturn:        decimal.RequireFromString("12.0"),
		Volatility:            decimal.RequireFromString("18.0"),
		StockAllocation:       decimal.RequireFromString("85.0"),
		BondAllocation:        decimal.RequireFromString("10.0"),
		AlternativeAllocation: decimal.RequireFromString("5.0"),
		CashAllocation:        decimal.RequireFromString("0.0"),
		Reasoning:             "High growth potential with higher volatility for long-term investors",
		RiskMatchScore:        92,
	}
)

// Catalog returns every archetype in ascending risk order.
func Catalog() []Archetype {
	return []Archetype{conservativeIncome, balancedGrowth, aggressiveGrowth}
}

// RecommendationsFor looks up catalog entries for a raw risk score.
//
// The catalog is a 3-bucket split: very-aggressive scores land in the
// aggressive bucket. That asymmetry against the 4-tier classifier is
// intentional and load-bearing for existing clients.
func RecommendationsFor(score int) []Archetype {
	switch {
	case score < 30:
		return []Archetype{conservativeIncome}
	case score < 60:
		return []Archetype{balancedGrowth}
	default:
		return []Archetype{aggressiveGrowth}
	}
}
