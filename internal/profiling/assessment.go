package profiling

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InvestmentGoal values. Collected on the questionnaire; not an input to the
// score formula in this version.
const (
	GoalRetirement          = "retirement"
	GoalWealthBuilding      = "wealth_building"
	GoalIncomeGeneration    = "income_generation"
	GoalCapitalPreservation = "capital_preservation"
	GoalEducation           = "education"
	GoalHomePurchase        = "home_purchase"
	GoalEmergencyFund       = "emergency_fund"
	GoalTaxOptimization     = "tax_optimization"
)

// InvestmentGoals lists every goal in declaration order, for the enum
// metadata endpoint.
var InvestmentGoals = []string{
	GoalRetirement,
	GoalWealthBuilding,
	GoalIncomeGeneration,
	GoalCapitalPreservation,
	GoalEducation,
	GoalHomePurchase,
	GoalEmergencyFund,
	GoalTaxOptimization,
}

func ValidGoal(v string) bool {
	for _, g := range InvestmentGoals {
		if g == v {
			return true
		}
	}
	return false
}

// NormalizeGoal lowercases a submitted goal so clients may send either the
// enum-endpoint value or the SCREAMING_SNAKE form.
func NormalizeGoal(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// FormatEnumLabel turns a snake_case enum value into a display label,
// e.g. "wealth_building" -> "Wealth Building".
func FormatEnumLabel(v string) string {
	parts := strings.Split(strings.TrimSpace(v), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, " ")
}

// Input is a submitted questionnaire. The wire names follow the public
// assessment API. Immutable once validated; scoring never mutates it.
type Input struct {
	Age                 int             `json:"age"`
	InvestmentAmount    decimal.Decimal `json:"investmentAmount"`
	InvestmentGoal      string          `json:"investmentGoal"`
	TimeHorizonYears    int             `json:"timeHorizonYears"`
	LossTolerance       int             `json:"lossTolerance"`
	InvestmentKnowledge int             `json:"investmentKnowledge"`
}

// FieldError reports one out-of-range questionnaire field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation found in an Input.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid assessment input"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid assessment input: " + strings.Join(parts, "; ")
}

// Validate checks every declared range and reports all violations at once.
// A nil return means the input is safe to score.
func (in Input) Validate() error {
	var fields []FieldError
	if in.Age < 18 || in.Age > 120 {
		fields = append(fields, FieldError{Field: "age", Message: "must be between 18 and 120"})
	}
	if in.InvestmentAmount.IsNegative() {
		fields = append(fields, FieldError{Field: "investmentAmount", Message: "must be >= 0"})
	}
	if !ValidGoal(NormalizeGoal(in.InvestmentGoal)) {
		fields = append(fields, FieldError{Field: "investmentGoal", Message: "unknown investment goal"})
	}
	if in.TimeHorizonYears < 1 || in.TimeHorizonYears > 50 {
		fields = append(fields, FieldError{Field: "timeHorizonYears", Message: "must be between 1 and 50"})
	}
	if in.LossTolerance < 1 || in.LossTolerance > 10 {
		fields = append(fields, FieldError{Field: "lossTolerance", Message: "must be between 1 and 10"})
	}
	if in.InvestmentKnowledge < 1 || in.InvestmentKnowledge > 10 {
		fields = append(fields, FieldError{Field: "investmentKnowledge", Message: "must be between 1 and 10"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
