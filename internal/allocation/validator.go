// Package allocation enforces the structural invariants of a strategy's
// allocation set. Validation always runs over the whole candidate set so a
// partial edit can never leave a strategy summing away from 100%.
package allocation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"advisor/internal/models"
)

// SumTolerance is how far the target sum may drift from 100.
var SumTolerance = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// MaxSymbolLen bounds ticker symbols.
const MaxSymbolLen = 10

// ErrEmptySet rejects an empty allocation list.
var ErrEmptySet = errors.New("allocation set must not be empty")

// BoundViolationError reports a single row breaking a range rule.
type BoundViolationError struct {
	Symbol string
	Reason string
}

func (e *BoundViolationError) Error() string {
	return fmt.Sprintf("allocation %q: %s", e.Symbol, e.Reason)
}

// SumMismatchError reports a target sum outside tolerance.
type SumMismatchError struct {
	Actual decimal.Decimal
}

func (e *SumMismatchError) Error() string {
	return fmt.Sprintf("allocation targets sum to %s, want 100 within %s", e.Actual.String(), SumTolerance.String())
}

// Validate checks a candidate allocation set. Rules run in order and the
// first violation is returned: non-empty set, per-row symbol and percentage
// bounds, then the sum-to-100 invariant.
func Validate(items []models.StrategyAllocation) error {
	if len(items) == 0 {
		return ErrEmptySet
	}

	sum := decimal.Zero
	for _, item := range items {
		if item.Symbol == "" {
			return &BoundViolationError{Symbol: item.Symbol, Reason: "symbol must not be empty"}
		}
		if len(item.Symbol) > MaxSymbolLen {
			return &BoundViolationError{Symbol: item.Symbol, Reason: fmt.Sprintf("symbol longer than %d chars", MaxSymbolLen)}
		}
		if item.TargetPercentage.IsNegative() || item.TargetPercentage.GreaterThan(hundred) {
			return &BoundViolationError{Symbol: item.Symbol, Reason: "target percentage outside [0,100]"}
		}
		if item.MinPercentage != nil && item.MinPercentage.GreaterThan(item.TargetPercentage) {
			return &BoundViolationError{Symbol: item.Symbol, Reason: "require min <= target"}
		}
		if item.MaxPercentage != nil && item.TargetPercentage.GreaterThan(*item.MaxPercentage) {
			return &BoundViolationError{Symbol: item.Symbol, Reason: "require target <= max"}
		}
		sum = sum.Add(item.TargetPercentage)
	}

	if sum.Sub(hundred).Abs().GreaterThan(SumTolerance) {
		return &SumMismatchError{Actual: sum}
	}
	return nil
}
