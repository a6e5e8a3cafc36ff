package allocation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"advisor/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func alloc(symbol, target string) models.StrategyAllocation {
	return models.StrategyAllocation{Symbol: symbol, TargetPercentage: dec(target)}
}

func TestValidate_ExactHundred(t *testing.T) {
	items := []models.StrategyAllocation{
		alloc("VTI", "60.00"),
		alloc("BND", "30.00"),
		alloc("GLD", "10.00"),
	}
	if err := Validate(items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_WithinTolerance(t *testing.T) {
	items := []models.StrategyAllocation{
		alloc("VTI", "33.333"),
		alloc("BND", "33.333"),
		alloc("GLD", "33.333"),
	}
	// 99.999 is within 0.01 of 100.
	if err := Validate(items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SumMismatch(t *testing.T) {
	cases := [][]models.StrategyAllocation{
		{alloc("VTI", "60.00"), alloc("BND", "39.98")}, // 99.98
		{alloc("VTI", "60.50"), alloc("BND", "40.00")}, // 100.50
	}
	for _, items := range cases {
		err := Validate(items)
		var mismatch *SumMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected SumMismatchError, got %v", err)
		}
	}
}

func TestValidate_EmptySet(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrEmptySet) {
		t.Fatalf("expected ErrEmptySet, got %v", err)
	}
}

func TestValidate_SymbolRules(t *testing.T) {
	var bound *BoundViolationError

	err := Validate([]models.StrategyAllocation{alloc("", "100")})
	if !errors.As(err, &bound) {
		t.Fatalf("expected BoundViolationError for empty symbol, got %v", err)
	}

	err = Validate([]models.StrategyAllocation{alloc("TOOLONGSYMBOL", "100")})
	if !errors.As(err, &bound) {
		t.Fatalf("expected BoundViolationError for long symbol, got %v", err)
	}
}

func TestValidate_TargetOutOfRange(t *testing.T) {
	var bound *BoundViolationError

	err := Validate([]models.StrategyAllocation{alloc("VTI", "-1")})
	if !errors.As(err, &bound) {
		t.Fatalf("expected BoundViolationError for negative target, got %v", err)
	}

	err = Validate([]models.StrategyAllocation{alloc("VTI", "100.5")})
	if !errors.As(err, &bound) {
		t.Fatalf("expected BoundViolationError for target over 100, got %v", err)
	}
}

func TestValidate_MinMaxBounds(t *testing.T) {
	item := alloc("VTI", "50.00")
	item.MinPercentage = decPtr("60.00")
	rest := alloc("BND", "50.00")

	var bound *BoundViolationError
	if err := Validate([]models.StrategyAllocation{item, rest}); !errors.As(err, &bound) {
		t.Fatalf("expected BoundViolationError for min > target, got %v", err)
	}

	item.MinPercentage = decPtr("40.00")
	item.MaxPercentage = decPtr("45.00")
	if err := Validate([]models.StrategyAllocation{item, rest}); !errors.As(err, &bound) {
		t.Fatalf("expected BoundViolationError for target > max, got %v", err)
	}

	item.MaxPercentage = decPtr("60.00")
	if err := Validate([]models.StrategyAllocation{item, rest}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RowRulesBeforeSum(t *testing.T) {
	// A row violation wins over the sum check even when the sum is also off.
	items := []models.StrategyAllocation{alloc("", "10")}
	var bound *BoundViolationError
	if err := Validate(items); !errors.As(err, &bound) {
		t.Fatalf("expected BoundViolationError, got %v", err)
	}
}
