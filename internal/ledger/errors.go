package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStrategyNotFound = errors.New("strategy not found")
	ErrBacktestNotFound = errors.New("backtest not found")

	ErrInvalidPeriod      = errors.New("period start must not be after period end")
	ErrInvalidDateRange   = errors.New("backtest start date must be before end date")
	ErrNonPositiveCapital = errors.New("initial capital must be positive")
)

// PeriodOverlapError rejects a performance period that touches an existing
// one for the same strategy. Bounds are inclusive on both ends.
type PeriodOverlapError struct {
	StrategyID  uint64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

func (e *PeriodOverlapError) Error() string {
	return fmt.Sprintf("performance period [%s, %s] overlaps existing history for strategy %d",
		e.PeriodStart.Format("2006-01-02"), e.PeriodEnd.Format("2006-01-02"), e.StrategyID)
}

// InvalidTransitionError rejects a backtest status change that is not part
// of the pending -> running -> completed|failed chain.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid backtest transition %s -> %s", e.From, e.To)
}
