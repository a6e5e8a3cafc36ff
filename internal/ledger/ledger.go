// Package ledger keeps the performance and backtest history of strategies
// consistent: periods never overlap and backtest statuses only move forward.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"advisor/internal/models"
	"advisor/internal/repository"
)

// backtestTransitions is the closed set of legal status moves. Completed and
// failed are absorbing.
var backtestTransitions = map[string][]string{
	models.BacktestStatusPending: {models.BacktestStatusRunning},
	models.BacktestStatusRunning: {models.BacktestStatusCompleted, models.BacktestStatusFailed},
}

func transitionAllowed(from, to string) bool {
	for _, next := range backtestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Ledger struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// RecordPerformance appends one performance snapshot. The overlap check and
// the insert run in one transaction so two concurrent writers cannot both
// clear the check and interleave overlapping periods.
func (l *Ledger) RecordPerformance(ctx context.Context, item *models.StrategyPerformance) error {
	if l == nil || l.Repo == nil || item == nil {
		return nil
	}
	if item.PeriodStart.After(item.PeriodEnd) {
		return ErrInvalidPeriod
	}
	strat, err := l.Repo.GetStrategyByID(ctx, item.StrategyID)
	if err != nil {
		return err
	}
	if strat == nil {
		return ErrStrategyNotFound
	}

	return l.Repo.InTx(ctx, func(tx *gorm.DB) error {
		overlapping, err := l.Repo.CountOverlappingPerformanceTx(ctx, tx, item.StrategyID, item.PeriodStart, item.PeriodEnd)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return &PeriodOverlapError{
				StrategyID:  item.StrategyID,
				PeriodStart: item.PeriodStart,
				PeriodEnd:   item.PeriodEnd,
			}
		}
		if err := l.Repo.InsertStrategyPerformanceTx(ctx, tx, item); err != nil {
			return err
		}
		if l.Logger != nil {
			l.Logger.Info("performance recorded",
				zap.Uint64("strategy_id", item.StrategyID),
				zap.Time("period_start", item.PeriodStart),
				zap.Time("period_end", item.PeriodEnd),
			)
		}
		return nil
	})
}

// History returns the recorded snapshots for a strategy ordered by period.
func (l *Ledger) History(ctx context.Context, params repository.ListPerformanceParams) ([]models.StrategyPerformance, error) {
	if l == nil || l.Repo == nil {
		return nil, nil
	}
	return l.Repo.ListStrategyPerformance(ctx, params)
}

// CreateBacktest registers a new pending backtest for the analytics job.
func (l *Ledger) CreateBacktest(ctx context.Context, item *models.Backtest) error {
	if l == nil || l.Repo == nil || item == nil {
		return nil
	}
	if !item.StartDate.Before(item.EndDate) {
		return ErrInvalidDateRange
	}
	if !item.InitialCapital.IsPositive() {
		return ErrNonPositiveCapital
	}
	strat, err := l.Repo.GetStrategyByID(ctx, item.StrategyID)
	if err != nil {
		return err
	}
	if strat == nil {
		return ErrStrategyNotFound
	}
	item.Status = models.BacktestStatusPending
	return l.Repo.InsertBacktest(ctx, item)
}

// StartBacktest moves pending -> running.
func (l *Ledger) StartBacktest(ctx context.Context, id uint64) error {
	return l.transition(ctx, id, models.BacktestStatusPending, models.BacktestStatusRunning, nil)
}

// BacktestResult carries the completion metrics. They are written exactly
// once, as part of the running -> completed swap.
type BacktestResult struct {
	FinalCapital  decimal.Decimal `json:"final_capital"`
	TotalReturn   decimal.Decimal `json:"total_return"`
	SharpeRatio   decimal.Decimal `json:"sharpe_ratio"`
	MaxDrawdown   decimal.Decimal `json:"max_drawdown"`
	TotalTrades   int             `json:"total_trades"`
	WinningTrades int             `json:"winning_trades"`
}

// CompleteBacktest moves running -> completed and locks in the result.
func (l *Ledger) CompleteBacktest(ctx context.Context, id uint64, result BacktestResult) error {
	now := time.Now().UTC()
	updates := map[string]any{
		"final_capital":  result.FinalCapital,
		"total_return":   result.TotalReturn,
		"sharpe_ratio":   result.SharpeRatio,
		"max_drawdown":   result.MaxDrawdown,
		"total_trades":   result.TotalTrades,
		"winning_trades": result.WinningTrades,
		"completed_at":   now,
	}
	return l.transition(ctx, id, models.BacktestStatusRunning, models.BacktestStatusCompleted, updates)
}

// FailBacktest moves running -> failed. Result fields stay untouched.
func (l *Ledger) FailBacktest(ctx context.Context, id uint64) error {
	return l.transition(ctx, id, models.BacktestStatusRunning, models.BacktestStatusFailed, nil)
}

func (l *Ledger) transition(ctx context.Context, id uint64, from, to string, updates map[string]any) error {
	if l == nil || l.Repo == nil {
		return nil
	}
	item, err := l.Repo.GetBacktestByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrBacktestNotFound
	}
	if !transitionAllowed(item.Status, to) || item.Status != from {
		return &InvalidTransitionError{From: item.Status, To: to}
	}
	// CAS on the current status: a concurrent writer that won the race leaves
	// zero rows for us, which surfaces as an invalid transition, not a
	// double-write.
	affected, err := l.Repo.TransitionBacktestStatus(ctx, id, from, to, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		current, err := l.Repo.GetBacktestByID(ctx, id)
		if err != nil {
			return err
		}
		status := from
		if current != nil {
			status = current.Status
		}
		return &InvalidTransitionError{From: status, To: to}
	}
	if l.Logger != nil {
		l.Logger.Info("backtest transitioned",
			zap.Uint64("backtest_id", id),
			zap.String("from", from),
			zap.String("to", to),
		)
	}
	return nil
}

// SweepStaleRunning fails running backtests older than the cutoff. The
// analytics job is expected to complete or fail its runs; this is the
// backstop when it dies mid-run.
func (l *Ledger) SweepStaleRunning(ctx context.Context, staleAfter time.Duration, limit int) (int, error) {
	if l == nil || l.Repo == nil || staleAfter <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-staleAfter)
	items, err := l.Repo.ListStaleRunningBacktests(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, item := range items {
		affected, err := l.Repo.TransitionBacktestStatus(ctx, item.ID, models.BacktestStatusRunning, models.BacktestStatusFailed, nil)
		if err != nil {
			return failed, err
		}
		if affected > 0 {
			failed++
		}
	}
	if failed > 0 && l.Logger != nil {
		l.Logger.Warn("failed stale running backtests", zap.Int("count", failed))
	}
	return failed, nil
}
