package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"advisor/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func perfRow(strategyID uint64, start, end string) *models.StrategyPerformance {
	return &models.StrategyPerformance{
		StrategyID:  strategyID,
		PeriodStart: day(start),
		PeriodEnd:   day(end),
		TotalReturn: decimal.RequireFromString("5.25"),
	}
}

func TestRecordPerformance_RejectsOverlap(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	l := &Ledger{Repo: repo}
	ctx := context.Background()

	if err := l.RecordPerformance(ctx, perfRow(1, "2023-01-01", "2023-03-31")); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	// Bounds are inclusive: a period starting on the existing end date overlaps.
	err := l.RecordPerformance(ctx, perfRow(1, "2023-03-31", "2023-06-30"))
	var overlap *PeriodOverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected PeriodOverlapError, got %v", err)
	}

	if err := l.RecordPerformance(ctx, perfRow(1, "2023-04-01", "2023-06-30")); err != nil {
		t.Fatalf("adjacent period rejected: %v", err)
	}
}

func TestRecordPerformance_OverlapScopedToStrategy(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	repo.addStrategy(2)
	l := &Ledger{Repo: repo}
	ctx := context.Background()

	if err := l.RecordPerformance(ctx, perfRow(1, "2023-01-01", "2023-03-31")); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := l.RecordPerformance(ctx, perfRow(2, "2023-01-01", "2023-03-31")); err != nil {
		t.Fatalf("other strategy's identical period rejected: %v", err)
	}
}

func TestRecordPerformance_InvalidPeriod(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	l := &Ledger{Repo: repo}

	err := l.RecordPerformance(context.Background(), perfRow(1, "2023-06-30", "2023-01-01"))
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestRecordPerformance_UnknownStrategy(t *testing.T) {
	l := &Ledger{Repo: newStubRepo()}
	err := l.RecordPerformance(context.Background(), perfRow(7, "2023-01-01", "2023-03-31"))
	if !errors.Is(err, ErrStrategyNotFound) {
		t.Fatalf("expected ErrStrategyNotFound, got %v", err)
	}
}

func newBacktest(strategyID uint64) *models.Backtest {
	return &models.Backtest{
		StrategyID:     strategyID,
		StartDate:      day("2022-01-01"),
		EndDate:        day("2022-12-31"),
		InitialCapital: decimal.NewFromInt(100000),
	}
}

func TestCreateBacktest_ForcesPending(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	l := &Ledger{Repo: repo}

	item := newBacktest(1)
	item.Status = models.BacktestStatusCompleted
	if err := l.CreateBacktest(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Status != models.BacktestStatusPending {
		t.Fatalf("status=%q want=pending", item.Status)
	}
	if item.ID == 0 {
		t.Fatalf("id not assigned")
	}
}

func TestCreateBacktest_Validation(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	l := &Ledger{Repo: repo}
	ctx := context.Background()

	item := newBacktest(1)
	item.EndDate = item.StartDate
	if err := l.CreateBacktest(ctx, item); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	item = newBacktest(1)
	item.InitialCapital = decimal.Zero
	if err := l.CreateBacktest(ctx, item); !errors.Is(err, ErrNonPositiveCapital) {
		t.Fatalf("expected ErrNonPositiveCapital, got %v", err)
	}

	item = newBacktest(99)
	if err := l.CreateBacktest(ctx, item); !errors.Is(err, ErrStrategyNotFound) {
		t.Fatalf("expected ErrStrategyNotFound, got %v", err)
	}
}

func TestBacktestLifecycle(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	l := &Ledger{Repo: repo}
	ctx := context.Background()

	item := newBacktest(1)
	if err := l.CreateBacktest(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := l.StartBacktest(ctx, item.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	result := BacktestResult{
		FinalCapital:  decimal.NewFromInt(112000),
		TotalReturn:   decimal.RequireFromString("12.0"),
		SharpeRatio:   decimal.RequireFromString("1.4"),
		MaxDrawdown:   decimal.RequireFromString("8.5"),
		TotalTrades:   42,
		WinningTrades: 25,
	}
	if err := l.CompleteBacktest(ctx, item.ID, result); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	stored := repo.backtests[item.ID]
	if stored.Status != models.BacktestStatusCompleted {
		t.Fatalf("status=%q want=completed", stored.Status)
	}
	if stored.FinalCapital == nil || !stored.FinalCapital.Equal(result.FinalCapital) {
		t.Fatalf("final capital not stored: %v", stored.FinalCapital)
	}
	if stored.TotalTrades == nil || *stored.TotalTrades != 42 {
		t.Fatalf("total trades not stored: %v", stored.TotalTrades)
	}
	if stored.CompletedAt == nil {
		t.Fatalf("completed_at not stored")
	}
}

func TestBacktestTransitions_IllegalMoves(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	l := &Ledger{Repo: repo}
	ctx := context.Background()

	item := newBacktest(1)
	if err := l.CreateBacktest(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var invalid *InvalidTransitionError

	// pending -> completed skips running.
	if err := l.CompleteBacktest(ctx, item.ID, BacktestResult{}); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError for pending->completed, got %v", err)
	}
	// pending -> failed is not allowed either.
	if err := l.FailBacktest(ctx, item.ID); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError for pending->failed, got %v", err)
	}

	if err := l.StartBacktest(ctx, item.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := l.CompleteBacktest(ctx, item.ID, BacktestResult{}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	// Completed is absorbing.
	if err := l.StartBacktest(ctx, item.ID); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError for completed->running, got %v", err)
	}
	if err := l.FailBacktest(ctx, item.ID); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError for completed->failed, got %v", err)
	}
}

func TestTransition_UnknownBacktest(t *testing.T) {
	l := &Ledger{Repo: newStubRepo()}
	if err := l.StartBacktest(context.Background(), 404); !errors.Is(err, ErrBacktestNotFound) {
		t.Fatalf("expected ErrBacktestNotFound, got %v", err)
	}
}

func TestSweepStaleRunning(t *testing.T) {
	repo := newStubRepo()
	repo.addStrategy(1)
	l := &Ledger{Repo: repo}
	ctx := context.Background()

	stale := newBacktest(1)
	if err := l.CreateBacktest(ctx, stale); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := l.StartBacktest(ctx, stale.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	repo.backtests[stale.ID].CreatedAt = time.Now().UTC().Add(-12 * time.Hour)

	fresh := newBacktest(1)
	if err := l.CreateBacktest(ctx, fresh); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := l.StartBacktest(ctx, fresh.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	failed, err := l.SweepStaleRunning(ctx, 6*time.Hour, 10)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if failed != 1 {
		t.Fatalf("failed=%d want=1", failed)
	}
	if repo.backtests[stale.ID].Status != models.BacktestStatusFailed {
		t.Fatalf("stale status=%q want=failed", repo.backtests[stale.ID].Status)
	}
	if repo.backtests[fresh.ID].Status != models.BacktestStatusRunning {
		t.Fatalf("fresh status=%q want=running", repo.backtests[fresh.ID].Status)
	}
}
