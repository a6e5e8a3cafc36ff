package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"advisor/internal/models"
	"advisor/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but only the ledger-facing subset carries
// real behavior.
type stubRepo struct {
	strategies map[uint64]*models.Strategy
	backtests  map[uint64]*models.Backtest
	perf       []models.StrategyPerformance
	nextID     uint64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		strategies: map[uint64]*models.Strategy{},
		backtests:  map[uint64]*models.Backtest{},
	}
}

func (s *stubRepo) addStrategy(id uint64) {
	s.strategies[id] = &models.Strategy{ID: id, Name: "stub", StrategyType: models.StrategyTypeCustom, Version: 1}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) CreateStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error {
	s.nextID++
	item.ID = s.nextID
	s.strategies[item.ID] = item
	return nil
}

func (s *stubRepo) GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error) {
	return s.strategies[id], nil
}

func (s *stubRepo) ListStrategies(ctx context.Context, params repository.ListStrategiesParams) ([]models.Strategy, error) {
	return nil, nil
}

func (s *stubRepo) CountStrategies(ctx context.Context, params repository.ListStrategiesParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpdateStrategyFields(ctx context.Context, id uint64, fields map[string]any) error {
	return nil
}

func (s *stubRepo) SetStrategyActive(ctx context.Context, id uint64, active bool) error { return nil }
func (s *stubRepo) DeleteStrategy(ctx context.Context, id uint64) error                 { return nil }

func (s *stubRepo) BumpStrategyVersionTx(ctx context.Context, tx *gorm.DB, id uint64, fromVersion uint64) (int64, error) {
	return 0, nil
}

func (s *stubRepo) DeleteAllocationsByStrategyIDTx(ctx context.Context, tx *gorm.DB, strategyID uint64) error {
	return nil
}

func (s *stubRepo) InsertAllocationsTx(ctx context.Context, tx *gorm.DB, items []models.StrategyAllocation) error {
	return nil
}

func (s *stubRepo) ListAllocationsByStrategyID(ctx context.Context, strategyID uint64) ([]models.StrategyAllocation, error) {
	return nil, nil
}

func (s *stubRepo) InsertBacktest(ctx context.Context, item *models.Backtest) error {
	s.nextID++
	item.ID = s.nextID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	s.backtests[item.ID] = item
	return nil
}

func (s *stubRepo) GetBacktestByID(ctx context.Context, id uint64) (*models.Backtest, error) {
	return s.backtests[id], nil
}

func (s *stubRepo) ListBacktests(ctx context.Context, params repository.ListBacktestsParams) ([]models.Backtest, error) {
	return nil, nil
}

func (s *stubRepo) CountBacktests(ctx context.Context, params repository.ListBacktestsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) TransitionBacktestStatus(ctx context.Context, id uint64, from, to string, updates map[string]any) (int64, error) {
	item, ok := s.backtests[id]
	if !ok || item.Status != from {
		return 0, nil
	}
	item.Status = to
	if v, ok := updates["final_capital"].(decimal.Decimal); ok {
		item.FinalCapital = &v
	}
	if v, ok := updates["total_return"].(decimal.Decimal); ok {
		item.TotalReturn = &v
	}
	if v, ok := updates["sharpe_ratio"].(decimal.Decimal); ok {
		item.SharpeRatio = &v
	}
	if v, ok := updates["max_drawdown"].(decimal.Decimal); ok {
		item.MaxDrawdown = &v
	}
	if v, ok := updates["total_trades"].(int); ok {
		item.TotalTrades = &v
	}
	if v, ok := updates["winning_trades"].(int); ok {
		item.WinningTrades = &v
	}
	if v, ok := updates["completed_at"].(time.Time); ok {
		item.CompletedAt = &v
	}
	return 1, nil
}

func (s *stubRepo) ListStaleRunningBacktests(ctx context.Context, before time.Time, limit int) ([]models.Backtest, error) {
	var out []models.Backtest
	for _, item := range s.backtests {
		if item.Status == models.BacktestStatusRunning && item.CreatedAt.Before(before) {
			out = append(out, *item)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *stubRepo) CountOverlappingPerformanceTx(ctx context.Context, tx *gorm.DB, strategyID uint64, periodStart, periodEnd time.Time) (int64, error) {
	var n int64
	for _, row := range s.perf {
		if row.StrategyID != strategyID {
			continue
		}
		if !row.PeriodStart.After(periodEnd) && !row.PeriodEnd.Before(periodStart) {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) InsertStrategyPerformanceTx(ctx context.Context, tx *gorm.DB, item *models.StrategyPerformance) error {
	s.nextID++
	item.ID = s.nextID
	s.perf = append(s.perf, *item)
	return nil
}

func (s *stubRepo) ListStrategyPerformance(ctx context.Context, params repository.ListPerformanceParams) ([]models.StrategyPerformance, error) {
	var out []models.StrategyPerformance
	for _, row := range s.perf {
		if row.StrategyID == params.StrategyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubRepo) InsertRecommendation(ctx context.Context, item *models.Recommendation) error {
	return nil
}

func (s *stubRepo) GetRecommendationByID(ctx context.Context, id uint64) (*models.Recommendation, error) {
	return nil, nil
}

func (s *stubRepo) ListRecommendations(ctx context.Context, params repository.ListRecommendationsParams) ([]models.Recommendation, error) {
	return nil, nil
}

func (s *stubRepo) CountRecommendations(ctx context.Context, params repository.ListRecommendationsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) SetRecommendationActedUpon(ctx context.Context, id uint64, acted bool) (int64, error) {
	return 0, nil
}

func (s *stubRepo) DeleteExpiredRecommendations(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
