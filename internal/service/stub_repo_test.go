package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"advisor/internal/models"
	"advisor/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Version CAS and allocation ownership behave like the real store; the rest
// is inert.
type stubRepo struct {
	strategies  map[uint64]*models.Strategy
	allocations map[uint64][]models.StrategyAllocation
	recs        map[uint64]*models.Recommendation
	nextID      uint64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		strategies:  map[uint64]*models.Strategy{},
		allocations: map[uint64][]models.StrategyAllocation{},
		recs:        map[uint64]*models.Recommendation{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) CreateStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error {
	s.nextID++
	item.ID = s.nextID
	for i := range item.Allocations {
		s.nextID++
		item.Allocations[i].ID = s.nextID
		item.Allocations[i].StrategyID = item.ID
	}
	s.strategies[item.ID] = item
	s.allocations[item.ID] = item.Allocations
	return nil
}

func (s *stubRepo) GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error) {
	item, ok := s.strategies[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	copied.Allocations = s.allocations[id]
	return &copied, nil
}

func (s *stubRepo) ListStrategies(ctx context.Context, params repository.ListStrategiesParams) ([]models.Strategy, error) {
	return nil, nil
}

func (s *stubRepo) CountStrategies(ctx context.Context, params repository.ListStrategiesParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpdateStrategyFields(ctx context.Context, id uint64, fields map[string]any) error {
	item, ok := s.strategies[id]
	if !ok {
		return nil
	}
	if v, ok := fields["name"].(string); ok {
		item.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		item.Description = v
	}
	if v, ok := fields["strategy_type"].(string); ok {
		item.StrategyType = v
	}
	if v, ok := fields["risk_level"].(string); ok {
		item.RiskLevel = v
	}
	return nil
}

func (s *stubRepo) SetStrategyActive(ctx context.Context, id uint64, active bool) error {
	if item, ok := s.strategies[id]; ok {
		item.IsActive = active
	}
	return nil
}

func (s *stubRepo) DeleteStrategy(ctx context.Context, id uint64) error {
	delete(s.strategies, id)
	delete(s.allocations, id)
	return nil
}

func (s *stubRepo) BumpStrategyVersionTx(ctx context.Context, tx *gorm.DB, id uint64, fromVersion uint64) (int64, error) {
	item, ok := s.strategies[id]
	if !ok || item.Version != fromVersion {
		return 0, nil
	}
	item.Version++
	return 1, nil
}

func (s *stubRepo) DeleteAllocationsByStrategyIDTx(ctx context.Context, tx *gorm.DB, strategyID uint64) error {
	delete(s.allocations, strategyID)
	return nil
}

func (s *stubRepo) InsertAllocationsTx(ctx context.Context, tx *gorm.DB, items []models.StrategyAllocation) error {
	for i := range items {
		s.nextID++
		items[i].ID = s.nextID
		s.allocations[items[i].StrategyID] = append(s.allocations[items[i].StrategyID], items[i])
	}
	return nil
}

func (s *stubRepo) ListAllocationsByStrategyID(ctx context.Context, strategyID uint64) ([]models.StrategyAllocation, error) {
	return s.allocations[strategyID], nil
}

func (s *stubRepo) InsertBacktest(ctx context.Context, item *models.Backtest) error { return nil }

func (s *stubRepo) GetBacktestByID(ctx context.Context, id uint64) (*models.Backtest, error) {
	return nil, nil
}

func (s *stubRepo) ListBacktests(ctx context.Context, params repository.ListBacktestsParams) ([]models.Backtest, error) {
	return nil, nil
}

func (s *stubRepo) CountBacktests(ctx context.Context, params repository.ListBacktestsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) TransitionBacktestStatus(ctx context.Context, id uint64, from, to string, updates map[string]any) (int64, error) {
	return 0, nil
}

func (s *stubRepo) ListStaleRunningBacktests(ctx context.Context, before time.Time, limit int) ([]models.Backtest, error) {
	return nil, nil
}

func (s *stubRepo) CountOverlappingPerformanceTx(ctx context.Context, tx *gorm.DB, strategyID uint64, periodStart, periodEnd time.Time) (int64, error) {
	return 0, nil
}

func (s *stubRepo) InsertStrategyPerformanceTx(ctx context.Context, tx *gorm.DB, item *models.StrategyPerformance) error {
	return nil
}

func (s *stubRepo) ListStrategyPerformance(ctx context.Context, params repository.ListPerformanceParams) ([]models.StrategyPerformance, error) {
	return nil, nil
}

func (s *stubRepo) InsertRecommendation(ctx context.Context, item *models.Recommendation) error {
	s.nextID++
	item.ID = s.nextID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	s.recs[item.ID] = item
	return nil
}

func (s *stubRepo) GetRecommendationByID(ctx context.Context, id uint64) (*models.Recommendation, error) {
	return s.recs[id], nil
}

func (s *stubRepo) ListRecommendations(ctx context.Context, params repository.ListRecommendationsParams) ([]models.Recommendation, error) {
	return nil, nil
}

func (s *stubRepo) CountRecommendations(ctx context.Context, params repository.ListRecommendationsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) SetRecommendationActedUpon(ctx context.Context, id uint64, acted bool) (int64, error) {
	item, ok := s.recs[id]
	if !ok {
		return 0, nil
	}
	item.IsActedUpon = acted
	return 1, nil
}

func (s *stubRepo) DeleteExpiredRecommendations(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	for id, item := range s.recs {
		if item.ExpiresAt != nil && item.ExpiresAt.Before(before) && !item.IsActedUpon {
			delete(s.recs, id)
			deleted++
		}
	}
	return deleted, nil
}
