package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"advisor/internal/models"
)

type ListStrategiesParams struct {
	UserID   *uint64
	IsActive *bool
	IsPublic *bool
	Limit    int
	Offset   int
	OrderBy  string
	Asc      *bool
}

type ListBacktestsParams struct {
	StrategyID *uint64
	Status     *string
	Limit      int
	Offset     int
}

type ListPerformanceParams struct {
	StrategyID uint64
	Limit      int
	Offset     int
}

type ListRecommendationsParams struct {
	UserID      *uint64
	StrategyID  *uint64
	Type        *string
	IsActedUpon *bool
	Limit       int
	Offset      int
}

// Repository is the persistence boundary for the advisory service. The core
// issues validate-then-commit requests; durability and id generation belong
// to the store.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Strategies and their owned allocation rows.
	CreateStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error
	GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error)
	ListStrategies(ctx context.Context, params ListStrategiesParams) ([]models.Strategy, error)
	CountStrategies(ctx context.Context, params ListStrategiesParams) (int64, error)
	UpdateStrategyFields(ctx context.Context, id uint64, fields map[string]any) error
	SetStrategyActive(ctx context.Context, id uint64, active bool) error
	DeleteStrategy(ctx context.Context, id uint64) error
	BumpStrategyVersionTx(ctx context.Context, tx *gorm.DB, id uint64, fromVersion uint64) (int64, error)
	DeleteAllocationsByStrategyIDTx(ctx context.Context, tx *gorm.DB, strategyID uint64) error
	InsertAllocationsTx(ctx context.Context, tx *gorm.DB, items []models.StrategyAllocation) error
	ListAllocationsByStrategyID(ctx context.Context, strategyID uint64) ([]models.StrategyAllocation, error)

	// Backtests.
	InsertBacktest(ctx context.Context, item *models.Backtest) error
	GetBacktestByID(ctx context.Context, id uint64) (*models.Backtest, error)
	ListBacktests(ctx context.Context, params ListBacktestsParams) ([]models.Backtest, error)
	CountBacktests(ctx context.Context, params ListBacktestsParams) (int64, error)
	// TransitionBacktestStatus is a compare-and-swap: the row is updated only
	// if its status still equals from. Returns rows affected.
	TransitionBacktestStatus(ctx context.Context, id uint64, from, to string, updates map[string]any) (int64, error)
	ListStaleRunningBacktests(ctx context.Context, before time.Time, limit int) ([]models.Backtest, error)

	// Performance history (append-only).
	CountOverlappingPerformanceTx(ctx context.Context, tx *gorm.DB, strategyID uint64, periodStart, periodEnd time.Time) (int64, error)
	InsertStrategyPerformanceTx(ctx context.Context, tx *gorm.DB, item *models.StrategyPerformance) error
	ListStrategyPerformance(ctx context.Context, params ListPerformanceParams) ([]models.StrategyPerformance, error)

	// Recommendations.
	InsertRecommendation(ctx context.Context, item *models.Recommendation) error
	GetRecommendationByID(ctx context.Context, id uint64) (*models.Recommendation, error)
	ListRecommendations(ctx context.Context, params ListRecommendationsParams) ([]models.Recommendation, error)
	CountRecommendations(ctx context.Context, params ListRecommendationsParams) (int64, error)
	SetRecommendationActedUpon(ctx context.Context, id uint64, acted bool) (int64, error)
	DeleteExpiredRecommendations(ctx context.Context, before time.Time) (int64, error)
}
