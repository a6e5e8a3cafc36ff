package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"advisor/internal/models"
	"advisor/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- strategies -------------------------------------------------------------

func (s *Store) CreateStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetStrategyByID(ctx context.Context, id uint64) (*models.Strategy, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Strategy
	err := s.db.WithContext(ctx).
		Preload("Allocations").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) applyStrategyFilters(query *gorm.DB, params repository.ListStrategiesParams) *gorm.DB {
	if params.UserID != nil && *params.UserID != 0 {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.IsPublic != nil {
		query = query.Where("is_public = ?", *params.IsPublic)
	}
	return query
}

func (s *Store) ListStrategies(ctx context.Context, params repository.ListStrategiesParams) ([]models.Strategy, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyStrategyFilters(s.db.WithContext(ctx).Model(&models.Strategy{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Strategy
	if err := query.Preload("Allocations").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountStrategies(ctx context.Context, params repository.ListStrategiesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.applyStrategyFilters(s.db.WithContext(ctx).Model(&models.Strategy{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateStrategyFields(ctx context.Context, id uint64, fields map[string]any) error {
	if s == nil || s.db == nil || id == 0 || len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *Store) SetStrategyActive(ctx context.Context, id uint64, active bool) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (s *Store) DeleteStrategy(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	// Allocations are owned rows; remove them in the same transaction so a
	// partial delete can never orphan them.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("strategy_id = ?", id).Delete(&models.StrategyAllocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Strategy{}, "id = ?", id).Error
	})
}

func (s *Store) BumpStrategyVersionTx(ctx context.Context, tx *gorm.DB, id uint64, fromVersion uint64) (int64, error) {
	if tx == nil || id == 0 {
		return 0, nil
	}
	res := tx.WithContext(ctx).
		Model(&models.Strategy{}).
		Where("id = ? AND version = ?", id, fromVersion).
		Updates(map[string]any{
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteAllocationsByStrategyIDTx(ctx context.Context, tx *gorm.DB, strategyID uint64) error {
	if tx == nil || strategyID == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Where("strategy_id = ?", strategyID).
		Delete(&models.StrategyAllocation{}).Error
}

func (s *Store) InsertAllocationsTx(ctx context.Context, tx *gorm.DB, items []models.StrategyAllocation) error {
	if tx == nil || len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (s *Store) ListAllocationsByStrategyID(ctx context.Context, strategyID uint64) ([]models.StrategyAllocation, error) {
	if s == nil || s.db == nil || strategyID == 0 {
		return nil, nil
	}
	var items []models.StrategyAllocation
	if err := s.db.WithContext(ctx).
		Where("strategy_id = ?", strategyID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- backtests --------------------------------------------------------------

func (s *Store) InsertBacktest(ctx context.Context, item *models.Backtest) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetBacktestByID(ctx context.Context, id uint64) (*models.Backtest, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Backtest
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) applyBacktestFilters(query *gorm.DB, params repository.ListBacktestsParams) *gorm.DB {
	if params.StrategyID != nil && *params.StrategyID != 0 {
		query = query.Where("strategy_id = ?", *params.StrategyID)
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	return query
}

func (s *Store) ListBacktests(ctx context.Context, params repository.ListBacktestsParams) ([]models.Backtest, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyBacktestFilters(s.db.WithContext(ctx).Model(&models.Backtest{}), params)
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Backtest
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountBacktests(ctx context.Context, params repository.ListBacktestsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.applyBacktestFilters(s.db.WithContext(ctx).Model(&models.Backtest{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) TransitionBacktestStatus(ctx context.Context, id uint64, from, to string, updates map[string]any) (int64, error) {
	if s == nil || s.db == nil || id == 0 {
		return 0, nil
	}
	values := map[string]any{"status": to}
	for k, v := range updates {
		values[k] = v
	}
	res := s.db.WithContext(ctx).
		Model(&models.Backtest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (s *Store) ListStaleRunningBacktests(ctx context.Context, before time.Time, limit int) ([]models.Backtest, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Backtest
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.BacktestStatusRunning).
		Where("created_at < ?", before).
		Order("created_at asc").
		Limit(normalizeLimit(limit, 100)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- performance ------------------------------------------------------------

func (s *Store) CountOverlappingPerformanceTx(ctx context.Context, tx *gorm.DB, strategyID uint64, periodStart, periodEnd time.Time) (int64, error) {
	if tx == nil || strategyID == 0 {
		return 0, nil
	}
	var total int64
	err := tx.WithContext(ctx).
		Model(&models.StrategyPerformance{}).
		Where("strategy_id = ?", strategyID).
		Where("period_start <= ? AND period_end >= ?", periodEnd, periodStart).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) InsertStrategyPerformanceTx(ctx context.Context, tx *gorm.DB, item *models.StrategyPerformance) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListStrategyPerformance(ctx context.Context, params repository.ListPerformanceParams) ([]models.StrategyPerformance, error) {
	if s == nil || s.db == nil || params.StrategyID == 0 {
		return nil, nil
	}
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.StrategyPerformance
	if err := s.db.WithContext(ctx).
		Where("strategy_id = ?", params.StrategyID).
		Order("period_start asc").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- recommendations --------------------------------------------------------

func (s *Store) InsertRecommendation(ctx context.Context, item *models.Recommendation) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetRecommendationByID(ctx context.Context, id uint64) (*models.Recommendation, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Recommendation
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) applyRecommendationFilters(query *gorm.DB, params repository.ListRecommendationsParams) *gorm.DB {
	if params.UserID != nil && *params.UserID != 0 {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.StrategyID != nil && *params.StrategyID != 0 {
		query = query.Where("strategy_id = ?", *params.StrategyID)
	}
	if params.Type != nil && strings.TrimSpace(*params.Type) != "" {
		query = query.Where("recommendation_type = ?", strings.TrimSpace(*params.Type))
	}
	if params.IsActedUpon != nil {
		query = query.Where("is_acted_upon = ?", *params.IsActedUpon)
	}
	return query
}

func (s *Store) ListRecommendations(ctx context.Context, params repository.ListRecommendationsParams) ([]models.Recommendation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyRecommendationFilters(s.db.WithContext(ctx).Model(&models.Recommendation{}), params)
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Recommendation
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountRecommendations(ctx context.Context, params repository.ListRecommendationsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.applyRecommendationFilters(s.db.WithContext(ctx).Model(&models.Recommendation{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) SetRecommendationActedUpon(ctx context.Context, id uint64, acted bool) (int64, error) {
	if s == nil || s.db == nil || id == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Where("id = ?", id).
		Update("is_acted_upon", acted)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteExpiredRecommendations(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if before.IsZero() {
		before = time.Now().UTC()
	}
	res := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL").
		Where("expires_at < ?", before).
		Where("is_acted_upon = ?", false).
		Delete(&models.Recommendation{})
	return res.RowsAffected, res.Error
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
