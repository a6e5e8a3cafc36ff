package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"advisor/internal/allocation"
	"advisor/internal/models"
	"advisor/internal/repository"
)

var (
	ErrStrategyNotFound = errors.New("strategy not found")

	// ErrVersionConflict means another writer replaced the allocation set
	// between the caller's read and this commit. Callers re-read and retry.
	ErrVersionConflict = errors.New("strategy version conflict")

	ErrInvalidInput = errors.New("invalid input")
)

type StrategyService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func validateStrategyFields(item *models.Strategy) error {
	if item.UserID == 0 {
		return fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if !models.ValidStrategyType(item.StrategyType) {
		return fmt.Errorf("%w: unknown strategy type %q", ErrInvalidInput, item.StrategyType)
	}
	if item.RiskLevel != "" && !models.ValidRiskLevel(item.RiskLevel) {
		return fmt.Errorf("%w: unknown risk level %q", ErrInvalidInput, item.RiskLevel)
	}
	if item.RebalanceFrequency != "" && !models.ValidRebalanceFrequency(item.RebalanceFrequency) {
		return fmt.Errorf("%w: unknown rebalance frequency %q", ErrInvalidInput, item.RebalanceFrequency)
	}
	return nil
}

// Create validates the strategy and its full allocation set, then commits
// both in one transaction. Nothing is written when validation fails.
func (s *StrategyService) Create(ctx context.Context, item *models.Strategy) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	if err := validateStrategyFields(item); err != nil {
		return err
	}
	if err := allocation.Validate(item.Allocations); err != nil {
		return err
	}
	item.Version = 1
	if err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreateStrategyTx(ctx, tx, item)
	}); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("strategy created",
			zap.Uint64("strategy_id", item.ID),
			zap.Uint64("user_id", item.UserID),
			zap.Int("allocations", len(item.Allocations)),
		)
	}
	return nil
}

// ReplaceAllocations swaps a strategy's whole allocation set. The caller
// supplies the version it read; a stale version loses the race and gets
// ErrVersionConflict with nothing written.
func (s *StrategyService) ReplaceAllocations(ctx context.Context, strategyID, fromVersion uint64, items []models.StrategyAllocation) (*models.Strategy, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	if err := allocation.Validate(items); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetStrategyByID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrStrategyNotFound
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.Repo.BumpStrategyVersionTx(ctx, tx, strategyID, fromVersion)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrVersionConflict
		}
		if err := s.Repo.DeleteAllocationsByStrategyIDTx(ctx, tx, strategyID); err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].StrategyID = strategyID
		}
		return s.Repo.InsertAllocationsTx(ctx, tx, items)
	})
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("allocations replaced",
			zap.Uint64("strategy_id", strategyID),
			zap.Int("allocations", len(items)),
		)
	}
	return s.Repo.GetStrategyByID(ctx, strategyID)
}

// Update changes strategy metadata only. Allocations go through
// ReplaceAllocations so the sum invariant cannot be bypassed.
func (s *StrategyService) Update(ctx context.Context, id uint64, fields map[string]any) (*models.Strategy, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	existing, err := s.Repo.GetStrategyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrStrategyNotFound
	}
	if v, ok := fields["strategy_type"].(string); ok && !models.ValidStrategyType(v) {
		return nil, fmt.Errorf("%w: unknown strategy type %q", ErrInvalidInput, v)
	}
	if v, ok := fields["risk_level"].(string); ok && !models.ValidRiskLevel(v) {
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrInvalidInput, v)
	}
	if v, ok := fields["rebalance_frequency"].(string); ok && !models.ValidRebalanceFrequency(v) {
		return nil, fmt.Errorf("%w: unknown rebalance frequency %q", ErrInvalidInput, v)
	}
	if err := s.Repo.UpdateStrategyFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetStrategyByID(ctx, id)
}

func (s *StrategyService) SetActive(ctx context.Context, id uint64, active bool) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	existing, err := s.Repo.GetStrategyByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStrategyNotFound
	}
	return s.Repo.SetStrategyActive(ctx, id, active)
}

// Delete removes the strategy and its owned allocations. Backtests and
// performance history reference the strategy weakly and are kept.
func (s *StrategyService) Delete(ctx context.Context, id uint64) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	existing, err := s.Repo.GetStrategyByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStrategyNotFound
	}
	if err := s.Repo.DeleteStrategy(ctx, id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("strategy deleted", zap.Uint64("strategy_id", id))
	}
	return nil
}
