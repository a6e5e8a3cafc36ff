package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"advisor/internal/models"
	"advisor/internal/profiling"
	"advisor/internal/repository"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

var confidenceOne = decimal.NewFromInt(1)

// AdvisorService creates and maintains advisory records. Recommendations are
// written once and only ever flipped to acted-upon; expired un-acted rows
// are purged by the cron sweep.
type AdvisorService struct {
	Repo   repository.Repository
	Logger *zap.Logger

	// DefaultTTL is applied when a new recommendation has no expiry. Zero
	// means recommendations do not expire by default.
	DefaultTTL time.Duration
}

func (s *AdvisorService) Create(ctx context.Context, item *models.Recommendation) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	if item.UserID == 0 {
		return fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if !models.ValidRecommendationType(item.RecommendationType) {
		return fmt.Errorf("%w: unknown recommendation type %q", ErrInvalidInput, item.RecommendationType)
	}
	if len(item.Symbol) > 10 {
		return fmt.Errorf("%w: symbol longer than 10 chars", ErrInvalidInput)
	}
	if item.ConfidenceScore.IsNegative() || item.ConfidenceScore.GreaterThan(confidenceOne) {
		return fmt.Errorf("%w: confidence score outside [0,1]", ErrInvalidInput)
	}
	if item.StrategyID != nil {
		strat, err := s.Repo.GetStrategyByID(ctx, *item.StrategyID)
		if err != nil {
			return err
		}
		if strat == nil {
			return ErrStrategyNotFound
		}
	}
	if item.ExpiresAt == nil && s.DefaultTTL > 0 {
		exp := time.Now().UTC().Add(s.DefaultTTL)
		item.ExpiresAt = &exp
	}
	item.IsActedUpon = false
	return s.Repo.InsertRecommendation(ctx, item)
}

// AdviseFromScore turns the catalog match for a raw risk score into stored
// adjust-type recommendations for a user. The archetype's static match score
// becomes the confidence (0-100 scaled to [0,1]).
func (s *AdvisorService) AdviseFromScore(ctx context.Context, userID uint64, score int) ([]models.Recommendation, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	matches := profiling.RecommendationsFor(score)
	out := make([]models.Recommendation, 0, len(matches))
	for _, match := range matches {
		item := models.Recommendation{
			UserID:             userID,
			RecommendationType: models.RecommendationAdjust,
			ConfidenceScore:    decimal.NewFromInt(int64(match.RiskMatchScore)).Div(decimal.NewFromInt(100)),
			Reasoning:          match.Reasoning,
		}
		if err := s.Create(ctx, &item); err != nil {
			return out, err
		}
		out = append(out, item)
	}
	if s.Logger != nil {
		s.Logger.Info("advisory recommendations created",
			zap.Uint64("user_id", userID),
			zap.Int("risk_score", score),
			zap.Int("count", len(out)),
		)
	}
	return out, nil
}

// MarkActedUpon is the only permitted mutation of an existing record.
func (s *AdvisorService) MarkActedUpon(ctx context.Context, id uint64) (*models.Recommendation, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	affected, err := s.Repo.SetRecommendationActedUpon(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRecommendationNotFound
	}
	return s.Repo.GetRecommendationByID(ctx, id)
}

// PurgeExpired deletes expired recommendations nobody acted on.
func (s *AdvisorService) PurgeExpired(ctx context.Context) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, nil
	}
	deleted, err := s.Repo.DeleteExpiredRecommendations(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if deleted > 0 && s.Logger != nil {
		s.Logger.Info("expired recommendations purged", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}
