package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recommendation types.
const (
	RecommendationBuy       = "buy"
	RecommendationSell      = "sell"
	RecommendationRebalance = "rebalance"
	RecommendationAdjust    = "adjust"
)

// Recommendation is an advisory record produced for a user. The only
// mutation after creation is flipping IsActedUpon; expired un-acted rows are
// purged by the cron sweep.
type Recommendation struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64  `gorm:"not null;index" json:"user_id"`
	StrategyID *uint64 `gorm:"index" json:"strategy_id,omitempty"`

	RecommendationType string `gorm:"type:varchar(20);not null;index" json:"recommendation_type"`
	Symbol             string `gorm:"type:varchar(10)" json:"symbol"`

	// ConfidenceScore is in [0,1].
	ConfidenceScore decimal.Decimal `gorm:"type:numeric(5,4)" json:"confidence_score"`
	Reasoning       string          `gorm:"type:text" json:"reasoning"`

	IsActedUpon bool `gorm:"default:false;index" json:"is_acted_upon"`

	CreatedAt time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	ExpiresAt *time.Time `gorm:"type:timestamptz;index" json:"expires_at,omitempty"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

func ValidRecommendationType(v string) bool {
	switch v {
	case RecommendationBuy, RecommendationSell, RecommendationRebalance, RecommendationAdjust:
		return true
	}
	return false
}
