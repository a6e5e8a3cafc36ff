package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Strategy type tags.
const (
	StrategyTypeMomentum = "momentum"
	StrategyTypeValue    = "value"
	StrategyTypeGrowth   = "growth"
	StrategyTypeDividend = "dividend"
	StrategyTypeCustom   = "custom"
)

// Risk levels.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// Rebalance frequencies.
const (
	RebalanceDaily     = "daily"
	RebalanceWeekly    = "weekly"
	RebalanceMonthly   = "monthly"
	RebalanceQuarterly = "quarterly"
	RebalanceAnnually  = "annually"
	RebalanceNever     = "never"
)

// Strategy is a user-defined investment strategy. It owns its allocation
// rows; backtests and performance history reference it by id only.
type Strategy struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`

	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	StrategyType string `gorm:"type:varchar(20);not null;index" json:"strategy_type"`
	RiskLevel    string `gorm:"type:varchar(10)" json:"risk_level"`

	TargetReturn decimal.Decimal `gorm:"type:numeric(5,2)" json:"target_return"`
	MaxDrawdown  decimal.Decimal `gorm:"type:numeric(5,2)" json:"max_drawdown"`

	RebalanceFrequency string `gorm:"type:varchar(10)" json:"rebalance_frequency"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`
	IsPublic bool `gorm:"default:false;index" json:"is_public"`

	// Version guards concurrent allocation replacements (compare-and-swap).
	Version uint64 `gorm:"not null;default:1" json:"version"`

	Allocations []StrategyAllocation `gorm:"foreignKey:StrategyID;constraint:OnDelete:CASCADE" json:"allocations"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}

func ValidStrategyType(v string) bool {
	switch v {
	case StrategyTypeMomentum, StrategyTypeValue, StrategyTypeGrowth, StrategyTypeDividend, StrategyTypeCustom:
		return true
	}
	return false
}

func ValidRiskLevel(v string) bool {
	switch v {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}

func ValidRebalanceFrequency(v string) bool {
	switch v {
	case RebalanceDaily, RebalanceWeekly, RebalanceMonthly, RebalanceQuarterly, RebalanceAnnually, RebalanceNever:
		return true
	}
	return false
}
