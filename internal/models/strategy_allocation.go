package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StrategyAllocation is one target weight inside a strategy, e.g. 25.00 for
// 25% of the portfolio in a ticker. Min/max are optional drift bounds.
type StrategyAllocation struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StrategyID uint64 `gorm:"not null;index" json:"strategy_id"`

	Symbol string `gorm:"type:varchar(10);not null" json:"symbol"`

	TargetPercentage decimal.Decimal  `gorm:"type:numeric(5,2);not null" json:"target_percentage"`
	MinPercentage    *decimal.Decimal `gorm:"type:numeric(5,2)" json:"min_percentage,omitempty"`
	MaxPercentage    *decimal.Decimal `gorm:"type:numeric(5,2)" json:"max_percentage,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (StrategyAllocation) TableName() string {
	return "strategy_allocations"
}
