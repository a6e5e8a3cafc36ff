package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StrategyPerformance is one computed performance snapshot for a strategy
// over a closed period. Rows are append-only; periods for the same strategy
// must not overlap (inclusive bounds), which the ledger enforces at insert.
type StrategyPerformance struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StrategyID uint64 `gorm:"not null;index" json:"strategy_id"`

	PeriodStart time.Time `gorm:"type:date;not null;index" json:"period_start"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index" json:"period_end"`

	TotalReturn      decimal.Decimal `gorm:"type:numeric(10,4)" json:"total_return"`
	AnnualizedReturn decimal.Decimal `gorm:"type:numeric(10,4)" json:"annualized_return"`
	Volatility       decimal.Decimal `gorm:"type:numeric(10,4)" json:"volatility"`
	SharpeRatio      decimal.Decimal `gorm:"type:numeric(10,4)" json:"sharpe_ratio"`
	MaxDrawdown      decimal.Decimal `gorm:"type:numeric(10,4)" json:"max_drawdown"`
	WinRate          decimal.Decimal `gorm:"type:numeric(5,2)" json:"win_rate"`

	CalculatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"calculated_at"`
}

func (StrategyPerformance) TableName() string {
	return "strategy_performance"
}
