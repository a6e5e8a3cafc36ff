package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Backtest statuses. Legal transitions are pending -> running and
// running -> completed|failed; completed and failed are terminal.
const (
	BacktestStatusPending   = "pending"
	BacktestStatusRunning   = "running"
	BacktestStatusCompleted = "completed"
	BacktestStatusFailed    = "failed"
)

// Backtest is a simulated run of a strategy over a historical date range.
// The run itself is performed by the external analytics job; this service
// owns the record and its status machine. Result fields stay NULL until the
// running -> completed transition.
type Backtest struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StrategyID uint64 `gorm:"not null;index" json:"strategy_id"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	InitialCapital decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"initial_capital"`

	FinalCapital *decimal.Decimal `gorm:"type:numeric(18,2)" json:"final_capital,omitempty"`
	TotalReturn  *decimal.Decimal `gorm:"type:numeric(10,4)" json:"total_return,omitempty"`
	SharpeRatio  *decimal.Decimal `gorm:"type:numeric(10,4)" json:"sharpe_ratio,omitempty"`
	MaxDrawdown  *decimal.Decimal `gorm:"type:numeric(10,4)" json:"max_drawdown,omitempty"`
	TotalTrades  *int             `json:"total_trades,omitempty"`
	WinningTrades *int            `json:"winning_trades,omitempty"`

	Status string `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`

	// Params holds job parameters handed to the analytics runner verbatim.
	Params datatypes.JSON `gorm:"type:jsonb" json:"params,omitempty"`

	CreatedAt   time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	CompletedAt *time.Time `gorm:"type:timestamptz" json:"completed_at,omitempty"`
}

func (Backtest) TableName() string {
	return "backtests"
}
