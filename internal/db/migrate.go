package db

import (
	"advisor/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Strategy{},
		&models.StrategyAllocation{},
		&models.Backtest{},
		&models.StrategyPerformance{},
		&models.Recommendation{},
	)
}
