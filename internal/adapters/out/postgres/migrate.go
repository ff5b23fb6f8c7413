package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"factory/internal/adapters/out/postgres/orderrepo"
)

// Open connects to dsn with SQL logging silenced; the application logs through zap.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the order tables, their id sequences and indexes.
func Migrate(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	models := orderrepo.Models()
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate order tables: %w", err)
	}
	logger.Info("database migrated", zap.Int("tables", len(models)))
	return nil
}
