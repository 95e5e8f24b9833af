package database

import (
	"context"
	"fmt"
	"time"

	"health-records-api/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// NewPostgresConnection opens the gorm connection and routes its query log
// through the application logger.
func NewPostgresConnection(cfg config.DBConfig, app config.AppConfig, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  GormLogLevel(app.LogLevel, app.Env),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithFields(logrus.Fields{
		"host": cfg.Host,
		"name": cfg.Name,
	}).Info("Connected to PostgreSQL")

	return db, nil
}

// GormLogLevel maps LOG_LEVEL onto gorm's levels. Individual statements are
// only logged at debug or trace, and never in production.
func GormLogLevel(level, env string) logger.LogLevel {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	switch {
	case lvl >= logrus.DebugLevel && env != "production":
		return logger.Info
	case lvl >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
