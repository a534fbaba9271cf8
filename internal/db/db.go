package db

import (
	"context"
	"fmt"
	"time"

	"github.com/snnyvrz/bookshelf/internal/config"
	"github.com/snnyvrz/bookshelf/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return SQLite(cfg.SQLitePath), nil
	}
	return nil, fmt.Errorf("db: unsupported driver %q", cfg.DBDriver)
}

// ConnectWithRetry opens the configured database and pings it, retrying
// up to cfg.DBMaxAttempts times while the server is not ready yet.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= cfg.DBMaxAttempts; attempt++ {
		var db *gorm.DB
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: NewGormLogger(log, cfg.Debug()),
		})
		if err == nil {
			err = Ping(ctx, db)
			if err == nil {
				return db, nil
			}
		}

		log.Warn("Database not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.DBMaxAttempts),
			zap.Error(err),
		)

		if attempt == cfg.DBMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBRetryDelay):
		}
	}

	return nil, fmt.Errorf("db: could not connect after %d attempts: %w", cfg.DBMaxAttempts, err)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Book{})
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
