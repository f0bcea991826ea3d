package db

import (
	"context"
	"time"

	"microfinance-ledger/internal/domain/ledger"
	"microfinance-ledger/internal/domain/loan"
	"microfinance-ledger/internal/domain/params"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	db, err := OpenGormWithDialector(mysql.Open(dsn))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	return db, nil
}

// OpenSQLite opens a file-backed store. Mutations are serialized by the unit
// of work, so a single connection is enough.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := OpenGormWithDialector(sqlite.Open(path + "?_busy_timeout=5000"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// OpenGormWithDialector opens db over dial and pings it exactly once.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&loan.Loan{}, &loan.Update{}, &params.ParameterSet{}, &ledger.Transfer{})
}

// Ping is a health check over db's pool.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
