package database

import (
	"fmt"
	"log"

	"webcharge_api/internal/infrastructure/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Handles carries the SQL connection roles. ReadOnly is ReadWrite when no
// replica DSN is configured.
type Handles struct {
	ReadWrite *gorm.DB
	ReadOnly  *gorm.DB
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

func open(driver, dsn string) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the payment log relies on for duplicate detection.
	return gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func OpenSQL(cfg config.StorageConfig) (Handles, error) {
	rw, err := open(cfg.Driver, cfg.DSN)
	if err != nil {
		return Handles{}, fmt.Errorf("open read-write db: %w", err)
	}
	h := Handles{ReadWrite: rw, ReadOnly: rw}
	if cfg.ReadOnlyDSN != "" {
		ro, err := open(cfg.Driver, cfg.ReadOnlyDSN)
		if err != nil {
			return Handles{}, fmt.Errorf("open read-only db: %w", err)
		}
		h.ReadOnly = ro
	}
	log.Printf("[database][sql] connected driver=%s replica=%t", cfg.Driver, cfg.ReadOnlyDSN != "")
	return h, nil
}

func (h Handles) Close() {
	for _, db := range []*gorm.DB{h.ReadWrite, h.ReadOnly} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
