package ormstore

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects GORM for the given dialect: "postgres" for the shared
// database, "sqlite" for local files and tests.
func Open(dialect, dsn string, l logger.Interface) (*gorm.DB, error) {
	var d gorm.Dialector
	switch dialect {
	case "postgres":
		d = postgres.Open(dsn)
	case "sqlite":
		d = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported ORM dialect %q", dialect)
	}
	if l == nil {
		l = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(d, &gorm.Config{Logger: l})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	return db, nil
}

// Migrate creates or updates every table from the models. The loader owns
// the production schema; this is for sqlite databases and tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
