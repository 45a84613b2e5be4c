package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/plume-labs/plume/config"
	"github.com/plume-labs/plume/internal/model"
)

// InitDB opens the configured database and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.Database.DSN), gcfg)
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.Database.DSN), gcfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates the schema. Shared with test fixtures.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	)
}
