// Package masterdb holds the SQLite-backed masters: menu catalog, POS users,
// tables and waiters. Order lifecycle state lives elsewhere; this database is
// the slow-moving reference data behind the admin screens.
package masterdb

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"restaurant-pos/internal/domain"
)

// Open connects and migrates the masters schema. Use ":memory:" in tests.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open masters db: %w", err)
	}
	if err := db.AutoMigrate(
		&domain.MenuItem{},
		&domain.User{},
		&domain.Table{},
		&domain.Waiter{},
	); err != nil {
		return nil, fmt.Errorf("migrate masters db: %w", err)
	}
	return db, nil
}
