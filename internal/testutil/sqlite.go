// Package testutil holds helpers shared by tests that need a real database.
package testutil

import (
	"fmt"
	"testing"

	"chai-app-go/internal/config"
	"chai-app-go/internal/db"
	"chai-app-go/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewSQLite returns a migrated in-memory SQLite database private to the test.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:chai-%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
	}

	gormDB, err := db.Open(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(gormDB)
	})

	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return gormDB
}
