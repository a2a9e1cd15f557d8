// Package storagetest поднимает SQLite-базу со схемой сервиса для тестов других пакетов.
package storagetest

import (
	"path/filepath"
	"testing"

	"hospital_queue/internal/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB возвращает мигрированную базу во временном файле. Соединение одно:
// SQLite не умеет параллельных писателей, а тестам нужен предсказуемый порядок.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "queue.db")
	cfg := storage.GormConfig()
	cfg.Logger = logger.Discard

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), cfg)
	if err != nil {
		t.Fatalf("открытие sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := storage.Migrate(db); err != nil {
		t.Fatalf("миграция: %v", err)
	}
	return db
}
