package storage_test

import (
	"context"
	"testing"

	"hospital_queue/internal/config"
	"hospital_queue/internal/models"
	"hospital_queue/internal/storage"
	"hospital_queue/internal/storage/storagetest"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrateCreatesTables(t *testing.T) {
	db := storagetest.NewDB(t)

	for _, model := range []interface{}{&models.User{}, &models.Department{}, &models.DepartmentCounter{}, &models.QueueEntry{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	// Повторная миграция не должна падать.
	require.NoError(t, storage.Migrate(db))
}

func TestTokenNumberIsUnique(t *testing.T) {
	db := storagetest.NewDB(t)
	require.NoError(t, db.Create(&models.Department{ID: 1, Name: "General OPD"}).Error)

	first := models.QueueEntry{ID: "a", PatientID: 1, DepartmentID: 1, TokenNumber: "D01001", Position: 1, Status: models.StatusWaiting}
	require.NoError(t, db.Create(&first).Error)

	dup := models.QueueEntry{ID: "b", PatientID: 2, DepartmentID: 1, TokenNumber: "D01001", Position: 2, Status: models.StatusWaiting}
	err := db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestOneActiveEntryPerPatientAndDepartment(t *testing.T) {
	db := storagetest.NewDB(t)
	require.NoError(t, db.Create(&models.Department{ID: 1, Name: "General OPD"}).Error)
	require.NoError(t, db.Create(&models.Department{ID: 2, Name: "Cardiology"}).Error)

	entry := func(id, token string, department uint, status models.Status) *models.QueueEntry {
		return &models.QueueEntry{ID: id, PatientID: 7, DepartmentID: department, TokenNumber: token, Position: 1, Status: status}
	}

	require.NoError(t, db.Create(entry("a", "D01001", 1, models.StatusWaiting)).Error)

	err := db.Create(entry("b", "D01002", 1, models.StatusWaiting)).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	err = db.Create(entry("c", "D01003", 1, models.StatusInProgress)).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// другое отделение и завершённые записи индекс не ограничивает
	require.NoError(t, db.Create(entry("d", "D02001", 2, models.StatusWaiting)).Error)
	require.NoError(t, db.Create(entry("e", "D01004", 1, models.StatusCompleted)).Error)
	require.NoError(t, db.Create(entry("f", "D01005", 1, models.StatusCompleted)).Error)

	require.NoError(t, db.Model(&models.QueueEntry{}).Where("id = ?", "a").Update("status", models.StatusCompleted).Error)
	assert.NoError(t, db.Create(entry("g", "D01006", 1, models.StatusWaiting)).Error)
}

func TestInitRedis(t *testing.T) {
	client, err := storage.InitRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	client, err = storage.InitRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()

	_, err = storage.InitRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
