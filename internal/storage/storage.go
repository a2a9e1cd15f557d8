package storage

import (
	"context"
	"fmt"

	"hospital_queue/internal/config"
	"hospital_queue/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConfig общий для всех подключений: ошибки драйвера переводятся в gorm.ErrDuplicatedKey и т.п.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// ConnectDatabase открывает соединение с Postgres.
func ConnectDatabase(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}
	return db, nil
}

// Migrate создаёт и обновляет схему.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.DepartmentCounter{},
		&models.QueueEntry{},
	); err != nil {
		return fmt.Errorf("ошибка при миграции: %w", err)
	}
	return nil
}

// InitRedis создаёт клиент Redis и проверяет соединение. Если адрес не задан, возвращает nil.
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ошибка подключения к redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}
