// Package catalog - справочник отделений больницы.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const cacheKey = "departments_all"

// DefaultDepartments засеваются в пустую базу при старте.
var DefaultDepartments = []models.Department{
	{Name: "General OPD", Icon: "🏥", Description: "General Outpatient Department"},
	{Name: "Cardiology", Icon: "❤️", Description: "Heart and Cardiovascular"},
	{Name: "Orthopedic", Icon: "🦴", Description: "Bone and Joint Care"},
	{Name: "Pediatrics", Icon: "👶", Description: "Child Care"},
	{Name: "Gynecology", Icon: "👩‍⚕️", Description: "Women Health"},
	{Name: "Neurology", Icon: "🧠", Description: "Brain and Nervous System"},
}

type Catalog struct {
	db     *gorm.DB
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New создаёт справочник. cache может быть nil, тогда список всегда читается из БД.
func New(db *gorm.DB, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) *Catalog {
	return &Catalog{db: db, cache: cache, ttl: ttl, logger: logger}
}

// Seed заполняет справочник, если он пуст, и заводит счётчики талонов для всех отделений.
func (c *Catalog) Seed(ctx context.Context) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Department{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			departments := make([]models.Department, len(DefaultDepartments))
			copy(departments, DefaultDepartments)
			if err := tx.Create(&departments).Error; err != nil {
				return err
			}
			c.logger.Info().Int("count", len(departments)).Msg("созданы отделения по умолчанию")
		}

		var ids []uint
		if err := tx.Model(&models.Department{}).Pluck("id", &ids).Error; err != nil {
			return err
		}
		for _, id := range ids {
			counter := models.DepartmentCounter{DepartmentID: id}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.Invalidate(ctx)
}

// List возвращает все отделения, по возможности из кэша Redis.
func (c *Catalog) List(ctx context.Context) ([]models.Department, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var departments []models.Department
			if err := json.Unmarshal([]byte(cached), &departments); err == nil {
				return departments, nil
			}
		} else if err != nil && !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("кэш отделений недоступен")
		}
	}

	var departments []models.Department
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&departments).Error; err != nil {
		return nil, apperrors.Internal("DB_ERROR", "Ошибка загрузки отделений", err)
	}

	if c.cache != nil {
		if body, err := json.Marshal(departments); err == nil {
			if err := c.cache.Set(ctx, cacheKey, body, c.ttl).Err(); err != nil {
				c.logger.Warn().Err(err).Msg("не удалось сохранить отделения в кэш")
			}
		}
	}
	return departments, nil
}

// Get ищет отделение по id.
func (c *Catalog) Get(ctx context.Context, id uint) (models.Department, error) {
	departments, err := c.List(ctx)
	if err != nil {
		return models.Department{}, err
	}
	for _, d := range departments {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Department{}, apperrors.NotFound("DEPARTMENT_NOT_FOUND", "Отделение не найдено")
}

// Invalidate сбрасывает кэш списка.
func (c *Catalog) Invalidate(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Del(ctx, cacheKey).Err()
}
