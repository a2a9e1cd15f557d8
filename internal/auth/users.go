package auth

import (
	"context"
	"errors"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore - доступ к пользователям в БД.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create хеширует пароль и сохраняет пользователя. Занятый email - Conflict.
func (s *UserStore) Create(ctx context.Context, user *models.User, password string) error {
	if _, err := models.ParseRole(string(user.Role)); err != nil {
		return apperrors.Validation("INVALID_ROLE", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("PASSWORD_HASH_ERROR", "Ошибка при хешировании пароля", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("EMAIL_EXISTS", "Пользователь с таким email уже существует")
		}
		return apperrors.Internal("DB_ERROR", "Ошибка при создании пользователя", err)
	}
	return nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *UserStore) ByID(ctx context.Context, id uint) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStore) first(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "Пользователь не найден")
	}
	if err != nil {
		return nil, apperrors.Internal("DB_ERROR", "Ошибка поиска пользователя", err)
	}
	return &user, nil
}

// Authenticate проверяет email и пароль. Любое несовпадение - одна и та же ошибка.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	invalid := apperrors.Unauthorized("INVALID_CREDENTIALS", "Неверный email или пароль")

	user, err := s.ByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}
	return user, nil
}
