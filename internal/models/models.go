package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Role определяет права пользователя. Набор значений закрыт: patient или admin.
type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

// ParseRole разбирает строку из БД или запроса в Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient:
		return RolePatient, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("неизвестная роль %q", s)
}

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Phone        string
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(16);not null;default:patient"`
}
