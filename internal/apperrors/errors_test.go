package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := NotFound("DEPARTMENT_NOT_FOUND", "Отделение не найдено")
	assert.Equal(t, KindNotFound, KindOf(err))

	wrapped := fmt.Errorf("join: %w", err)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.Equal(t, "DEPARTMENT_NOT_FOUND", CodeOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "INTERNAL_ERROR", CodeOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("DB_ERROR", "Ошибка базы данных", cause)

	assert.Equal(t, "[DB_ERROR] Ошибка базы данных: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	plain := Conflict("ALREADY_IN_QUEUE", "Пациент уже в очереди")
	assert.Equal(t, "[ALREADY_IN_QUEUE] Пациент уже в очереди", plain.Error())
}
