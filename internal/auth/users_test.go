package auth

import (
	"context"
	"testing"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/models"
	"hospital_queue/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	store := NewUserStore(storagetest.NewDB(t))
	ctx := context.Background()

	user := &models.User{Name: "Ram", Email: "ram@example.com", Phone: "+977-9800000001", Role: models.RolePatient}
	require.NoError(t, store.Create(ctx, user, "secret1"))
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	dup := &models.User{Name: "Ram 2", Email: "ram@example.com", Role: models.RolePatient}
	err := store.Create(ctx, dup, "secret2")
	assert.Equal(t, "EMAIL_EXISTS", apperrors.CodeOf(err))

	bad := &models.User{Name: "X", Email: "x@example.com", Role: "doctor"}
	err = store.Create(ctx, bad, "secret3")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	got, err := store.Authenticate(ctx, "ram@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = store.Authenticate(ctx, "ram@example.com", "wrong")
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.CodeOf(err))
	_, err = store.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.CodeOf(err))

	_, err = store.ByID(ctx, 999)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
