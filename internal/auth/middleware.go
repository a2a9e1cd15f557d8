package auth

import (
	"context"
	"net/http"
	"strings"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/models"
	"hospital_queue/internal/response"

	"github.com/gin-gonic/gin"
)

// UserIDKey - ключ gin.Context, под которым лежит id авторизованного пользователя.
const UserIDKey = "userID"

// AuthMiddleware проверяет валидность access токена
func AuthMiddleware(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.ParseAccess(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный или просроченный токен",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserLookup нужен для проверки роли по данным из БД, а не из токена.
type UserLookup interface {
	ByID(ctx context.Context, id uint) (*models.User, error)
}

// RequireRole пропускает только пользователей с ролью required. Ставится после AuthMiddleware.
func RequireRole(users UserLookup, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.ByID(c.Request.Context(), c.GetUint(UserIDKey))
		if err != nil {
			status := http.StatusInternalServerError
			if apperrors.Is(err, apperrors.KindNotFound) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, response.ErrorResponse{
				Code:    apperrors.CodeOf(err),
				Message: "Не удалось проверить права пользователя",
			})
			return
		}

		role, err := models.ParseRole(string(user.Role))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "Недостаточно прав",
			})
			return
		}

		allowed := false
		switch role {
		case models.RoleAdmin:
			allowed = true
		case models.RolePatient:
			allowed = required == models.RolePatient
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "Требуются права администратора",
			})
			return
		}
		c.Next()
	}
}
