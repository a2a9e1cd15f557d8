package handlers

import (
	"net/http"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/auth"
	"hospital_queue/internal/models"
	"hospital_queue/internal/response"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary		Регистрация пациента
// @Description	Регистрация нового пользователя с ролью patient
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		RegisterRequest			true	"Данные пользователя"
// @Success		201		{object}	response.AuthResponse	"Успешная регистрация"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		409		{object}	response.ErrorResponse	"Пользователь уже существует (EMAIL_EXISTS)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (PASSWORD_HASH_ERROR, DB_ERROR)"
// @Router			/api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  models.RolePatient,
	}
	if err := h.users.Create(c.Request.Context(), &user, req.Password); err != nil {
		h.writeError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusCreated, "Пользователь успешно зарегистрирован", &user)
}

// @Summary		Авторизация пользователя
// @Description	Авторизация пользователя и получение токенов
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		LoginRequest			true	"Данные для авторизации"
// @Success		200		{object}	response.AuthResponse	"Успешная авторизация"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации данных (VALIDATION_ERROR)"
// @Failure		401		{object}	response.ErrorResponse	"Неверные учетные данные (INVALID_CREDENTIALS)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (TOKEN_GENERATION_ERROR)"
// @Router			/api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusOK, "Вход выполнен", user)
}

func (h *Handler) respondWithTokens(c *gin.Context, status int, message string, user *models.User) {
	pair, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.writeError(c, apperrors.Internal("TOKEN_GENERATION_ERROR", "Ошибка при генерации токенов", err))
		return
	}

	c.JSON(status, response.AuthResponse{
		Message: message,
		TokenResponse: response.TokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
		User: response.UserInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	})
}

// @Summary		Обновление access токена
// @Description	Обновление access токена с помощью refresh токена
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			refresh_token	body		RefreshTokenRequest		true	"Refresh токен"
// @Success		200				{object}	response.TokenResponse	"Успешное обновление access токена"
// @Failure		400				{object}	response.ErrorResponse	"Ошибка валидации данных (VALIDATION_ERROR)"
// @Failure		401				{object}	response.ErrorResponse	"Неверный или просроченный refresh токен (INVALID_REFRESH_TOKEN) или пользователь не найден (USER_NOT_FOUND)"
// @Failure		500				{object}	response.ErrorResponse	"Ошибка сервера (TOKEN_GENERATION_ERROR)"
// @Router			/api/auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	userID, err := h.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		h.writeError(c, apperrors.Unauthorized("INVALID_REFRESH_TOKEN", "Неверный или просроченный refresh токен"))
		return
	}

	user, err := h.users.ByID(c.Request.Context(), userID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			err = apperrors.Unauthorized("USER_NOT_FOUND", "Пользователь не найден")
		}
		h.writeError(c, err)
		return
	}

	pair, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.writeError(c, apperrors.Internal("TOKEN_GENERATION_ERROR", "Ошибка при генерации токенов", err))
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// currentUserID достаёт id пользователя, положенный AuthMiddleware.
func currentUserID(c *gin.Context) uint {
	return c.GetUint(auth.UserIDKey)
}
