package handlers

import (
	"errors"
	"net/http"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/auth"
	"hospital_queue/internal/catalog"
	"hospital_queue/internal/queue"
	"hospital_queue/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler собирает зависимости HTTP-обработчиков.
type Handler struct {
	engine  *queue.Engine
	catalog *catalog.Catalog
	users   *auth.UserStore
	tokens  *auth.TokenIssuer
	logger  zerolog.Logger
}

func New(engine *queue.Engine, departments *catalog.Catalog, users *auth.UserStore, tokens *auth.TokenIssuer, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:  engine,
		catalog: departments,
		users:   users,
		tokens:  tokens,
		logger:  logger,
	}
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError переводит ошибку приложения в HTTP-ответ. Детали внутренних ошибок
// только логируются.
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := statusFor(kind)

	message := "Внутренняя ошибка сервера"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && kind != apperrors.KindInternal {
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("ошибка обработки запроса")
		_ = c.Error(err)
	}

	c.JSON(status, response.ErrorResponse{
		Code:    apperrors.CodeOf(err),
		Message: message,
	})
}

func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}

// HealthHandler godoc
// @Summary		Проверка работоспособности
// @Tags			system
// @Produce		json
// @Success		200	{object}	response.HealthResponse
// @Router			/api/health [get]
func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
