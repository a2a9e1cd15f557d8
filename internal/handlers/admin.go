package handlers

import (
	"net/http"

	"hospital_queue/internal/response"

	"github.com/gin-gonic/gin"
)

type CallNextRequest struct {
	DepartmentID uint `json:"department_id" binding:"required"`
}

type CompleteRequest struct {
	EntryID string `json:"entry_id" binding:"required"`
}

// CallNextHandler вызывает следующего пациента
// @Summary		Вызвать следующего
// @Description	Переводит самого раннего ожидающего пациента отделения в статус in-progress
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			request	body	CallNextRequest	true	"Отделение"
// @Security		BearerAuth
// @Success		200	{object}	response.CallNextResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Нет ожидающих (NO_PATIENTS_WAITING) или отделение не найдено (DEPARTMENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/call-next [post]
func (h *Handler) CallNextHandler(c *gin.Context) {
	var req CallNextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	entry, err := h.engine.CallNext(c.Request.Context(), req.DepartmentID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.CallNextResponse{
		Message:     "Пациент вызван",
		EntryID:     entry.ID,
		TokenNumber: entry.TokenNumber,
	})
}

// CompleteHandler завершает приём
// @Summary		Завершить приём
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			request	body	CompleteRequest	true	"Запись"
// @Security		BearerAuth
// @Success		200	{object}	response.QueueEntryResponse
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (ENTRY_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Недопустимый переход (INVALID_TRANSITION)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/complete [post]
func (h *Handler) CompleteHandler(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	entry, err := h.engine.CompleteEntry(c.Request.Context(), req.EntryID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entryResponse(entry))
}

// StatsHandler godoc
// @Summary		Статистика очередей
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.StatsResponse
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/stats [get]
func (h *Handler) StatsHandler(c *gin.Context) {
	stats, err := h.engine.GetStats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.StatsResponse{
		ServedCount:    stats.ServedCount,
		InQueueCount:   stats.InQueueCount,
		AvgWaitMinutes: stats.AvgWaitMinutes,
	})
}
