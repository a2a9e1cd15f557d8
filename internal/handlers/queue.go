package handlers

import (
	"net/http"
	"strconv"

	"hospital_queue/internal/models"
	"hospital_queue/internal/response"

	"github.com/gin-gonic/gin"
)

type JoinQueueRequest struct {
	DepartmentID uint `json:"department_id" binding:"required"`
}

func parseDepartmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("department_id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DEPARTMENT_ID",
			Message: "Неверный идентификатор отделения",
		})
		return 0, false
	}
	return uint(id), true
}

// WaitTimeHandler godoc
// @Summary		Оценка времени ожидания
// @Description	Сколько человек впереди и примерное время ожидания в отделении
// @Tags			queue
// @Produce		json
// @Param			department_id	path		int	true	"ID отделения"
// @Success		200				{object}	response.WaitTimeResponse
// @Failure		400				{object}	response.ErrorResponse	"Неверный ID (INVALID_DEPARTMENT_ID)"
// @Failure		404				{object}	response.ErrorResponse	"Отделение не найдено (DEPARTMENT_NOT_FOUND)"
// @Failure		500				{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queue/wait-time/{department_id} [get]
func (h *Handler) WaitTimeHandler(c *gin.Context) {
	departmentID, ok := parseDepartmentID(c)
	if !ok {
		return
	}

	wait, err := h.engine.PeekWaitTime(c.Request.Context(), departmentID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.WaitTimeResponse{
		DepartmentID:         departmentID,
		Department:           wait.DepartmentName,
		EstimatedWaitMinutes: wait.EstimatedWaitMinutes,
		PeopleAhead:          wait.PeopleAhead,
		ConfidencePercent:    wait.ConfidencePercent,
		BestTime:             wait.BestTime,
	})
}

// JoinQueueHandler обрабатывает запрос на вступление в очередь
// @Summary		Вступление в очередь
// @Description	Ставит пациента в очередь отделения и выдаёт талон
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			request	body	JoinQueueRequest	true	"Отделение"
// @Security		BearerAuth
// @Success		201	{object}	response.JoinQueueResponse	"Талон выдан"
// @Failure		400	{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse		"Отделение не найдено (DEPARTMENT_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse		"Пациент уже в очереди (ALREADY_IN_QUEUE)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/queue/join [post]
func (h *Handler) JoinQueueHandler(c *gin.Context) {
	var req JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	entry, err := h.engine.JoinQueue(c.Request.Context(), currentUserID(c), req.DepartmentID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.JoinQueueResponse{
		Message:              "Вы встали в очередь",
		EntryID:              entry.ID,
		TokenNumber:          entry.TokenNumber,
		Position:             entry.Position,
		EstimatedWaitMinutes: entry.EstimatedWaitMinutes,
		ConfidencePercent:    entry.ConfidencePercent,
		CheckInTime:          entry.CheckInTime,
	})
}

// PositionHandler godoc
// @Summary		Текущая позиция
// @Description	Активная запись пациента: талон, статус, сколько ожидающих впереди
// @Tags			queue
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.PositionResponse
// @Failure		404	{object}	response.ErrorResponse	"Пациент не в очереди (NOT_IN_QUEUE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queue/position [get]
func (h *Handler) PositionHandler(c *gin.Context) {
	ctx := c.Request.Context()
	entry, err := h.engine.GetPosition(ctx, currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	ahead, err := h.engine.PeopleAhead(ctx, entry)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := response.PositionResponse{
		EntryID:              entry.ID,
		TokenNumber:          entry.TokenNumber,
		DepartmentID:         entry.DepartmentID,
		Position:             entry.Position,
		PeopleAhead:          ahead,
		Status:               string(entry.Status),
		EstimatedWaitMinutes: entry.EstimatedWaitMinutes,
		ConfidencePercent:    entry.ConfidencePercent,
		CheckInTime:          entry.CheckInTime,
		StartTime:            entry.StartTime,
	}
	// название отделения не критично для ответа
	if department, err := h.catalog.Get(ctx, entry.DepartmentID); err == nil {
		resp.Department = department.Name
	} else {
		h.logger.Warn().Err(err).Uint("department_id", entry.DepartmentID).Msg("не удалось получить отделение")
	}

	c.JSON(http.StatusOK, resp)
}

// HistoryHandler возвращает все записи пациента
// @Summary		История записей
// @Description	Все записи текущего пациента, новые первыми
// @Tags			queue
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		response.QueueEntryResponse
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queue/history [get]
func (h *Handler) HistoryHandler(c *gin.Context) {
	entries, err := h.engine.ListPatientEntries(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	result := make([]response.QueueEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, entryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, result)
}

func entryResponse(entry *models.QueueEntry) response.QueueEntryResponse {
	return response.QueueEntryResponse{
		EntryID:      entry.ID,
		TokenNumber:  entry.TokenNumber,
		DepartmentID: entry.DepartmentID,
		Department:   entry.Department.Name,
		Position:     entry.Position,
		Status:       string(entry.Status),
		CheckInTime:  entry.CheckInTime,
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
	}
}

// DepartmentsHandler godoc
// @Summary		Список отделений
// @Tags			departments
// @Produce		json
// @Success		200	{array}		models.Department
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/departments [get]
func (h *Handler) DepartmentsHandler(c *gin.Context) {
	departments, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}
