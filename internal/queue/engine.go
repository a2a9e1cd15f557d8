// Package queue - движок очереди: выдача талонов и позиций, оценка ожидания,
// переходы waiting -> in-progress -> completed и сводная статистика.
//
// Изменяющие операции сериализуются по отделению: мьютекс внутри процесса
// плюс транзакция с блокировкой строки счётчика отделения для нескольких экземпляров.
// Проверка "пациент уже в очереди" выполняется под этой блокировкой. Частичный
// уникальный индекс запрещает вторую активную запись пациента в отделении.
package queue

import (
	"context"
	"errors"
	"time"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/estimator"
	"hospital_queue/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DepartmentLookup - справочник отделений, который нужен движку.
type DepartmentLookup interface {
	Get(ctx context.Context, id uint) (models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
}

type Engine struct {
	db           *gorm.DB
	departments  DepartmentLookup
	locks        *keyedLocks
	patientLocks *keyedLocks
	singleActive bool
	now          func() time.Time
	logger       zerolog.Logger
}

type Option func(*Engine)

// WithSingleActiveEntry запрещает пациенту стоять в нескольких отделениях одновременно.
func WithSingleActiveEntry(enabled bool) Option {
	return func(e *Engine) { e.singleActive = enabled }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func NewEngine(db *gorm.DB, departments DepartmentLookup, opts ...Option) *Engine {
	e := &Engine{
		db:           db,
		departments:  departments,
		locks:        newKeyedLocks(),
		patientLocks: newKeyedLocks(),
		now:          time.Now,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WaitTime - ответ на запрос оценки ожидания в отделении.
type WaitTime struct {
	DepartmentName       string
	EstimatedWaitMinutes int
	PeopleAhead          int
	ConfidencePercent    int
	// BestTime - ориентировочное время приёма, если встать в очередь сейчас.
	BestTime             time.Time
}

type Stats struct {
	ServedCount    int64
	InQueueCount   int64
	AvgWaitMinutes int
}

// timestamp округляет до микросекунд: такую точность хранит Postgres.
func (e *Engine) timestamp() time.Time {
	return e.now().UTC().Truncate(time.Microsecond)
}

func dbError(message string, err error) error {
	return apperrors.Internal("DB_ERROR", message, err)
}

// PeekWaitTime оценивает ожидание для нового пациента. Впереди считаются и ожидающие, и те, кто уже на приёме.
func (e *Engine) PeekWaitTime(ctx context.Context, departmentID uint) (*WaitTime, error) {
	department, err := e.departments.Get(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	var active int64
	if err := e.db.WithContext(ctx).Model(&models.QueueEntry{}).
		Where("department_id = ? AND status IN ?", departmentID, models.ActiveStatuses).
		Count(&active).Error; err != nil {
		return nil, dbError("Ошибка подсчёта очереди", err)
	}

	estimate := estimator.Compute(int(active))
	return &WaitTime{
		DepartmentName:       department.Name,
		EstimatedWaitMinutes: estimate.WaitMinutes,
		PeopleAhead:          int(active),
		ConfidencePercent:    estimate.ConfidencePercent,
		BestTime:             e.timestamp().Add(time.Duration(estimate.WaitMinutes) * time.Minute),
	}, nil
}

// JoinQueue ставит пациента в очередь отделения и выдаёт талон.
func (e *Engine) JoinQueue(ctx context.Context, patientID, departmentID uint) (*models.QueueEntry, error) {
	if _, err := e.departments.Get(ctx, departmentID); err != nil {
		return nil, err
	}

	unlock := e.locks.lock(departmentID)
	defer unlock()
	// порядок фиксирован: отделение, затем пациент
	if e.singleActive {
		unlockPatient := e.patientLocks.lock(patientID)
		defer unlockPatient()
	}

	var entry models.QueueEntry
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter, err := lockCounter(tx, departmentID)
		if err != nil {
			return dbError("Ошибка блокировки счётчика талонов", err)
		}
		if e.singleActive {
			if err := lockPatient(tx, patientID); err != nil {
				return dbError("Ошибка блокировки пациента", err)
			}
		}
		if err := e.checkNotQueued(tx, patientID, departmentID); err != nil {
			return err
		}

		var waiting int64
		if err := tx.Model(&models.QueueEntry{}).
			Where("department_id = ? AND status = ?", departmentID, models.StatusWaiting).
			Count(&waiting).Error; err != nil {
			return dbError("Ошибка подсчёта очереди", err)
		}

		id, err := uuid.NewV7()
		if err != nil {
			return apperrors.Internal("ID_GENERATION_ERROR", "Ошибка генерации идентификатора", err)
		}

		sequence := counter.LastSequence + 1
		estimate := estimator.Compute(int(waiting))
		entry = models.QueueEntry{
			ID:                   id.String(),
			PatientID:            patientID,
			DepartmentID:         departmentID,
			TokenNumber:          models.FormatToken(departmentID, sequence),
			Position:             int(waiting) + 1,
			Status:               models.StatusWaiting,
			EstimatedWaitMinutes: estimate.WaitMinutes,
			ConfidencePercent:    estimate.ConfidencePercent,
			CheckInTime:          e.timestamp(),
		}

		if err := tx.Model(&models.DepartmentCounter{}).
			Where("department_id = ?", departmentID).
			Update("last_sequence", sequence).Error; err != nil {
			return dbError("Ошибка обновления счётчика талонов", err)
		}
		if err := tx.Omit(clause.Associations).Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			return dbError("Ошибка добавления в очередь", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, e.duplicateJoinError(ctx, patientID, departmentID, err)
	}
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Uint("patient_id", patientID).
		Uint("department_id", departmentID).
		Str("token", entry.TokenNumber).
		Int("position", entry.Position).
		Msg("пациент встал в очередь")
	return &entry, nil
}

func (e *Engine) checkNotQueued(tx *gorm.DB, patientID, departmentID uint) error {
	q := tx.Model(&models.QueueEntry{}).
		Where("patient_id = ? AND status IN ?", patientID, models.ActiveStatuses)
	if !e.singleActive {
		q = q.Where("department_id = ?", departmentID)
	}

	var active int64
	if err := q.Count(&active).Error; err != nil {
		return dbError("Ошибка проверки очереди пациента", err)
	}
	if active == 0 {
		return nil
	}
	if e.singleActive {
		return apperrors.Conflict("ALREADY_IN_QUEUE", "Пациент уже стоит в очереди")
	}
	return apperrors.Conflict("ALREADY_IN_QUEUE", "Пациент уже стоит в очереди этого отделения")
}

// duplicateJoinError разбирает нарушение уникального индекса при вставке. Транзакция
// уже откатана, поэтому проверка идёт отдельным запросом.
func (e *Engine) duplicateJoinError(ctx context.Context, patientID, departmentID uint, cause error) error {
	if err := e.checkNotQueued(e.db.WithContext(ctx), patientID, departmentID); err != nil {
		return err
	}
	return apperrors.Wrap(apperrors.KindConflict, "TOKEN_CONFLICT", "Талон с таким номером уже выдан", cause)
}

// lockPatient блокирует строку пользователя до конца транзакции. Так одновременные
// вступления одного пациента в разные отделения проходят по очереди и между экземплярами.
// Если строки нет, остаётся только мьютекс процесса.
func lockPatient(tx *gorm.DB, patientID uint) error {
	var users []models.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", patientID).
		Limit(1).
		Find(&users).Error
}

// lockCounter блокирует строку счётчика отделения до конца транзакции, создавая её при необходимости.
func lockCounter(tx *gorm.DB, departmentID uint) (*models.DepartmentCounter, error) {
	counter := models.DepartmentCounter{DepartmentID: departmentID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
		return nil, err
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("department_id = ?", departmentID).
		First(&counter).Error; err != nil {
		return nil, err
	}
	return &counter, nil
}

// GetPosition возвращает активную запись пациента. Если пациент стоит в нескольких
// отделениях, берётся самая свежая.
func (e *Engine) GetPosition(ctx context.Context, patientID uint) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	err := e.db.WithContext(ctx).
		Where("patient_id = ? AND status IN ?", patientID, models.ActiveStatuses).
		Order("check_in_time DESC").Order("id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("NOT_IN_QUEUE", "Пациент не стоит ни в одной очереди")
	}
	if err != nil {
		return nil, dbError("Ошибка поиска записи в очереди", err)
	}
	return &entry, nil
}

// PeopleAhead считает ожидающих перед записью в порядке вызова. В отличие от
// Position, значение живое: уменьшается по мере приёма пациентов.
func (e *Engine) PeopleAhead(ctx context.Context, entry *models.QueueEntry) (int, error) {
	if entry.Status != models.StatusWaiting {
		return 0, nil
	}
	var ahead int64
	err := e.db.WithContext(ctx).Model(&models.QueueEntry{}).
		Where("department_id = ? AND status = ?", entry.DepartmentID, models.StatusWaiting).
		Where("(check_in_time < ? OR (check_in_time = ? AND id < ?))", entry.CheckInTime, entry.CheckInTime, entry.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, dbError("Ошибка подсчёта очереди", err)
	}
	return int(ahead), nil
}

// ListPatientEntries возвращает все записи пациента, новые первыми.
func (e *Engine) ListPatientEntries(ctx context.Context, patientID uint) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := e.db.WithContext(ctx).
		Preload("Department").
		Where("patient_id = ?", patientID).
		Order("check_in_time DESC").Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, dbError("Ошибка загрузки записей пациента", err)
	}
	return entries, nil
}

// CallNext вызывает к врачу того, кто раньше всех встал в очередь отделения.
func (e *Engine) CallNext(ctx context.Context, departmentID uint) (*models.QueueEntry, error) {
	if _, err := e.departments.Get(ctx, departmentID); err != nil {
		return nil, err
	}

	unlock := e.locks.lock(departmentID)
	defer unlock()

	var entry models.QueueEntry
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("department_id = ? AND status = ?", departmentID, models.StatusWaiting).
			Order("check_in_time ASC").Order("id ASC").
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("NO_PATIENTS_WAITING", "В очереди нет ожидающих пациентов")
		}
		if err != nil {
			return dbError("Ошибка поиска следующего пациента", err)
		}
		return transition(tx, &entry, models.StatusInProgress, e.timestamp())
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Uint("department_id", departmentID).
		Str("token", entry.TokenNumber).
		Msg("пациент вызван")
	return &entry, nil
}

// CompleteEntry завершает приём: in-progress -> completed.
func (e *Engine) CompleteEntry(ctx context.Context, entryID string) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	if err := e.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ENTRY_NOT_FOUND", "Запись в очереди не найдена")
		}
		return nil, dbError("Ошибка поиска записи в очереди", err)
	}

	unlock := e.locks.lock(entry.DepartmentID)
	defer unlock()

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", entryID).
			First(&entry).Error; err != nil {
			return dbError("Ошибка поиска записи в очереди", err)
		}
		return transition(tx, &entry, models.StatusCompleted, e.timestamp())
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info().Str("token", entry.TokenNumber).Msg("приём завершён")
	return &entry, nil
}

// transition переводит запись в следующий статус. Обновление условное по текущему
// статусу, поэтому повтор не может продвинуть запись дважды.
func transition(tx *gorm.DB, entry *models.QueueEntry, next models.Status, at time.Time) error {
	if !entry.Status.CanTransitionTo(next) {
		return apperrors.Conflict("INVALID_TRANSITION", "Недопустимая смена статуса: "+string(entry.Status)+" -> "+string(next))
	}

	updates := map[string]interface{}{"status": next}
	switch next {
	case models.StatusInProgress:
		updates["start_time"] = at
	case models.StatusCompleted:
		updates["end_time"] = at
	}

	res := tx.Model(&models.QueueEntry{}).
		Where("id = ? AND status = ?", entry.ID, entry.Status).
		Updates(updates)
	if res.Error != nil {
		return dbError("Ошибка обновления статуса", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("INVALID_TRANSITION", "Статус записи уже изменён")
	}

	entry.Status = next
	switch next {
	case models.StatusInProgress:
		entry.StartTime = &at
	case models.StatusCompleted:
		entry.EndTime = &at
	}
	return nil
}
