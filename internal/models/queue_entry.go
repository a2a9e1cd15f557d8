package models

import (
	"fmt"
	"time"
)

// Status - состояние записи в очереди.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ActiveStatuses - записи в этих статусах занимают место в очереди.
var ActiveStatuses = []Status{StatusWaiting, StatusInProgress}

// CanTransitionTo допускает только waiting -> in-progress -> completed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusWaiting:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

func (s Status) IsActive() bool {
	return s == StatusWaiting || s == StatusInProgress
}

// QueueEntry - запись пациента в очереди отделения. Частичный уникальный индекс
// idx_queue_entries_active_patient допускает не больше одной активной записи
// на пару пациент/отделение.
type QueueEntry struct {
	ID                   string     `gorm:"primaryKey;type:varchar(36)"`
	PatientID            uint       `gorm:"index;uniqueIndex:idx_queue_entries_active_patient,where:status <> 'completed';not null"`
	DepartmentID         uint       `gorm:"index:idx_queue_entries_dept_status;uniqueIndex:idx_queue_entries_active_patient,where:status <> 'completed';not null"`
	Department           Department `gorm:"foreignKey:DepartmentID"`
	TokenNumber          string     `gorm:"uniqueIndex;not null"`
	Position             int        `gorm:"not null"` // Снимок позиции на момент вступления, не пересчитывается
	Status               Status     `gorm:"type:varchar(16);index:idx_queue_entries_dept_status;not null"`
	EstimatedWaitMinutes int        `gorm:"not null"`
	ConfidencePercent    int        `gorm:"not null"`
	CheckInTime          time.Time  `gorm:"index;not null"`
	StartTime            *time.Time // Время вызова к врачу
	EndTime              *time.Time // Время завершения приёма
}

// FormatToken собирает номер талона: D + отделение (2 цифры) + порядковый номер (3 цифры).
// Поля дополняются нулями, но не обрезаются: после 999 талонов номер становится длиннее
// (D011001). Для отделений с id от 100 такой номер может совпасть с чужим (D111001),
// тогда вставку отклоняет уникальный индекс и JoinQueue возвращает TOKEN_CONFLICT.
func FormatToken(departmentID uint, sequence int) string {
	return fmt.Sprintf("D%02d%03d", departmentID, sequence)
}
