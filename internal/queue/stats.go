package queue

import (
	"context"
	"time"

	"hospital_queue/internal/models"
)

// GetStats считает обслуженных и стоящих в очереди. Счётчики читаются отдельными
// запросами, общий снимок между ними не гарантируется.
func (e *Engine) GetStats(ctx context.Context) (*Stats, error) {
	db := e.db.WithContext(ctx)
	stats := &Stats{}

	if err := db.Model(&models.QueueEntry{}).
		Where("status = ?", models.StatusCompleted).
		Count(&stats.ServedCount).Error; err != nil {
		return nil, dbError("Ошибка подсчёта обслуженных", err)
	}
	if err := db.Model(&models.QueueEntry{}).
		Where("status IN ?", models.ActiveStatuses).
		Count(&stats.InQueueCount).Error; err != nil {
		return nil, dbError("Ошибка подсчёта очереди", err)
	}

	var called []models.QueueEntry
	if err := db.Select("check_in_time", "start_time").
		Where("start_time IS NOT NULL").
		Find(&called).Error; err != nil {
		return nil, dbError("Ошибка расчёта среднего ожидания", err)
	}
	stats.AvgWaitMinutes = averageWaitMinutes(called)
	return stats, nil
}

func averageWaitMinutes(entries []models.QueueEntry) int {
	if len(entries) == 0 {
		return 0
	}
	var total time.Duration
	for _, entry := range entries {
		if entry.StartTime != nil {
			total += entry.StartTime.Sub(entry.CheckInTime)
		}
	}
	return int((total / time.Duration(len(entries))).Round(time.Minute) / time.Minute)
}

// CompleteStale закрывает приёмы, начатые раньше cutoff. Каждая запись проходит
// через CompleteEntry, так что гонка с ручным завершением безопасна.
func (e *Engine) CompleteStale(ctx context.Context, cutoff time.Time) (int, error) {
	var ids []string
	if err := e.db.WithContext(ctx).Model(&models.QueueEntry{}).
		Where("status = ? AND start_time < ?", models.StatusInProgress, cutoff.UTC()).
		Order("start_time ASC").
		Pluck("id", &ids).Error; err != nil {
		return 0, dbError("Ошибка поиска зависших приёмов", err)
	}

	completed := 0
	for _, id := range ids {
		if _, err := e.CompleteEntry(ctx, id); err != nil {
			e.logger.Warn().Err(err).Str("entry_id", id).Msg("не удалось завершить зависший приём")
			continue
		}
		completed++
	}
	return completed, nil
}
