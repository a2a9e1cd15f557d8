package tasks

import (
	"context"
	"time"

	"hospital_queue/internal/queue"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	completeStaleSpec = "0 */5 * * * *"
	statsLogSpec      = "0 0 * * * *"
	jobTimeout        = time.Minute
)

// Planner запускает фоновые задачи очереди.
type Planner struct {
	engine            *queue.Engine
	autoCompleteAfter time.Duration
	logger            zerolog.Logger
	now               func() time.Time
}

func NewPlanner(engine *queue.Engine, autoCompleteAfter time.Duration, logger zerolog.Logger) *Planner {
	return &Planner{
		engine:            engine,
		autoCompleteAfter: autoCompleteAfter,
		logger:            logger,
		now:               time.Now,
	}
}

// CompleteStaleEntries закрывает приёмы, которые идут дольше autoCompleteAfter.
func (p *Planner) CompleteStaleEntries() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := p.now().Add(-p.autoCompleteAfter)
	completed, err := p.engine.CompleteStale(ctx, cutoff)
	if err != nil {
		p.logger.Error().Err(err).Msg("ошибка при завершении зависших приёмов")
		return
	}
	if completed > 0 {
		p.logger.Info().Int("completed", completed).Time("cutoff", cutoff).Msg("зависшие приёмы завершены")
	}
}

// LogStats пишет в лог сводку по очередям.
func (p *Planner) LogStats() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	stats, err := p.engine.GetStats(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("ошибка расчёта статистики")
		return
	}
	p.logger.Info().
		Int64("served", stats.ServedCount).
		Int64("in_queue", stats.InQueueCount).
		Int("avg_wait_minutes", stats.AvgWaitMinutes).
		Msg("статистика очередей")
}

// InitScheduler регистрирует задачи и запускает cron-планировщик.
// Автозавершение не регистрируется, если autoCompleteAfter равен нулю.
func (p *Planner) InitScheduler() (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if p.autoCompleteAfter > 0 {
		if _, err := c.AddFunc(completeStaleSpec, p.CompleteStaleEntries); err != nil {
			return nil, err
		}
	}
	if _, err := c.AddFunc(statsLogSpec, p.LogStats); err != nil {
		return nil, err
	}

	c.Start()
	p.logger.Info().Int("jobs", len(c.Entries())).Msg("cron-планировщик запущен")
	return c, nil
}
