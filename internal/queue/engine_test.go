package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"hospital_queue/internal/apperrors"
	"hospital_queue/internal/catalog"
	"hospital_queue/internal/models"
	"hospital_queue/internal/storage/storagetest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClock сдвигается на секунду при каждом чтении, чтобы порядок вставки был однозначным.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupEngine(t *testing.T, opts ...Option) (*Engine, *gorm.DB, *fakeClock) {
	t.Helper()
	db := storagetest.NewDB(t)
	departments := catalog.New(db, nil, time.Minute, zerolog.Nop())
	require.NoError(t, departments.Seed(context.Background()))

	clock := newFakeClock()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewEngine(db, departments, opts...), db, clock
}

func TestJoinQueueScenario(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	first, err := engine.JoinQueue(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, "D01001", first.TokenNumber)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 0, first.EstimatedWaitMinutes)
	assert.Equal(t, 70, first.ConfidencePercent)
	assert.Equal(t, models.StatusWaiting, first.Status)
	assert.NotEmpty(t, first.ID)
	assert.Nil(t, first.StartTime)

	second, err := engine.JoinQueue(ctx, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, "D01002", second.TokenNumber)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, 10, second.EstimatedWaitMinutes)
	assert.Equal(t, 72, second.ConfidencePercent)

	other, err := engine.JoinQueue(ctx, 11, 2)
	require.NoError(t, err)
	assert.Equal(t, "D02001", other.TokenNumber)
	assert.Equal(t, 1, other.Position)
}

func TestJoinQueueUnknownDepartment(t *testing.T) {
	engine, _, _ := setupEngine(t)

	_, err := engine.JoinQueue(context.Background(), 7, 42)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "DEPARTMENT_NOT_FOUND", apperrors.CodeOf(err))
}

func TestJoinQueueDuplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("same department", func(t *testing.T) {
		engine, _, _ := setupEngine(t)
		_, err := engine.JoinQueue(ctx, 7, 1)
		require.NoError(t, err)

		_, err = engine.JoinQueue(ctx, 7, 1)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		assert.Equal(t, "ALREADY_IN_QUEUE", apperrors.CodeOf(err))
	})

	t.Run("in-progress still blocks", func(t *testing.T) {
		engine, _, _ := setupEngine(t)
		_, err := engine.JoinQueue(ctx, 7, 1)
		require.NoError(t, err)
		_, err = engine.CallNext(ctx, 1)
		require.NoError(t, err)

		_, err = engine.JoinQueue(ctx, 7, 1)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	t.Run("rejoin after completion", func(t *testing.T) {
		engine, _, _ := setupEngine(t)
		_, err := engine.JoinQueue(ctx, 7, 1)
		require.NoError(t, err)
		called, err := engine.CallNext(ctx, 1)
		require.NoError(t, err)
		_, err = engine.CompleteEntry(ctx, called.ID)
		require.NoError(t, err)

		again, err := engine.JoinQueue(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, "D01002", again.TokenNumber)
		assert.Equal(t, 1, again.Position)
	})

	t.Run("other department allowed by default", func(t *testing.T) {
		engine, _, _ := setupEngine(t)
		_, err := engine.JoinQueue(ctx, 7, 1)
		require.NoError(t, err)

		_, err = engine.JoinQueue(ctx, 7, 2)
		assert.NoError(t, err)
	})

	t.Run("other department rejected in single-active mode", func(t *testing.T) {
		engine, _, _ := setupEngine(t, WithSingleActiveEntry(true))
		_, err := engine.JoinQueue(ctx, 7, 1)
		require.NoError(t, err)

		_, err = engine.JoinQueue(ctx, 7, 2)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})
}

func TestJoinQueueConcurrent(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	const n = 25

	var wg sync.WaitGroup
	entries := make([]*models.QueueEntry, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entries[i], errs[i] = engine.JoinQueue(ctx, uint(100+i), 3)
		}(i)
	}
	wg.Wait()

	tokens := make(map[string]bool)
	positions := make(map[int]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		tokens[entries[i].TokenNumber] = true
		positions[entries[i].Position] = true
	}
	assert.Len(t, tokens, n)
	for p := 1; p <= n; p++ {
		assert.True(t, positions[p], "позиция %d не выдана", p)
		assert.True(t, tokens[fmt.Sprintf("D03%03d", p)], "талон %d не выдан", p)
	}

	var counter models.DepartmentCounter
	require.NoError(t, db.First(&counter, "department_id = ?", 3).Error)
	assert.Equal(t, n, counter.LastSequence)
}

// joinFromEngines запускает вступления одновременно, по очереди раздавая их движкам.
func joinFromEngines(engines []*Engine, patientID uint, departments []uint) ([]*models.QueueEntry, []error) {
	ctx := context.Background()
	entries := make([]*models.QueueEntry, len(departments))
	errs := make([]error, len(departments))

	var wg sync.WaitGroup
	for i, departmentID := range departments {
		wg.Add(1)
		go func(i int, departmentID uint) {
			defer wg.Done()
			entries[i], errs[i] = engines[i%len(engines)].JoinQueue(ctx, patientID, departmentID)
		}(i, departmentID)
	}
	wg.Wait()
	return entries, errs
}

func countJoined(t *testing.T, errs []error) int {
	t.Helper()
	joined := 0
	for _, err := range errs {
		if err == nil {
			joined++
			continue
		}
		assert.Equal(t, "ALREADY_IN_QUEUE", apperrors.CodeOf(err))
	}
	return joined
}

func activeEntries(t *testing.T, db *gorm.DB, patientID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.QueueEntry{}).
		Where("patient_id = ? AND status IN ?", patientID, models.ActiveStatuses).
		Count(&n).Error)
	return n
}

func TestJoinQueueSamePatientFromTwoInstances(t *testing.T) {
	first, db, _ := setupEngine(t)
	// второй экземпляр сервиса: своя карта мьютексов, общая база
	second := NewEngine(db, catalog.New(db, nil, time.Minute, zerolog.Nop()))
	require.NotSame(t, first.locks, second.locks)

	departments := make([]uint, 10)
	for i := range departments {
		departments[i] = 1
	}
	_, errs := joinFromEngines([]*Engine{first, second}, 7, departments)

	assert.Equal(t, 1, countJoined(t, errs))
	assert.Equal(t, int64(1), activeEntries(t, db, 7))
}

func TestJoinQueueSingleActiveAcrossDepartments(t *testing.T) {
	first, db, _ := setupEngine(t, WithSingleActiveEntry(true))
	second := NewEngine(db, catalog.New(db, nil, time.Minute, zerolog.Nop()), WithSingleActiveEntry(true))

	t.Run("one instance", func(t *testing.T) {
		_, errs := joinFromEngines([]*Engine{first}, 7, []uint{1, 2, 3, 4, 5, 6})
		assert.Equal(t, 1, countJoined(t, errs))
		assert.Equal(t, int64(1), activeEntries(t, db, 7))
	})

	t.Run("two instances", func(t *testing.T) {
		_, errs := joinFromEngines([]*Engine{first, second}, 8, []uint{1, 2, 3, 4, 5, 6})
		assert.Equal(t, 1, countJoined(t, errs))
		assert.Equal(t, int64(1), activeEntries(t, db, 8))
	})

	t.Run("patient with stored user row", func(t *testing.T) {
		user := models.User{Name: "Пациент", Email: "p@hospital.test", PasswordHash: "x", Role: models.RolePatient}
		require.NoError(t, db.Create(&user).Error)

		_, errs := joinFromEngines([]*Engine{first, second}, user.ID, []uint{1, 2, 3, 4})
		assert.Equal(t, 1, countJoined(t, errs))
		assert.Equal(t, int64(1), activeEntries(t, db, user.ID))
	})
}

func TestDuplicateJoinError(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	err := engine.duplicateJoinError(ctx, 7, 1, gorm.ErrDuplicatedKey)
	assert.Equal(t, "TOKEN_CONFLICT", apperrors.CodeOf(err))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = engine.JoinQueue(ctx, 7, 1)
	require.NoError(t, err)
	err = engine.duplicateJoinError(ctx, 7, 1, gorm.ErrDuplicatedKey)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	assert.Equal(t, "ALREADY_IN_QUEUE", apperrors.CodeOf(err))
}

func TestTokensStayUniqueAfterCalls(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.JoinQueue(ctx, 1, 1)
	require.NoError(t, err)
	_, err = engine.JoinQueue(ctx, 2, 1)
	require.NoError(t, err)
	_, err = engine.CallNext(ctx, 1)
	require.NoError(t, err)

	// Ожидает один человек: позиция повторяется, номер талона - нет.
	third, err := engine.JoinQueue(ctx, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, third.Position)
	assert.Equal(t, "D01003", third.TokenNumber)
}

func TestCallNextFIFO(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	var joined []string
	for _, patient := range []uint{5, 3, 8} {
		entry, err := engine.JoinQueue(ctx, patient, 2)
		require.NoError(t, err)
		joined = append(joined, entry.ID)
	}
	// Очередь другого отделения не должна мешать.
	_, err := engine.JoinQueue(ctx, 40, 1)
	require.NoError(t, err)

	for _, want := range joined {
		called, err := engine.CallNext(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, want, called.ID)
		assert.Equal(t, models.StatusInProgress, called.Status)
		require.NotNil(t, called.StartTime)
	}

	_, err = engine.CallNext(ctx, 2)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "NO_PATIENTS_WAITING", apperrors.CodeOf(err))

	_, err = engine.CallNext(ctx, 77)
	assert.Equal(t, "DEPARTMENT_NOT_FOUND", apperrors.CodeOf(err))
}

func TestCallNextConcurrentDoesNotDoubleAdvance(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.JoinQueue(ctx, 1, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = engine.CallNext(ctx, 4)
		}(i)
	}
	wg.Wait()

	ok, notFound := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case apperrors.Is(err, apperrors.KindNotFound):
			notFound++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, notFound)

	var inProgress int64
	db.Model(&models.QueueEntry{}).Where("status = ?", models.StatusInProgress).Count(&inProgress)
	assert.EqualValues(t, 1, inProgress)
}

func TestLifecycle(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	entry, err := engine.JoinQueue(ctx, 7, 1)
	require.NoError(t, err)

	_, err = engine.CompleteEntry(ctx, entry.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict), "waiting нельзя сразу завершить")

	called, err := engine.CallNext(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, called.ID)

	done, err := engine.CompleteEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	require.NotNil(t, done.StartTime)
	require.NotNil(t, done.EndTime)
	assert.True(t, done.EndTime.After(*done.StartTime))

	_, err = engine.CompleteEntry(ctx, entry.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict), "completed - конечное состояние")

	_, err = engine.CompleteEntry(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestStatusTransitions(t *testing.T) {
	all := []models.Status{models.StatusWaiting, models.StatusInProgress, models.StatusCompleted}
	allowed := map[[2]models.Status]bool{
		{models.StatusWaiting, models.StatusInProgress}:   true,
		{models.StatusInProgress, models.StatusCompleted}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]models.Status{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestGetStatsScenario(t *testing.T) {
	engine, _, clock := setupEngine(t)
	ctx := context.Background()

	for _, patient := range []uint{1, 2, 3} {
		_, err := engine.JoinQueue(ctx, patient, 1)
		require.NoError(t, err)
	}
	clock.Advance(10 * time.Minute)
	called, err := engine.CallNext(ctx, 1)
	require.NoError(t, err)
	_, err = engine.CompleteEntry(ctx, called.ID)
	require.NoError(t, err)

	stats, err := engine.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.InQueueCount)
	assert.EqualValues(t, 1, stats.ServedCount)
	assert.Equal(t, 10, stats.AvgWaitMinutes)
}

func TestPeekWaitTime(t *testing.T) {
	engine, _, clock := setupEngine(t)
	ctx := context.Background()

	empty, err := engine.PeekWaitTime(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "General OPD", empty.DepartmentName)
	assert.Equal(t, 0, empty.PeopleAhead)
	assert.Equal(t, 70, empty.ConfidencePercent)

	for patient := uint(1); patient <= 5; patient++ {
		_, err := engine.JoinQueue(ctx, patient, 1)
		require.NoError(t, err)
	}
	_, err = engine.CallNext(ctx, 1)
	require.NoError(t, err)

	before := clock.Now()
	wait, err := engine.PeekWaitTime(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, wait.PeopleAhead)
	assert.Equal(t, 50, wait.EstimatedWaitMinutes)
	assert.Equal(t, 80, wait.ConfidencePercent)
	// часы сдвигаются на секунду при каждом чтении
	assert.True(t, before.Add(time.Second+50*time.Minute).Equal(wait.BestTime), wait.BestTime.String())

	_, err = engine.PeekWaitTime(ctx, 99)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestGetPosition(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.GetPosition(ctx, 7)
	assert.Equal(t, "NOT_IN_QUEUE", apperrors.CodeOf(err))

	_, err = engine.JoinQueue(ctx, 7, 1)
	require.NoError(t, err)
	latest, err := engine.JoinQueue(ctx, 7, 2)
	require.NoError(t, err)

	got, err := engine.GetPosition(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)
}

func TestPeopleAheadIsLive(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	for patient := uint(1); patient <= 3; patient++ {
		_, err := engine.JoinQueue(ctx, patient, 1)
		require.NoError(t, err)
	}
	last, err := engine.GetPosition(ctx, 3)
	require.NoError(t, err)

	ahead, err := engine.PeopleAhead(ctx, last)
	require.NoError(t, err)
	assert.Equal(t, 2, ahead)

	_, err = engine.CallNext(ctx, 1)
	require.NoError(t, err)

	ahead, err = engine.PeopleAhead(ctx, last)
	require.NoError(t, err)
	assert.Equal(t, 1, ahead)

	// Сохранённая позиция остаётся снимком.
	again, err := engine.GetPosition(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Position)
}

func TestListPatientEntries(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.JoinQueue(ctx, 7, 1)
	require.NoError(t, err)
	_, err = engine.JoinQueue(ctx, 7, 4)
	require.NoError(t, err)
	_, err = engine.JoinQueue(ctx, 8, 4)
	require.NoError(t, err)

	entries, err := engine.ListPatientEntries(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "D04001", entries[0].TokenNumber)
	assert.Equal(t, "Pediatrics", entries[0].Department.Name)
	assert.Equal(t, "D01001", entries[1].TokenNumber)
}

func TestCompleteStale(t *testing.T) {
	engine, _, clock := setupEngine(t)
	ctx := context.Background()

	for patient := uint(1); patient <= 3; patient++ {
		_, err := engine.JoinQueue(ctx, patient, 1)
		require.NoError(t, err)
	}
	old, err := engine.CallNext(ctx, 1)
	require.NoError(t, err)
	clock.Advance(3 * time.Hour)
	fresh, err := engine.CallNext(ctx, 1)
	require.NoError(t, err)

	n, err := engine.CompleteStale(ctx, fresh.StartTime.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, err := engine.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ServedCount)
	assert.EqualValues(t, 2, stats.InQueueCount)

	_, err = engine.CompleteEntry(ctx, old.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}
