package checklist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaboard/rotaboard/internal/application/checklist"
	"github.com/rotaboard/rotaboard/internal/domain"
	"github.com/rotaboard/rotaboard/internal/infrastructure/persistence/memory"
	"github.com/rotaboard/rotaboard/internal/ptr"
	"github.com/rotaboard/rotaboard/internal/schedule"
)

var sast = time.FixedZone("SAST", 2*60*60)

// Wednesday morning in the business timezone.
var testNow = time.Date(2024, time.April, 3, 8, 0, 0, 0, sast)

func newTestService(t *testing.T) (*checklist.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := checklist.NewService(store, schedule.FixedZone(sast),
		checklist.WithClock(func() time.Time { return testNow }))
	return svc, store
}

func TestCreateTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, checklist.CreateTaskParams{
			Title:       "Count the till float",
			Frequencies: []string{"every_day"},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, task.ID)
		assert.True(t, task.Active)
		assert.True(t, task.DueTime.IsAnytime())
		assert.Equal(t, testNow.UTC(), task.CreatedAt)
	})

	t.Run("drops unrecognized frequency tags", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, checklist.CreateTaskParams{
			Title:       "Wipe down the counters",
			Frequencies: []string{"every_day", "fortnightly"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"every_day"}, domain.FrequencyTags(task.Frequencies))
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, checklist.CreateTaskParams{Title: "   "})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)
	})
}

func TestChecklistFor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	today := domain.NewDate(2024, time.April, 3)

	daily, err := svc.CreateTask(ctx, checklist.CreateTaskParams{
		Title:       "Check the fridges",
		Frequencies: []string{"every_day"},
		DueTime:     "17:00",
	})
	require.NoError(t, err)

	// Once-off on a different date, should not appear today.
	_, err = svc.CreateTask(ctx, checklist.CreateTaskParams{
		Title:       "Stocktake",
		Frequencies: []string{"once_off"},
		DueDate:     ptr.To(domain.NewDate(2024, time.April, 30)),
	})
	require.NoError(t, err)

	entries, err := svc.ChecklistFor(ctx, today)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, daily.ID, entry.Task.ID)
	assert.Equal(t, domain.StatusDueToday, entry.Status)
	assert.False(t, entry.Completed)

	// Created this morning, inside the twelve hour badge window.
	assert.True(t, entry.NewBadge)

	t.Run("completion wins", func(t *testing.T) {
		require.NoError(t, svc.Complete(ctx, daily.ID, today, "thandi"))

		entries, err := svc.ChecklistFor(ctx, today)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.StatusCompleted, entries[0].Status)
		assert.True(t, entries[0].Completed)
	})
}

func TestCalendarRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, checklist.CreateTaskParams{
		Title:       "Open the shop",
		Frequencies: []string{"every_day"},
		// Visible from the start of the range regardless of creation date.
		StartDate: ptr.To(domain.NewDate(2024, time.April, 1)),
	})
	require.NoError(t, err)

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.CalendarRange(ctx,
			domain.NewDate(2024, time.April, 10),
			domain.NewDate(2024, time.April, 1))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("range too long", func(t *testing.T) {
		_, err := svc.CalendarRange(ctx,
			domain.NewDate(2024, time.January, 1),
			domain.NewDate(2024, time.December, 31))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("daily task skips Sunday", func(t *testing.T) {
		// 2024-04-01 is a Monday, 2024-04-07 a Sunday. But the task was
		// created on the 3rd, so only the 3rd through 6th are visible.
		days, err := svc.CalendarRange(ctx,
			domain.NewDate(2024, time.April, 1),
			domain.NewDate(2024, time.April, 7))
		require.NoError(t, err)

		assert.Len(t, days, 4)
		assert.Contains(t, days, "2024-04-03")
		assert.Contains(t, days, "2024-04-06")
		assert.NotContains(t, days, "2024-04-07")
	})
}

func TestComplete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	today := domain.NewDate(2024, time.April, 3)
	sunday := domain.NewDate(2024, time.April, 7)

	task, err := svc.CreateTask(ctx, checklist.CreateTaskParams{
		Title:       "Lock the safe",
		Frequencies: []string{"every_day"},
	})
	require.NoError(t, err)

	t.Run("no occurrence on that date", func(t *testing.T) {
		err := svc.Complete(ctx, task.ID, sunday, "sipho")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, svc.Complete(ctx, task.ID, today, "sipho"))
		require.NoError(t, svc.Complete(ctx, task.ID, today, "ayesha"))

		entries, err := svc.ChecklistFor(ctx, today)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Completed)
	})

	t.Run("reopen clears the record", func(t *testing.T) {
		require.NoError(t, svc.Reopen(ctx, task.ID, today))

		entries, err := svc.ChecklistFor(ctx, today)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.False(t, entries[0].Completed)
	})

	t.Run("unknown task", func(t *testing.T) {
		err := svc.Complete(ctx, "b7f6c1f0-0000-7000-8000-000000000000", today, "sipho")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, checklist.CreateTaskParams{
		Title:       "Empty the bins",
		Frequencies: []string{"every_day"},
		EndDate:     ptr.To(domain.NewDate(2024, time.June, 30)),
	})
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		updated, err := svc.UpdateTask(ctx, domain.UpdateTaskParams{
			TaskID: task.ID,
			Title:  ptr.To("Empty the bins and recycling"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Empty the bins and recycling", updated.Title)
		assert.Equal(t, []string{"every_day"}, domain.FrequencyTags(updated.Frequencies))
		require.NotNil(t, updated.EndDate)
	})

	t.Run("clear end date", func(t *testing.T) {
		updated, err := svc.UpdateTask(ctx, domain.UpdateTaskParams{
			TaskID:       task.ID,
			ClearEndDate: true,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.EndDate)
	})

	t.Run("deactivate hides from checklist", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, domain.UpdateTaskParams{
			TaskID: task.ID,
			Active: ptr.To(false),
		})
		require.NoError(t, err)

		entries, err := svc.ChecklistFor(ctx, domain.NewDate(2024, time.April, 3))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestNewBadgeVisible(t *testing.T) {
	eval := schedule.NewEvaluator(schedule.FixedZone(sast), schedule.NewCalendar(nil))

	newTask := func(createdAt time.Time) *domain.Task {
		rules, _ := domain.ParseFrequencies([]string{"every_day"})
		return &domain.Task{
			ID:          "t1",
			Title:       "Sweep the stockroom",
			Frequencies: rules,
			DueTime:     domain.NewDueTime(""),
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
			Active:      true,
		}
	}

	createdAt := time.Date(2024, time.April, 3, 6, 30, 0, 0, sast)
	task := newTask(createdAt)

	t.Run("visible within twelve hours of first visible midnight", func(t *testing.T) {
		now := time.Date(2024, time.April, 3, 11, 59, 0, 0, sast)
		assert.True(t, checklist.NewBadgeVisible(eval, task, now))
	})

	t.Run("gone after the window", func(t *testing.T) {
		now := time.Date(2024, time.April, 3, 12, 1, 0, 0, sast)
		assert.False(t, checklist.NewBadgeVisible(eval, task, now))
	})

	t.Run("due instant cuts the window short", func(t *testing.T) {
		early := newTask(createdAt)
		early.DueTime = domain.NewDueTime("09:00")

		now := time.Date(2024, time.April, 3, 10, 0, 0, 0, sast)
		assert.False(t, checklist.NewBadgeVisible(eval, early, now))
	})

	t.Run("not yet visible", func(t *testing.T) {
		future := newTask(createdAt)
		future.PublishAt = ptr.To(domain.NewDate(2024, time.April, 10))

		now := time.Date(2024, time.April, 3, 8, 0, 0, 0, sast)
		assert.False(t, checklist.NewBadgeVisible(eval, future, now))
	})

	t.Run("inactive task never shows it", func(t *testing.T) {
		inactive := newTask(createdAt)
		inactive.Active = false

		now := time.Date(2024, time.April, 3, 8, 0, 0, 0, sast)
		assert.False(t, checklist.NewBadgeVisible(eval, inactive, now))
	})
}
