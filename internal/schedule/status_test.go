package schedule

import (
	"testing"
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

func dailyTask(dueTime string) *domain.Task {
	task := taskWithRules(rule(domain.FrequencyEveryDay))
	task.DueTime = domain.NewDueTime(dueTime)
	return task
}

func TestStatusAroundDueInstant(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	task := dailyTask("17:00")
	date := domain.NewDate(2024, time.January, 10) // Wednesday

	cases := []struct {
		name string
		now  time.Time
		want domain.OccurrenceStatus
	}{
		{"one minute before due", time.Date(2024, 1, 10, 16, 59, 0, 0, time.UTC), domain.StatusDueToday},
		{"exactly at due instant", time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC), domain.StatusDueToday},
		{"one minute after due", time.Date(2024, 1, 10, 17, 1, 0, 0, time.UTC), domain.StatusOverdue},
		{"next day", time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC), domain.StatusMissed},
		{"day before", time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC), domain.StatusNotDueYet},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.Status(task, date, tc.now, false); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStatusCompletionAlwaysWins(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	task := dailyTask("09:00")
	date := domain.NewDate(2024, time.January, 10)

	times := []time.Time{
		time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, now := range times {
		if got := e.Status(task, date, now, true); got != domain.StatusCompleted {
			t.Errorf("at %v: expected completed, got %v", now, got)
		}
	}
}

func TestStatusAnytimeAndMalformedDueTimes(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	date := domain.NewDate(2024, time.January, 10)

	t.Run("anytime task due until end of day", func(t *testing.T) {
		task := dailyTask("anytime")
		now := time.Date(2024, 1, 10, 23, 58, 0, 0, time.UTC)
		if got := e.Status(task, date, now, false); got != domain.StatusDueToday {
			t.Errorf("expected due_today at 23:58, got %v", got)
		}
	})

	t.Run("malformed due time falls back to end of day", func(t *testing.T) {
		task := dailyTask("5 o'clock")
		now := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)
		if got := e.Status(task, date, now, false); got != domain.StatusDueToday {
			t.Errorf("expected fallback to keep the task due, got %v", got)
		}
	})
}

func TestStatusNonOccurringDate(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	task := taskWithRules(rule(domain.FrequencyOnceWeekly))
	tuesday := domain.NewDate(2024, time.January, 9)
	now := time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)

	// The caller should pre-filter, but a direct call must not invent
	// an overdue state for a date the task does not occur on.
	if got := e.Status(task, tuesday, now, false); got != domain.StatusNotDueYet {
		t.Errorf("expected not_due_yet, got %v", got)
	}
}

func TestStatusMonotonicTransition(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	task := dailyTask("12:00")
	date := domain.NewDate(2024, time.January, 10)

	transitions := 0
	prev := domain.StatusDueToday
	for minute := 0; minute < 24*60; minute += 5 {
		now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute)
		got := e.Status(task, date, now, false)
		if got != prev {
			if prev != domain.StatusDueToday || got != domain.StatusOverdue {
				t.Fatalf("unexpected transition %v -> %v at %v", prev, got, now)
			}
			transitions++
			prev = got
		}
	}
	if transitions != 1 {
		t.Errorf("expected exactly one due_today -> overdue transition, got %d", transitions)
	}
}

func TestStatusUsesBusinessTimezoneDay(t *testing.T) {
	sast := FixedZone(time.FixedZone("SAST", 2*60*60))
	e := NewEvaluator(sast, nil)
	task := dailyTask("17:00")
	date := domain.NewDate(2024, time.January, 10)

	t.Run("due instant is local", func(t *testing.T) {
		// 15:30 UTC is 17:30 local: already overdue.
		now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
		if got := e.Status(task, date, now, false); got != domain.StatusOverdue {
			t.Errorf("expected overdue, got %v", got)
		}
	})

	t.Run("late utc evening is already the next local day", func(t *testing.T) {
		// 23:00 UTC on the 9th is 01:00 on the 10th locally, so the
		// 10th is "today", not the future.
		now := time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC)
		if got := e.Status(task, date, now, false); got != domain.StatusDueToday {
			t.Errorf("expected due_today, got %v", got)
		}
	})
}

func TestEvaluate(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	task := taskWithRules(rule(domain.FrequencyOnceWeekly))
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

	t.Run("occurring date", func(t *testing.T) {
		occurs, status := e.Evaluate(task, domain.NewDate(2024, time.January, 8), now, false)
		if !occurs || status != domain.StatusDueToday {
			t.Errorf("expected (true, due_today), got (%v, %v)", occurs, status)
		}
	})

	t.Run("non-occurring date", func(t *testing.T) {
		occurs, status := e.Evaluate(task, domain.NewDate(2024, time.January, 9), now, false)
		if occurs || status != domain.StatusNotDueYet {
			t.Errorf("expected (false, not_due_yet), got (%v, %v)", occurs, status)
		}
	})
}
