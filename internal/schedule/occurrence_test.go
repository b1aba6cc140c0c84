package schedule

import (
	"testing"
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

func taskWithRules(rules ...domain.FrequencyRule) *domain.Task {
	return &domain.Task{
		ID:          "t1",
		Title:       "check fridge temperatures",
		Frequencies: rules,
		DueTime:     domain.NewDueTime(""),
		CreatedAt:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:      true,
	}
}

func rule(kind domain.FrequencyKind) domain.FrequencyRule {
	return domain.FrequencyRule{Kind: kind}
}

func TestOccursOnEveryDay(t *testing.T) {
	cal := NewCalendar([]domain.Holiday{
		{Date: domain.NewDate(2024, time.January, 1), Name: "New Year's Day"}, // Monday
	})
	e := NewEvaluator(FixedZone(time.UTC), cal)
	task := taskWithRules(rule(domain.FrequencyEveryDay))

	t.Run("false only on sundays", func(t *testing.T) {
		for d := domain.NewDate(2024, time.January, 1); d.Month == time.January; d = d.AddDays(1) {
			want := d.Weekday() != time.Sunday
			if got := e.OccursOn(task, d); got != want {
				t.Errorf("%v (%v): expected %v, got %v", d, d.Weekday(), want, got)
			}
		}
	})

	t.Run("holidays are not skipped", func(t *testing.T) {
		if !e.OccursOn(task, domain.NewDate(2024, time.January, 1)) {
			t.Error("every_day must occur on a holiday Monday")
		}
	})

	t.Run("saturday included", func(t *testing.T) {
		if !e.OccursOn(task, domain.NewDate(2024, time.January, 6)) {
			t.Error("every_day must occur on Saturday")
		}
	})
}

func TestOccursOnWeekdayRules(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)

	t.Run("once weekly on monday 2024-01-08", func(t *testing.T) {
		task := taskWithRules(rule(domain.FrequencyOnceWeekly))
		if !e.OccursOn(task, domain.NewDate(2024, time.January, 8)) {
			t.Error("expected occurrence on Monday 2024-01-08")
		}
		if e.OccursOn(task, domain.NewDate(2024, time.January, 9)) {
			t.Error("expected no occurrence on Tuesday")
		}
	})

	t.Run("specific weekday", func(t *testing.T) {
		task := taskWithRules(domain.FrequencyRule{Kind: domain.FrequencySpecificWeekday, Weekday: time.Thursday})
		if !e.OccursOn(task, domain.NewDate(2024, time.January, 11)) {
			t.Error("expected occurrence on Thursday")
		}
		if e.OccursOn(task, domain.NewDate(2024, time.January, 12)) {
			t.Error("expected no occurrence on Friday")
		}
	})
}

func TestOccursOnOnceMonthly(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	task := taskWithRules(rule(domain.FrequencyOnceMonthly))

	t.Run("last saturday of february 2024", func(t *testing.T) {
		if !e.OccursOn(task, domain.NewDate(2024, time.February, 24)) {
			t.Error("expected occurrence on 2024-02-24")
		}
	})

	t.Run("earlier saturdays do not match", func(t *testing.T) {
		if e.OccursOn(task, domain.NewDate(2024, time.February, 17)) {
			t.Error("expected no occurrence on 2024-02-17")
		}
	})

	t.Run("exactly one occurrence per month", func(t *testing.T) {
		count := 0
		for d := domain.NewDate(2024, time.February, 1); d.Month == time.February; d = d.AddDays(1) {
			if e.OccursOn(task, d) {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected exactly 1 occurrence, got %d", count)
		}
	})
}

func TestOccursOnStartOfMonth(t *testing.T) {
	// September 2024: the 1st is a Sunday, the 2nd a holiday Monday.
	cal := NewCalendar([]domain.Holiday{
		{Date: domain.NewDate(2024, time.September, 2), Name: "observed holiday"},
	})
	e := NewEvaluator(FixedZone(time.UTC), cal)
	task := taskWithRules(rule(domain.FrequencyStartOfEveryMonth))

	t.Run("shifts past sunday and holiday", func(t *testing.T) {
		if !e.OccursOn(task, domain.NewDate(2024, time.September, 3)) {
			t.Error("expected occurrence on 2024-09-03")
		}
		if e.OccursOn(task, domain.NewDate(2024, time.September, 1)) ||
			e.OccursOn(task, domain.NewDate(2024, time.September, 2)) {
			t.Error("expected no occurrence on the skipped days")
		}
	})

	t.Run("no shift when the 1st is eligible", func(t *testing.T) {
		if !e.OccursOn(task, domain.NewDate(2024, time.February, 1)) { // Thursday
			t.Error("expected occurrence on 2024-02-01")
		}
	})

	t.Run("occurrence within first week, never sunday or holiday", func(t *testing.T) {
		for m := time.January; m <= time.December; m++ {
			occ := e.monthStartOccurrence(2024, m)
			if occ.IsZero() {
				t.Fatalf("no occurrence for month %v", m)
			}
			if occ.Day > 7 {
				t.Errorf("%v: occurrence day %d past day 7", m, occ.Day)
			}
			if occ.Weekday() == time.Sunday || cal.IsHoliday(occ) {
				t.Errorf("%v: occurrence %v lands on skipped day", m, occ)
			}
		}
	})

	t.Run("month-restricted variant", func(t *testing.T) {
		feb := taskWithRules(domain.FrequencyRule{Kind: domain.FrequencyStartOfMonth, Month: time.February})
		if !e.OccursOn(feb, domain.NewDate(2024, time.February, 1)) {
			t.Error("expected occurrence in February")
		}
		if e.OccursOn(feb, domain.NewDate(2024, time.March, 1)) {
			t.Error("expected no occurrence in March")
		}
	})
}

func TestOccursOnEndOfMonth(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	task := taskWithRules(rule(domain.FrequencyEndOfEveryMonth))

	t.Run("leap february needs no shift", func(t *testing.T) {
		if !e.OccursOn(task, domain.NewDate(2024, time.February, 29)) { // Thursday
			t.Error("expected occurrence on 2024-02-29")
		}
	})

	t.Run("shifts backward past sunday onto saturday", func(t *testing.T) {
		// 2024-03-31 is a Sunday; Saturday the 30th is eligible.
		if !e.OccursOn(task, domain.NewDate(2024, time.March, 30)) {
			t.Error("expected occurrence on 2024-03-30")
		}
		if e.OccursOn(task, domain.NewDate(2024, time.March, 31)) {
			t.Error("expected no occurrence on Sunday the 31st")
		}
	})

	t.Run("shifts backward past holiday", func(t *testing.T) {
		cal := NewCalendar([]domain.Holiday{
			{Date: domain.NewDate(2024, time.September, 30), Name: "observed holiday"}, // Monday
		})
		eh := NewEvaluator(FixedZone(time.UTC), cal)
		// The 29th is a Sunday, so the occurrence lands on Saturday the 28th.
		if !eh.OccursOn(task, domain.NewDate(2024, time.September, 28)) {
			t.Error("expected occurrence on 2024-09-28")
		}
	})

	t.Run("within last seven days, never sunday or holiday", func(t *testing.T) {
		for m := time.January; m <= time.December; m++ {
			occ, ok := e.monthEndOccurrence(2024, m)
			if !ok {
				t.Fatalf("no occurrence for month %v", m)
			}
			if occ.DaysInMonth()-occ.Day > 6 {
				t.Errorf("%v: occurrence %v outside last week", m, occ)
			}
			if occ.Weekday() == time.Sunday {
				t.Errorf("%v: occurrence %v is a Sunday", m, occ)
			}
		}
	})

	t.Run("month-restricted variant", func(t *testing.T) {
		feb := taskWithRules(domain.FrequencyRule{Kind: domain.FrequencyEndOfMonth, Month: time.February})
		if !e.OccursOn(feb, domain.NewDate(2024, time.February, 29)) {
			t.Error("expected occurrence in February")
		}
		if e.OccursOn(feb, domain.NewDate(2024, time.January, 31)) {
			t.Error("expected no occurrence in January")
		}
	})
}

func TestOccursOnOnceOff(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)
	due := domain.NewDate(2024, time.June, 14)
	task := taskWithRules(rule(domain.FrequencyOnceOff))
	task.DueDate = &due

	if !e.OccursOn(task, due) {
		t.Error("expected occurrence on the explicit due date")
	}
	if e.OccursOn(task, due.AddDays(1)) {
		t.Error("expected no occurrence on other dates")
	}

	t.Run("without due date never occurs", func(t *testing.T) {
		bare := taskWithRules(rule(domain.FrequencyOnceOff))
		if e.OccursOn(bare, due) {
			t.Error("once_off without a due date must not occur")
		}
	})
}

func TestOccursOnRuleCombination(t *testing.T) {
	e := NewEvaluator(FixedZone(time.UTC), nil)

	t.Run("empty rule list never occurs", func(t *testing.T) {
		task := taskWithRules()
		for d := domain.NewDate(2024, time.January, 1); d.Month == time.January; d = d.AddDays(1) {
			if e.OccursOn(task, d) {
				t.Fatalf("task with no rules occurred on %v", d)
			}
		}
	})

	t.Run("or semantics across rules", func(t *testing.T) {
		task := taskWithRules(
			rule(domain.FrequencyOnceWeekly),
			domain.FrequencyRule{Kind: domain.FrequencySpecificWeekday, Weekday: time.Friday},
		)
		if !e.OccursOn(task, domain.NewDate(2024, time.January, 8)) { // Monday
			t.Error("expected Monday occurrence from once_weekly")
		}
		if !e.OccursOn(task, domain.NewDate(2024, time.January, 12)) { // Friday
			t.Error("expected Friday occurrence from specific weekday")
		}
		if e.OccursOn(task, domain.NewDate(2024, time.January, 10)) { // Wednesday
			t.Error("expected no Wednesday occurrence")
		}
	})

	t.Run("duplicate rules are idempotent", func(t *testing.T) {
		single := taskWithRules(rule(domain.FrequencyOnceWeekly))
		doubled := taskWithRules(rule(domain.FrequencyOnceWeekly), rule(domain.FrequencyOnceWeekly))
		for d := domain.NewDate(2024, time.January, 1); d.Month == time.January; d = d.AddDays(1) {
			if e.OccursOn(single, d) != e.OccursOn(doubled, d) {
				t.Fatalf("duplicate rule changed the outcome on %v", d)
			}
		}
	})

	t.Run("repeated evaluation is stable", func(t *testing.T) {
		task := taskWithRules(rule(domain.FrequencyEndOfEveryMonth))
		d := domain.NewDate(2024, time.February, 29)
		first := e.OccursOn(task, d)
		second := e.OccursOn(task, d)
		if first != second {
			t.Error("same inputs produced different results")
		}
	})
}
