package models

import "testing"

func TestNewDayPlanTotals(t *testing.T) {
	plan := NewDayPlan(3, "2026-01-03", []Task{{Points: 15}, {Points: 30}})
	if plan.TotalPoints != 45 {
		t.Errorf("expected 45 points, got %d", plan.TotalPoints)
	}

	empty := NewDayPlan(4, "2026-01-04", nil)
	if empty.Tasks == nil || empty.TotalPoints != 0 {
		t.Errorf("expected empty non-nil task list with 0 points, got %+v", empty)
	}
}

func TestChallengeDay(t *testing.T) {
	ch := Challenge{Challenges: []DayPlan{{Day: 1}, {Day: 2}}}

	if p, ok := ch.Day(2); !ok || p.Day != 2 {
		t.Errorf("expected day 2, got %+v ok=%v", p, ok)
	}
	for _, d := range []int{0, 3} {
		if _, ok := ch.Day(d); ok {
			t.Errorf("expected day %d to be missing", d)
		}
	}
}

func TestProfileEffectiveDay(t *testing.T) {
	if d := (Profile{}).EffectiveDay(); d != 1 {
		t.Errorf("expected unset day to read as 1, got %d", d)
	}
	if d := (Profile{CurrentDay: 12}).EffectiveDay(); d != 12 {
		t.Errorf("expected 12, got %d", d)
	}
}
