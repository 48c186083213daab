package tracker

import (
	"testing"

	"github.com/julianstephens/wellpath/internal/models"
)

func testTasks() []models.Task {
	return []models.Task{
		{ID: "morning-lemon-water-1", Time: "06:00", Category: models.CategoryNutrition, TimeSlot: models.SlotMorning, Title: "Warm lemon water", Points: 10},
		{ID: "afternoon-meal-1", Time: "12:30", Category: models.CategoryNutrition, TimeSlot: models.SlotAfternoon, Title: "Mindful lunch", Points: 15},
		{ID: "night-detox-1", Time: "21:00", Category: models.CategoryWellness, TimeSlot: models.SlotNight, Title: "Digital detox", Points: 20},
	}
}

func TestComputeProgress(t *testing.T) {
	tasks := testTasks()

	tests := []struct {
		name      string
		tasks     []models.Task
		completed map[string]bool
		want      Progress
	}{
		{
			name: "no tasks",
			want: Progress{},
		},
		{
			name:  "nothing completed",
			tasks: tasks,
			want:  Progress{Total: 3, PossiblePoints: 45},
		},
		{
			name:      "one of three rounds down",
			tasks:     tasks,
			completed: map[string]bool{"morning-lemon-water-1": true},
			want:      Progress{Completed: 1, Total: 3, Percentage: 33, Points: 10, PossiblePoints: 45},
		},
		{
			name:      "two of three rounds up",
			tasks:     tasks,
			completed: map[string]bool{"morning-lemon-water-1": true, "night-detox-1": true},
			want:      Progress{Completed: 2, Total: 3, Percentage: 67, Points: 30, PossiblePoints: 45},
		},
		{
			name:      "ids outside the day are ignored",
			tasks:     tasks,
			completed: map[string]bool{"day-1-task-0": true, "afternoon-meal-1": true},
			want:      Progress{Completed: 1, Total: 3, Percentage: 33, Points: 15, PossiblePoints: 45},
		},
		{
			name:      "all done",
			tasks:     tasks,
			completed: map[string]bool{"morning-lemon-water-1": true, "afternoon-meal-1": true, "night-detox-1": true},
			want:      Progress{Completed: 3, Total: 3, Percentage: 100, Points: 45, PossiblePoints: 45},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProgress(tt.tasks, tt.completed)
			if got != tt.want {
				t.Errorf("ComputeProgress() = %+v, want %+v", got, tt.want)
			}
			if got.Perfect() != (tt.want.Total > 0 && tt.want.Completed == tt.want.Total) {
				t.Errorf("Perfect() = %v for %+v", got.Perfect(), got)
			}
		})
	}
}

func TestCompletedIDs(t *testing.T) {
	records := []models.CompletionRecord{
		{TaskID: "night-detox-1"},
		{TaskID: "afternoon-meal-1"},
		{TaskID: "night-detox-1"},
	}
	ids := CompletedIDs(records)
	if len(ids) != 2 || !ids["night-detox-1"] || !ids["afternoon-meal-1"] {
		t.Errorf("CompletedIDs() = %v", ids)
	}
}

func TestDailyMilestones(t *testing.T) {
	tests := []struct {
		completed, total int
		want             []string
	}{
		{0, 0, nil},
		{0, 4, nil},
		{1, 4, []string{"Quarter Day Champion"}},
		{1, 3, []string{"Quarter Day Champion"}},
		{2, 4, []string{"Quarter Day Champion", "Halfway Hero"}},
		{3, 4, []string{"Quarter Day Champion", "Halfway Hero", "Three-Quarter Tiger"}},
		{8, 9, []string{"Quarter Day Champion", "Halfway Hero", "Three-Quarter Tiger"}},
		{9, 9, []string{"Quarter Day Champion", "Halfway Hero", "Three-Quarter Tiger", "Perfect Day Master"}},
	}

	for _, tt := range tests {
		got := DailyMilestones(Progress{Completed: tt.completed, Total: tt.total})
		if len(got) != len(tt.want) {
			t.Errorf("DailyMilestones(%d/%d) returned %d badges, want %d", tt.completed, tt.total, len(got), len(tt.want))
			continue
		}
		for i, m := range got {
			if m.Title != tt.want[i] {
				t.Errorf("DailyMilestones(%d/%d)[%d] = %q, want %q", tt.completed, tt.total, i, m.Title, tt.want[i])
			}
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{0, "✨ Every journey starts with a single step!"},
		{24, "✨ Every journey starts with a single step!"},
		{25, "🚀 You're building momentum!"},
		{50, "💪 Great progress! Keep it up!"},
		{79, "💪 Great progress! Keep it up!"},
		{80, "🌟 Almost there! Finish strong!"},
		{99, "🌟 Almost there! Finish strong!"},
		{100, "🎉 Perfect day! You're unstoppable!"},
	}
	for _, tt := range tests {
		if got := Message(tt.percentage); got != tt.want {
			t.Errorf("Message(%d) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}
