package models

// Task is a single time-stamped wellness activity. Tasks are values: once
// produced by the engine they are never mutated.
type Task struct {
	ID          string   `json:"id"`
	Time        string   `json:"time"` // HH:MM format
	Category    Category `json:"category"`
	TimeSlot    TimeSlot `json:"time_slot"` // derived from Time
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Points      int      `json:"points"`
	Reason      string   `json:"reason,omitempty"`
	Icon        string   `json:"icon,omitempty"`
}

// ScheduledTask is a synthesized task annotated with its kind and completion state.
type ScheduledTask struct {
	Task
	Kind      string `json:"kind"`
	Minutes   int    `json:"minutes,omitempty"` // required duration, 0 if untimed
	Completed bool   `json:"completed"`
}

// DaySchedule holds one day's synthesized tasks bucketed by time slot.
type DaySchedule struct {
	Day       int             `json:"day"`
	Morning   []ScheduledTask `json:"morning"`
	Afternoon []ScheduledTask `json:"afternoon"`
	Evening   []ScheduledTask `json:"evening"`
	Night     []ScheduledTask `json:"night"`
}

// Slot returns the tasks bucketed under s.
func (d DaySchedule) Slot(s TimeSlot) []ScheduledTask {
	switch s {
	case SlotMorning:
		return d.Morning
	case SlotAfternoon:
		return d.Afternoon
	case SlotEvening:
		return d.Evening
	case SlotNight:
		return d.Night
	}
	return nil
}

// All returns every task in slot order.
func (d DaySchedule) All() []ScheduledTask {
	all := make([]ScheduledTask, 0, len(d.Morning)+len(d.Afternoon)+len(d.Evening)+len(d.Night))
	for _, s := range TimeSlots {
		all = append(all, d.Slot(s)...)
	}
	return all
}

// Tasks returns the underlying task values in slot order.
func (d DaySchedule) Tasks() []Task {
	all := d.All()
	tasks := make([]Task, len(all))
	for i, st := range all {
		tasks[i] = st.Task
	}
	return tasks
}

func (d DaySchedule) TotalPoints() int {
	total := 0
	for _, t := range d.All() {
		total += t.Points
	}
	return total
}
