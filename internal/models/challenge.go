package models

// DayPlan is the set of tasks assigned to one calendar day of a challenge.
type DayPlan struct {
	Day         int    `json:"day"`
	Date        string `json:"date"` // YYYY-MM-DD format
	Tasks       []Task `json:"tasks"`
	TotalPoints int    `json:"total_points"`
}

// NewDayPlan builds a plan and computes its point total.
func NewDayPlan(day int, date string, tasks []Task) DayPlan {
	if tasks == nil {
		tasks = []Task{}
	}
	p := DayPlan{Day: day, Date: date, Tasks: tasks}
	p.Recompute()
	return p
}

// Recompute resets TotalPoints to the sum of the task points.
func (p *DayPlan) Recompute() {
	total := 0
	for _, t := range p.Tasks {
		total += t.Points
	}
	p.TotalPoints = total
}

// Challenge is the full pre-generated program for one user.
type Challenge struct {
	Challenges      []DayPlan `json:"challenges"`
	TotalDays       int       `json:"total_days"`
	EstimatedPoints int       `json:"estimated_points"`
	FocusAreas      []string  `json:"focus_areas"`
	StartDate       string    `json:"start_date"` // YYYY-MM-DD format
	Strategy        string    `json:"strategy,omitempty"`
}

// Day returns the 1-based day plan. ok is false when day is outside the challenge.
func (c Challenge) Day(day int) (DayPlan, bool) {
	if day < 1 || day > len(c.Challenges) {
		return DayPlan{}, false
	}
	return c.Challenges[day-1], true
}

// Recompute refreshes every day total and the estimated points.
func (c *Challenge) Recompute() {
	total := 0
	for i := range c.Challenges {
		c.Challenges[i].Recompute()
		total += c.Challenges[i].TotalPoints
	}
	c.EstimatedPoints = total
}
