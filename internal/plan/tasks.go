package plan

import "github.com/google/uuid"

// Task statuses.
const (
	TaskStatusPlanned = "Planned"
	TaskStatusDone    = "Done"
)

// Task is one coaching action item. Token is a capability: anyone holding it
// can mark the task complete without opening the profile.
type Task struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Assignee        string `json:"assignee"`
	Due             string `json:"due"`
	Status          string `json:"status"`
	IncludeInReport bool   `json:"include_in_report"`
	Notes           string `json:"notes"`
	Token           string `json:"token"`
}

// AddTask appends a new task with a fresh ID and completion token and
// returns a pointer into the plan's task list.
func (yp *YearPlan) AddTask(title, assignee, due, notes string, includeInReport bool) *Task {
	task := Task{
		ID:              uuid.NewString(),
		Title:           title,
		Assignee:        assignee,
		Due:             due,
		Status:          TaskStatusPlanned,
		IncludeInReport: includeInReport,
		Notes:           notes,
		Token:           uuid.NewString(),
	}
	yp.Tasks = append(yp.Tasks, task)
	return &yp.Tasks[len(yp.Tasks)-1]
}

// CompleteTask marks the task holding the given token as done. It reports
// whether a task matched.
func (yp *YearPlan) CompleteTask(token string) bool {
	if token == "" {
		return false
	}
	for i := range yp.Tasks {
		if yp.Tasks[i].Token == token {
			yp.Tasks[i].Status = TaskStatusDone
			return true
		}
	}
	return false
}
