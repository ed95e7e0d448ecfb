package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// Task is one stage of the next-identifier pipeline as shown in the progress
// display. Unit labels the stage's count, so a finished fetch reads
// "(312 issues)" rather than a bare number.
type Task struct {
	ID       TaskID
	Name     string
	Unit     string
	Status   TaskStatus
	Message  string
	Count    int
	Progress float64
	Error    error
}

// NewTask creates a pending task whose count will be labeled with unit.
func NewTask(id TaskID, name, unit string) Task {
	return Task{ID: id, Name: name, Unit: unit, Status: StatusPending}
}

// View renders the task as one line of the pipeline.
func (t Task) View(spinnerFrame string, prog progress.Model) string {
	name := taskNameStyle.Render(t.Name)
	if t.Status == StatusPending {
		name = taskDimStyle.Render(t.Name)
	}

	parts := []string{"  " + StatusIcon(t.Status, spinnerFrame), name}

	if t.Status == StatusRunning && t.Progress > 0 {
		parts = append(parts, fmt.Sprintf("%s %d%%", prog.ViewAs(t.Progress), int(t.Progress*100)))
	}
	if detail := t.detail(); detail != "" {
		parts = append(parts, messageStyle.Render(detail))
	}
	if t.Error != nil {
		parts = append(parts, errorStyle.Render(t.Error.Error()))
	}

	return strings.Join(parts, " ")
}

// detail is the parenthesized annotation after the task name: an explicit
// message wins, otherwise the labeled count once one is known.
func (t Task) detail() string {
	if t.Message != "" {
		return "(" + t.Message + ")"
	}
	if t.Count > 0 {
		if t.Unit != "" {
			return fmt.Sprintf("(%d %s)", t.Count, t.Unit)
		}
		return fmt.Sprintf("(%d)", t.Count)
	}
	return ""
}
