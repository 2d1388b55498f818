package burndown

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-day format used in definition documents.
const DateFormat = "2006-01-02"

// ProjectDefinition is the serializable description of a project: its
// parameters, task definitions, and recorded progress updates. It is the
// document the CLI reads and writes; the in-memory Project is rebuilt from
// it on every load.
type ProjectDefinition struct {
	Name             string                 `json:"name" yaml:"name"`
	StartDate        string                 `json:"start_date" yaml:"start_date"`
	EndDate          string                 `json:"end_date" yaml:"end_date"`
	TotalStoryPoints float64                `json:"total_story_points" yaml:"total_story_points"`
	Tasks            []TaskDefinition       `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Updates          []ProgressUpdateRecord `json:"updates,omitempty" yaml:"updates,omitempty"`
}

// TaskDefinition describes one task within the definition document.
type TaskDefinition struct {
	Name            string   `json:"name" yaml:"name"`
	Complexity      string   `json:"complexity" yaml:"complexity"`
	EstimatedPoints float64  `json:"estimated_points" yaml:"estimated_points"`
	ActualPoints    *float64 `json:"actual_points,omitempty" yaml:"actual_points,omitempty"`
	Status          string   `json:"status,omitempty" yaml:"status,omitempty"`
	EndDate         string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	// CardID links the task to an external board card when it was imported.
	CardID string `json:"card_id,omitempty" yaml:"card_id,omitempty"`
}

// ProgressUpdateRecord describes one progress update in the document, in the
// order it was submitted.
type ProgressUpdateRecord struct {
	Date            string  `json:"date" yaml:"date"`
	CompletedPoints float64 `json:"completed_points" yaml:"completed_points"`
	Description     string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Validate checks the definition for structural integrity.
func (d *ProjectDefinition) Validate() []error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("project name is required"))
	}
	if _, err := time.Parse(DateFormat, d.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("invalid start_date %q: want YYYY-MM-DD", d.StartDate))
	}
	if _, err := time.Parse(DateFormat, d.EndDate); err != nil {
		errs = append(errs, fmt.Errorf("invalid end_date %q: want YYYY-MM-DD", d.EndDate))
	}
	if d.TotalStoryPoints <= 0 {
		errs = append(errs, fmt.Errorf("total_story_points must be positive"))
	}

	for i, t := range d.Tasks {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("task at index %d missing name", i))
		}
		if _, err := ParseComplexity(t.Complexity); err != nil {
			errs = append(errs, fmt.Errorf("task %q: %v", t.Name, err))
		}
		if t.EstimatedPoints <= 0 {
			errs = append(errs, fmt.Errorf("task %q: estimated_points must be positive", t.Name))
		}
		if t.Status != "" && !TaskStatus(t.Status).IsValid() {
			errs = append(errs, fmt.Errorf("task %q: unknown status %q", t.Name, t.Status))
		}
	}

	for i, u := range d.Updates {
		if _, err := time.Parse(DateFormat, u.Date); err != nil {
			errs = append(errs, fmt.Errorf("update at index %d: invalid date %q: want YYYY-MM-DD", i, u.Date))
		}
	}
	return errs
}

// Build constructs the in-memory project: parameters are validated, tasks
// added in document order, and updates replayed in submission order, so the
// rebuilt ledger preserves append semantics.
func (d *ProjectDefinition) Build() (*Project, error) {
	start, err := time.Parse(DateFormat, d.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", ErrInvalidProject, d.StartDate)
	}
	end, err := time.Parse(DateFormat, d.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", ErrInvalidProject, d.EndDate)
	}

	project, err := NewProject(d.Name, start, end, d.TotalStoryPoints)
	if err != nil {
		return nil, err
	}

	for _, td := range d.Tasks {
		complexity, err := ParseComplexity(td.Complexity)
		if err != nil {
			return nil, err
		}
		task, err := NewTask(td.Name, td.EstimatedPoints, complexity)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", td.Name, err)
		}
		switch TaskStatus(td.Status) {
		case StatusInProgress:
			if err := task.Start(project.StartDate); err != nil {
				return nil, err
			}
		case StatusCompleted:
			opts := []CompleteOption{}
			if td.ActualPoints != nil {
				opts = append(opts, WithActualPoints(*td.ActualPoints))
			}
			if td.EndDate != "" {
				endDate, err := time.Parse(DateFormat, td.EndDate)
				if err != nil {
					return nil, fmt.Errorf("task %q: invalid end date %q", td.Name, td.EndDate)
				}
				opts = append(opts, WithEndDate(endDate))
			}
			if err := task.Complete(opts...); err != nil {
				return nil, err
			}
		}
		if _, err := project.AddTask(task); err != nil {
			return nil, err
		}
	}

	for _, u := range d.Updates {
		date, err := time.Parse(DateFormat, u.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid update date %q", ErrInvalidDate, u.Date)
		}
		if err := project.UpdateProgress(date, u.CompletedPoints, u.Description); err != nil {
			return nil, err
		}
	}

	return project, nil
}
