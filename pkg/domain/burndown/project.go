// Package burndown implements the progress-tracking and burndown-computation
// core: the project aggregate, its task collection and progress ledger, and
// the per-day burndown series derived from them.
package burndown

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// defaultDurationDays is substituted when the supplied end date is not
// strictly after the start date.
const defaultDurationDays = 14

// Project owns the validated project parameters, the ordered task
// collection, the progress ledger, and the derived burndown series. A single
// instance is meant for a single caller; concurrent access must be
// serialized externally.
type Project struct {
	ID               string
	Name             string
	StartDate        time.Time
	EndDate          time.Time
	TotalStoryPoints float64

	tasks  []*Task
	ledger Ledger
	series Series
}

// NewProject validates the inputs and seeds the initial burndown series.
// An end date on or before the start date is not an error: the end is
// advanced to start + 14 days instead. The total is immutable afterwards.
func NewProject(name string, start, end time.Time, totalStoryPoints float64) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name must be a non-empty string", ErrInvalidProject)
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates must be set", ErrInvalidProject)
	}

	start = dateOnly(start)
	end = dateOnly(end)
	if !end.After(start) {
		end = start.AddDate(0, 0, defaultDurationDays)
	}

	if math.IsNaN(totalStoryPoints) || totalStoryPoints <= 0 {
		return nil, fmt.Errorf("%w: total story points must be a positive number", ErrInvalidProject)
	}

	return &Project{
		ID:               uuid.NewString(),
		Name:             name,
		StartDate:        start,
		EndDate:          end,
		TotalStoryPoints: totalStoryPoints,
		series:           newSeries(start, end, totalStoryPoints),
	}, nil
}

// AddTask appends the task to the project's ordered collection and returns
// the stored task. Duplicate names are allowed.
func (p *Project) AddTask(t *Task) (*Task, error) {
	if t == nil || t.Name == "" {
		return nil, ErrInvalidTask
	}
	p.tasks = append(p.tasks, t)
	return t, nil
}

// UpdateProgress validates and records a progress update. Validation
// failures leave the project untouched. A date outside the project range is
// clamped to the nearest boundary rather than rejected. The entry is
// appended in call order; the series day matching the clamped date is
// overwritten with the new remaining value.
func (p *Project) UpdateProgress(date time.Time, completedPoints float64, description string) error {
	if date.IsZero() {
		return fmt.Errorf("%w: progress date must be set", ErrInvalidDate)
	}
	if math.IsNaN(completedPoints) || completedPoints < 0 {
		return fmt.Errorf("%w: completed points must be a non-negative number", ErrInvalidPoints)
	}
	if completedPoints > p.TotalStoryPoints {
		return &PointsExceededError{Points: completedPoints, Total: p.TotalStoryPoints}
	}

	day := dateOnly(date)
	if day.Before(p.StartDate) {
		day = p.StartDate
	}
	if day.After(p.EndDate) {
		day = p.EndDate
	}

	p.ledger.Append(ProgressEntry{
		Date:            day,
		CompletedPoints: completedPoints,
		Description:     description,
	})
	p.series.setActual(day, p.TotalStoryPoints-completedPoints)
	return nil
}

// Tasks returns snapshots of the task collection in add order.
func (p *Project) Tasks() []Snapshot {
	out := make([]Snapshot, len(p.tasks))
	for i, t := range p.tasks {
		out[i] = t.Snapshot()
	}
	return out
}

// Ledger returns a copy of the progress log in append order.
func (p *Project) Ledger() []ProgressEntry {
	return p.ledger.Entries()
}

// Series returns the per-day burndown curves in date order.
func (p *Project) Series() []Point {
	return p.series.Points()
}

// Summary derives the progress statistics. With an empty ledger all values
// except the total are zero. Otherwise the completed points come from the
// most recently appended ledger entry, not the entry with the latest date.
func (p *Project) Summary() Summary {
	s := Summary{TotalStoryPoints: p.TotalStoryPoints}

	latest, ok := p.ledger.Latest()
	if !ok {
		return s
	}

	s.CompletedStoryPoints = latest.CompletedPoints
	s.ProgressPercentage = latest.CompletedPoints / p.TotalStoryPoints * 100
	s.EstimateVariance = estimateVariance(p.tasks)
	return s
}
