package burndown

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single unit of work with an estimate, optional actual effort,
// and a lifecycle status driven by the task state machine.
type Task struct {
	ID              string
	Name            string
	Complexity      Complexity
	EstimatedPoints float64
	// ActualPoints is nil until completion; completion defaults it to the
	// estimate when no explicit value is supplied.
	ActualPoints *float64
	Status       TaskStatus
	StartDate    *time.Time
	EndDate      *time.Time
}

// NewTask creates a task in the not_started status. The name must be
// non-empty and the estimate positive; the complexity tier must be known.
func NewTask(name string, estimatedPoints float64, complexity Complexity) (*Task, error) {
	if name == "" {
		return nil, ErrInvalidTask
	}
	if estimatedPoints <= 0 {
		return nil, ErrInvalidTask
	}
	if !complexity.IsValid() {
		return nil, ErrInvalidComplexity
	}
	return &Task{
		ID:              uuid.NewString(),
		Name:            name,
		Complexity:      complexity,
		EstimatedPoints: estimatedPoints,
		Status:          StatusNotStarted,
	}, nil
}

// CompleteOption customizes task completion.
type CompleteOption func(*completeOptions)

type completeOptions struct {
	actualPoints *float64
	endDate      *time.Time
}

// WithActualPoints records an explicit actual effort. Values are stored
// as-is, without bounds validation.
func WithActualPoints(points float64) CompleteOption {
	return func(o *completeOptions) { o.actualPoints = &points }
}

// WithEndDate records an explicit completion date.
func WithEndDate(date time.Time) CompleteOption {
	return func(o *completeOptions) { o.endDate = &date }
}

// Start moves the task to in_progress. Progress updates never derive this
// status; it is only reachable through an explicit call.
func (t *Task) Start(startDate time.Time) error {
	sm, err := NewTaskStateMachine(string(t.Status), t.ID)
	if err != nil {
		return err
	}
	if err := sm.Transition("start"); err != nil {
		return err
	}
	t.Status = sm.CurrentStatus()
	t.StartDate = &startDate
	return nil
}

// Complete marks the task completed. Actual points default to the estimate
// and the end date defaults to the current time when not supplied.
// Re-completing overwrites the previously recorded actuals.
func (t *Task) Complete(opts ...CompleteOption) error {
	var o completeOptions
	for _, fn := range opts {
		fn(&o)
	}

	sm, err := NewTaskStateMachine(string(t.Status), t.ID)
	if err != nil {
		return err
	}
	if err := sm.Transition("complete"); err != nil {
		return err
	}

	actual := t.EstimatedPoints
	if o.actualPoints != nil {
		actual = *o.actualPoints
	}
	end := time.Now()
	if o.endDate != nil {
		end = *o.endDate
	}

	t.Status = sm.CurrentStatus()
	t.ActualPoints = &actual
	t.EndDate = &end
	return nil
}

// ActualOrEstimate returns the recorded actual effort, falling back to the
// estimate for tasks that have not been completed.
func (t *Task) ActualOrEstimate() float64 {
	if t.ActualPoints != nil {
		return *t.ActualPoints
	}
	return t.EstimatedPoints
}

// Snapshot is an immutable view of a task for callers outside the project.
type Snapshot struct {
	ID              string
	Name            string
	Complexity      Complexity
	EstimatedPoints float64
	ActualPoints    *float64
	Status          TaskStatus
	StartDate       *time.Time
	EndDate         *time.Time
}

// Snapshot returns a copy of the task's current state.
func (t *Task) Snapshot() Snapshot {
	s := Snapshot{
		ID:              t.ID,
		Name:            t.Name,
		Complexity:      t.Complexity,
		EstimatedPoints: t.EstimatedPoints,
		Status:          t.Status,
	}
	if t.ActualPoints != nil {
		v := *t.ActualPoints
		s.ActualPoints = &v
	}
	if t.StartDate != nil {
		v := *t.StartDate
		s.StartDate = &v
	}
	if t.EndDate != nil {
		v := *t.EndDate
		s.EndDate = &v
	}
	return s
}
