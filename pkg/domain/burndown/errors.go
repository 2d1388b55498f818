package burndown

import (
	"errors"
	"fmt"
)

// Domain errors for project tracking.
var (
	// ErrInvalidProject indicates malformed construction input (name, dates, total points).
	ErrInvalidProject = errors.New("invalid project")

	// ErrInvalidComplexity indicates an unknown complexity tier.
	ErrInvalidComplexity = errors.New("invalid complexity")

	// ErrInvalidTask indicates a missing or malformed task value.
	ErrInvalidTask = errors.New("invalid task")

	// ErrInvalidDate indicates a progress update with an unset date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidPoints indicates a progress update with negative or non-numeric points.
	ErrInvalidPoints = errors.New("invalid points")

	// ErrPointsExceedTotal indicates completed points above the project total.
	ErrPointsExceedTotal = errors.New("completed points exceed total story points")

	// ErrInvalidTransition indicates a task status transition that is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// PointsExceededError provides details about an over-total progress update.
type PointsExceededError struct {
	Points float64
	Total  float64
}

func (e *PointsExceededError) Error() string {
	return fmt.Sprintf("completed points %.1f exceed total story points %.1f", e.Points, e.Total)
}

// Is allows errors.Is to work with PointsExceededError.
func (e *PointsExceededError) Is(target error) bool {
	return target == ErrPointsExceedTotal
}

// TransitionError provides details about an invalid task transition.
type TransitionError struct {
	TaskID     string
	FromStatus string
	Event      string
}

func (e *TransitionError) Error() string {
	return "cannot apply '" + e.Event + "' to task " + e.TaskID + " in status '" + e.FromStatus + "'"
}

// Is allows errors.Is to work with TransitionError.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
