package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/burndown/pkg/application"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pointsErr *burndown.PointsExceededError
	if errors.As(err, &pointsErr) {
		return NewCLIError(
			pointsErr.Error(),
			fmt.Sprintf("Completed points must stay at or below the project total of %.1f", pointsErr.Total),
			err,
		)
	}

	var transErr *burndown.TransitionError
	if errors.As(err, &transErr) {
		return NewCLIError(
			transErr.Error(),
			"Check the task's status with 'burndown task list'",
			err,
		)
	}

	switch {
	case errors.Is(err, application.ErrNoDefinition):
		return NewCLIError("no project definition found", "Run 'burndown init <name>' to start a project", err)
	case errors.Is(err, application.ErrTaskNotFound):
		return NewCLIError("task not found", "List known tasks with 'burndown task list'", err)
	case errors.Is(err, application.ErrNoProgress):
		return NewCLIError("no progress recorded yet", "Record an update with 'burndown progress add' first", err)
	case errors.Is(err, burndown.ErrInvalidProject):
		return NewCLIError("invalid project parameters", "Name must be non-empty, dates set, total points positive", err)
	case errors.Is(err, burndown.ErrInvalidComplexity):
		return NewCLIError("unknown complexity tier", "Choose one of: easy, medium, hard", err)
	case errors.Is(err, burndown.ErrInvalidDate):
		return NewCLIError("invalid date", "Dates use the YYYY-MM-DD format", err)
	case errors.Is(err, burndown.ErrInvalidPoints):
		return NewCLIError("invalid completed points", "Completed points must be a non-negative number", err)
	case errors.Is(err, burndown.ErrInvalidTask):
		return NewCLIError("invalid task", "Tasks need a non-empty name and a positive estimate", err)
	}

	return err
}
