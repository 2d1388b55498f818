package burndown

import (
	"errors"
	"testing"
)

func TestTaskStatus_IsValid(t *testing.T) {
	tests := []struct {
		status TaskStatus
		valid  bool
	}{
		{StatusNotStarted, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{TaskStatus("paused"), false},
		{TaskStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestTaskStatus_CanTransitionWith(t *testing.T) {
	tests := []struct {
		status TaskStatus
		event  string
		canDo  bool
	}{
		{StatusNotStarted, "start", true},
		{StatusNotStarted, "complete", true},
		{StatusNotStarted, "stop", false},

		{StatusInProgress, "complete", true},
		{StatusInProgress, "stop", true},
		{StatusInProgress, "start", false},

		// Re-completing is allowed so actuals can be overwritten.
		{StatusCompleted, "complete", true},
		{StatusCompleted, "start", false},
		{StatusCompleted, "stop", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status)+"_"+tt.event, func(t *testing.T) {
			if got := tt.status.CanTransitionWith(tt.event); got != tt.canDo {
				t.Errorf("CanTransitionWith(%q) = %v, want %v", tt.event, got, tt.canDo)
			}
		})
	}
}

func TestTaskStatus_TransitionWith(t *testing.T) {
	got, err := StatusNotStarted.TransitionWith("start")
	if err != nil {
		t.Fatalf("TransitionWith(start) error = %v", err)
	}
	if got != StatusInProgress {
		t.Errorf("TransitionWith(start) = %v, want %v", got, StatusInProgress)
	}

	if _, err := StatusCompleted.TransitionWith("start"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("TransitionWith(start) from completed error = %v, want ErrInvalidTransition", err)
	}
}

func TestTaskStateMachine_Transitions(t *testing.T) {
	sm, err := NewTaskStateMachine(StateNotStarted, "task-1")
	if err != nil {
		t.Fatalf("NewTaskStateMachine() error = %v", err)
	}

	if err := sm.Transition("start"); err != nil {
		t.Fatalf("Transition(start) error = %v", err)
	}
	if sm.CurrentStatus() != StatusInProgress {
		t.Errorf("status = %v, want %v", sm.CurrentStatus(), StatusInProgress)
	}

	if err := sm.Transition("complete"); err != nil {
		t.Fatalf("Transition(complete) error = %v", err)
	}
	if !sm.IsComplete() {
		t.Error("IsComplete() = false after complete")
	}

	// Self transition keeps the machine in completed.
	if err := sm.Transition("complete"); err != nil {
		t.Fatalf("re-complete error = %v", err)
	}
	if sm.CurrentStatus() != StatusCompleted {
		t.Errorf("status = %v, want %v", sm.CurrentStatus(), StatusCompleted)
	}
}

func TestTaskStateMachine_InvalidTransition(t *testing.T) {
	sm, err := NewTaskStateMachine(StateCompleted, "task-9")
	if err != nil {
		t.Fatalf("NewTaskStateMachine() error = %v", err)
	}

	err = sm.Transition("start")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Transition(start) error = %v, want ErrInvalidTransition", err)
	}

	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("error %v is not a *TransitionError", err)
	}
	if te.TaskID != "task-9" || te.FromStatus != "completed" || te.Event != "start" {
		t.Errorf("TransitionError = %+v, want task-9/completed/start", te)
	}

	if sm.CurrentStatus() != StatusCompleted {
		t.Errorf("status changed on rejected transition: %v", sm.CurrentStatus())
	}
}

func TestTaskStateMachine_Stop(t *testing.T) {
	sm, err := NewTaskStateMachine(StateInProgress, "task-2")
	if err != nil {
		t.Fatalf("NewTaskStateMachine() error = %v", err)
	}
	if err := sm.Transition("stop"); err != nil {
		t.Fatalf("Transition(stop) error = %v", err)
	}
	if sm.CurrentStatus() != StatusNotStarted {
		t.Errorf("status = %v, want %v", sm.CurrentStatus(), StatusNotStarted)
	}
}
