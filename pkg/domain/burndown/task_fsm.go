package burndown

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain as untyped string constants for statekit.StateID
// compatibility. Values are kept in sync with TaskStatus constants.
const (
	StateNotStarted = "not_started"
	StateInProgress = "in_progress"
	StateCompleted  = "completed"
)

// init validates at startup that FSM state constants match TaskStatus values.
func init() {
	stateMap := map[string]TaskStatus{
		StateNotStarted: StatusNotStarted,
		StateInProgress: StatusInProgress,
		StateCompleted:  StatusCompleted,
	}
	for fsmState, taskStatus := range stateMap {
		if fsmState != string(taskStatus) {
			panic(fmt.Sprintf("FSM state %q does not match TaskStatus %q - constants are out of sync", fsmState, taskStatus))
		}
	}
}

// TaskContext carries state data.
type TaskContext struct {
	TaskID string
}

// TaskStateMachine defines the valid lifecycle transitions for a task.
type TaskStateMachine struct {
	taskID      string
	interpreter *statekit.Interpreter[TaskContext]
}

func NewTaskStateMachine(initialState string, taskID string) (*TaskStateMachine, error) {
	builder := statekit.NewMachine[TaskContext]("task-machine").
		WithInitial(statekit.StateID(initialState)).
		WithContext(TaskContext{TaskID: taskID})

	builder.State(StateNotStarted).
		On("start").Target(StateInProgress).
		On("complete").Target(StateCompleted).
		Done()

	builder.State(StateInProgress).
		On("complete").Target(StateCompleted).
		On("stop").Target(StateNotStarted).
		Done()

	// Completing an already completed task is a self transition so actuals
	// can be overwritten.
	builder.State(StateCompleted).
		On("complete").Target(StateCompleted).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &TaskStateMachine{taskID: taskID, interpreter: interpreter}, nil
}

// Transition attempts to apply the event to the current state.
func (sm *TaskStateMachine) Transition(event string) error {
	if !sm.CanTransition(event) {
		return &TransitionError{
			TaskID:     sm.taskID,
			FromStatus: sm.Current(),
			Event:      event,
		}
	}
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	return nil
}

func (sm *TaskStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// CurrentStatus returns the current state as a TaskStatus value object.
func (sm *TaskStateMachine) CurrentStatus() TaskStatus {
	return TaskStatus(sm.Current())
}

// CanTransition checks if the given event is valid for the current state.
// This delegates to the TaskStatus value object for consistency.
func (sm *TaskStateMachine) CanTransition(event string) bool {
	return sm.CurrentStatus().CanTransitionWith(event)
}

// ValidEvents returns the valid events for the current state.
func (sm *TaskStateMachine) ValidEvents() []string {
	return sm.CurrentStatus().ValidEvents()
}

// IsComplete returns true if the task is completed.
func (sm *TaskStateMachine) IsComplete() bool {
	return sm.CurrentStatus().IsComplete()
}
