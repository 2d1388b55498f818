package burndown

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// validTransitions defines the allowed status transitions and their events.
// Map: currentStatus -> event -> targetStatus. Completion is always allowed;
// re-completing an already completed task overwrites its actuals.
var validTransitions = map[TaskStatus]map[string]TaskStatus{
	StatusNotStarted: {
		"start":    StatusInProgress,
		"complete": StatusCompleted,
	},
	StatusInProgress: {
		"complete": StatusCompleted,
		"stop":     StatusNotStarted,
	},
	StatusCompleted: {
		"complete": StatusCompleted,
	},
}

// AllTaskStatuses returns all valid task statuses.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// IsValid returns true if the status is a valid task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// CanTransitionWith returns true if the given event can trigger a transition from this status.
func (s TaskStatus) CanTransitionWith(event string) bool {
	transitions, ok := validTransitions[s]
	if !ok {
		return false
	}
	_, ok = transitions[event]
	return ok
}

// TransitionWith returns the target status for a given event, or an error if not allowed.
func (s TaskStatus) TransitionWith(event string) (TaskStatus, error) {
	transitions, ok := validTransitions[s]
	if !ok {
		return s, &TransitionError{FromStatus: string(s), Event: event}
	}
	target, ok := transitions[event]
	if !ok {
		return s, &TransitionError{FromStatus: string(s), Event: event}
	}
	return target, nil
}

// ValidEvents returns all valid events that can be triggered from this status.
func (s TaskStatus) ValidEvents() []string {
	transitions, ok := validTransitions[s]
	if !ok {
		return nil
	}
	var events []string
	for e := range transitions {
		events = append(events, e)
	}
	return events
}

// IsComplete returns true if the task has been completed.
func (s TaskStatus) IsComplete() bool {
	return s == StatusCompleted
}
