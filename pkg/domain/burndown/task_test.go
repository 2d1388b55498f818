package burndown

import (
	"errors"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name     string
		taskName string
		points   float64
		tier     Complexity
		wantErr  error
	}{
		{"valid", "implement login", 5, ComplexityMedium, nil},
		{"empty name", "", 5, ComplexityMedium, ErrInvalidTask},
		{"zero points", "t", 0, ComplexityEasy, ErrInvalidTask},
		{"negative points", "t", -3, ComplexityEasy, ErrInvalidTask},
		{"unknown complexity", "t", 5, Complexity("extreme"), ErrInvalidComplexity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.taskName, tt.points, tt.tier)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewTask() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTask() error = %v", err)
			}
			if task.Status != StatusNotStarted {
				t.Errorf("new task status = %v, want %v", task.Status, StatusNotStarted)
			}
			if task.ID == "" {
				t.Error("new task has empty ID")
			}
			if task.ActualPoints != nil {
				t.Error("new task has actual points before completion")
			}
		})
	}
}

func TestTask_StartAndComplete(t *testing.T) {
	task, err := NewTask("build chart", 8, ComplexityHard)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}

	started := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if err := task.Start(started); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if task.Status != StatusInProgress {
		t.Errorf("status = %v, want %v", task.Status, StatusInProgress)
	}
	if task.StartDate == nil || !task.StartDate.Equal(started) {
		t.Errorf("start date = %v, want %v", task.StartDate, started)
	}

	end := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	if err := task.Complete(WithActualPoints(10), WithEndDate(end)); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if task.Status != StatusCompleted {
		t.Errorf("status = %v, want %v", task.Status, StatusCompleted)
	}
	if task.ActualPoints == nil || *task.ActualPoints != 10 {
		t.Errorf("actual points = %v, want 10", task.ActualPoints)
	}
	if task.EndDate == nil || !task.EndDate.Equal(end) {
		t.Errorf("end date = %v, want %v", task.EndDate, end)
	}
}

func TestTask_CompleteDefaults(t *testing.T) {
	task, _ := NewTask("write docs", 3, ComplexityEasy)

	before := time.Now()
	if err := task.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	// Without options the actual effort falls back to the estimate and the
	// end date to now.
	if task.ActualPoints == nil || *task.ActualPoints != 3 {
		t.Errorf("actual points = %v, want estimate 3", task.ActualPoints)
	}
	if task.EndDate == nil || task.EndDate.Before(before) {
		t.Errorf("end date = %v, want >= %v", task.EndDate, before)
	}
}

func TestTask_CompleteExplicitZero(t *testing.T) {
	task, _ := NewTask("spike", 5, ComplexityMedium)

	if err := task.Complete(WithActualPoints(0)); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if task.ActualPoints == nil || *task.ActualPoints != 0 {
		t.Errorf("actual points = %v, want explicit 0", task.ActualPoints)
	}
	if task.ActualOrEstimate() != 0 {
		t.Errorf("ActualOrEstimate() = %v, want 0", task.ActualOrEstimate())
	}
}

func TestTask_RecompleteOverwrites(t *testing.T) {
	task, _ := NewTask("migration", 8, ComplexityHard)

	if err := task.Complete(WithActualPoints(6)); err != nil {
		t.Fatalf("first Complete() error = %v", err)
	}
	if err := task.Complete(WithActualPoints(12)); err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}
	if *task.ActualPoints != 12 {
		t.Errorf("actual points = %v, want 12 after re-completion", *task.ActualPoints)
	}
}

func TestTask_StartAfterComplete(t *testing.T) {
	task, _ := NewTask("deploy", 5, ComplexityMedium)
	if err := task.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	err := task.Start(time.Now())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Start() after completion error = %v, want ErrInvalidTransition", err)
	}
	if task.Status != StatusCompleted {
		t.Errorf("status = %v, want unchanged %v", task.Status, StatusCompleted)
	}
	if task.StartDate != nil {
		t.Error("start date recorded on rejected transition")
	}
}

func TestTask_ActualOrEstimate(t *testing.T) {
	task, _ := NewTask("review", 5, ComplexityMedium)
	if got := task.ActualOrEstimate(); got != 5 {
		t.Errorf("ActualOrEstimate() = %v, want estimate 5", got)
	}

	if err := task.Complete(WithActualPoints(7)); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got := task.ActualOrEstimate(); got != 7 {
		t.Errorf("ActualOrEstimate() = %v, want actual 7", got)
	}
}

func TestTask_SnapshotIsDeepCopy(t *testing.T) {
	task, _ := NewTask("copy me", 5, ComplexityMedium)
	if err := task.Complete(WithActualPoints(4)); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	snap := task.Snapshot()
	*snap.ActualPoints = 99
	if *task.ActualPoints != 4 {
		t.Errorf("mutating a snapshot changed the task: actual = %v", *task.ActualPoints)
	}
}
