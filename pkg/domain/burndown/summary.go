package burndown

import "math"

// Summary holds derived progress statistics. It is computed from the
// ledger's last-appended entry and the task collection, never from the
// per-day curves.
type Summary struct {
	TotalStoryPoints     float64 `json:"total_story_points" yaml:"total_story_points"`
	CompletedStoryPoints float64 `json:"completed_story_points" yaml:"completed_story_points"`
	ProgressPercentage   float64 `json:"progress_percentage" yaml:"progress_percentage"`
	// EstimateVariance is the percentage deviation between summed task
	// estimates and summed actual effort; tasks without actuals contribute
	// their estimate, so they add no variance.
	EstimateVariance float64 `json:"estimated_vs_actual_variance" yaml:"estimated_vs_actual_variance"`
}

// Remaining returns the story points still open.
func (s Summary) Remaining() float64 {
	return s.TotalStoryPoints - s.CompletedStoryPoints
}

// IsComplete returns true if all story points have been completed.
func (s Summary) IsComplete() bool {
	return s.TotalStoryPoints > 0 && s.CompletedStoryPoints >= s.TotalStoryPoints
}

// estimateVariance computes |sumEstimated - sumActualOrEstimate| / sumEstimated * 100
// across tasks, and 0 when there is nothing estimated.
func estimateVariance(tasks []*Task) float64 {
	var sumEstimated, sumActual float64
	for _, t := range tasks {
		sumEstimated += t.EstimatedPoints
		sumActual += t.ActualOrEstimate()
	}
	if sumEstimated == 0 {
		return 0
	}
	return math.Abs(sumEstimated-sumActual) / sumEstimated * 100
}
