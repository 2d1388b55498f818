package burndown

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Complexity is a coarse effort bucket mapped to a point-estimate range.
type Complexity string

const (
	ComplexityEasy   Complexity = "easy"
	ComplexityMedium Complexity = "medium"
	ComplexityHard   Complexity = "hard"
)

// pointRanges maps each complexity tier to its inclusive point range.
var pointRanges = map[Complexity][2]int{
	ComplexityEasy:   {1, 3},
	ComplexityMedium: {3, 8},
	ComplexityHard:   {8, 13},
}

// ParseComplexity parses a complexity tier, case-insensitively.
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := pointRanges[c]; !ok {
		return "", fmt.Errorf("%w: %q (choose from: easy, medium, hard)", ErrInvalidComplexity, s)
	}
	return c, nil
}

// IsValid returns true if the complexity is a known tier.
func (c Complexity) IsValid() bool {
	_, ok := pointRanges[c]
	return ok
}

// String returns the string representation of the complexity.
func (c Complexity) String() string {
	return string(c)
}

// PointRange returns the inclusive [min, max] estimate range for a tier.
func PointRange(c Complexity) (min, max int, err error) {
	r, ok := pointRanges[c]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q (choose from: easy, medium, hard)", ErrInvalidComplexity, c)
	}
	return r[0], r[1], nil
}

// DetectComplexity derives a complexity tier from free text by keyword
// search: "hard" wins over "medium", anything else defaults to easy. Task
// boards tag cards this way in their descriptions.
func DetectComplexity(text string) Complexity {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hard"):
		return ComplexityHard
	case strings.Contains(lower, "medium"):
		return ComplexityMedium
	default:
		return ComplexityEasy
	}
}

// Estimator samples story-point estimates from complexity ranges. The random
// source is injectable so tests can pin range boundaries.
type Estimator struct {
	rng *rand.Rand
}

// NewEstimator creates an estimator backed by a time-seeded source.
func NewEstimator() *Estimator {
	return NewEstimatorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewEstimatorWithSource creates an estimator backed by the given source.
func NewEstimatorWithSource(src rand.Source) *Estimator {
	return &Estimator{rng: rand.New(src)}
}

// Estimate returns a uniformly sampled integer from the tier's inclusive
// range. The result is non-deterministic unless the source is fixed.
func (e *Estimator) Estimate(complexity Complexity) (int, error) {
	min, max, err := PointRange(complexity)
	if err != nil {
		return 0, err
	}
	return min + e.rng.Intn(max-min+1), nil
}

// EstimateString parses the tier case-insensitively and estimates from it.
func (e *Estimator) EstimateString(complexity string) (int, error) {
	c, err := ParseComplexity(complexity)
	if err != nil {
		return 0, err
	}
	return e.Estimate(c)
}
