package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/burndown/pkg/domain"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

// ErrNoDefinition indicates no project definition exists in the workspace.
var ErrNoDefinition = errors.New("no project definition found")

// ErrTaskNotFound indicates the named task does not exist in the definition.
var ErrTaskNotFound = errors.New("task not found")

const definitionSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "start_date", "end_date", "total_story_points"],
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "start_date": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" },
    "end_date": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" },
    "total_story_points": { "type": "number", "exclusiveMinimum": 0 },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "complexity", "estimated_points"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "complexity": { "type": "string" },
          "estimated_points": { "type": "number" }
        }
      }
    },
    "updates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["date", "completed_points"],
        "properties": {
          "date": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" },
          "completed_points": { "type": "number" }
        }
      }
    }
  }
}`

var definitionSchemaLoader = gojsonschema.NewStringLoader(definitionSchemaJSON)

// ProjectService orchestrates the project definition document: it scaffolds
// the workspace, mutates the definition through the core's validation, and
// answers queries from a freshly rebuilt project.
type ProjectService struct {
	repo      domain.DefinitionRepository
	estimator *burndown.Estimator
}

func NewProjectService(repo domain.DefinitionRepository, estimator *burndown.Estimator) *ProjectService {
	if estimator == nil {
		estimator = burndown.NewEstimator()
	}
	return &ProjectService{repo: repo, estimator: estimator}
}

// Init scaffolds the workspace with a fresh definition. The core's
// construction rules apply: a non-positive date range is recovered by
// advancing the end date, malformed input fails.
func (s *ProjectService) Init(name string, start, end time.Time, totalStoryPoints float64) (*burndown.ProjectDefinition, error) {
	project, err := burndown.NewProject(name, start, end, totalStoryPoints)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Initialize(); err != nil {
		return nil, err
	}

	def := &burndown.ProjectDefinition{
		Name:             project.Name,
		StartDate:        project.StartDate.Format(burndown.DateFormat),
		EndDate:          project.EndDate.Format(burndown.DateFormat),
		TotalStoryPoints: project.TotalStoryPoints,
	}
	if err := s.repo.SaveDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}

// Definition loads and structurally validates the definition document.
func (s *ProjectService) Definition() (*burndown.ProjectDefinition, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNoDefinition
	}
	def, err := s.repo.LoadDefinition()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDefinition, err)
	}

	result, err := gojsonschema.Validate(definitionSchemaLoader, gojsonschema.NewGoLoader(def))
	if err != nil {
		return nil, fmt.Errorf("validate definition: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("definition does not match schema: %v", msgs)
	}

	if errs := def.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid definition: %v", errs)
	}
	return def, nil
}

// Load rebuilds the in-memory project from the definition document.
func (s *ProjectService) Load() (*burndown.Project, error) {
	def, err := s.Definition()
	if err != nil {
		return nil, err
	}
	return def.Build()
}

// Estimate samples story points for a complexity tier.
func (s *ProjectService) Estimate(complexity string) (int, error) {
	return s.estimator.EstimateString(complexity)
}

// AddTask appends a task definition. A non-positive estimate is replaced by
// a sampled estimate for the tier.
func (s *ProjectService) AddTask(name, complexity string, estimatedPoints float64) (*burndown.TaskDefinition, error) {
	def, err := s.Definition()
	if err != nil {
		return nil, err
	}

	tier, err := burndown.ParseComplexity(complexity)
	if err != nil {
		return nil, err
	}
	if estimatedPoints <= 0 {
		sampled, err := s.estimator.Estimate(tier)
		if err != nil {
			return nil, err
		}
		estimatedPoints = float64(sampled)
	}

	// Run the task through the core so malformed input never reaches disk.
	if _, err := burndown.NewTask(name, estimatedPoints, tier); err != nil {
		return nil, err
	}

	td := burndown.TaskDefinition{
		Name:            name,
		Complexity:      string(tier),
		EstimatedPoints: estimatedPoints,
		Status:          string(burndown.StatusNotStarted),
	}
	def.Tasks = append(def.Tasks, td)

	if err := s.repo.SaveDefinition(def); err != nil {
		return nil, err
	}
	return &def.Tasks[len(def.Tasks)-1], nil
}

// CompleteTask marks the first task with the given name completed. Actual
// points default to the task's estimate and the end date to today, matching
// the core's completion defaults. Explicit actuals are stored unvalidated.
func (s *ProjectService) CompleteTask(name string, actualPoints *float64, endDate string) error {
	def, err := s.Definition()
	if err != nil {
		return err
	}

	idx := -1
	for i := range def.Tasks {
		if def.Tasks[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, name)
	}

	td := &def.Tasks[idx]
	actual := td.EstimatedPoints
	if actualPoints != nil {
		actual = *actualPoints
	}
	if endDate == "" {
		endDate = time.Now().UTC().Format(burndown.DateFormat)
	} else if _, err := time.Parse(burndown.DateFormat, endDate); err != nil {
		return fmt.Errorf("%w: invalid end date %q", burndown.ErrInvalidDate, endDate)
	}

	td.Status = string(burndown.StatusCompleted)
	td.ActualPoints = &actual
	td.EndDate = endDate

	// Rebuild to confirm the document still replays cleanly.
	if _, err := def.Build(); err != nil {
		return err
	}
	return s.repo.SaveDefinition(def)
}

// StartTask marks the first task with the given name in progress.
func (s *ProjectService) StartTask(name string) error {
	def, err := s.Definition()
	if err != nil {
		return err
	}
	for i := range def.Tasks {
		if def.Tasks[i].Name == name {
			if burndown.TaskStatus(def.Tasks[i].Status).IsComplete() {
				return &burndown.TransitionError{
					TaskID:     name,
					FromStatus: def.Tasks[i].Status,
					Event:      "start",
				}
			}
			def.Tasks[i].Status = string(burndown.StatusInProgress)
			if _, err := def.Build(); err != nil {
				return err
			}
			return s.repo.SaveDefinition(def)
		}
	}
	return fmt.Errorf("%w: %q", ErrTaskNotFound, name)
}

// RecordProgress validates the update against the core and appends it to the
// document in submission order. The returned summary reflects the new entry.
func (s *ProjectService) RecordProgress(date string, completedPoints float64, description string) (burndown.Summary, error) {
	def, err := s.Definition()
	if err != nil {
		return burndown.Summary{}, err
	}

	parsed, err := time.Parse(burndown.DateFormat, date)
	if err != nil {
		return burndown.Summary{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", burndown.ErrInvalidDate, date)
	}

	project, err := def.Build()
	if err != nil {
		return burndown.Summary{}, err
	}
	if err := project.UpdateProgress(parsed, completedPoints, description); err != nil {
		return burndown.Summary{}, err
	}

	def.Updates = append(def.Updates, burndown.ProgressUpdateRecord{
		Date:            date,
		CompletedPoints: completedPoints,
		Description:     description,
	})
	if err := s.repo.SaveDefinition(def); err != nil {
		return burndown.Summary{}, err
	}
	return project.Summary(), nil
}

// Summary derives the progress statistics from the current document.
func (s *ProjectService) Summary() (burndown.Summary, error) {
	project, err := s.Load()
	if err != nil {
		return burndown.Summary{}, err
	}
	return project.Summary(), nil
}

// Series returns the per-day burndown curves from the current document.
func (s *ProjectService) Series() ([]burndown.Point, error) {
	project, err := s.Load()
	if err != nil {
		return nil, err
	}
	return project.Series(), nil
}
