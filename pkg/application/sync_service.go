package application

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/burndown/pkg/domain"
	"github.com/felixgeelhaar/burndown/pkg/domain/board"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

// ErrNoProgress indicates a push was requested before any progress was recorded.
var ErrNoProgress = errors.New("no progress recorded yet")

// SyncerLoader loads board syncer plugins from executable paths.
type SyncerLoader interface {
	Load(path string) (board.Syncer, error)
	Cleanup()
}

// SyncService bridges the tracked project and an external task board through
// a syncer plugin: board cards become task definitions, progress updates are
// mirrored back to the board.
type SyncService struct {
	repo      domain.DefinitionRepository
	projects  *ProjectService
	loader    SyncerLoader
	estimator *burndown.Estimator
}

func NewSyncService(repo domain.DefinitionRepository, projects *ProjectService, loader SyncerLoader, estimator *burndown.Estimator) *SyncService {
	if estimator == nil {
		estimator = burndown.NewEstimator()
	}
	return &SyncService{repo: repo, projects: projects, loader: loader, estimator: estimator}
}

func (s *SyncService) connect(pluginPath string, config map[string]string) (board.Syncer, error) {
	syncer, err := s.loader.Load(pluginPath)
	if err != nil {
		return nil, fmt.Errorf("load board plugin: %w", err)
	}
	if err := syncer.Init(config); err != nil {
		return nil, fmt.Errorf("init board plugin: %w", err)
	}
	return syncer, nil
}

// Import pulls the board's cards and appends a task definition per card not
// seen before, estimating points from the complexity tag derived from the
// card description. Returns the number of tasks added.
func (s *SyncService) Import(pluginPath string, config map[string]string) (int, error) {
	def, err := s.projects.Definition()
	if err != nil {
		return 0, err
	}

	syncer, err := s.connect(pluginPath, config)
	if err != nil {
		return 0, err
	}

	cards, err := syncer.ImportCards()
	if err != nil {
		return 0, fmt.Errorf("import cards: %w", err)
	}

	known := make(map[string]bool, len(def.Tasks))
	for _, t := range def.Tasks {
		if t.CardID != "" {
			known[t.CardID] = true
		}
	}

	added := 0
	for _, card := range cards {
		if card.ID == "" || known[card.ID] {
			continue
		}
		tier := burndown.DetectComplexity(card.Description)
		if parsed, err := burndown.ParseComplexity(card.Complexity); err == nil {
			tier = parsed
		}
		points, err := s.estimator.Estimate(tier)
		if err != nil {
			return added, err
		}
		def.Tasks = append(def.Tasks, burndown.TaskDefinition{
			Name:            card.Name,
			Complexity:      string(tier),
			EstimatedPoints: float64(points),
			Status:          string(burndown.StatusNotStarted),
			CardID:          card.ID,
		})
		known[card.ID] = true
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if _, err := def.Build(); err != nil {
		return 0, err
	}
	if err := s.repo.SaveDefinition(def); err != nil {
		return 0, err
	}
	return added, nil
}

// Mirror creates a board card for the named task and links it by card ID.
func (s *SyncService) Mirror(pluginPath string, config map[string]string, taskName string) (*board.Card, error) {
	def, err := s.projects.Definition()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range def.Tasks {
		if def.Tasks[i].Name == taskName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, taskName)
	}

	syncer, err := s.connect(pluginPath, config)
	if err != nil {
		return nil, err
	}

	td := &def.Tasks[idx]
	card, err := syncer.CreateCard(td.Name, int(td.EstimatedPoints), td.Complexity)
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	td.CardID = card.ID
	if err := s.repo.SaveDefinition(def); err != nil {
		return nil, err
	}
	return card, nil
}

// Push notifies the board of the project's current completed points for the
// card linked to the named task, along with the task's status.
func (s *SyncService) Push(pluginPath string, config map[string]string, taskName string) error {
	def, err := s.projects.Definition()
	if err != nil {
		return err
	}

	var td *burndown.TaskDefinition
	for i := range def.Tasks {
		if def.Tasks[i].Name == taskName {
			td = &def.Tasks[i]
			break
		}
	}
	if td == nil {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, taskName)
	}
	if td.CardID == "" {
		return fmt.Errorf("task %q is not linked to a board card", taskName)
	}

	if len(def.Updates) == 0 {
		return ErrNoProgress
	}
	project, err := def.Build()
	if err != nil {
		return err
	}
	summary := project.Summary()

	status := td.Status
	if status == "" {
		status = string(burndown.StatusNotStarted)
	}

	syncer, err := s.connect(pluginPath, config)
	if err != nil {
		return err
	}
	if err := syncer.PushProgress(td.CardID, summary.CompletedStoryPoints, status); err != nil {
		return fmt.Errorf("push progress: %w", err)
	}
	return nil
}
