package application_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/felixgeelhaar/burndown/pkg/application"
	"github.com/felixgeelhaar/burndown/pkg/domain/board"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

type fakeSyncer struct {
	cards      []board.Card
	importErr  error
	created    []string
	createErr  error
	pushedID   string
	pushedPts  float64
	pushedStat string
	pushErr    error
	config     map[string]string
	initErr    error
}

func (f *fakeSyncer) Init(config map[string]string) error {
	f.config = config
	return f.initErr
}

func (f *fakeSyncer) ImportCards() ([]board.Card, error) {
	return f.cards, f.importErr
}

func (f *fakeSyncer) CreateCard(name string, estimatedPoints int, complexity string) (*board.Card, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	return &board.Card{ID: "card-" + name, Name: name, Complexity: complexity}, nil
}

func (f *fakeSyncer) PushProgress(cardID string, completedPoints float64, status string) error {
	f.pushedID = cardID
	f.pushedPts = completedPoints
	f.pushedStat = status
	return f.pushErr
}

type fakeLoader struct {
	syncer  *fakeSyncer
	loadErr error
	path    string
	cleaned bool
}

func (f *fakeLoader) Load(path string) (board.Syncer, error) {
	f.path = path
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.syncer, nil
}

func (f *fakeLoader) Cleanup() { f.cleaned = true }

func newSyncService(repo *MockRepo, loader *fakeLoader) *application.SyncService {
	est := burndown.NewEstimatorWithSource(rand.NewSource(1))
	projects := application.NewProjectService(repo, est)
	return application.NewSyncService(repo, projects, loader, est)
}

func TestSyncService_Import(t *testing.T) {
	repo := initializedRepo()
	repo.Def.Tasks = []burndown.TaskDefinition{
		{Name: "known", Complexity: "easy", EstimatedPoints: 2, CardID: "card-1"},
	}
	syncer := &fakeSyncer{cards: []board.Card{
		{ID: "card-1", Name: "known"},
		{ID: "card-2", Name: "hard migration", Description: "this is hard"},
		{ID: "card-3", Name: "tagged", Complexity: "medium"},
		{ID: "", Name: "no id"},
	}}
	svc := newSyncService(repo, &fakeLoader{syncer: syncer})

	added, err := svc.Import("./plugin", map[string]string{"token": "x"})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if added != 2 {
		t.Fatalf("added = %d, want 2", added)
	}
	if syncer.config["token"] != "x" {
		t.Error("syncer was not initialized with the supplied config")
	}

	tasks := repo.Def.Tasks
	if len(tasks) != 3 {
		t.Fatalf("task count = %d, want 3", len(tasks))
	}
	if tasks[1].Complexity != "hard" {
		t.Errorf("detected complexity = %s, want hard from description", tasks[1].Complexity)
	}
	if tasks[1].EstimatedPoints < 8 || tasks[1].EstimatedPoints > 13 {
		t.Errorf("estimate = %v, want within [8, 13]", tasks[1].EstimatedPoints)
	}
	if tasks[2].Complexity != "medium" {
		t.Errorf("explicit complexity = %s, want medium", tasks[2].Complexity)
	}
	if tasks[1].CardID != "card-2" || tasks[2].CardID != "card-3" {
		t.Errorf("card links = %s, %s", tasks[1].CardID, tasks[2].CardID)
	}
}

func TestSyncService_Import_NothingNew(t *testing.T) {
	repo := initializedRepo()
	repo.Def.Tasks = []burndown.TaskDefinition{
		{Name: "known", Complexity: "easy", EstimatedPoints: 2, CardID: "card-1"},
	}
	syncer := &fakeSyncer{cards: []board.Card{{ID: "card-1", Name: "known"}}}
	svc := newSyncService(repo, &fakeLoader{syncer: syncer})

	saves := repo.SaveCount
	added, err := svc.Import("./plugin", nil)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if repo.SaveCount != saves {
		t.Error("definition saved although nothing changed")
	}
}

func TestSyncService_Import_LoaderFailure(t *testing.T) {
	repo := initializedRepo()
	svc := newSyncService(repo, &fakeLoader{loadErr: errors.New("no such binary")})

	if _, err := svc.Import("./missing", nil); err == nil {
		t.Fatal("Import() succeeded despite loader failure")
	}
}

func TestSyncService_Mirror(t *testing.T) {
	repo := initializedRepo()
	repo.Def.Tasks = []burndown.TaskDefinition{
		{Name: "build", Complexity: "medium", EstimatedPoints: 5},
	}
	syncer := &fakeSyncer{}
	svc := newSyncService(repo, &fakeLoader{syncer: syncer})

	card, err := svc.Mirror("./plugin", nil, "build")
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if card.ID != "card-build" {
		t.Errorf("card ID = %s", card.ID)
	}
	if repo.Def.Tasks[0].CardID != "card-build" {
		t.Errorf("task not linked: %+v", repo.Def.Tasks[0])
	}

	if _, err := svc.Mirror("./plugin", nil, "missing"); !errors.Is(err, application.ErrTaskNotFound) {
		t.Errorf("Mirror(missing) error = %v, want ErrTaskNotFound", err)
	}
}

func TestSyncService_Push(t *testing.T) {
	repo := initializedRepo()
	repo.Def.Tasks = []burndown.TaskDefinition{
		{Name: "build", Complexity: "medium", EstimatedPoints: 5, Status: "completed", CardID: "card-9"},
	}
	repo.Def.Updates = []burndown.ProgressUpdateRecord{
		{Date: "2024-01-05", CompletedPoints: 45},
	}
	syncer := &fakeSyncer{}
	svc := newSyncService(repo, &fakeLoader{syncer: syncer})

	if err := svc.Push("./plugin", nil, "build"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if syncer.pushedID != "card-9" || syncer.pushedPts != 45 || syncer.pushedStat != "completed" {
		t.Errorf("pushed %s/%v/%s", syncer.pushedID, syncer.pushedPts, syncer.pushedStat)
	}
}

func TestSyncService_Push_RequiresProgress(t *testing.T) {
	repo := initializedRepo()
	repo.Def.Tasks = []burndown.TaskDefinition{
		{Name: "build", Complexity: "medium", EstimatedPoints: 5, CardID: "card-9"},
	}
	svc := newSyncService(repo, &fakeLoader{syncer: &fakeSyncer{}})

	if err := svc.Push("./plugin", nil, "build"); !errors.Is(err, application.ErrNoProgress) {
		t.Fatalf("Push() error = %v, want ErrNoProgress", err)
	}
}

func TestSyncService_Push_UnlinkedTask(t *testing.T) {
	repo := initializedRepo()
	repo.Def.Tasks = []burndown.TaskDefinition{
		{Name: "build", Complexity: "medium", EstimatedPoints: 5},
	}
	repo.Def.Updates = []burndown.ProgressUpdateRecord{
		{Date: "2024-01-05", CompletedPoints: 45},
	}
	svc := newSyncService(repo, &fakeLoader{syncer: &fakeSyncer{}})

	if err := svc.Push("./plugin", nil, "build"); err == nil {
		t.Fatal("Push() succeeded for a task without a card link")
	}
}
