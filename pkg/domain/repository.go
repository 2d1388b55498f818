package domain

import (
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

// DefinitionRepository handles the persistence of the project definition
// document in the .burndown/ directory. Only the user's input document is
// persisted; the in-memory project state is rebuilt from it on demand.
type DefinitionRepository interface {
	Initialize() error
	IsInitialized() bool
	SaveDefinition(def *burndown.ProjectDefinition) error
	LoadDefinition() (*burndown.ProjectDefinition, error)
}
