package wiring

import (
	"github.com/felixgeelhaar/burndown/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo *storage.FilesystemRepository
}

func NewWorkspace(root string) *Workspace {
	return &Workspace{
		Repo: storage.NewFilesystemRepository(root),
	}
}
