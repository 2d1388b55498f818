package wiring

import (
	"github.com/felixgeelhaar/burndown/pkg/application"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	"github.com/felixgeelhaar/burndown/pkg/plugin"
)

// AppServices exposes the application layer services wired together with a workspace.
type AppServices struct {
	Workspace *Workspace
	Project   *application.ProjectService
	Sync      *application.SyncService
	Loader    *plugin.Loader
}

// BuildAppServices constructs the services for a workspace root.
func BuildAppServices(root string) *AppServices {
	workspace := NewWorkspace(root)
	estimator := burndown.NewEstimator()
	loader := plugin.NewLoader()

	projectSvc := application.NewProjectService(workspace.Repo, estimator)
	syncSvc := application.NewSyncService(workspace.Repo, projectSvc, loader, estimator)

	return &AppServices{
		Workspace: workspace,
		Project:   projectSvc,
		Sync:      syncSvc,
		Loader:    loader,
	}
}
