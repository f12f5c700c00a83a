package wiring

import (
	"github.com/felixgeelhaar/ricemill/internal/infrastructure/cache"
	"github.com/felixgeelhaar/ricemill/pkg/application"
)

// AppServices exposes the application layer services wired together with a
// workspace.
type AppServices struct {
	Workspace      *Workspace
	Audit          *application.AuditService
	Intake         *application.IntakeService
	Prioritization *application.PrioritizationService
	Query          *application.QueryService
	Roadmap        *application.RoadmapService
	Seed           *application.SeedService
	Cache          cache.Store
}

// BuildAppServices constructs the service graph for a workspace root.
func BuildAppServices(root string) (*AppServices, error) {
	workspace := NewWorkspace(root)

	cfg, err := workspace.Repo.LoadConfig()
	if err != nil {
		return nil, err
	}
	store, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, err
	}

	intakeSvc := application.NewIntakeService(workspace.Repo, workspace.Audit)
	prioritizationSvc := application.NewPrioritizationService(workspace.Repo, workspace.Audit)
	if workspace.Notifier != nil {
		prioritizationSvc.SetNotifier(workspace.Notifier)
	}

	return &AppServices{
		Workspace:      workspace,
		Audit:          workspace.Audit,
		Intake:         intakeSvc,
		Prioritization: prioritizationSvc,
		Query:          application.NewQueryService(workspace.Repo, workspace.Audit),
		Roadmap:        application.NewRoadmapService(workspace.Repo, workspace.Audit),
		Seed:           application.NewSeedService(intakeSvc, workspace.Audit),
		Cache:          store,
	}, nil
}
