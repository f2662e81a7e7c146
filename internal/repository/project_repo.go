// internal/repository/project_repo.go
package repository

import (
	"context"
	"time"

	"crowdfund-api/internal/domain"

	"github.com/shopspring/decimal"
)

// ProjectRepository defines the interface for project data operations.
type ProjectRepository interface {
	// CreateProject adds a new project and fills in its generated ID.
	CreateProject(ctx context.Context, q DBExecutor, project *domain.Project) error
	GetProjectByID(ctx context.Context, q DBExecutor, id int64) (*domain.Project, error)
	// GetProjectForUpdate reads a project and locks its row until the surrounding transaction ends.
	GetProjectForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Project, error)
	GetProjectListing(ctx context.Context, q DBExecutor, id int64) (*domain.ProjectListing, error)
	ListProjects(ctx context.Context, q DBExecutor) ([]domain.ProjectListing, error)
	ListProjectsByFounder(ctx context.Context, q DBExecutor, founderID int64) ([]domain.ProjectListing, error)
	// UpdateProjectDetails persists name, description, target amount and status.
	UpdateProjectDetails(ctx context.Context, q DBExecutor, project *domain.Project) error
	DeleteProject(ctx context.Context, q DBExecutor, id int64) error
	// ApplyInvestment atomically adds amount to the raised total of an active project and
	// flips it to funded when the target is met. It returns util.ErrInvalidState when the
	// project is no longer active.
	ApplyInvestment(ctx context.Context, q DBExecutor, projectID int64, amount decimal.Decimal, at time.Time) (*domain.Project, error)
}
