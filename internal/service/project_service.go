// internal/service/project_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/repository"
	"crowdfund-api/internal/util"
	"crowdfund-api/pkg/db"

	"github.com/shopspring/decimal"
)

// ProjectUpdate carries the founder-editable fields. Nil fields are left unchanged.
type ProjectUpdate struct {
	Name         *string
	Description  *string
	TargetAmount *decimal.Decimal
	Status       *domain.ProjectStatus
}

// ProjectService defines the interface for project lifecycle operations.
type ProjectService interface {
	CreateProject(ctx context.Context, founderID int64, name, description string, target decimal.Decimal) (*domain.Project, error)
	GetProject(ctx context.Context, projectID int64) (*domain.ProjectListing, error)
	ListProjects(ctx context.Context) ([]domain.ProjectListing, error)
	ListProjectsByFounder(ctx context.Context, founderID int64) ([]domain.ProjectListing, error)
	UpdateProject(ctx context.Context, actorID, projectID int64, update ProjectUpdate) (*domain.Project, error)
	DeleteProject(ctx context.Context, actorID, projectID int64) error
}

type projectService struct {
	tx          txRunner
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new instance of ProjectService.
func NewProjectService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) ProjectService {
	return &projectService{
		tx: txRunner{
			dbBeginner: dbBeginner,
			beginTx:    beginTx,
			commitTx:   commitTx,
			rollbackTx: rollbackTx,
		},
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

// CreateProject publishes a new active project. Only founders may do this.
func (s *projectService) CreateProject(ctx context.Context, founderID int64, name, description string, target decimal.Decimal) (*domain.Project, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if name == "" || description == "" || !domain.ValidAmount(target) {
		return nil, util.ErrInvalidInput
	}

	founder, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, founderID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, fmt.Errorf("create project: unknown user %d: %w", founderID, util.ErrForbidden)
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	if !founder.Role.CanManageProjects() {
		return nil, fmt.Errorf("create project: user %d has role %s: %w", founderID, founder.Role, util.ErrForbidden)
	}

	project := domain.NewProject(founderID, name, description, target)
	if err := s.projectRepo.CreateProject(ctx, s.dbExecutor, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID int64) (*domain.ProjectListing, error) {
	listing, err := s.projectRepo.GetProjectListing(ctx, s.dbExecutor, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return listing, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]domain.ProjectListing, error) {
	listings, err := s.projectRepo.ListProjects(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return listings, nil
}

func (s *projectService) ListProjectsByFounder(ctx context.Context, founderID int64) ([]domain.ProjectListing, error) {
	listings, err := s.projectRepo.ListProjectsByFounder(ctx, s.dbExecutor, founderID)
	if err != nil {
		return nil, fmt.Errorf("list founder projects: %w", err)
	}
	return listings, nil
}

// UpdateProject applies a founder's edit. The target amount may only change while the
// project is active and nothing has been raised; status may never be set to funded or
// moved back to active.
func (s *projectService) UpdateProject(ctx context.Context, actorID, projectID int64, update ProjectUpdate) (*domain.Project, error) {
	if update.TargetAmount != nil && !domain.ValidAmount(*update.TargetAmount) {
		return nil, util.ErrInvalidInput
	}

	var updated *domain.Project
	err := s.tx.within(ctx, func(q repository.DBExecutor) error {
		project, err := s.ownedProject(ctx, q, actorID, projectID)
		if err != nil {
			return err
		}

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return util.ErrInvalidInput
			}
			project.Name = name
		}
		if update.Description != nil {
			description := strings.TrimSpace(*update.Description)
			if description == "" {
				return util.ErrInvalidInput
			}
			project.Description = description
		}
		if update.TargetAmount != nil && !update.TargetAmount.Equal(project.TargetAmount) {
			if project.Status != domain.ProjectStatusActive || !project.RaisedAmount.IsZero() {
				return fmt.Errorf("update project %d: target is fixed once funds are raised: %w", projectID, util.ErrInvalidState)
			}
			project.TargetAmount = *update.TargetAmount
		}
		if update.Status != nil {
			if !project.Status.CanTransitionTo(*update.Status) {
				return fmt.Errorf("update project %d: cannot move from %s to %s: %w", projectID, project.Status, *update.Status, util.ErrInvalidState)
			}
			project.Status = *update.Status
		}

		project.UpdatedAt = time.Now().UTC()
		if err := s.projectRepo.UpdateProjectDetails(ctx, q, project); err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes a project that has never received an investment.
func (s *projectService) DeleteProject(ctx context.Context, actorID, projectID int64) error {
	return s.tx.within(ctx, func(q repository.DBExecutor) error {
		project, err := s.ownedProject(ctx, q, actorID, projectID)
		if err != nil {
			return err
		}
		if !project.RaisedAmount.IsZero() {
			return fmt.Errorf("delete project %d: investments are recorded against it: %w", projectID, util.ErrInvalidState)
		}
		if err := s.projectRepo.DeleteProject(ctx, q, projectID); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
}

// ownedProject locks the project row and checks that actorID is its founder.
func (s *projectService) ownedProject(ctx context.Context, q repository.DBExecutor, actorID, projectID int64) (*domain.Project, error) {
	project, err := s.projectRepo.GetProjectForUpdate(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project.FounderID != actorID {
		return nil, fmt.Errorf("project %d is not owned by user %d: %w", projectID, actorID, util.ErrForbidden)
	}
	return project, nil
}
