// internal/repository/postgres/project_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/repository"
	"crowdfund-api/internal/util"

	"github.com/shopspring/decimal"
)

const projectColumns = `id, name, description, target_amount, raised_amount, founder_id, status, created_at, updated_at`

const listingSelect = `
	SELECT p.id, p.name, p.description, p.target_amount, p.raised_amount, p.founder_id,
	       p.status, p.created_at, p.updated_at, u.name AS founder_name
	FROM projects p
	JOIN users u ON p.founder_id = u.id`

// ProjectRepository implements repository.ProjectRepository for PostgreSQL.
type ProjectRepository struct{}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository() repository.ProjectRepository {
	return &ProjectRepository{}
}

// CreateProject inserts a new project.
func (r *ProjectRepository) CreateProject(ctx context.Context, q repository.DBExecutor, project *domain.Project) error {
	query := `INSERT INTO projects (name, description, target_amount, raised_amount, founder_id, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		project.Name,
		project.Description,
		project.TargetAmount,
		project.RaisedAmount,
		project.FounderID,
		project.Status,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetProjectByID retrieves a project by its ID.
func (r *ProjectRepository) GetProjectByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Project, error) {
	return r.getOne(ctx, q, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// GetProjectForUpdate retrieves a project and holds a row lock on it. Only meaningful inside a transaction.
func (r *ProjectRepository) GetProjectForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Project, error) {
	return r.getOne(ctx, q, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id)
}

// GetProjectListing retrieves a project together with its founder's name.
func (r *ProjectRepository) GetProjectListing(ctx context.Context, q repository.DBExecutor, id int64) (*domain.ProjectListing, error) {
	var listing domain.ProjectListing
	if err := q.GetContext(ctx, &listing, listingSelect+` WHERE p.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project listing %d: %w", id, err)
	}
	return &listing, nil
}

// ListProjects returns every project, newest first.
func (r *ProjectRepository) ListProjects(ctx context.Context, q repository.DBExecutor) ([]domain.ProjectListing, error) {
	listings := []domain.ProjectListing{}
	if err := q.SelectContext(ctx, &listings, listingSelect+` ORDER BY p.created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return listings, nil
}

// ListProjectsByFounder returns a founder's projects, newest first.
func (r *ProjectRepository) ListProjectsByFounder(ctx context.Context, q repository.DBExecutor, founderID int64) ([]domain.ProjectListing, error) {
	listings := []domain.ProjectListing{}
	query := listingSelect + ` WHERE p.founder_id = $1 ORDER BY p.created_at DESC`
	if err := q.SelectContext(ctx, &listings, query, founderID); err != nil {
		return nil, fmt.Errorf("failed to list projects for founder %d: %w", founderID, err)
	}
	return listings, nil
}

// UpdateProjectDetails writes the founder-editable fields back to the row.
func (r *ProjectRepository) UpdateProjectDetails(ctx context.Context, q repository.DBExecutor, project *domain.Project) error {
	query := `UPDATE projects SET name = $1, description = $2, target_amount = $3, status = $4, updated_at = $5 WHERE id = $6`
	result, err := q.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.TargetAmount,
		project.Status,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", project.ID, err)
	}
	return expectOneRow(result, project.ID)
}

// DeleteProject removes a project row.
func (r *ProjectRepository) DeleteProject(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return expectOneRow(result, id)
}

// ApplyInvestment increments raised_amount and evaluates the funded threshold in a single
// statement, so the threshold is always judged against the post-increment total.
func (r *ProjectRepository) ApplyInvestment(ctx context.Context, q repository.DBExecutor, projectID int64, amount decimal.Decimal, at time.Time) (*domain.Project, error) {
	query := `
		UPDATE projects
		SET raised_amount = raised_amount + $1,
		    status = CASE WHEN raised_amount + $1 >= target_amount THEN $2 ELSE status END,
		    updated_at = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + projectColumns

	var project domain.Project
	err := q.GetContext(ctx, &project, query,
		amount,
		domain.ProjectStatusFunded,
		at,
		projectID,
		domain.ProjectStatusActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrInvalidState
		}
		return nil, fmt.Errorf("failed to apply investment to project %d: %w", projectID, err)
	}
	return &project, nil
}

func (r *ProjectRepository) getOne(ctx context.Context, q repository.DBExecutor, query string, id int64) (*domain.Project, error) {
	var project domain.Project
	if err := q.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by ID %d: %w", id, err)
	}
	return &project, nil
}

func expectOneRow(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for project %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrProjectNotFound
	}
	return nil
}
