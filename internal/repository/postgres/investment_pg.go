// internal/repository/postgres/investment_pg.go
package postgres

import (
	"context"
	"fmt"

	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/repository"
)

// InvestmentRepository implements repository.InvestmentRepository for PostgreSQL.
// The investments table is append-only, so there is no update or delete.
type InvestmentRepository struct{}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository() repository.InvestmentRepository {
	return &InvestmentRepository{}
}

// CreateInvestment appends an investment record.
func (r *InvestmentRepository) CreateInvestment(ctx context.Context, q repository.DBExecutor, investment *domain.Investment) error {
	query := `INSERT INTO investments (project_id, investor_id, amount, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		investment.ProjectID,
		investment.InvestorID,
		investment.Amount,
		investment.CreatedAt,
	).Scan(&investment.ID)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// ListInvestmentsByProject retrieves a page of investments made into a project.
func (r *InvestmentRepository) ListInvestmentsByProject(ctx context.Context, q repository.DBExecutor, projectID int64, limit, offset int) ([]domain.Investment, int64, error) {
	return r.list(ctx, q, "project_id", projectID, limit, offset)
}

// ListInvestmentsByInvestor retrieves a page of investments made by one investor.
func (r *InvestmentRepository) ListInvestmentsByInvestor(ctx context.Context, q repository.DBExecutor, investorID int64, limit, offset int) ([]domain.Investment, int64, error) {
	return r.list(ctx, q, "investor_id", investorID, limit, offset)
}

// list runs the page query and the count query. column is one of the two
// constant names above, never user input.
func (r *InvestmentRepository) list(ctx context.Context, q repository.DBExecutor, column string, id int64, limit, offset int) ([]domain.Investment, int64, error) {
	investments := []domain.Investment{}

	query := fmt.Sprintf(`
		SELECT id, project_id, investor_id, amount, created_at
		FROM investments
		WHERE %s = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, column)
	if err := q.SelectContext(ctx, &investments, query, id, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch investments by %s %d: %w", column, id, err)
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM investments WHERE %s = $1`, column)
	if err := q.GetContext(ctx, &totalCount, countQuery, id); err != nil {
		return nil, 0, fmt.Errorf("failed to count investments by %s %d: %w", column, id, err)
	}

	return investments, totalCount, nil
}
