// internal/repository/investment_repo.go
package repository

import (
	"context"

	"crowdfund-api/internal/domain"
)

// InvestmentRepository defines the interface for the append-only investment ledger.
type InvestmentRepository interface {
	CreateInvestment(ctx context.Context, q DBExecutor, investment *domain.Investment) error
	// ListInvestmentsByProject returns a page of a project's investments plus the total count.
	ListInvestmentsByProject(ctx context.Context, q DBExecutor, projectID int64, limit, offset int) ([]domain.Investment, int64, error)
	// ListInvestmentsByInvestor returns a page of an investor's investments plus the total count.
	ListInvestmentsByInvestor(ctx context.Context, q DBExecutor, investorID int64, limit, offset int) ([]domain.Investment, int64, error)
}
