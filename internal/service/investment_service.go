// internal/service/investment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/metrics"
	"crowdfund-api/internal/repository"
	"crowdfund-api/internal/util"
	"crowdfund-api/pkg/db"

	"github.com/shopspring/decimal"
)

// InvestmentService defines the investment ledger operations.
type InvestmentService interface {
	// RecordInvestment applies one contribution to a project and returns the project as it
	// stands after the increment (and any funded transition) together with the new record.
	RecordInvestment(ctx context.Context, projectID, investorID int64, amount decimal.Decimal) (*domain.Project, *domain.Investment, error)
	ListProjectInvestments(ctx context.Context, projectID int64, limit, offset int) ([]domain.Investment, int64, error)
	ListInvestorInvestments(ctx context.Context, investorID int64, limit, offset int) ([]domain.Investment, int64, error)
}

// investmentService implements the InvestmentService interface.
type investmentService struct {
	tx             txRunner
	dbExecutor     repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo       repository.UserRepository
	projectRepo    repository.ProjectRepository
	investmentRepo repository.InvestmentRepository
}

// NewInvestmentService creates a new instance of InvestmentService.
func NewInvestmentService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	investmentRepo repository.InvestmentRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) InvestmentService {
	return &investmentService{
		tx: txRunner{
			dbBeginner: dbBeginner,
			beginTx:    beginTx,
			commitTx:   commitTx,
			rollbackTx: rollbackTx,
		},
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
	}
}

// RecordInvestment checks, in order: the amount is a storable positive value, the investor exists and holds
// the investor role, the project exists, the project is active. The first failing check
// decides the error. The project row stays locked from the status check until commit, so
// concurrent investments into one project are applied one after another.
func (s *investmentService) RecordInvestment(ctx context.Context, projectID, investorID int64, amount decimal.Decimal) (*domain.Project, *domain.Investment, error) {
	start := time.Now()
	project, investment, err := s.recordInvestment(ctx, projectID, investorID, amount)

	var (
		invested float64
		funded   bool
	)
	if err == nil {
		invested = amount.InexactFloat64()
		funded = project.Status == domain.ProjectStatusFunded
	}
	metrics.RecordInvestment(investmentOutcome(err), invested, funded, time.Since(start))

	return project, investment, err
}

func (s *investmentService) recordInvestment(ctx context.Context, projectID, investorID int64, amount decimal.Decimal) (*domain.Project, *domain.Investment, error) {
	if !domain.ValidAmount(amount) {
		return nil, nil, fmt.Errorf("record investment: amount must be positive, below %s and have at most %d decimals: %w",
			domain.MaxAmount, domain.AmountScale, util.ErrInvalidInput)
	}

	var (
		updated    *domain.Project
		investment *domain.Investment
	)
	err := s.tx.within(ctx, func(q repository.DBExecutor) error {
		investor, err := s.userRepo.GetUserByID(ctx, q, investorID)
		if err != nil {
			if errors.Is(err, util.ErrUserNotFound) {
				return fmt.Errorf("record investment: unknown investor %d: %w", investorID, util.ErrForbidden)
			}
			return txFailed("load investor", err)
		}
		if !investor.Role.CanInvest() {
			return fmt.Errorf("record investment: user %d has role %s: %w", investorID, investor.Role, util.ErrForbidden)
		}

		project, err := s.projectRepo.GetProjectForUpdate(ctx, q, projectID)
		if err != nil {
			if errors.Is(err, util.ErrProjectNotFound) {
				return err
			}
			return txFailed("load project", err)
		}
		if !project.Status.AcceptsInvestments() {
			return fmt.Errorf("record investment: project %d is %s: %w", projectID, project.Status, util.ErrInvalidState)
		}

		record := domain.NewInvestment(projectID, investorID, amount)
		if err := s.investmentRepo.CreateInvestment(ctx, q, record); err != nil {
			return txFailed("insert investment", err)
		}

		updated, err = s.projectRepo.ApplyInvestment(ctx, q, projectID, amount, record.CreatedAt)
		if err != nil {
			if errors.Is(err, util.ErrInvalidState) {
				return fmt.Errorf("record investment: project %d stopped accepting funds: %w", projectID, err)
			}
			return txFailed("update raised amount", err)
		}

		investment = record
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return updated, investment, nil
}

// ListProjectInvestments retrieves a page of the ledger for one project.
func (s *investmentService) ListProjectInvestments(ctx context.Context, projectID int64, limit, offset int) ([]domain.Investment, int64, error) {
	if _, err := s.projectRepo.GetProjectByID(ctx, s.dbExecutor, projectID); err != nil {
		return nil, 0, fmt.Errorf("list project investments: %w", err)
	}

	investments, total, err := s.investmentRepo.ListInvestmentsByProject(ctx, s.dbExecutor, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list project investments: %w", err)
	}
	return investments, total, nil
}

// ListInvestorInvestments retrieves a page of one investor's contributions.
func (s *investmentService) ListInvestorInvestments(ctx context.Context, investorID int64, limit, offset int) ([]domain.Investment, int64, error) {
	investments, total, err := s.investmentRepo.ListInvestmentsByInvestor(ctx, s.dbExecutor, investorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list investor investments: %w", err)
	}
	return investments, total, nil
}

func investmentOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeRecorded
	case errors.Is(err, util.ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, util.ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, util.ErrProjectNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, util.ErrInvalidState):
		return metrics.OutcomeInvalidState
	default:
		return metrics.OutcomeFailed
	}
}
