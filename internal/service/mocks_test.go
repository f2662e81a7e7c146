// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/repository"
	"crowdfund-api/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByWalletAddress(ctx context.Context, q repository.DBExecutor, walletAddress string) (*domain.User, error) {
	args := m.Called(ctx, q, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockProjectRepository is a mock implementation of repository.ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreateProject(ctx context.Context, q repository.DBExecutor, project *domain.Project) error {
	args := m.Called(ctx, q, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetProjectByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Project, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) GetProjectForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Project, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) GetProjectListing(ctx context.Context, q repository.DBExecutor, id int64) (*domain.ProjectListing, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectListing), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, q repository.DBExecutor) ([]domain.ProjectListing, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.ProjectListing), args.Error(1)
}

func (m *MockProjectRepository) ListProjectsByFounder(ctx context.Context, q repository.DBExecutor, founderID int64) ([]domain.ProjectListing, error) {
	args := m.Called(ctx, q, founderID)
	return args.Get(0).([]domain.ProjectListing), args.Error(1)
}

func (m *MockProjectRepository) UpdateProjectDetails(ctx context.Context, q repository.DBExecutor, project *domain.Project) error {
	args := m.Called(ctx, q, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockProjectRepository) ApplyInvestment(ctx context.Context, q repository.DBExecutor, projectID int64, amount decimal.Decimal, at time.Time) (*domain.Project, error) {
	args := m.Called(ctx, q, projectID, amount, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

// MockInvestmentRepository is a mock implementation of repository.InvestmentRepository.
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) CreateInvestment(ctx context.Context, q repository.DBExecutor, investment *domain.Investment) error {
	args := m.Called(ctx, q, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) ListInvestmentsByProject(ctx context.Context, q repository.DBExecutor, projectID int64, limit, offset int) ([]domain.Investment, int64, error) {
	args := m.Called(ctx, q, projectID, limit, offset)
	return args.Get(0).([]domain.Investment), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvestmentRepository) ListInvestmentsByInvestor(ctx context.Context, q repository.DBExecutor, investorID int64, limit, offset int) ([]domain.Investment, int64, error) {
	args := m.Called(ctx, q, investorID, limit, offset)
	return args.Get(0).([]domain.Investment), args.Get(1).(int64), args.Error(2)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It also satisfies repository.DBExecutor by embedding MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssueToken(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

// txFuncs returns begin/commit/rollback functions routed to tx. A non-nil beginErr
// makes every begin fail.
func txFuncs(tx *MockTxController, beginErr error) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		if beginErr != nil {
			return nil, beginErr
		}
		return tx, nil
	}
	commit := func(db.TxController) error {
		return tx.Commit()
	}
	rollback := func(db.TxController) {
		_ = tx.Rollback()
	}
	return begin, commit, rollback
}
