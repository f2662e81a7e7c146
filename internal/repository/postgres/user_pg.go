// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/repository"
	"crowdfund-api/internal/util"
	"crowdfund-api/pkg/db"
)

const userColumns = `id, name, email, password_hash, wallet_address, role, created_at`

// UserRepository implements repository.UserRepository for PostgreSQL.
// It holds no connection; every method receives the DBExecutor to run on.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user. A clashing email or wallet address yields util.ErrDuplicateEntry.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, wallet_address, role, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.WalletAddress,
		user.Role,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", util.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	return r.getOne(ctx, q, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByEmail retrieves a user by their email address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	return r.getOne(ctx, q, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetUserByWalletAddress retrieves a user by their wallet address.
func (r *UserRepository) GetUserByWalletAddress(ctx context.Context, q repository.DBExecutor, walletAddress string) (*domain.User, error) {
	return r.getOne(ctx, q, `SELECT `+userColumns+` FROM users WHERE wallet_address = $1`, walletAddress)
}

func (r *UserRepository) getOne(ctx context.Context, q repository.DBExecutor, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	if err := q.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by %v: %w", arg, err)
	}
	return &user, nil
}
