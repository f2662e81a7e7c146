// internal/repository/user_repo.go
package repository

import (
	"context"

	"crowdfund-api/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user and fills in its generated ID.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	GetUserByWalletAddress(ctx context.Context, q DBExecutor, walletAddress string) (*domain.User, error)
}
