// internal/service/account_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/repository"
	"crowdfund-api/internal/util"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	IssueToken(user *domain.User) (string, error)
}

// AccountService defines registration, login and profile lookups.
type AccountService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error)
	RegisterWallet(ctx context.Context, walletAddress, name, email, role string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LoginWallet(ctx context.Context, walletAddress string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
}

type accountService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(dbExecutor repository.DBExecutor, userRepo repository.UserRepository, tokens TokenIssuer, bcryptCost int) AccountService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &accountService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates an email/password account and returns it with a fresh token.
func (s *accountService) Register(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	normalizedEmail, err := normalizeEmail(email)
	if err != nil || name == "" || len(password) < minPasswordLength {
		return nil, "", util.ErrInvalidInput
	}
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, "", fmt.Errorf("register: %v: %w", err, util.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("register: failed to hash password: %w", err)
	}
	hashed := string(hash)

	user := domain.NewUser(name, &normalizedEmail, nil, parsedRole)
	user.PasswordHash = &hashed
	return s.createAndIssue(ctx, user)
}

// RegisterWallet creates a wallet-based account. email may be empty.
func (s *accountService) RegisterWallet(ctx context.Context, walletAddress, name, email, role string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	address, err := normalizeWallet(walletAddress)
	if err != nil || name == "" {
		return nil, "", util.ErrInvalidInput
	}
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, "", fmt.Errorf("register wallet: %v: %w", err, util.ErrInvalidInput)
	}

	var emailPtr *string
	if strings.TrimSpace(email) != "" {
		normalizedEmail, err := normalizeEmail(email)
		if err != nil {
			return nil, "", util.ErrInvalidInput
		}
		emailPtr = &normalizedEmail
	}

	user := domain.NewUser(name, emailPtr, &address, parsedRole)
	return s.createAndIssue(ctx, user)
}

// Login authenticates by email and password.
func (s *accountService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	normalizedEmail, err := normalizeEmail(email)
	if err != nil || password == "" {
		return nil, "", util.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, normalizedEmail)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if user.PasswordHash == nil {
		return nil, "", util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	return s.issue(user)
}

// LoginWallet authenticates a previously registered wallet address.
func (s *accountService) LoginWallet(ctx context.Context, walletAddress string) (*domain.User, string, error) {
	address, err := normalizeWallet(walletAddress)
	if err != nil {
		return nil, "", util.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByWalletAddress(ctx, s.dbExecutor, address)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login wallet: %w", err)
	}

	return s.issue(user)
}

func (s *accountService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

func (s *accountService) createAndIssue(ctx context.Context, user *domain.User) (*domain.User, string, error) {
	if !user.HasIdentity() {
		return nil, "", util.ErrInvalidInput
	}
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}
	return s.issue(user)
}

func (s *accountService) issue(user *domain.User) (*domain.User, string, error) {
	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}

// normalizeWallet validates a hex account address and returns its EIP-55 checksummed form,
// so the same wallet always maps to the same row regardless of input casing.
func normalizeWallet(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !common.IsHexAddress(raw) {
		return "", fmt.Errorf("invalid wallet address %q", raw)
	}
	return common.HexToAddress(raw).Hex(), nil
}
