// internal/domain/user.go
package domain

import (
	"fmt"
	"time"
)

// Role is the fixed capability a user registers with. It never changes after creation.
type Role string

const (
	RoleFounder      Role = "founder"
	RoleInvestor     Role = "investor"
	RoleCollaborator Role = "collaborator"
)

// ParseRole converts raw input into a Role, rejecting anything outside the closed set.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleFounder, RoleInvestor, RoleCollaborator:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// CanInvest reports whether the role may contribute funds to a project.
func (r Role) CanInvest() bool {
	switch r {
	case RoleInvestor:
		return true
	case RoleFounder, RoleCollaborator:
		return false
	default:
		return false
	}
}

// CanManageProjects reports whether the role may create, update or delete projects.
func (r Role) CanManageProjects() bool {
	switch r {
	case RoleFounder:
		return true
	case RoleInvestor, RoleCollaborator:
		return false
	default:
		return false
	}
}

// User represents a registered account.
type User struct {
	ID            int64     `db:"id" json:"id"`                                  // Primary key, BIGSERIAL in DB
	Name          string    `db:"name" json:"name"`                              // Display name
	Email         *string   `db:"email" json:"email,omitempty"`                  // Unique, optional for wallet users
	PasswordHash  *string   `db:"password_hash" json:"-"`                        // bcrypt hash, nil for wallet users
	WalletAddress *string   `db:"wallet_address" json:"wallet_address,omitempty"` // Unique, checksummed hex address
	Role          Role      `db:"role" json:"role"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// NewUser creates a new User instance. At least one of email or walletAddress must be non-nil.
func NewUser(name string, email, walletAddress *string, role Role) *User {
	return &User{
		Name:          name,
		Email:         email,
		WalletAddress: walletAddress,
		Role:          role,
		CreatedAt:     time.Now().UTC(),
	}
}

// HasIdentity reports whether the user can be located by email or wallet address.
func (u *User) HasIdentity() bool {
	return (u.Email != nil && *u.Email != "") || (u.WalletAddress != nil && *u.WalletAddress != "")
}
