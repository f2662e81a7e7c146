// internal/domain/project.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// ProjectStatus defines the lifecycle state of a funding campaign.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusFunded    ProjectStatus = "funded"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// ParseProjectStatus converts raw input into a ProjectStatus.
func ParseProjectStatus(raw string) (ProjectStatus, error) {
	switch s := ProjectStatus(raw); s {
	case ProjectStatusActive, ProjectStatusFunded, ProjectStatusCompleted, ProjectStatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("unknown project status %q", raw)
	}
}

// AcceptsInvestments reports whether contributions may be recorded against the project.
func (s ProjectStatus) AcceptsInvestments() bool {
	return s == ProjectStatusActive
}

// CanTransitionTo reports whether a founder may move a project from s to next.
// The funded status is only ever reached through the investment ledger.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ProjectStatusActive:
		return next == ProjectStatusCompleted || next == ProjectStatusCancelled
	case ProjectStatusFunded:
		return next == ProjectStatusCompleted
	case ProjectStatusCompleted, ProjectStatusCancelled:
		return false
	default:
		return false
	}
}

// Project represents a funding campaign owned by a founder.
type Project struct {
	ID           int64           `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	TargetAmount decimal.Decimal `db:"target_amount" json:"target_amount"` // NUMERIC(20, 4) in DB
	RaisedAmount decimal.Decimal `db:"raised_amount" json:"raised_amount"` // Sum of all investments, NUMERIC(20, 4) in DB
	FounderID    int64           `db:"founder_id" json:"founder_id"`       // Foreign key to User
	Status       ProjectStatus   `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// ProjectListing is a project joined with its founder's display name.
type ProjectListing struct {
	Project
	FounderName string `db:"founder_name" json:"founder_name"`
}

// NewProject creates a new active Project with nothing raised.
func NewProject(founderID int64, name, description string, target decimal.Decimal) *Project {
	now := time.Now().UTC()
	return &Project{
		Name:         name,
		Description:  description,
		TargetAmount: target,
		RaisedAmount: decimal.Zero,
		FounderID:    founderID,
		Status:       ProjectStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsFullyFunded reports whether the raised amount has met the target.
func (p *Project) IsFullyFunded() bool {
	return p.RaisedAmount.GreaterThanOrEqual(p.TargetAmount)
}
