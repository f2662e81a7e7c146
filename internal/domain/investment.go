// internal/domain/investment.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is an immutable contribution record. Rows are only ever inserted.
type Investment struct {
	ID         int64           `db:"id" json:"id"`
	ProjectID  int64           `db:"project_id" json:"project_id"`
	InvestorID int64           `db:"investor_id" json:"investor_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// NewInvestment creates a new Investment instance stamped with the current time.
func NewInvestment(projectID, investorID int64, amount decimal.Decimal) *Investment {
	return &Investment{
		ProjectID:  projectID,
		InvestorID: investorID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
}
