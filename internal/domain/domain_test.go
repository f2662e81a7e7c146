package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"founder", "investor", "collaborator"} {
		role, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, Role(raw), role)
	}

	_, err := ParseRole("admin")
	assert.Error(t, err)
	_, err = ParseRole("Investor")
	assert.Error(t, err)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleInvestor.CanInvest())
	assert.False(t, RoleFounder.CanInvest())
	assert.False(t, RoleCollaborator.CanInvest())
	assert.False(t, Role("").CanInvest())

	assert.True(t, RoleFounder.CanManageProjects())
	assert.False(t, RoleInvestor.CanManageProjects())
	assert.False(t, RoleCollaborator.CanManageProjects())
}

func TestProjectStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ProjectStatus
		allowed  bool
	}{
		{ProjectStatusActive, ProjectStatusActive, true},
		{ProjectStatusActive, ProjectStatusCancelled, true},
		{ProjectStatusActive, ProjectStatusCompleted, true},
		{ProjectStatusActive, ProjectStatusFunded, false},
		{ProjectStatusFunded, ProjectStatusActive, false},
		{ProjectStatusFunded, ProjectStatusCancelled, false},
		{ProjectStatusFunded, ProjectStatusCompleted, true},
		{ProjectStatusCancelled, ProjectStatusActive, false},
		{ProjectStatusCompleted, ProjectStatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestProjectIsFullyFunded(t *testing.T) {
	p := NewProject(1, "Solar", "Panels", decimal.NewFromInt(100))
	assert.Equal(t, ProjectStatusActive, p.Status)
	assert.False(t, p.IsFullyFunded())

	p.RaisedAmount = decimal.NewFromInt(100)
	assert.True(t, p.IsFullyFunded())

	p.RaisedAmount = decimal.NewFromFloat(100.5)
	assert.True(t, p.IsFullyFunded())
}

func TestAmountsMarshalAsStringsByDefault(t *testing.T) {
	// Importing domain must not change how decimals encode; app.Initialize opts into numbers.
	inv := NewInvestment(1, 2, decimal.NewFromFloat(60.5))
	body, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"amount":"60.5"`)
}

func TestValidAmount(t *testing.T) {
	valid := []string{"1", "0.0001", "99.9999", "1.50000", "9999999999999999.9999"}
	for _, raw := range valid {
		assert.True(t, ValidAmount(decimal.RequireFromString(raw)), raw)
	}

	invalid := []string{
		"0",
		"-5",
		"0.00005",                // rounds on storage
		"0.00001",                // rounds to zero on storage
		"100.12345",              // more than four fractional digits
		"10000000000000000",      // 10^16 overflows NUMERIC(20,4)
		"1e-20000000",            // huge negative exponent
		"1e20000000",             // huge positive exponent
	}
	for _, raw := range invalid {
		assert.False(t, ValidAmount(decimal.RequireFromString(raw)), raw)
	}
}

func TestUserHasIdentity(t *testing.T) {
	email := "a@example.com"
	empty := ""
	assert.True(t, NewUser("A", &email, nil, RoleInvestor).HasIdentity())
	assert.False(t, NewUser("A", nil, nil, RoleInvestor).HasIdentity())
	assert.False(t, NewUser("A", &empty, nil, RoleInvestor).HasIdentity())
}
