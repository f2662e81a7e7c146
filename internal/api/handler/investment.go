// internal/api/handler/investment.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"crowdfund-api/internal/api/types"
	"crowdfund-api/internal/auth"
	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/service"
)

// InvestmentHandler handles HTTP requests against the investment ledger.
type InvestmentHandler struct {
	service service.InvestmentService
	logger  *slog.Logger
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(svc service.InvestmentService, logger *slog.Logger) *InvestmentHandler {
	return &InvestmentHandler{
		service: svc,
		logger:  logger,
	}
}

// InvestRequest represents the request body for an investment.
type InvestRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// InvestResponse is returned after a committed investment.
type InvestResponse struct {
	Message    string             `json:"message"`
	Project    *domain.Project    `json:"project"`
	Investment *domain.Investment `json:"investment"`
}

// Invest records a contribution from the authenticated investor.
// POST /api/projects/{projectID}/invest
func (h *InvestmentHandler) Invest(w http.ResponseWriter, r *http.Request) {
	investorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithMessage(h.logger, w, http.StatusUnauthorized, "Authentication token required")
		return
	}

	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req InvestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid investment amount")
		return
	}

	// Basic validation
	if !domain.ValidAmount(*req.Amount) {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid investment amount")
		return
	}

	project, investment, err := h.service.RecordInvestment(r.Context(), projectID, investorID, *req.Amount)
	if err != nil {
		h.logger.Debug("Investment rejected", "project_id", projectID, "investor_id", investorID, "error", err)
		respondWithError(h.logger, w, err)
		return
	}

	h.logger.Info("Investment recorded",
		"project_id", project.ID,
		"investment_id", investment.ID,
		"amount", investment.Amount.String(),
		"status", project.Status,
	)
	respondWithJSON(h.logger, w, http.StatusOK, InvestResponse{
		Message:    "Investment successful",
		Project:    project,
		Investment: investment,
	})
}

// ListProjectInvestments returns one page of a project's ledger.
// GET /api/projects/{projectID}/investments
func (h *InvestmentHandler) ListProjectInvestments(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid project ID")
		return
	}
	limit, offset := pagination(r)

	investments, total, err := h.service.ListProjectInvestments(r.Context(), projectID, limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.Investment]{
		Data:       investments,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}

// ListMyInvestments returns one page of the caller's own investments.
// GET /api/investments
func (h *InvestmentHandler) ListMyInvestments(w http.ResponseWriter, r *http.Request) {
	investorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithMessage(h.logger, w, http.StatusUnauthorized, "Authentication token required")
		return
	}
	limit, offset := pagination(r)

	investments, total, err := h.service.ListInvestorInvestments(r.Context(), investorID, limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.Investment]{
		Data:       investments,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}
