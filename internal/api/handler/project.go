// internal/api/handler/project.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"crowdfund-api/internal/auth"
	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/service"
)

// ProjectHandler handles HTTP requests for project management.
type ProjectHandler struct {
	service service.ProjectService
	logger  *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateProjectRequest represents the request body for publishing a project.
type CreateProjectRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

// UpdateProjectRequest represents the request body for editing a project.
// Omitted fields are left unchanged.
type UpdateProjectRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	Status       *string          `json:"status"`
}

// CreateProject publishes a new project for the authenticated founder.
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	founderID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithMessage(h.logger, w, http.StatusUnauthorized, "Authentication token required")
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !domain.ValidAmount(req.TargetAmount) {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid target amount")
		return
	}

	project, err := h.service.CreateProject(r.Context(), founderID, req.Name, req.Description, req.TargetAmount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message": "Project created successfully",
		"project": project,
	})
}

// ListProjects returns every project, newest first.
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, projects)
}

// GetProject returns a single project with its founder's name.
// GET /api/projects/{projectID}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.service.GetProject(r.Context(), projectID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, project)
}

// ListFounderProjects returns the projects owned by one founder.
// GET /api/projects/founder/{founderID}
func (h *ProjectHandler) ListFounderProjects(w http.ResponseWriter, r *http.Request) {
	founderID, ok := pathID(r, "founderID")
	if !ok {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid founder ID")
		return
	}

	projects, err := h.service.ListProjectsByFounder(r.Context(), founderID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, projects)
}

// UpdateProject edits a project owned by the caller.
// PUT /api/projects/{projectID}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithMessage(h.logger, w, http.StatusUnauthorized, "Authentication token required")
		return
	}
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TargetAmount != nil && !domain.ValidAmount(*req.TargetAmount) {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid target amount")
		return
	}

	update := service.ProjectUpdate{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	}
	if req.Status != nil {
		status, err := domain.ParseProjectStatus(*req.Status)
		if err != nil {
			respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid status")
			return
		}
		update.Status = &status
	}

	project, err := h.service.UpdateProject(r.Context(), actorID, projectID, update)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Project updated successfully",
		"project": project,
	})
}

// DeleteProject removes a project owned by the caller.
// DELETE /api/projects/{projectID}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithMessage(h.logger, w, http.StatusUnauthorized, "Authentication token required")
		return
	}
	projectID, ok := pathID(r, "projectID")
	if !ok {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := h.service.DeleteProject(r.Context(), actorID, projectID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
