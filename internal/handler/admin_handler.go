package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vote-be/internal/domain"
	"vote-be/internal/service"
	"vote-be/internal/service/auth"
	apperrors "vote-be/pkg/errors"
	"vote-be/pkg/logger"
)

// AdminHandler serves the authenticated admin surface.
type AdminHandler struct {
	adminService *service.AdminService
	authService  *auth.Service
	logger       *logger.Logger
}

func NewAdminHandler(adminService *service.AdminService, authService *auth.Service, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		authService:  authService,
		logger:       logger,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Password)
	if err != nil {
		respondAppError(w, apperrors.NewAuthenticationError("Invalid password"), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateVoting handles POST /api/admin/create-voting
func (h *AdminHandler) CreateVoting(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVotingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}

	session, err := h.adminService.CreateVotingSession(r.Context(), &req)
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// ListVotings handles GET /api/admin/votings
func (h *AdminHandler) ListVotings(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.adminService.ListVotingSessions(r.Context())
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

// ToggleVoting handles PATCH /api/admin/voting/{id}/toggle
func (h *AdminHandler) ToggleVoting(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	session, err := h.adminService.ToggleVotingSession(r.Context(), sessionID)
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// ResetVoting handles POST /api/admin/reset-voting/{id}
func (h *AdminHandler) ResetVoting(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	deleted, err := h.adminService.ResetVotingSession(r.Context(), sessionID)
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"votesDeleted": deleted,
	})
}

// CreateCompany handles POST /api/admin/companies
func (h *AdminHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}

	company, err := h.adminService.CreateCompany(r.Context(), &req)
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, company)
}

// ListCompanies handles GET /api/admin/companies
func (h *AdminHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.adminService.ListCompanies(r.Context())
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, companies)
}

// DeleteCompany handles DELETE /api/admin/companies/{id}
func (h *AdminHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")

	if err := h.adminService.DeleteCompany(r.Context(), companyID); err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
