package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vote-be/internal/domain"
	"vote-be/internal/service"
	"vote-be/pkg/logger"
)

// VotingHandler serves the public voting surface.
type VotingHandler struct {
	votingService *service.VotingService
	logger        *logger.Logger
}

func NewVotingHandler(votingService *service.VotingService, logger *logger.Logger) *VotingHandler {
	return &VotingHandler{
		votingService: votingService,
		logger:        logger,
	}
}

// GetCompany handles GET /api/company/{companyId}
func (h *VotingHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	company, err := h.votingService.GetCompany(r.Context(), companyID)
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"id":   company.ID,
		"name": company.Name,
	})
}

// GetVotingSummary handles GET /api/voting/{companyId}
func (h *VotingHandler) GetVotingSummary(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")

	summary, err := h.votingService.GetVotingSummary(r.Context(), companyID)
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// SubmitVote handles POST /api/vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req domain.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	response, err := h.votingService.SubmitVote(r.Context(), &req, getClientIP(r))
	if err != nil {
		var terr *domain.ThrottledError
		if errors.As(err, &terr) {
			respondJSON(w, http.StatusTooManyRequests, map[string]interface{}{
				"success":        false,
				"message":        "You have already voted. Please try again later.",
				"timeLeft":       terr.TimeLeftMinutes,
				"canVoteAgainAt": terr.CanVoteAgainAt,
			})
			return
		}
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// GetResults handles GET /api/results/{votingSessionId} and
// GET /api/results/{votingSessionId}/company/{companyId}
func (h *VotingHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "votingSessionId")
	companyID := chi.URLParam(r, "companyId")

	results, err := h.votingService.GetResults(r.Context(), sessionID, companyID)
	if err != nil {
		respondAppError(w, mapServiceError(err), h.logger)
		return
	}

	respondJSON(w, http.StatusOK, results)
}
