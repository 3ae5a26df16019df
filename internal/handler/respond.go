package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"vote-be/internal/domain"
	apperrors "vote-be/pkg/errors"
	"vote-be/pkg/logger"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondAppError writes the standard error envelope. Internal causes are
// logged and reported, never sent to the client.
func respondAppError(w http.ResponseWriter, appErr *apperrors.AppError, log *logger.Logger) {
	if appErr.Type == apperrors.ErrorTypeInternal {
		log.WithError(appErr).Error("request failed")
		if appErr.Internal != nil {
			sentry.CaptureException(appErr.Internal)
		}
	} else {
		log.WithError(appErr).Warn("request rejected")
	}

	respondJSON(w, appErr.StatusCode, map[string]interface{}{
		"error": map[string]interface{}{
			"type":      appErr.Type,
			"message":   appErr.Message,
			"details":   appErr.Details,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// mapServiceError translates service errors into AppErrors for the
// standard envelope. ThrottledError is handled separately by the vote
// handler, which has its own response shape.
func mapServiceError(err error) *apperrors.AppError {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return apperrors.NewValidationError(verr.Reason, nil)
	}

	var terr *domain.ThrottledError
	if errors.As(err, &terr) {
		return apperrors.NewRateLimitError(terr.Error(), map[string]interface{}{
			"time_left": terr.TimeLeftMinutes,
		})
	}

	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return apperrors.NewNotFoundError("Company not found")
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperrors.NewNotFoundError("Voting session not found")
	case errors.Is(err, domain.ErrSessionInactive):
		return apperrors.NewValidationError("No active voting session", nil)
	default:
		return apperrors.NewInternalError("Something went wrong", err)
	}
}

// getClientIP resolves the submitting client's address behind proxies.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if strings.HasPrefix(ip, "[") {
		if idx := strings.LastIndex(ip, "]:"); idx != -1 {
			ip = ip[1:idx]
		}
	} else if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	if ip == "::1" {
		return "127.0.0.1"
	}
	return ip
}
