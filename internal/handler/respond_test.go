package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"vote-be/internal/domain"
	apperrors "vote-be/pkg/errors"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "203.0.113.5:54321",
			want:       "203.0.113.5",
		},
		{
			name:       "x-forwarded-for takes first hop",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "ipv6 with brackets",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "ipv6 loopback normalized",
			remoteAddr: "[::1]:8080",
			want:       "127.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   apperrors.ErrorType
	}{
		{"validation", domain.NewValidationError("bad answer"), http.StatusBadRequest, apperrors.ErrorTypeValidation},
		{"throttled", &domain.ThrottledError{TimeLeftMinutes: 42}, http.StatusTooManyRequests, apperrors.ErrorTypeRateLimit},
		{"company not found", domain.ErrCompanyNotFound, http.StatusNotFound, apperrors.ErrorTypeNotFound},
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound, apperrors.ErrorTypeNotFound},
		{"inactive session", domain.ErrSessionInactive, http.StatusBadRequest, apperrors.ErrorTypeValidation},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, apperrors.ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := mapServiceError(tt.err)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
			assert.Equal(t, tt.wantType, appErr.Type)
		})
	}
}

func TestMapServiceErrorHidesInternalCause(t *testing.T) {
	appErr := mapServiceError(errors.New("mongo: connection refused"))
	assert.Equal(t, "Something went wrong", appErr.Message)
	assert.NotContains(t, appErr.Message, "mongo")
}
