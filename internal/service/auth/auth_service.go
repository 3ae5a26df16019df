package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"vote-be/pkg/logger"
)

// tokenBytes gives 128 bits of entropy per token.
const tokenBytes = 16

// Service gates administrative mutations behind a shared secret. Login
// mints an opaque bearer token held in the configured TokenStore; Verify is
// uniform for missing and never-issued tokens.
type Service struct {
	password string
	store    TokenStore
	logger   *logger.Logger
}

func NewService(password string, store TokenStore, logger *logger.Logger) *Service {
	return &Service{
		password: password,
		store:    store,
		logger:   logger,
	}
}

// Login checks the shared secret and issues a token. The comparison is
// constant time.
func (s *Service) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		s.logger.Warn("admin login rejected")
		return "", fmt.Errorf("invalid password")
	}

	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.store.Issue(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	s.logger.Info("admin login accepted")
	return token, nil
}

// Verify reports whether the token was previously issued and not revoked.
func (s *Service) Verify(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	ok, err := s.store.Verify(ctx, token)
	if err != nil {
		s.logger.WithError(err).Error("token verification failed")
		return false
	}
	return ok
}

// Revoke invalidates a previously issued token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.store.Revoke(ctx, token)
}
