package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vote-be/internal/domain"
	"vote-be/internal/repository"
	"vote-be/pkg/redis"
)

// AdminService handles session and company lifecycle plus store-wide stats.
type AdminService struct {
	companies repository.CompanyRepository
	sessions  repository.SessionRepository
	votes     repository.VoteRepository
	redis     *redis.Client // nil when caching is not configured
	logger    *zap.Logger
}

func NewAdminService(
	companies repository.CompanyRepository,
	sessions repository.SessionRepository,
	votes repository.VoteRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		companies: companies,
		sessions:  sessions,
		votes:     votes,
		redis:     redisClient,
		logger:    logger,
	}
}

// CreateVotingSession validates the definition, stores it and activates it,
// replacing whichever session was active before.
func (s *AdminService) CreateVotingSession(ctx context.Context, req *domain.CreateVotingRequest) (*domain.VotingSession, error) {
	if verr := ValidateSessionDefinition(req.Title, req.Sections); verr != nil {
		return nil, verr
	}

	session := &domain.VotingSession{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Sections:  req.Sections,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.sessions.Activate(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}

	s.logger.Info("voting session created",
		zap.String("voting_session_id", session.ID),
		zap.String("title", session.Title),
		zap.Int("sections", len(session.Sections)))

	return session, nil
}

// ListVotingSessions lists all sessions, newest first.
func (s *AdminService) ListVotingSessions(ctx context.Context) ([]domain.VotingSession, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// ToggleVotingSession flips a session's active state. Activating routes
// through the marker, so any previously active session is replaced in the
// same update.
func (s *AdminService) ToggleVotingSession(ctx context.Context, sessionID string) (*domain.VotingSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	active, err := s.sessions.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	if active != nil && active.ID == sessionID {
		if err := s.sessions.Deactivate(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to deactivate session: %w", err)
		}
		session.IsActive = false
	} else {
		if err := s.sessions.Activate(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to activate session: %w", err)
		}
		session.IsActive = true
	}

	s.logger.Info("voting session toggled",
		zap.String("voting_session_id", sessionID),
		zap.Bool("is_active", session.IsActive))

	return session, nil
}

// ResetVotingSession bulk-deletes a session's votes. Returns the number of
// deleted votes.
func (s *AdminService) ResetVotingSession(ctx context.Context, sessionID string) (int, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return 0, domain.ErrSessionNotFound
	}

	deleted, err := s.votes.DeleteBySession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset session votes: %w", err)
	}

	s.invalidateResultsCache(ctx, sessionID)

	s.logger.Info("voting session reset",
		zap.String("voting_session_id", sessionID),
		zap.Int("votes_deleted", deleted))

	return deleted, nil
}

// CreateCompany registers a company.
func (s *AdminService) CreateCompany(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.NewValidationError("company name is required")
	}

	company := &domain.Company{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID),
		zap.String("name", company.Name))

	return company, nil
}

// ListCompanies lists all companies.
func (s *AdminService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// DeleteCompany removes a company and cascades to its votes.
func (s *AdminService) DeleteCompany(ctx context.Context, companyID string) error {
	if err := s.companies.Delete(ctx, companyID); err != nil {
		return err
	}

	deleted, err := s.votes.DeleteByCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete company votes: %w", err)
	}

	s.logger.Info("company deleted",
		zap.String("company_id", companyID),
		zap.Int("votes_deleted", deleted))

	return nil
}

// Stats returns store-wide totals plus per-session vote counts.
func (s *AdminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	companies, err := s.companies.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}
	sessionCount, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}
	votes, err := s.votes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	perSession := make([]domain.SessionVoteCount, 0, len(sessions))
	for _, session := range sessions {
		count, err := s.votes.CountBySession(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count votes for session %s: %w", session.ID, err)
		}
		perSession = append(perSession, domain.SessionVoteCount{
			VotingSessionID: session.ID,
			Title:           session.Title,
			IsActive:        session.IsActive,
			Votes:           count,
		})
	}

	return &domain.AdminStats{
		Companies:  companies,
		Sessions:   sessionCount,
		Votes:      votes,
		PerSession: perSession,
	}, nil
}

func (s *AdminService) invalidateResultsCache(ctx context.Context, sessionID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, s.redis.KeyBuilder.KeySessionResults(sessionID)); err != nil {
		s.logger.Warn("failed to invalidate results cache",
			zap.String("voting_session_id", sessionID),
			zap.Error(err))
	}
}
