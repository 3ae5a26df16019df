package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vote-be/internal/domain"
	"vote-be/internal/repository"
	"vote-be/pkg/redis"
)

// VotingService handles the public surface: company lookup, active session
// summary, vote submission and result tallies.
type VotingService struct {
	companies repository.CompanyRepository
	sessions  repository.SessionRepository
	votes     repository.VoteRepository
	throttle  *RevoteThrottle
	redis     *redis.Client // nil when caching is not configured
	logger    *zap.Logger
}

func NewVotingService(
	companies repository.CompanyRepository,
	sessions repository.SessionRepository,
	votes repository.VoteRepository,
	throttle *RevoteThrottle,
	redisClient *redis.Client,
	logger *zap.Logger,
) *VotingService {
	return &VotingService{
		companies: companies,
		sessions:  sessions,
		votes:     votes,
		throttle:  throttle,
		redis:     redisClient,
		logger:    logger,
	}
}

// GetCompany looks up one company.
func (s *VotingService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return company, nil
}

// GetVotingSummary returns the active session with global and per-company
// vote counts, or an inactive summary when no session is active.
func (s *VotingService) GetVotingSummary(ctx context.Context, companyID string) (*domain.VotingSummary, error) {
	if _, err := s.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}

	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyVotingSummary(companyID)
		if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
			var summary domain.VotingSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if session == nil {
		return &domain.VotingSummary{Active: false}, nil
	}

	totalVotes, err := s.votes.CountBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count session votes: %w", err)
	}
	companyVotes, err := s.votes.CountBySessionAndCompany(ctx, session.ID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count company votes: %w", err)
	}

	summary := &domain.VotingSummary{
		Active:          true,
		VotingSessionID: session.ID,
		Title:           session.Title,
		Sections:        session.Sections,
		TotalVotes:      totalVotes,
		CompanyVotes:    companyVotes,
	}

	s.cacheJSON(ctx, s.summaryCacheKey(companyID), summary, redis.TTLSummary)

	return summary, nil
}

// SubmitVote validates a submission against the active session's sections,
// applies the device throttle and records the vote.
func (s *VotingService) SubmitVote(ctx context.Context, req *domain.VoteRequest, ipAddress string) (*domain.VoteResponse, error) {
	if req.DeviceID == "" {
		return nil, domain.NewValidationError("deviceId is required")
	}

	if _, err := s.GetCompany(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionInactive
	}
	if req.VotingSessionID != "" && req.VotingSessionID != session.ID {
		return nil, domain.NewValidationError("voting session %q is not active", req.VotingSessionID)
	}

	if verr := ValidateAnswers(session.Sections, req.Votes); verr != nil {
		return nil, verr
	}

	now := time.Now().UTC()
	throttled, err := s.throttle.CheckEligible(ctx, req.DeviceID, session.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check revote eligibility: %w", err)
	}
	if throttled != nil {
		return nil, throttled
	}

	vote := &domain.Vote{
		VotingSessionID: session.ID,
		CompanyID:       req.CompanyID,
		Answers:         req.Votes,
		Timestamp:       now,
		IPAddress:       ipAddress,
		DeviceID:        req.DeviceID,
	}
	if err := s.votes.Insert(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	s.invalidateSessionCaches(ctx, session.ID, req.CompanyID)

	s.logger.Info("vote recorded",
		zap.String("voting_session_id", session.ID),
		zap.String("company_id", req.CompanyID))

	return &domain.VoteResponse{
		Success:        true,
		Message:        "Vote recorded",
		CanVoteAgainAt: now.Add(s.throttle.Window()),
	}, nil
}

// GetResults tallies a session, optionally scoped to one company.
func (s *VotingService) GetResults(ctx context.Context, sessionID, companyID string) (*domain.TallyResults, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	if companyID != "" {
		if _, err := s.GetCompany(ctx, companyID); err != nil {
			return nil, err
		}
	}

	cacheKey := s.resultsCacheKey(sessionID, companyID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			var results domain.TallyResults
			if err := json.Unmarshal([]byte(cached), &results); err == nil {
				return &results, nil
			}
		}
	}

	var votes []domain.Vote
	if companyID != "" {
		votes, err = s.votes.ListBySessionAndCompany(ctx, sessionID, companyID)
	} else {
		votes, err = s.votes.ListBySession(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	results := &domain.TallyResults{
		VotingSessionID: session.ID,
		Title:           session.Title,
		CompanyID:       companyID,
		Sections:        TallySections(session.Sections, votes),
		TotalVotes:      len(votes),
		LastUpdate:      time.Now().UTC(),
	}

	s.cacheJSON(ctx, cacheKey, results, redis.TTLResults)

	return results, nil
}

func (s *VotingService) summaryCacheKey(companyID string) string {
	if s.redis == nil {
		return ""
	}
	return s.redis.KeyBuilder.KeyVotingSummary(companyID)
}

func (s *VotingService) resultsCacheKey(sessionID, companyID string) string {
	if s.redis == nil {
		return ""
	}
	if companyID != "" {
		return s.redis.KeyBuilder.KeyCompanyResults(sessionID, companyID)
	}
	return s.redis.KeyBuilder.KeySessionResults(sessionID)
}

func (s *VotingService) cacheJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.redis == nil || key == "" {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, string(data), ttl); err != nil {
		s.logger.Warn("failed to cache value", zap.String("key", key), zap.Error(err))
	}
}

func (s *VotingService) invalidateSessionCaches(ctx context.Context, sessionID, companyID string) {
	if s.redis == nil {
		return
	}
	keys := []string{
		s.redis.KeyBuilder.KeySessionResults(sessionID),
		s.redis.KeyBuilder.KeyVotingSummary(companyID),
	}
	if companyID != "" {
		keys = append(keys, s.redis.KeyBuilder.KeyCompanyResults(sessionID, companyID))
	}
	if err := s.redis.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate caches",
			zap.String("voting_session_id", sessionID),
			zap.Error(err))
	}
}
