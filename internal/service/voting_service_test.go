package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vote-be/internal/domain"
)

func newTestVotingService(companies *fakeCompanyRepo, sessions *fakeSessionRepo, votes *fakeVoteRepo) *VotingService {
	throttle := NewRevoteThrottle(votes, DefaultRevoteWindow)
	return NewVotingService(companies, sessions, votes, throttle, nil, zap.NewNop())
}

func activeSession() domain.VotingSession {
	return domain.VotingSession{
		ID:        "session-1",
		Title:     "Year-end party",
		Sections:  selectSections(),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func validVoteRequest() *domain.VoteRequest {
	return &domain.VoteRequest{
		CompanyID:       "company-1",
		VotingSessionID: "session-1",
		DeviceID:        "device-1",
		Votes: map[string]domain.Answer{
			"host":  domain.StringAnswer("A"),
			"songs": domain.ListAnswer("X"),
		},
	}
}

func TestSubmitVoteHappyPath(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "company-1", Name: "Acme"})
	sessions := newFakeSessionRepo(activeSession())
	votes := &fakeVoteRepo{}
	svc := newTestVotingService(companies, sessions, votes)

	resp, err := svc.SubmitVote(context.Background(), validVoteRequest(), "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.CanVoteAgainAt.IsZero())

	require.Len(t, votes.votes, 1)
	assert.Equal(t, "session-1", votes.votes[0].VotingSessionID)
	assert.Equal(t, "company-1", votes.votes[0].CompanyID)
	assert.Equal(t, "device-1", votes.votes[0].DeviceID)
	assert.Equal(t, "203.0.113.9", votes.votes[0].IPAddress)
}

func TestSubmitVoteUnknownCompany(t *testing.T) {
	svc := newTestVotingService(newFakeCompanyRepo(), newFakeSessionRepo(activeSession()), &fakeVoteRepo{})

	_, err := svc.SubmitVote(context.Background(), validVoteRequest(), "")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestSubmitVoteNoActiveSession(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "company-1", Name: "Acme"})
	svc := newTestVotingService(companies, newFakeSessionRepo(), &fakeVoteRepo{})

	_, err := svc.SubmitVote(context.Background(), validVoteRequest(), "")
	assert.ErrorIs(t, err, domain.ErrSessionInactive)
}

func TestSubmitVoteStaleSessionID(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "company-1", Name: "Acme"})
	svc := newTestVotingService(companies, newFakeSessionRepo(activeSession()), &fakeVoteRepo{})

	req := validVoteRequest()
	req.VotingSessionID = "session-0"

	_, err := svc.SubmitVote(context.Background(), req, "")
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSubmitVoteInvalidAnswers(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "company-1", Name: "Acme"})
	svc := newTestVotingService(companies, newFakeSessionRepo(activeSession()), &fakeVoteRepo{})

	req := validVoteRequest()
	req.Votes = map[string]domain.Answer{"host": domain.StringAnswer("nope")}

	_, err := svc.SubmitVote(context.Background(), req, "")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Reason, "host")
}

func TestSubmitVoteThrottlesRepeatDevice(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "company-1", Name: "Acme"})
	sessions := newFakeSessionRepo(activeSession())
	votes := &fakeVoteRepo{}
	svc := newTestVotingService(companies, sessions, votes)
	ctx := context.Background()

	_, err := svc.SubmitVote(ctx, validVoteRequest(), "")
	require.NoError(t, err)

	_, err = svc.SubmitVote(ctx, validVoteRequest(), "")
	var terr *domain.ThrottledError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 180, terr.TimeLeftMinutes)

	// Throttling limits rate, not uniqueness: only the first vote landed.
	assert.Len(t, votes.votes, 1)
}

func TestGetVotingSummary(t *testing.T) {
	companies := newFakeCompanyRepo(
		domain.Company{ID: "company-1", Name: "Acme"},
		domain.Company{ID: "company-2", Name: "Globex"},
	)
	sessions := newFakeSessionRepo(activeSession())
	votes := &fakeVoteRepo{}
	svc := newTestVotingService(companies, sessions, votes)
	ctx := context.Background()

	req := validVoteRequest()
	_, err := svc.SubmitVote(ctx, req, "")
	require.NoError(t, err)

	other := validVoteRequest()
	other.CompanyID = "company-2"
	other.DeviceID = "device-2"
	_, err = svc.SubmitVote(ctx, other, "")
	require.NoError(t, err)

	summary, err := svc.GetVotingSummary(ctx, "company-1")
	require.NoError(t, err)
	assert.True(t, summary.Active)
	assert.Equal(t, "session-1", summary.VotingSessionID)
	assert.Equal(t, 2, summary.TotalVotes)
	assert.Equal(t, 1, summary.CompanyVotes)
}

func TestGetVotingSummaryInactive(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "company-1", Name: "Acme"})
	svc := newTestVotingService(companies, newFakeSessionRepo(), &fakeVoteRepo{})

	summary, err := svc.GetVotingSummary(context.Background(), "company-1")
	require.NoError(t, err)
	assert.False(t, summary.Active)
	assert.Empty(t, summary.VotingSessionID)
}

func TestGetResultsScopedToCompany(t *testing.T) {
	companies := newFakeCompanyRepo(
		domain.Company{ID: "company-1", Name: "Acme"},
		domain.Company{ID: "company-2", Name: "Globex"},
	)
	sessions := newFakeSessionRepo(activeSession())
	votes := &fakeVoteRepo{}
	svc := newTestVotingService(companies, sessions, votes)
	ctx := context.Background()

	first := validVoteRequest()
	_, err := svc.SubmitVote(ctx, first, "")
	require.NoError(t, err)

	second := validVoteRequest()
	second.CompanyID = "company-2"
	second.DeviceID = "device-2"
	second.Votes["host"] = domain.StringAnswer("B")
	_, err = svc.SubmitVote(ctx, second, "")
	require.NoError(t, err)

	all, err := svc.GetResults(ctx, "session-1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalVotes)

	scoped, err := svc.GetResults(ctx, "session-1", "company-2")
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.TotalVotes)
	assert.Equal(t, "company-2", scoped.CompanyID)

	var hostSection *domain.SectionResult
	for i := range scoped.Sections {
		if scoped.Sections[i].SectionID == "host" {
			hostSection = &scoped.Sections[i]
		}
	}
	require.NotNil(t, hostSection)
	assert.Equal(t, "B", hostSection.Options[0].Name)
	assert.Equal(t, 1, hostSection.Options[0].Votes)
}

func TestGetResultsUnknownSession(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "company-1", Name: "Acme"})
	svc := newTestVotingService(companies, newFakeSessionRepo(), &fakeVoteRepo{})

	_, err := svc.GetResults(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
