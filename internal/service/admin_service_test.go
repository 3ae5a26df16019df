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

func newTestAdminService(companies *fakeCompanyRepo, sessions *fakeSessionRepo, votes *fakeVoteRepo) *AdminService {
	return NewAdminService(companies, sessions, votes, nil, zap.NewNop())
}

func TestCreateVotingSessionActivates(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newTestAdminService(newFakeCompanyRepo(), sessions, &fakeVoteRepo{})
	ctx := context.Background()

	created, err := svc.CreateVotingSession(ctx, &domain.CreateVotingRequest{
		Title:    "Year-end party",
		Sections: selectSections(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	active, err := sessions.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, created.ID, active.ID)
}

func TestCreateVotingSessionReplacesActive(t *testing.T) {
	sessions := newFakeSessionRepo(activeSession())
	svc := newTestAdminService(newFakeCompanyRepo(), sessions, &fakeVoteRepo{})
	ctx := context.Background()

	created, err := svc.CreateVotingSession(ctx, &domain.CreateVotingRequest{
		Title:    "Spring offsite",
		Sections: selectSections(),
	})
	require.NoError(t, err)

	active, err := sessions.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, created.ID, active.ID)
	assert.NotEqual(t, "session-1", active.ID)
}

func TestCreateVotingSessionRejectsBadDefinition(t *testing.T) {
	svc := newTestAdminService(newFakeCompanyRepo(), newFakeSessionRepo(), &fakeVoteRepo{})

	_, err := svc.CreateVotingSession(context.Background(), &domain.CreateVotingRequest{
		Title:    "",
		Sections: selectSections(),
	})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestToggleVotingSession(t *testing.T) {
	sessions := newFakeSessionRepo(activeSession())
	svc := newTestAdminService(newFakeCompanyRepo(), sessions, &fakeVoteRepo{})
	ctx := context.Background()

	toggled, err := svc.ToggleVotingSession(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := sessions.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	toggled, err = svc.ToggleVotingSession(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestToggleVotingSessionUnknown(t *testing.T) {
	svc := newTestAdminService(newFakeCompanyRepo(), newFakeSessionRepo(), &fakeVoteRepo{})

	_, err := svc.ToggleVotingSession(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResetVotingSession(t *testing.T) {
	sessions := newFakeSessionRepo(activeSession())
	votes := &fakeVoteRepo{votes: []domain.Vote{
		{VotingSessionID: "session-1", CompanyID: "c1", DeviceID: "d1", Timestamp: time.Now()},
		{VotingSessionID: "session-1", CompanyID: "c2", DeviceID: "d2", Timestamp: time.Now()},
		{VotingSessionID: "session-2", CompanyID: "c1", DeviceID: "d1", Timestamp: time.Now()},
	}}
	svc := newTestAdminService(newFakeCompanyRepo(), sessions, votes)

	deleted, err := svc.ResetVotingSession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Len(t, votes.votes, 1)
}

func TestCreateCompany(t *testing.T) {
	companies := newFakeCompanyRepo()
	svc := newTestAdminService(companies, newFakeSessionRepo(), &fakeVoteRepo{})

	company, err := svc.CreateCompany(context.Background(), &domain.CreateCompanyRequest{Name: "  Acme  "})
	require.NoError(t, err)
	assert.NotEmpty(t, company.ID)
	assert.Equal(t, "Acme", company.Name)

	_, err = svc.CreateCompany(context.Background(), &domain.CreateCompanyRequest{Name: "   "})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestDeleteCompanyCascadesVotes(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "c1", Name: "Acme"})
	votes := &fakeVoteRepo{votes: []domain.Vote{
		{VotingSessionID: "session-1", CompanyID: "c1", DeviceID: "d1", Timestamp: time.Now()},
		{VotingSessionID: "session-1", CompanyID: "c2", DeviceID: "d2", Timestamp: time.Now()},
	}}
	svc := newTestAdminService(companies, newFakeSessionRepo(), votes)

	require.NoError(t, svc.DeleteCompany(context.Background(), "c1"))
	assert.Len(t, votes.votes, 1)

	err := svc.DeleteCompany(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestStats(t *testing.T) {
	companies := newFakeCompanyRepo(domain.Company{ID: "c1", Name: "Acme"})
	sessions := newFakeSessionRepo(activeSession())
	votes := &fakeVoteRepo{votes: []domain.Vote{
		{VotingSessionID: "session-1", CompanyID: "c1", DeviceID: "d1", Timestamp: time.Now()},
		{VotingSessionID: "session-1", CompanyID: "c1", DeviceID: "d2", Timestamp: time.Now()},
	}}
	svc := newTestAdminService(companies, sessions, votes)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Companies)
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 2, stats.Votes)
	require.Len(t, stats.PerSession, 1)
	assert.Equal(t, 2, stats.PerSession[0].Votes)
}
