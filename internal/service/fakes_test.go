package service

import (
	"context"
	"time"

	"vote-be/internal/domain"
)

// In-memory repository fakes for service tests.

type fakeCompanyRepo struct {
	companies map[string]domain.Company
}

func newFakeCompanyRepo(companies ...domain.Company) *fakeCompanyRepo {
	m := make(map[string]domain.Company, len(companies))
	for _, c := range companies {
		m[c.ID] = c
	}
	return &fakeCompanyRepo{companies: m}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	if c, ok := r.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCompanyRepo) List(_ context.Context) ([]domain.Company, error) {
	out := []domain.Company{}
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.companies[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) Count(_ context.Context) (int, error) {
	return len(r.companies), nil
}

type fakeSessionRepo struct {
	sessions map[string]domain.VotingSession
	activeID string
}

func newFakeSessionRepo(sessions ...domain.VotingSession) *fakeSessionRepo {
	m := make(map[string]domain.VotingSession, len(sessions))
	active := ""
	for _, s := range sessions {
		m[s.ID] = s
		if s.IsActive {
			active = s.ID
		}
	}
	return &fakeSessionRepo{sessions: m, activeID: active}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.VotingSession) error {
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.VotingSession, error) {
	if s, ok := r.sessions[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) List(_ context.Context) ([]domain.VotingSession, error) {
	out := []domain.VotingSession{}
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) GetActive(_ context.Context) (*domain.VotingSession, error) {
	if r.activeID == "" {
		return nil, nil
	}
	if s, ok := r.sessions[r.activeID]; ok {
		s.IsActive = true
		return &s, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) Activate(_ context.Context, id string) error {
	r.activeID = id
	return nil
}

func (r *fakeSessionRepo) Deactivate(_ context.Context, id string) error {
	if r.activeID == id {
		r.activeID = ""
	}
	return nil
}

func (r *fakeSessionRepo) Count(_ context.Context) (int, error) {
	return len(r.sessions), nil
}

type fakeVoteRepo struct {
	votes []domain.Vote
}

func (r *fakeVoteRepo) Insert(_ context.Context, vote *domain.Vote) error {
	r.votes = append(r.votes, *vote)
	return nil
}

func (r *fakeVoteRepo) LatestByDevice(_ context.Context, sessionID, deviceID string, since time.Time) (*domain.Vote, error) {
	var latest *domain.Vote
	for i := range r.votes {
		v := r.votes[i]
		if v.VotingSessionID != sessionID || v.DeviceID != deviceID {
			continue
		}
		if v.Timestamp.Before(since) {
			continue
		}
		if latest == nil || v.Timestamp.After(latest.Timestamp) {
			latest = &v
		}
	}
	return latest, nil
}

func (r *fakeVoteRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Vote, error) {
	out := []domain.Vote{}
	for _, v := range r.votes {
		if v.VotingSessionID == sessionID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) ListBySessionAndCompany(_ context.Context, sessionID, companyID string) ([]domain.Vote, error) {
	out := []domain.Vote{}
	for _, v := range r.votes {
		if v.VotingSessionID == sessionID && v.CompanyID == companyID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	votes, _ := r.ListBySession(ctx, sessionID)
	return len(votes), nil
}

func (r *fakeVoteRepo) CountBySessionAndCompany(ctx context.Context, sessionID, companyID string) (int, error) {
	votes, _ := r.ListBySessionAndCompany(ctx, sessionID, companyID)
	return len(votes), nil
}

func (r *fakeVoteRepo) Count(_ context.Context) (int, error) {
	return len(r.votes), nil
}

func (r *fakeVoteRepo) DeleteBySession(_ context.Context, sessionID string) (int, error) {
	kept := r.votes[:0]
	deleted := 0
	for _, v := range r.votes {
		if v.VotingSessionID == sessionID {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept
	return deleted, nil
}

func (r *fakeVoteRepo) DeleteByCompany(_ context.Context, companyID string) (int, error) {
	kept := r.votes[:0]
	deleted := 0
	for _, v := range r.votes {
		if v.CompanyID == companyID {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	r.votes = kept
	return deleted, nil
}
