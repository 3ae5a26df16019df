package repository

import (
	"context"
	"time"

	"vote-be/internal/domain"
)

// CompanyRepository persists companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SessionRepository persists voting sessions and the active-session marker.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.VotingSession) error
	GetByID(ctx context.Context, id string) (*domain.VotingSession, error)
	List(ctx context.Context) ([]domain.VotingSession, error)
	GetActive(ctx context.Context) (*domain.VotingSession, error)
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// VoteRepository persists votes.
type VoteRepository interface {
	Insert(ctx context.Context, vote *domain.Vote) error
	LatestByDevice(ctx context.Context, sessionID, deviceID string, since time.Time) (*domain.Vote, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Vote, error)
	ListBySessionAndCompany(ctx context.Context, sessionID, companyID string) ([]domain.Vote, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	CountBySessionAndCompany(ctx context.Context, sessionID, companyID string) (int, error)
	Count(ctx context.Context) (int, error)
	DeleteBySession(ctx context.Context, sessionID string) (int, error)
	DeleteByCompany(ctx context.Context, companyID string) (int, error)
}
