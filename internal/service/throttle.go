package service

import (
	"context"
	"time"

	"vote-be/internal/domain"
	"vote-be/internal/repository"
)

// DefaultRevoteWindow is the cooling-off period after a vote during which
// the same device cannot vote again in the same session.
const DefaultRevoteWindow = 3 * time.Hour

// RevoteThrottle limits each device to one vote per session per window.
// The check is read-then-write with no cross-request locking: two
// submissions from one device in the same instant can both pass. That race
// is accepted for append-only, low-stakes vote records.
type RevoteThrottle struct {
	votes  repository.VoteRepository
	window time.Duration
}

func NewRevoteThrottle(votes repository.VoteRepository, window time.Duration) *RevoteThrottle {
	if window <= 0 {
		window = DefaultRevoteWindow
	}
	return &RevoteThrottle{votes: votes, window: window}
}

// Window returns the configured cooldown.
func (t *RevoteThrottle) Window() time.Duration {
	return t.window
}

// CheckEligible returns nil when the device may vote now, or a
// ThrottledError carrying the remaining cooldown rounded up to whole
// minutes.
func (t *RevoteThrottle) CheckEligible(ctx context.Context, deviceID, sessionID string, now time.Time) (*domain.ThrottledError, error) {
	latest, err := t.votes.LatestByDevice(ctx, sessionID, deviceID, now.Add(-t.window))
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	canVoteAgainAt := latest.Timestamp.Add(t.window)
	remaining := canVoteAgainAt.Sub(now)
	minutes := int((remaining + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	return &domain.ThrottledError{
		TimeLeftMinutes: minutes,
		CanVoteAgainAt:  canVoteAgainAt,
	}, nil
}
