package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote is one accepted submission. Append-only: never mutated, only
// bulk-reset per session or cascade-deleted with its company.
type Vote struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	VotingSessionID string             `bson:"voting_session_id" json:"votingSessionId"`
	CompanyID       string             `bson:"company_id" json:"companyId"`
	Answers         map[string]Answer  `bson:"answers" json:"votes"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
	IPAddress       string             `bson:"ip_address" json:"-"`
	DeviceID        string             `bson:"device_id" json:"-"`
}

// VoteRequest is the public vote submission payload.
type VoteRequest struct {
	CompanyID       string            `json:"companyId"`
	VotingSessionID string            `json:"votingSessionId"`
	Votes           map[string]Answer `json:"votes"`
	DeviceID        string            `json:"deviceId"`
}

// VoteResponse is returned after an accepted submission.
type VoteResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	CanVoteAgainAt time.Time `json:"canVoteAgainAt"`
}
