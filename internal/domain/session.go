package domain

import "time"

// SectionType is the kind of question a section asks.
type SectionType string

const (
	SectionSingleSelect SectionType = "single-select"
	SectionMultiSelect  SectionType = "multi-select"
	SectionTextInput    SectionType = "text-input"
)

// Option is one selectable choice within a select-type section.
type Option struct {
	Name     string `bson:"name" json:"name"`
	ImageURL string `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// Section is one question within a voting session. Options is empty for
// text-input sections. MinSelections/MaxSelections apply to multi-select
// only; zero means unbounded.
type Section struct {
	ID            string      `bson:"id" json:"id"`
	Label         string      `bson:"label" json:"label"`
	Type          SectionType `bson:"type" json:"type"`
	Required      bool        `bson:"required" json:"required"`
	Options       []Option    `bson:"options,omitempty" json:"options,omitempty"`
	MinSelections int         `bson:"min_selections,omitempty" json:"minSelections,omitempty"`
	MaxSelections int         `bson:"max_selections,omitempty" json:"maxSelections,omitempty"`
}

// VotingSession is a poll definition. Immutable once created except for the
// active flag, which follows the active-session marker.
type VotingSession struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Sections  []Section `bson:"sections" json:"sections"`
	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// CreateVotingRequest is the admin request to create a voting session.
type CreateVotingRequest struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// VotingSummary is the public view of the active session for one company.
type VotingSummary struct {
	Active          bool      `json:"active"`
	VotingSessionID string    `json:"votingSessionId,omitempty"`
	Title           string    `json:"title,omitempty"`
	Sections        []Section `json:"sections,omitempty"`
	TotalVotes      int       `json:"totalVotes"`
	CompanyVotes    int       `json:"companyVotes"`
}
