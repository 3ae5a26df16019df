package domain

import "time"

// OptionResult is one option's tallied count.
type OptionResult struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Votes    int    `json:"votes"`
}

// TextResponse is one free-text answer with the vote's timestamp.
type TextResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// SectionResult holds the tally for one section: option counts for select
// types, collected responses for text-input.
type SectionResult struct {
	SectionID string         `json:"sectionId"`
	Label     string         `json:"label"`
	Type      SectionType    `json:"type"`
	Options   []OptionResult `json:"options,omitempty"`
	Responses []TextResponse `json:"responses,omitempty"`
}

// TallyResults is the aggregated result for a session, optionally scoped to
// one company.
type TallyResults struct {
	VotingSessionID string          `json:"votingSessionId"`
	Title           string          `json:"title"`
	CompanyID       string          `json:"companyId,omitempty"`
	Sections        []SectionResult `json:"sections"`
	TotalVotes      int             `json:"totalVotes"`
	LastUpdate      time.Time       `json:"lastUpdate"`
}

// SessionVoteCount is a per-session vote total for the admin stats view.
type SessionVoteCount struct {
	VotingSessionID string `json:"votingSessionId"`
	Title           string `json:"title"`
	IsActive        bool   `json:"isActive"`
	Votes           int    `json:"votes"`
}

// AdminStats summarizes the whole store for the admin dashboard.
type AdminStats struct {
	Companies  int                `json:"companies"`
	Sessions   int                `json:"sessions"`
	Votes      int                `json:"votes"`
	PerSession []SessionVoteCount `json:"perSession"`
}
