package domain

import "time"

// Company represents a registered company taking part in the event polls.
type Company struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// CreateCompanyRequest is the admin request to register a company.
type CreateCompanyRequest struct {
	Name string `json:"name"`
}
