package domain

import (
	"fmt"
	"time"
)

type Feedback struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"providerId"`
	ContractID string    `json:"contractId,omitempty"`
	AuthorID   string    `json:"authorId,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type FeedbackInput struct {
	ProviderID string `json:"providerId"`
	ContractID string `json:"contractId,omitempty"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

func (f FeedbackInput) Validate() error {
	if f.ProviderID == "" {
		return fmt.Errorf("provider id is required")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"type,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
