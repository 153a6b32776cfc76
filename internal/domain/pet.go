package domain

import (
	"fmt"
	"strings"
	"time"
)

type Pet struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId,omitempty"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	Sex       string     `json:"sex,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	WeightKg  float64    `json:"weight,omitempty"`
	PhotoURL  string     `json:"photoUrl,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// PetInput is the payload for creating or updating a pet. Zero fields are omitted.
type PetInput struct {
	Name      string     `json:"name,omitempty"`
	Species   string     `json:"species,omitempty"`
	Breed     string     `json:"breed,omitempty"`
	Sex       string     `json:"sex,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	WeightKg  float64    `json:"weight,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

func (p PetInput) ValidateForCreate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Species) == "" {
		return fmt.Errorf("species is required")
	}
	return nil
}

type PetFilter struct {
	OwnerID string
	Species string
	Search  string
}
