package domain

import "time"

type ContractStatus string

const (
	ContractPending   ContractStatus = "pending"
	ContractConfirmed ContractStatus = "confirmed"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

type ServiceProvider struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Kind      Role              `json:"type"`
	City      string            `json:"city,omitempty"`
	Rating    float64           `json:"rating"`
	Reviews   int               `json:"reviewCount,omitempty"`
	Offerings []ServiceOffering `json:"services,omitempty"`
}

type ServiceOffering struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
}

type ProviderFilter struct {
	Kind     string
	City     string
	Category string
}

type ServiceContract struct {
	ID          string         `json:"id"`
	ProviderID  string         `json:"providerId"`
	ServiceID   string         `json:"serviceId"`
	PetID       string         `json:"petId,omitempty"`
	ScheduledAt time.Time      `json:"scheduledAt"`
	Status      ContractStatus `json:"status"`
	Price       float64        `json:"price"`
	Notes       string         `json:"notes,omitempty"`
}

type ContractRequest struct {
	ProviderID  string    `json:"providerId"`
	ServiceID   string    `json:"serviceId"`
	PetID       string    `json:"petId,omitempty"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Notes       string    `json:"notes,omitempty"`
}
