package domain

import "time"

type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency,omitempty"`
	BillingPeriod string   `json:"billingPeriod"`
	Features      []string `json:"features,omitempty"`
}

type Subscription struct {
	ID        string     `json:"id"`
	PlanID    string     `json:"planId"`
	PlanName  string     `json:"planName,omitempty"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"startedAt"`
	RenewsAt  *time.Time `json:"renewsAt,omitempty"`
	WillRenew bool       `json:"willRenew"`
}
