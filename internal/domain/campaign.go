package domain

import "time"

type Campaign struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Audience    Role       `json:"targetRole,omitempty"`
	StartsAt    time.Time  `json:"startDate"`
	EndsAt      *time.Time `json:"endDate,omitempty"`
	BannerURL   string     `json:"bannerUrl,omitempty"`
	Discount    float64    `json:"discount,omitempty"`
}

type CampaignInput struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Audience    Role       `json:"targetRole,omitempty"`
	StartsAt    *time.Time `json:"startDate,omitempty"`
	EndsAt      *time.Time `json:"endDate,omitempty"`
	Discount    float64    `json:"discount,omitempty"`
}
