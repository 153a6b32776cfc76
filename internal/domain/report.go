package domain

import "time"

type ReportKind string

const (
	ReportSales         ReportKind = "sales"
	ReportServices      ReportKind = "services"
	ReportVaccinations  ReportKind = "vaccinations"
	ReportSubscriptions ReportKind = "subscriptions"
	ReportCampaigns     ReportKind = "campaigns"
)

func (k ReportKind) Valid() bool {
	switch k {
	case ReportSales, ReportServices, ReportVaccinations, ReportSubscriptions, ReportCampaigns:
		return true
	default:
		return false
	}
}

type Report struct {
	Kind        ReportKind         `json:"type"`
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Totals      map[string]float64 `json:"totals,omitempty"`
	Rows        []map[string]any   `json:"rows,omitempty"`
}

type DashboardMetric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Delta float64 `json:"delta,omitempty"`
}

type DashboardSummary struct {
	Role    Role              `json:"role"`
	Metrics []DashboardMetric `json:"metrics"`
	Alerts  []Notification    `json:"alerts,omitempty"`
}
