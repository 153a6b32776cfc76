package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/bnema/petcare-cli/internal/ports"
)

const reportDateLayout = "2006-01-02"

type ReportService struct {
	api ports.APIClient
}

func NewReportService(api ports.APIClient) *ReportService {
	return &ReportService{api: api}
}

// Get fetches a report for the optional [from, to] window. Zero bounds are
// left to the backend default.
func (s *ReportService) Get(ctx context.Context, kind domain.ReportKind, from, to time.Time) (domain.Report, error) {
	if !kind.Valid() {
		return domain.Report{}, fmt.Errorf("unsupported report type %q", kind)
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return domain.Report{}, errors.New("report end date must not be before start date")
	}

	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.Format(reportDateLayout))
	}
	if !to.IsZero() {
		query.Set("to", to.Format(reportDateLayout))
	}

	var report domain.Report
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("reports", string(kind)), Query: query}, &report); err != nil {
		return domain.Report{}, fmt.Errorf("get %s report: %w", kind, err)
	}
	return report, nil
}

func (s *ReportService) Dashboard(ctx context.Context, role domain.Role) (domain.DashboardSummary, error) {
	parsed, err := domain.ParseRole(string(role))
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	var summary domain.DashboardSummary
	if _, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resourcePath("dashboard", string(parsed))}, &summary); err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("get %s dashboard: %w", parsed, err)
	}
	return summary, nil
}
