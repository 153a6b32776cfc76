package view

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/petcare-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPets(t *testing.T) {
	output, err := Render(PetsDocument([]domain.Pet{
		{ID: "5", Name: "Rex", Species: "dog", Breed: "Labrador", WeightKg: 31.5},
		{ID: "6", Name: "Mia", Species: "cat"},
	}), Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "pets: 2")
	assert.Contains(t, output, "Rex (5)")
	assert.Contains(t, output, "[dog]")
	assert.Contains(t, output, "breed: Labrador")
	assert.Contains(t, output, "weight: 31.50 kg")
	assert.Contains(t, output, "Mia (6)")
	assert.NotContains(t, output, "breed: \n")
}

func TestRenderEmptyDocument(t *testing.T) {
	output, err := Render(PetsDocument(nil), Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "pets: 0")
	assert.Contains(t, output, "No pets registered.")
}

func TestRenderVaccinationDueDates(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	upcoming := now.Add(3 * 24 * time.Hour)
	overdue := now.Add(-48 * time.Hour)

	output, err := Render(VaccinationsDocument([]domain.Vaccination{
		{ID: "v1", Vaccine: "Rabies", AppliedAt: now.AddDate(-1, 0, 0), NextDoseAt: &upcoming},
		{ID: "v2", Vaccine: "V10", AppliedAt: now.AddDate(-1, 0, 0), NextDoseAt: &overdue},
	}), Options{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "next dose: in 3 days (04 Mar 2026)")
	assert.Contains(t, output, "overdue since 27 Feb 2026")
	assert.Contains(t, output, "applied: 01 Mar 2025")
}

func TestRenderProviderRatingBar(t *testing.T) {
	output, err := Render(ProvidersDocument([]domain.ServiceProvider{
		{ID: "p1", Name: "Bicho Feliz", Kind: domain.RolePetshop, Rating: 4, Reviews: 12},
	}), Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "[Petshop]")
	assert.Contains(t, output, "rating (12 reviews):")
	assert.Contains(t, output, "[================----]")
}

func TestRenderSessionWarnsOnExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	output, err := Render(SessionDocument(domain.Session{
		AccessToken:  "a",
		RefreshToken: "r",
		ExpiresAt:    now.Add(-time.Minute),
		User:         domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleClient},
	}, now), Options{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Ana")
	assert.Contains(t, output, "[Client]")
	assert.Contains(t, output, "refresh: yes")
	assert.Contains(t, output, "refreshed on the next request")
}

func TestRenderReportSortsTotals(t *testing.T) {
	output, err := Render(ReportDocument(domain.Report{
		Kind:   domain.ReportSales,
		From:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Totals: map[string]float64{"revenue": 1200, "orders": 30},
	}), Options{})

	require.NoError(t, err)
	assert.Contains(t, output, "Report: sales")
	assert.Contains(t, output, "period: 01 Jan 2026 to 31 Jan 2026")
	assert.Less(t, strings.Index(output, "orders: 30"), strings.Index(output, "revenue: 1200"))
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "unknown", formatRelative(time.Time{}, now))
	assert.Equal(t, "in 1 hour (10:30)", formatRelative(now.Add(30*time.Minute), now))
	assert.Equal(t, "in 5 hours (15:00)", formatRelative(now.Add(5*time.Hour), now))
	assert.Equal(t, "in 1 day (02 Mar 2026)", formatRelative(now.Add(24*time.Hour), now))
}

func TestRenderWrapsToWidth(t *testing.T) {
	doc := Document{Title: "Notes", Items: []Item{{
		Title:   "Bella",
		Details: []string{strings.Repeat("long note ", 12)},
	}}}

	output, err := Render(doc, Options{Width: 30})
	require.NoError(t, err)
	for _, line := range strings.Split(output, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
	assert.Greater(t, strings.Count(output, "\n"), 3)
}
