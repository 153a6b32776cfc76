package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type Options struct {
	Now time.Time
	// Width wraps long details at this many cells when positive.
	Width int
}

// Document is a titled list of items rendered as stacked sections.
type Document struct {
	Title   string
	Summary string
	// Empty is shown instead of the items when there are none.
	Empty string
	Items []Item
}

type Item struct {
	Title   string
	Badge   string
	Details []string
	Meter   *Meter
	Due     *Due
	Warning string
}

// Meter draws Value out of Max as a bar.
type Meter struct {
	Label string
	Value float64
	Max   float64
}

// Due renders a deadline relative to Options.Now.
type Due struct {
	Label string
	At    time.Time
	// Horizon is the distance at which the deadline starts to brighten.
	Horizon time.Duration
}

func renderDocument(doc Document, opts Options, s styles) string {
	lines := []string{s.title.Render(doc.Title)}
	if doc.Summary != "" {
		lines = append(lines, s.header.Render(doc.Summary))
	}

	if len(doc.Items) == 0 {
		empty := doc.Empty
		if empty == "" {
			empty = "Nothing to show."
		}
		lines = append(lines, s.empty.Render(empty))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, item := range doc.Items {
		lines = append(lines, s.section.Render(renderItem(item, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderItem(item Item, opts Options, s styles) string {
	title := s.item.Render(item.Title)
	if item.Badge != "" {
		title += " " + s.badge.Render("["+item.Badge+"]")
	}

	parts := []string{title}
	for _, detail := range item.Details {
		if strings.TrimSpace(detail) == "" {
			continue
		}
		parts = append(parts, s.detail.Render(detail))
	}
	if item.Meter != nil {
		parts = append(parts, meterLine(*item.Meter, s))
	}
	if item.Due != nil {
		parts = append(parts, dueLine(*item.Due, opts.Now, s))
	}
	if item.Warning != "" {
		parts = append(parts, s.warning.Render(item.Warning))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func meterLine(m Meter, s styles) string {
	percent := 0.0
	if m.Max > 0 {
		percent = clampPercent(m.Value / m.Max * 100)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render(m.Label+":"),
		" ",
		renderProgressBar(percent, 20, s),
		" ",
		lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100)).Render(formatNumber(m.Value)),
	)
}

func dueLine(d Due, now time.Time, s styles) string {
	label := d.Label + ":"
	if !now.IsZero() && d.At.Before(now) {
		return s.detail.Render(label) + " " + s.warning.Render(fmt.Sprintf("overdue since %s", d.At.Format("02 Jan 2006")))
	}

	style := lipgloss.NewStyle().Foreground(dueColor(d, now))
	return s.detail.Render(label) + " " + style.Render(formatRelative(d.At, now))
}

func renderProgressBar(filledPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(filledPercent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("02 Jan 2006")
}

func formatRelative(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	remaining := at.Sub(now)
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		return fmt.Sprintf("in %d %s (%s)", hours, plural(hours, "hour"), at.Format("15:04"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	return fmt.Sprintf("in %d %s (%s)", days, plural(days, "day"), at.Format("02 Jan 2006"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI greyscale ramp from 240 (faded) to 255 (bright).
	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}

// dueColor brightens as the deadline approaches within its horizon.
func dueColor(d Due, now time.Time) lipgloss.Color {
	if now.IsZero() {
		return lipgloss.Color("255")
	}

	horizon := d.Horizon
	if horizon <= 0 {
		horizon = 30 * 24 * time.Hour
	}

	inverted := horizon.Seconds() - d.At.Sub(now).Seconds()
	return interpolateColor(inverted, 0, horizon.Seconds())
}
