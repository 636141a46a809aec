package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a visual progress bar for a 0-100 percentage.
// Example: "████████░░ 80/100"
func ScoreBar(percentage float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((percentage / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case percentage >= 70:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case percentage >= 40:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.0f/100", percentage)))
}

// GradeBadge renders a letter grade with a color keyed to its band.
func GradeBadge(grade string) string {
	badge := fmt.Sprintf(" %s ", grade)
	switch grade {
	case "A":
		return StyleSuccess.Render(badge)
	case "B", "C":
		return StyleWarning.Render(badge)
	default:
		return StyleError.Render(badge)
	}
}

// TrendArrow returns a styled trend indicator for a score delta.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
func TrendArrow(delta float64) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}
	if delta > 0 {
		return StyleSuccess.Render(fmt.Sprintf("▲ +%.1f", delta))
	}
	return StyleError.Render(fmt.Sprintf("▼ %.1f", delta))
}

// PriorityTag renders a suggestion priority as a short styled label.
func PriorityTag(priority int) string {
	switch priority {
	case 1:
		return StyleError.Render("critical")
	case 2:
		return StyleWarning.Render("high")
	case 3:
		return "medium"
	default:
		return StyleMuted.Render("low")
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
