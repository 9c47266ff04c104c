package output

import (
	"fmt"
	"strings"

	"github.com/LM-Fabs/m365assess/internal/posture"
)

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score int, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := score * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleError
	switch {
	case score >= 70:
		style = StyleSuccess
	case score >= 40:
		style = StyleWarning
	}

	return fmt.Sprintf("%s %s", style.Render(bar), StyleMuted.Render(fmt.Sprintf("%d/100", score)))
}

// DeltaArrow returns a styled trend indicator for a score delta.
// Positive deltas are improvements for posture scores.
func DeltaArrow(delta int) string {
	switch {
	case delta > 0:
		return StyleSuccess.Render(fmt.Sprintf("▲ +%d", delta))
	case delta < 0:
		return StyleError.Render(fmt.Sprintf("▼ %d", delta))
	}
	return StyleMuted.Render("─")
}

// SeverityBadge renders a recommendation severity with its tier color.
func SeverityBadge(s posture.Severity) string {
	switch s {
	case posture.SeverityHigh:
		return StyleError.Render(strings.ToUpper(string(s)))
	case posture.SeverityMedium:
		return StyleWarning.Render(strings.ToUpper(string(s)))
	}
	return StyleMuted.Render(strings.ToUpper(string(s)))
}

// RiskBadge renders a risk level with its tier color.
func RiskBadge(r posture.RiskLevel) string {
	switch r {
	case posture.RiskCritical, posture.RiskHigh:
		return StyleError.Render(strings.ToUpper(string(r)))
	case posture.RiskMedium:
		return StyleWarning.Render(strings.ToUpper(string(r)))
	}
	return StyleSuccess.Render(strings.ToUpper(string(r)))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
