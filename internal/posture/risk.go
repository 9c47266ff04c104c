package posture

import "fmt"

// RiskLevel is the coarse tenant risk classification.
type RiskLevel string

// Risk levels, lowest first.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskRank orders risk levels; higher rank is more severe.
func riskRank(r RiskLevel) int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	}
	return 0
}

// RiskThresholds configures the score and alert-count boundaries for risk
// classification. Thresholds are immutable per run and supplied externally.
type RiskThresholds struct {
	// Good, Warning, Critical are score boundaries; Good > Warning > Critical
	// must hold.
	Good     int `json:"good" mapstructure:"good"`
	Warning  int `json:"warning" mapstructure:"warning"`
	Critical int `json:"critical" mapstructure:"critical"`

	// MediumAlerts is the open alert count at which alert volume alone
	// pushes the tenant to medium risk.
	MediumAlerts int `json:"medium_alerts" mapstructure:"medium_alerts"`

	// HighAlerts is the open alert count above which alert volume alone
	// pushes the tenant to high risk.
	HighAlerts int `json:"high_alerts" mapstructure:"high_alerts"`
}

// DefaultRiskThresholds returns the standard thresholds: good 90, warning 70,
// critical 50, with alert bounds at 3 and 5.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		Good:         90,
		Warning:      70,
		Critical:     50,
		MediumAlerts: 3,
		HighAlerts:   5,
	}
}

// Validate checks threshold ordering.
func (t RiskThresholds) Validate() error {
	if !(t.Good > t.Warning && t.Warning > t.Critical) {
		return &ConfigError{
			Key: "thresholds",
			Reason: fmt.Sprintf("score thresholds must satisfy good > warning > critical, got %d/%d/%d",
				t.Good, t.Warning, t.Critical),
		}
	}
	if t.MediumAlerts < 0 || t.HighAlerts < t.MediumAlerts {
		return &ConfigError{
			Key: "thresholds",
			Reason: fmt.Sprintf("alert bounds must satisfy 0 <= medium <= high, got %d/%d",
				t.MediumAlerts, t.HighAlerts),
		}
	}
	return nil
}

// ClassifyRisk maps the overall score and open alert count to a risk level.
// The score-based and alert-based classifications are computed independently
// and the more severe one wins; a tenant below the critical score threshold
// with an alert count above the high bound is critical.
func ClassifyRisk(overallScore, openAlerts int, t RiskThresholds) (RiskLevel, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	byScore := RiskLow
	switch {
	case overallScore < t.Critical:
		byScore = RiskHigh
	case overallScore < t.Warning:
		byScore = RiskMedium
	}

	byAlerts := RiskLow
	switch {
	case openAlerts > t.HighAlerts:
		byAlerts = RiskHigh
	case openAlerts >= t.MediumAlerts:
		byAlerts = RiskMedium
	}

	level := byScore
	if riskRank(byAlerts) > riskRank(level) {
		level = byAlerts
	}
	if overallScore < t.Critical && openAlerts > t.HighAlerts {
		level = RiskCritical
	}
	return level, nil
}
