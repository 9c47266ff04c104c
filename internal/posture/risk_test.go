package posture

import (
	"errors"
	"testing"
)

func TestClassifyRisk_Table(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		alerts int
		want   RiskLevel
	}{
		{"healthy tenant", 90, 0, RiskLow},
		{"score below warning", 65, 1, RiskMedium},
		{"alert volume elevates healthy-ish score", 55, 4, RiskMedium},
		{"low score and high alerts", 40, 6, RiskCritical},
		{"good score with a couple of alerts", 72, 2, RiskLow},
		{"score alone critical-adjacent", 40, 0, RiskHigh},
		{"alerts alone high", 95, 9, RiskHigh},
		{"alert count at medium bound", 95, 3, RiskMedium},
		{"alert count at high bound stays medium", 95, 5, RiskMedium},
		{"score at warning boundary", 70, 0, RiskLow},
		{"score at critical boundary", 50, 0, RiskMedium},
	}

	th := DefaultRiskThresholds()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyRisk(tc.score, tc.alerts, th)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ClassifyRisk(%d, %d) = %s, want %s", tc.score, tc.alerts, got, tc.want)
			}
		})
	}
}

func TestClassifyRisk_InvalidThresholdOrdering(t *testing.T) {
	bad := RiskThresholds{Good: 50, Warning: 70, Critical: 90, MediumAlerts: 3, HighAlerts: 5}
	_, err := ClassifyRisk(80, 0, bad)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for inverted thresholds, got %v", err)
	}
}

func TestClassifyRisk_InvalidAlertBounds(t *testing.T) {
	bad := RiskThresholds{Good: 90, Warning: 70, Critical: 50, MediumAlerts: 5, HighAlerts: 3}
	_, err := ClassifyRisk(80, 0, bad)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for inverted alert bounds, got %v", err)
	}
}

func TestRiskThresholds_DefaultsValid(t *testing.T) {
	if err := DefaultRiskThresholds().Validate(); err != nil {
		t.Fatalf("default thresholds failed validation: %v", err)
	}
}
