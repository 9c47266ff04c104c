package posture

import (
	"math"

	"github.com/LM-Fabs/m365assess/internal/telemetry"
)

// Sub-metric names emitted by the normalizer. Best-practice targets address
// these via (category, metric) pairs.
const (
	MetricTotalLicenses      = "totalLicenses"
	MetricAssignedLicenses   = "assignedLicenses"
	MetricUtilizationPercent = "utilizationPercent"

	MetricCurrentScore = "currentScore"
	MetricMaxScore     = "maxScore"
	MetricPercentage   = "percentage"
	MetricControlCount = "controlCount"

	MetricTotalUsers      = "totalUsers"
	MetricMFACapableUsers = "mfaCapableUsers"
	MetricMFAAdoption     = "mfaAdoption"
	MetricCAPolicies      = "conditionalAccessPolicies"
	MetricAdminUsers      = "adminUsers"
	MetricGuestUsers      = "guestUsers"

	MetricTotal           = "total"
	MetricCovered         = "covered"
	MetricCoveragePercent = "coveragePercent"

	MetricActiveAlerts   = "activeAlerts"
	MetricResolvedAlerts = "resolvedAlerts"
	MetricResolutionRate = "resolutionRate"
)

// roundHalfUp rounds to the nearest integer with halves rounding up.
// The convention is pinned by tests: 71.5 rounds to 72.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ratioScore converts a numerator/denominator pair into a 0-100 score.
// A zero denominator yields (0, false): score 0, data not collected.
// Ratios outside [0,1] clamp: license over-assignment can push the raw
// ratio past 1 without making the category more than fully healthy.
func ratioScore(num, den float64) (int, bool) {
	if den == 0 {
		return 0, false
	}
	score := roundHalfUp(num / den * 100)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score, true
}

// Normalize converts a raw facts bundle into the per-category metrics
// snapshot. A category absent from the bundle produces no entry, so the
// aggregator redistributes its weight. A category present but with missing
// or zero-denominator data produces a zero score with DataCollected=false.
// Normalization never fails.
func Normalize(f *telemetry.Facts) Metrics {
	m := Metrics{Categories: make(map[string]CategoryMetrics)}
	if f == nil {
		return m
	}

	if f.License != nil {
		m.Categories[CategoryLicense] = normalizeLicense(f.License)
	}
	if f.SecureScore != nil {
		m.Categories[CategorySecureScore] = normalizeSecureScore(f.SecureScore)
	}
	if f.Identity != nil {
		m.Categories[CategoryIdentity] = normalizeIdentity(f.Identity)
	}
	if f.DataProtection != nil {
		m.Categories[CategoryDataProtection] = normalizeCoverage(f.DataProtection)
	}
	if f.Endpoint != nil {
		m.Categories[CategoryEndpoint] = normalizeCoverage(f.Endpoint)
	}
	if f.CloudApps != nil {
		m.Categories[CategoryCloudApps] = normalizeCoverage(f.CloudApps)
	}
	if f.InformationProtection != nil {
		m.Categories[CategoryInformationProtection] = normalizeCoverage(f.InformationProtection)
	}
	if f.ThreatProtection != nil {
		m.Categories[CategoryThreatProtection] = normalizeThreat(f.ThreatProtection)
	}

	return m
}

func normalizeLicense(f *telemetry.LicenseFacts) CategoryMetrics {
	if !f.DataCollected {
		return CategoryMetrics{Values: map[string]float64{}}
	}
	score, ok := ratioScore(float64(f.AssignedLicenses), float64(f.TotalLicenses))
	values := map[string]float64{
		MetricTotalLicenses:    float64(f.TotalLicenses),
		MetricAssignedLicenses: float64(f.AssignedLicenses),
	}
	if ok {
		values[MetricUtilizationPercent] = float64(f.AssignedLicenses) / float64(f.TotalLicenses) * 100
	}
	return CategoryMetrics{Values: values, Score: score, DataCollected: ok}
}

func normalizeSecureScore(f *telemetry.SecureScoreFacts) CategoryMetrics {
	if !f.DataCollected {
		return CategoryMetrics{Values: map[string]float64{}}
	}
	score, ok := ratioScore(f.CurrentScore, f.MaxScore)
	values := map[string]float64{
		MetricCurrentScore: f.CurrentScore,
		MetricMaxScore:     f.MaxScore,
		MetricControlCount: float64(len(f.Controls)),
	}
	if ok {
		values[MetricPercentage] = f.CurrentScore / f.MaxScore * 100
	}
	return CategoryMetrics{Values: values, Score: score, DataCollected: ok}
}

func normalizeIdentity(f *telemetry.IdentityFacts) CategoryMetrics {
	if !f.DataCollected {
		return CategoryMetrics{Values: map[string]float64{}}
	}
	score, ok := ratioScore(float64(f.MFACapableUsers), float64(f.TotalUsers))
	values := map[string]float64{
		MetricTotalUsers:      float64(f.TotalUsers),
		MetricMFACapableUsers: float64(f.MFACapableUsers),
		MetricCAPolicies:      float64(f.ConditionalAccessPolicies),
		MetricAdminUsers:      float64(f.AdminUsers),
		MetricGuestUsers:      float64(f.GuestUsers),
	}
	if ok {
		values[MetricMFAAdoption] = float64(f.MFACapableUsers) / float64(f.TotalUsers) * 100
	}
	return CategoryMetrics{Values: values, Score: score, DataCollected: ok}
}

func normalizeCoverage(f *telemetry.CoverageFacts) CategoryMetrics {
	if !f.DataCollected {
		return CategoryMetrics{Values: map[string]float64{}}
	}
	score, ok := ratioScore(float64(f.Covered), float64(f.Total))
	values := map[string]float64{
		MetricTotal:   float64(f.Total),
		MetricCovered: float64(f.Covered),
	}
	if ok {
		values[MetricCoveragePercent] = float64(f.Covered) / float64(f.Total) * 100
	}
	return CategoryMetrics{Values: values, Score: score, DataCollected: ok}
}

func normalizeThreat(f *telemetry.ThreatFacts) CategoryMetrics {
	if !f.DataCollected {
		return CategoryMetrics{Values: map[string]float64{}}
	}
	total := f.ActiveAlerts + f.ResolvedAlerts
	score, ok := ratioScore(float64(f.ResolvedAlerts), float64(total))
	values := map[string]float64{
		MetricActiveAlerts:   float64(f.ActiveAlerts),
		MetricResolvedAlerts: float64(f.ResolvedAlerts),
	}
	if ok {
		values[MetricResolutionRate] = float64(f.ResolvedAlerts) / float64(total) * 100
	}
	return CategoryMetrics{Values: values, Score: score, DataCollected: ok}
}
