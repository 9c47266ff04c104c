package assessment

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/LM-Fabs/m365assess/internal/posture"
	"github.com/LM-Fabs/m365assess/internal/telemetry"
)

// Runner executes the full scoring pipeline for one facts bundle:
// normalize → aggregate → compare → recommend → classify. The runner holds
// only immutable configuration, so a single Runner may evaluate distinct
// tenants concurrently.
type Runner struct {
	weights    map[string]float64
	targets    []posture.BestPracticeTarget
	thresholds posture.RiskThresholds
}

// NewRunner builds a Runner from the externally supplied configuration.
// Threshold ordering is validated up front so a misconfigured runner fails
// before any assessment is produced.
func NewRunner(weights map[string]float64, targets []posture.BestPracticeTarget, thresholds posture.RiskThresholds) (*Runner, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		weights:    weights,
		targets:    targets,
		thresholds: thresholds,
	}, nil
}

// Run evaluates one facts bundle and returns a completed assessment.
// previous, when non-nil, supplies the comparison baseline for the same
// tenant. A nil bundle or a configuration error aborts before any
// assessment is returned.
func (r *Runner) Run(facts *telemetry.Facts, assessor string, previous *Assessment) (*Assessment, error) {
	if facts == nil {
		return nil, errors.New("nil facts bundle")
	}

	metrics := posture.Normalize(facts)

	overall, err := posture.Aggregate(metrics.CategoryScores(), r.weights)
	if err != nil {
		return nil, err
	}
	metrics.OverallScore = overall

	risk, err := posture.ClassifyRisk(overall, openAlerts(facts), r.thresholds)
	if err != nil {
		return nil, err
	}

	gaps := posture.Compare(metrics, r.targets)
	recs := posture.BuildRecommendations(gaps)

	a := New(uuid.New().String(), facts.TenantID, assessor, facts.CollectedAt)
	a.Comparison = buildComparison(previous, metrics, gaps)
	if err := a.Complete(metrics, recs, risk); err != nil {
		return nil, err
	}
	return a, nil
}

// openAlerts extracts the open alert count feeding risk classification.
func openAlerts(facts *telemetry.Facts) int {
	if facts.ThreatProtection == nil {
		return 0
	}
	return facts.ThreatProtection.ActiveAlerts
}

// buildComparison assembles comparison results from the previous assessment
// (when one exists) and the current gap list.
func buildComparison(previous *Assessment, current posture.Metrics, gaps []posture.GapEntry) *ComparisonResults {
	cr := &ComparisonResults{Gaps: gaps}
	if previous != nil {
		cr.PreviousID = previous.ID
		cr.PreviousDate = previous.AssessmentDate
		cr.OverallDelta = current.OverallScore - previous.Metrics.OverallScore
		cr.Deltas = CompareMetrics(previous.Metrics, current)
	}
	return cr
}

// sortDeltas orders deltas by category name for stable output.
func sortDeltas(deltas []MetricDelta) {
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].Category < deltas[j].Category
	})
}

// Supersede archives the previous completed assessment for a tenant when a
// newer one replaces it. Passing nil is a no-op so callers do not need a
// first-run special case.
func Supersede(previous *Assessment) error {
	if previous == nil {
		return nil
	}
	return previous.Archive()
}

// Touch updates LastModified; used by the store when persisting.
func (a *Assessment) Touch(now time.Time) {
	a.LastModified = now
}
