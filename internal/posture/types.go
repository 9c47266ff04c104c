// Package posture implements the tenant security posture scoring engine:
// metric normalization, weighted aggregation, best-practice comparison,
// recommendation generation, and risk classification. Every stage is a pure
// function over its inputs so callers may evaluate tenants concurrently.
package posture

// Category names for the built-in fact shapes. The engine never requires the
// category set to match this list: weights, targets, and score maps are keyed
// by string so deployments can configure their own scheme.
const (
	CategoryLicense               = "license"
	CategorySecureScore           = "secureScore"
	CategoryIdentity              = "identity"
	CategoryDataProtection        = "dataProtection"
	CategoryEndpoint              = "endpoint"
	CategoryCloudApps             = "cloudApps"
	CategoryInformationProtection = "informationProtection"
	CategoryThreatProtection      = "threatProtection"
)

// Impact expresses how much a best-practice shortfall matters.
type Impact string

// Impact levels, highest first.
const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Severity mirrors Impact for recommendations.
type Severity string

// Severity levels, highest first.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// impactRank orders impacts for sorting; lower rank sorts first.
func impactRank(i Impact) int {
	switch i {
	case ImpactHigh:
		return 0
	case ImpactMedium:
		return 1
	case ImpactLow:
		return 2
	}
	return 3
}

// severityRank orders severities for sorting; lower rank sorts first.
func severityRank(s Severity) int {
	return impactRank(Impact(s))
}

// CategoryMetrics holds the normalized sub-metric values for one category.
type CategoryMetrics struct {
	// Values maps sub-metric names (e.g. "mfaAdoption") to their values.
	Values map[string]float64 `json:"values"`

	// Score is the category's normalized 0-100 score.
	Score int `json:"score"`

	// DataCollected is false when the collector supplied no usable data
	// for the category. The score is 0 in that case.
	DataCollected bool `json:"data_collected"`
}

// Metrics is the immutable per-assessment snapshot of normalized metrics:
// per-category sub-metric records plus the score block.
type Metrics struct {
	// Categories maps category name to its normalized metrics.
	Categories map[string]CategoryMetrics `json:"categories"`

	// OverallScore is the weighted aggregate in [0,100].
	OverallScore int `json:"overall_score"`
}

// Value looks up the current value at (category, metric). The second return
// is false when the category or metric is absent.
func (m Metrics) Value(category, metric string) (float64, bool) {
	cm, ok := m.Categories[category]
	if !ok {
		return 0, false
	}
	v, ok := cm.Values[metric]
	return v, ok
}

// Score returns the normalized score for a category, or false if the
// category is absent from the snapshot.
func (m Metrics) Score(category string) (int, bool) {
	cm, ok := m.Categories[category]
	if !ok {
		return 0, false
	}
	return cm.Score, true
}

// CategoryScores returns the category→score map consumed by the aggregator.
func (m Metrics) CategoryScores() map[string]int {
	scores := make(map[string]int, len(m.Categories))
	for name, cm := range m.Categories {
		scores[name] = cm.Score
	}
	return scores
}

// BestPracticeTarget is one externally supplied target threshold.
// Target tables are shared, read-only reference data.
type BestPracticeTarget struct {
	Category string  `json:"category"`
	Metric   string  `json:"metric"`
	Target   float64 `json:"target"`
	Impact   Impact  `json:"impact"`
}

// GapEntry is a measured shortfall between a current metric value and its
// best-practice target.
type GapEntry struct {
	Category string  `json:"category"`
	Metric   string  `json:"metric"`
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
	Impact   Impact  `json:"impact"`
}

// Recommendation is a ranked remediation entry derived from a gap.
// No two recommendations share a (category, metric) pair.
type Recommendation struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Metric      string   `json:"metric"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Remediation string   `json:"remediation"`
	References  []string `json:"references,omitempty"`
}
