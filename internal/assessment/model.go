// Package assessment defines the Assessment record, its lifecycle state
// machine, and the pipeline runner that produces completed assessments from
// raw telemetry.
package assessment

import (
	"fmt"
	"time"

	"github.com/LM-Fabs/m365assess/internal/posture"
)

// Status is the lifecycle state of an assessment.
type Status string

// Lifecycle states. The only valid transitions are draft → completed
// (metrics and recommendations attached) and completed → archived
// (superseded by a newer assessment for the same tenant).
const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// ImmutableStateError reports an attempt to mutate an assessment that has
// left the draft state. The stored record is left unchanged.
type ImmutableStateError struct {
	ID     string
	Status Status
}

func (e *ImmutableStateError) Error() string {
	return fmt.Sprintf("assessment %s is %s and cannot be modified", e.ID, e.Status)
}

// MetricDelta is the change in one category score between two assessments.
type MetricDelta struct {
	Category  string `json:"category"`
	Previous  int    `json:"previous"`
	Current   int    `json:"current"`
	Delta     int    `json:"delta"`
	Direction string `json:"direction"` // "improved", "regressed", "unchanged"
}

// ComparisonResults captures the delta against the tenant's previous
// assessment along with the best-practice gap list for the current one.
type ComparisonResults struct {
	PreviousID   string             `json:"previous_id,omitempty"`
	PreviousDate time.Time          `json:"previous_date,omitempty"`
	OverallDelta int                `json:"overall_delta"`
	Deltas       []MetricDelta      `json:"deltas,omitempty"`
	Gaps         []posture.GapEntry `json:"gaps,omitempty"`
}

// Assessment is one security posture evaluation of a tenant. Metrics is an
// immutable snapshot owned by the assessment; once the record completes, the
// snapshot can no longer be replaced.
type Assessment struct {
	ID             string             `json:"id"`
	TenantID       string             `json:"tenant_id"`
	AssessmentDate time.Time          `json:"assessment_date"`
	Assessor       string             `json:"assessor,omitempty"`

	Metrics         posture.Metrics          `json:"metrics"`
	Comparison      *ComparisonResults       `json:"comparison_results,omitempty"`
	Recommendations []posture.Recommendation `json:"recommendations,omitempty"`
	RiskLevel       posture.RiskLevel        `json:"risk_level,omitempty"`

	Status       Status    `json:"status"`
	LastModified time.Time `json:"last_modified"`
}

// New creates a draft assessment for a tenant.
func New(id, tenantID, assessor string, date time.Time) *Assessment {
	return &Assessment{
		ID:             id,
		TenantID:       tenantID,
		Assessor:       assessor,
		AssessmentDate: date,
		Status:         StatusDraft,
		LastModified:   date,
	}
}

// SetMetrics replaces the metrics snapshot. Only draft assessments accept it.
func (a *Assessment) SetMetrics(m posture.Metrics) error {
	if a.Status != StatusDraft {
		return &ImmutableStateError{ID: a.ID, Status: a.Status}
	}
	a.Metrics = m
	a.LastModified = time.Now().UTC()
	return nil
}

// Complete attaches metrics, recommendations, and the risk classification,
// transitioning the assessment from draft to completed.
func (a *Assessment) Complete(m posture.Metrics, recs []posture.Recommendation, risk posture.RiskLevel) error {
	if a.Status != StatusDraft {
		return &ImmutableStateError{ID: a.ID, Status: a.Status}
	}
	a.Metrics = m
	a.Recommendations = recs
	a.RiskLevel = risk
	a.Status = StatusCompleted
	a.LastModified = time.Now().UTC()
	return nil
}

// Archive marks a completed assessment as superseded by a newer one for the
// same tenant. Draft and already-archived records reject the transition.
func (a *Assessment) Archive() error {
	if a.Status != StatusCompleted {
		return &ImmutableStateError{ID: a.ID, Status: a.Status}
	}
	a.Status = StatusArchived
	a.LastModified = time.Now().UTC()
	return nil
}

// CompareMetrics computes per-category score deltas between a previous and a
// current metrics snapshot. Categories present on either side appear once;
// a side missing the category contributes a 0.
func CompareMetrics(previous, current posture.Metrics) []MetricDelta {
	names := make(map[string]bool)
	for c := range previous.Categories {
		names[c] = true
	}
	for c := range current.Categories {
		names[c] = true
	}

	deltas := make([]MetricDelta, 0, len(names))
	for c := range names {
		prev, _ := previous.Score(c)
		curr, _ := current.Score(c)
		deltas = append(deltas, MetricDelta{
			Category:  c,
			Previous:  prev,
			Current:   curr,
			Delta:     curr - prev,
			Direction: direction(curr - prev),
		})
	}
	sortDeltas(deltas)
	return deltas
}

func direction(delta int) string {
	switch {
	case delta > 0:
		return "improved"
	case delta < 0:
		return "regressed"
	}
	return "unchanged"
}
