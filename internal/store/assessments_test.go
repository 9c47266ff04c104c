package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LM-Fabs/m365assess/internal/assessment"
	"github.com/LM-Fabs/m365assess/internal/posture"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func completedAssessment(t *testing.T, id, tenantID string, date time.Time, overall int) *assessment.Assessment {
	t.Helper()
	a := assessment.New(id, tenantID, "alice", date)
	m := posture.Metrics{
		Categories: map[string]posture.CategoryMetrics{
			posture.CategoryLicense: {
				Values:        map[string]float64{posture.MetricUtilizationPercent: 85},
				Score:         85,
				DataCollected: true,
			},
			posture.CategoryIdentity: {
				Values:        map[string]float64{posture.MetricMFAAdoption: 60},
				Score:         60,
				DataCollected: true,
			},
		},
		OverallScore: overall,
	}
	recs := []posture.Recommendation{
		{
			ID:          "identity/mfaAdoption",
			Category:    posture.CategoryIdentity,
			Metric:      posture.MetricMFAAdoption,
			Severity:    posture.SeverityHigh,
			Title:       "Increase MFA registration coverage",
			Description: "Accounts without MFA registration remain exposed.",
			Impact:      "high",
			Remediation: "Require MFA registration for all users.",
			References:  []string{"https://learn.microsoft.com/entra/identity/authentication/howto-mfa-getstarted"},
		},
	}
	a.Comparison = &assessment.ComparisonResults{
		Gaps: []posture.GapEntry{
			{Category: posture.CategoryIdentity, Metric: posture.MetricMFAAdoption, Current: 60, Target: 90, Impact: posture.ImpactHigh},
		},
	}
	require.NoError(t, a.Complete(m, recs, posture.RiskMedium))
	return a
}

func TestSaveAndGetAssessment(t *testing.T) {
	db := testDB(t)
	date := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	a := completedAssessment(t, "a-1", "contoso", date, 72)

	require.NoError(t, db.SaveAssessment(a))

	got, err := db.GetAssessment("a-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "contoso", got.TenantID)
	assert.Equal(t, "alice", got.Assessor)
	assert.True(t, got.AssessmentDate.Equal(date))
	assert.Equal(t, 72, got.Metrics.OverallScore)
	assert.Equal(t, posture.RiskMedium, got.RiskLevel)
	assert.Equal(t, assessment.StatusCompleted, got.Status)

	require.Len(t, got.Metrics.Categories, 2)
	identity := got.Metrics.Categories[posture.CategoryIdentity]
	assert.Equal(t, 60, identity.Score)
	assert.True(t, identity.DataCollected)
	assert.Equal(t, 60.0, identity.Values[posture.MetricMFAAdoption])

	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, a.Recommendations[0], got.Recommendations[0])

	require.NotNil(t, got.Comparison)
	require.Len(t, got.Comparison.Gaps, 1)
	assert.Equal(t, posture.MetricMFAAdoption, got.Comparison.Gaps[0].Metric)
}

func TestGetAssessment_Missing(t *testing.T) {
	db := testDB(t)
	got, err := db.GetAssessment("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveAssessment_RejectsOverwritingCompleted(t *testing.T) {
	db := testDB(t)
	date := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	a := completedAssessment(t, "a-1", "contoso", date, 72)
	require.NoError(t, db.SaveAssessment(a))

	altered := completedAssessment(t, "a-1", "contoso", date, 99)
	err := db.SaveAssessment(altered)
	var immutable *assessment.ImmutableStateError
	require.True(t, errors.As(err, &immutable))
	assert.Equal(t, "a-1", immutable.ID)

	got, err := db.GetAssessment("a-1")
	require.NoError(t, err)
	assert.Equal(t, 72, got.Metrics.OverallScore, "stored record must be unchanged")
}

func TestGetLatestAssessment_PicksNewest(t *testing.T) {
	db := testDB(t)
	older := completedAssessment(t, "a-1", "contoso",
		time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), 65)
	newer := completedAssessment(t, "a-2", "contoso",
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), 72)
	other := completedAssessment(t, "b-1", "fabrikam",
		time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC), 40)

	require.NoError(t, db.SaveAssessment(older))
	require.NoError(t, db.SaveAssessment(newer))
	require.NoError(t, db.SaveAssessment(other))

	got, err := db.GetLatestAssessment("contoso")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a-2", got.ID)
}

func TestGetLatestAssessment_UnknownTenant(t *testing.T) {
	db := testDB(t)
	got, err := db.GetLatestAssessment("nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAssessments_NewestFirstWithLimit(t *testing.T) {
	db := testDB(t)
	for i, id := range []string{"a-1", "a-2", "a-3"} {
		a := completedAssessment(t, id, "contoso",
			time.Date(2026, time.Month(6+i), 1, 9, 0, 0, 0, time.UTC), 60+i)
		require.NoError(t, db.SaveAssessment(a))
	}

	all, err := db.ListAssessments("contoso", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a-3", all[0].ID)
	assert.Equal(t, "a-1", all[2].ID)

	limited, err := db.ListAssessments("contoso", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "a-3", limited[0].ID)
}

func TestUpdateStatus_ArchivesSuperseded(t *testing.T) {
	db := testDB(t)
	a := completedAssessment(t, "a-1", "contoso",
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), 72)
	require.NoError(t, db.SaveAssessment(a))

	require.NoError(t, a.Archive())
	require.NoError(t, db.UpdateStatus(a))

	got, err := db.GetAssessment("a-1")
	require.NoError(t, err)
	assert.Equal(t, assessment.StatusArchived, got.Status)
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	db := testDB(t)
	a := completedAssessment(t, "ghost", "contoso", time.Now().UTC(), 50)
	require.NoError(t, a.Archive())
	assert.Error(t, db.UpdateStatus(a))
}
