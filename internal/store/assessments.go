package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LM-Fabs/m365assess/internal/assessment"
	"github.com/LM-Fabs/m365assess/internal/posture"
)

// SaveAssessment persists a completed assessment with its category scores and
// recommendations in a single transaction. Overwriting an id that already
// holds a completed or archived record fails with an ImmutableStateError and
// leaves the stored record unchanged.
func (db *DB) SaveAssessment(a *assessment.Assessment) error {
	var existing string
	err := db.conn.QueryRow("SELECT status FROM assessments WHERE id = ?", a.ID).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if err == nil && assessment.Status(existing) != assessment.StatusDraft {
		return &assessment.ImmutableStateError{ID: a.ID, Status: assessment.Status(existing)}
	}

	a.Touch(time.Now().UTC())

	comparison, err := marshalComparison(a.Comparison)
	if err != nil {
		return err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM category_scores WHERE assessment_id = ?", a.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM recommendations WHERE assessment_id = ?", a.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM assessments WHERE id = ?", a.ID); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO assessments
		(id, tenant_id, assessment_date, assessor, overall_score, risk_level, status, last_modified, comparison)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.TenantID, a.AssessmentDate.UTC().Format(time.RFC3339), a.Assessor,
		a.Metrics.OverallScore, string(a.RiskLevel), string(a.Status),
		a.LastModified.UTC().Format(time.RFC3339), comparison,
	); err != nil {
		return err
	}

	for category, cm := range a.Metrics.Categories {
		values, err := json.Marshal(cm.Values)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO category_scores
			(assessment_id, category, score, data_collected, metric_values)
			VALUES (?, ?, ?, ?, ?)`,
			a.ID, category, cm.Score, cm.DataCollected, string(values),
		); err != nil {
			return err
		}
	}

	for i, rec := range a.Recommendations {
		refs, err := json.Marshal(rec.References)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO recommendations
			(assessment_id, rec_id, category, metric, severity, title, description, impact, remediation, refs, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, rec.ID, rec.Category, rec.Metric, string(rec.Severity),
			rec.Title, rec.Description, rec.Impact, rec.Remediation, string(refs), i,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetAssessment returns an assessment by id, or nil if it does not exist.
func (db *DB) GetAssessment(id string) (*assessment.Assessment, error) {
	row := db.conn.QueryRow(
		`SELECT id, tenant_id, assessment_date, assessor, overall_score, risk_level, status, last_modified, comparison
		 FROM assessments WHERE id = ?`, id,
	)
	a, err := scanAssessment(row)
	if err != nil || a == nil {
		return a, err
	}
	if err := db.loadDetails(a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetLatestAssessment returns the most recent assessment for a tenant, or
// nil when the tenant has none.
func (db *DB) GetLatestAssessment(tenantID string) (*assessment.Assessment, error) {
	row := db.conn.QueryRow(
		`SELECT id, tenant_id, assessment_date, assessor, overall_score, risk_level, status, last_modified, comparison
		 FROM assessments WHERE tenant_id = ?
		 ORDER BY assessment_date DESC, last_modified DESC LIMIT 1`, tenantID,
	)
	a, err := scanAssessment(row)
	if err != nil || a == nil {
		return a, err
	}
	if err := db.loadDetails(a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAssessments returns assessments for a tenant, newest first. A zero or
// negative limit returns everything. Category scores and recommendations are
// not loaded; use GetAssessment for the full record.
func (db *DB) ListAssessments(tenantID string, limit int) ([]assessment.Assessment, error) {
	query := `SELECT id, tenant_id, assessment_date, assessor, overall_score, risk_level, status, last_modified, comparison
		 FROM assessments WHERE tenant_id = ?
		 ORDER BY assessment_date DESC, last_modified DESC`
	args := []any{tenantID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []assessment.Assessment
	for rows.Next() {
		a, err := scanAssessmentRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateStatus persists a status transition already validated by the domain
// model, e.g. archiving a superseded assessment.
func (db *DB) UpdateStatus(a *assessment.Assessment) error {
	result, err := db.conn.Exec(
		"UPDATE assessments SET status = ?, last_modified = ? WHERE id = ?",
		string(a.Status), a.LastModified.UTC().Format(time.RFC3339), a.ID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("assessment %s not found", a.ID)
	}
	return nil
}

// loadDetails populates category scores and recommendations for an assessment.
func (db *DB) loadDetails(a *assessment.Assessment) error {
	rows, err := db.conn.Query(
		"SELECT category, score, data_collected, metric_values FROM category_scores WHERE assessment_id = ?",
		a.ID,
	)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	a.Metrics.Categories = make(map[string]posture.CategoryMetrics)
	for rows.Next() {
		var category, values string
		var cm posture.CategoryMetrics
		if err := rows.Scan(&category, &cm.Score, &cm.DataCollected, &values); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(values), &cm.Values); err != nil {
			return fmt.Errorf("decoding metric values for %s: %w", category, err)
		}
		a.Metrics.Categories[category] = cm
	}
	if err := rows.Err(); err != nil {
		return err
	}

	recRows, err := db.conn.Query(
		`SELECT rec_id, category, metric, severity, title, description, impact, remediation, refs
		 FROM recommendations WHERE assessment_id = ? ORDER BY position`,
		a.ID,
	)
	if err != nil {
		return err
	}
	defer func() { _ = recRows.Close() }()

	for recRows.Next() {
		var rec posture.Recommendation
		var severity string
		var refs sql.NullString
		if err := recRows.Scan(&rec.ID, &rec.Category, &rec.Metric, &severity,
			&rec.Title, &rec.Description, &rec.Impact, &rec.Remediation, &refs); err != nil {
			return err
		}
		rec.Severity = posture.Severity(severity)
		if refs.Valid && refs.String != "" {
			if err := json.Unmarshal([]byte(refs.String), &rec.References); err != nil {
				return fmt.Errorf("decoding references for %s: %w", rec.ID, err)
			}
		}
		a.Recommendations = append(a.Recommendations, rec)
	}
	return recRows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row *sql.Row) (*assessment.Assessment, error) {
	a, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func scanAssessmentRows(rows *sql.Rows) (*assessment.Assessment, error) {
	return scanInto(rows)
}

func scanInto(s rowScanner) (*assessment.Assessment, error) {
	var a assessment.Assessment
	var date, lastModified, risk, status string
	var assessor, comparison sql.NullString
	if err := s.Scan(&a.ID, &a.TenantID, &date, &assessor, &a.Metrics.OverallScore,
		&risk, &status, &lastModified, &comparison); err != nil {
		return nil, err
	}
	a.Assessor = assessor.String
	a.RiskLevel = posture.RiskLevel(risk)
	a.Status = assessment.Status(status)
	a.AssessmentDate, _ = time.Parse(time.RFC3339, date)
	a.LastModified, _ = time.Parse(time.RFC3339, lastModified)
	if comparison.Valid && comparison.String != "" {
		var cr assessment.ComparisonResults
		if err := json.Unmarshal([]byte(comparison.String), &cr); err != nil {
			return nil, fmt.Errorf("decoding comparison results: %w", err)
		}
		a.Comparison = &cr
	}
	return &a, nil
}

func marshalComparison(cr *assessment.ComparisonResults) (string, error) {
	if cr == nil {
		return "", nil
	}
	data, err := json.Marshal(cr)
	if err != nil {
		return "", fmt.Errorf("encoding comparison results: %w", err)
	}
	return string(data), nil
}
