// Package telemetry defines the raw facts bundle produced by the tenant
// telemetry collector and loaded at the boundary of the scoring engine.
package telemetry

import "time"

// Facts is the raw per-category fact bundle collected for a single tenant.
// Each category is optional: a nil record means the collector produced no
// data for that category, which the normalizer treats as not collected
// rather than as an error.
type Facts struct {
	// TenantID identifies the Microsoft 365 tenant the facts were
	// collected from.
	TenantID string `json:"tenant_id"`

	// CollectedAt is the timestamp the collector finished its run.
	CollectedAt time.Time `json:"collected_at"`

	License               *LicenseFacts     `json:"license,omitempty"`
	SecureScore           *SecureScoreFacts `json:"secure_score,omitempty"`
	Identity              *IdentityFacts    `json:"identity,omitempty"`
	DataProtection        *CoverageFacts    `json:"data_protection,omitempty"`
	Endpoint              *CoverageFacts    `json:"endpoint,omitempty"`
	CloudApps             *CoverageFacts    `json:"cloud_apps,omitempty"`
	InformationProtection *CoverageFacts    `json:"information_protection,omitempty"`
	ThreatProtection      *ThreatFacts      `json:"threat_protection,omitempty"`
}

// LicenseFacts captures license utilization counts.
type LicenseFacts struct {
	// TotalLicenses is the number of licenses purchased for the tenant.
	TotalLicenses int `json:"total_licenses"`

	// AssignedLicenses is the number of licenses assigned to users.
	AssignedLicenses int `json:"assigned_licenses"`

	// DataCollected indicates whether the collector retrieved this data.
	DataCollected bool `json:"data_collected"`
}

// SecureScoreFacts captures the tenant's Microsoft Secure Score state.
type SecureScoreFacts struct {
	// CurrentScore is the points currently achieved.
	CurrentScore float64 `json:"current_score"`

	// MaxScore is the maximum achievable points for this tenant.
	MaxScore float64 `json:"max_score"`

	// Controls lists the control profiles contributing to the score.
	Controls []ControlProfile `json:"controls,omitempty"`

	// DataCollected indicates whether the collector retrieved this data.
	DataCollected bool `json:"data_collected"`
}

// ControlProfile is a single Secure Score control with its achieved and
// maximum point values.
type ControlProfile struct {
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	CurrentScore  float64 `json:"current_score"`
	MaxScore      float64 `json:"max_score"`
	Implemented   bool    `json:"implemented"`
	ActionURL     string  `json:"action_url,omitempty"`
	Remediation   string  `json:"remediation,omitempty"`
	UserImpact    string  `json:"user_impact,omitempty"`
	ImplementCost string  `json:"implement_cost,omitempty"`
}

// IdentityFacts captures identity posture counts: MFA registration,
// conditional access policies, and privileged/guest account volumes.
type IdentityFacts struct {
	// TotalUsers is the number of enabled user accounts.
	TotalUsers int `json:"total_users"`

	// MFACapableUsers is the number of users registered for MFA.
	MFACapableUsers int `json:"mfa_capable_users"`

	// ConditionalAccessPolicies is the count of enabled CA policies.
	ConditionalAccessPolicies int `json:"conditional_access_policies"`

	// AdminUsers is the count of accounts holding admin roles.
	AdminUsers int `json:"admin_users"`

	// GuestUsers is the count of guest accounts in the directory.
	GuestUsers int `json:"guest_users"`

	// DataCollected indicates whether the collector retrieved this data.
	DataCollected bool `json:"data_collected"`
}

// CoverageFacts is the common shape for categories measured as a
// covered-over-total ratio: DLP-protected items, compliant endpoints,
// sanctioned cloud apps, and labeled files.
type CoverageFacts struct {
	// Total is the number of items in scope for the category.
	Total int `json:"total"`

	// Covered is the number of items meeting the category's control.
	Covered int `json:"covered"`

	// DataCollected indicates whether the collector retrieved this data.
	DataCollected bool `json:"data_collected"`
}

// ThreatFacts captures alert volumes from the tenant's threat protection
// workloads. ActiveAlerts also feeds risk classification independently of
// the category score.
type ThreatFacts struct {
	// ActiveAlerts is the number of open or in-progress alerts.
	ActiveAlerts int `json:"active_alerts"`

	// ResolvedAlerts is the number of alerts resolved in the collection window.
	ResolvedAlerts int `json:"resolved_alerts"`

	// DataCollected indicates whether the collector retrieved this data.
	DataCollected bool `json:"data_collected"`
}
