// Package config provides configuration loading and defaults for m365assess.
package config

import "github.com/LM-Fabs/m365assess/internal/posture"

// DefaultConfigDir is the default location for m365assess configuration.
const DefaultConfigDir = "~/.config/m365assess"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "m365assess.db"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}

// DefaultTargets is the built-in best-practice target table, used when the
// config file defines no targets of its own. Order matters: it is the
// comparator's input order and the recommendation tiebreaker.
var DefaultTargets = []posture.BestPracticeTarget{
	{Category: posture.CategoryIdentity, Metric: posture.MetricMFAAdoption, Target: 90, Impact: posture.ImpactHigh},
	{Category: posture.CategorySecureScore, Metric: posture.MetricPercentage, Target: 80, Impact: posture.ImpactHigh},
	{Category: posture.CategoryIdentity, Metric: posture.MetricCAPolicies, Target: 3, Impact: posture.ImpactHigh},
	{Category: posture.CategoryEndpoint, Metric: posture.MetricCoveragePercent, Target: 90, Impact: posture.ImpactMedium},
	{Category: posture.CategoryDataProtection, Metric: posture.MetricCoveragePercent, Target: 80, Impact: posture.ImpactMedium},
	{Category: posture.CategoryThreatProtection, Metric: posture.MetricResolutionRate, Target: 85, Impact: posture.ImpactMedium},
	{Category: posture.CategoryInformationProtection, Metric: posture.MetricCoveragePercent, Target: 70, Impact: posture.ImpactLow},
	{Category: posture.CategoryCloudApps, Metric: posture.MetricCoveragePercent, Target: 75, Impact: posture.ImpactLow},
	{Category: posture.CategoryLicense, Metric: posture.MetricUtilizationPercent, Target: 80, Impact: posture.ImpactLow},
}
