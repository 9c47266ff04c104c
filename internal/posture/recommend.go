package posture

import (
	"fmt"
	"sort"
)

// BuildRecommendations converts an ordered gap list into ranked, de-duplicated
// remediation entries. Gaps with a knowledge base entry get curated guidance;
// anything else falls back to a generic "Review <metric> in <category>"
// template, so generation always terminates with a result and never fails.
//
// A later gap for an already-seen (category, metric) pair updates that entry's
// remediation text without creating a second entry. Output is ordered by
// severity (high, medium, low) and keeps the comparator's order within a tier.
func BuildRecommendations(gaps []GapEntry) []Recommendation {
	var recs []Recommendation
	index := make(map[string]int)

	for _, gap := range gaps {
		key := gap.Category + "/" + gap.Metric
		remediation := remediationFor(gap)
		if i, seen := index[key]; seen {
			recs[i].Remediation = remediation
			continue
		}

		rec := Recommendation{
			ID:       key,
			Category: gap.Category,
			Metric:   gap.Metric,
			Severity: Severity(gap.Impact),
			Impact:   string(gap.Impact),
		}
		if e, ok := lookupKB(gap.Category, gap.Metric); ok {
			rec.Title = e.Title
			rec.Description = e.Description
			rec.Remediation = remediation
			rec.References = e.References
		} else {
			rec.Title = fmt.Sprintf("Review %s in %s", gap.Metric, gap.Category)
			rec.Description = fmt.Sprintf(
				"Current value %.0f for %s is below the best-practice target of %.0f.",
				gap.Current, gap.Metric, gap.Target,
			)
			rec.Remediation = remediation
		}

		index[key] = len(recs)
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return severityRank(recs[i].Severity) < severityRank(recs[j].Severity)
	})
	return recs
}

// remediationFor renders the remediation text for a gap, appending the
// measured shortfall so the entry reflects the most recent comparison.
func remediationFor(gap GapEntry) string {
	if e, ok := lookupKB(gap.Category, gap.Metric); ok {
		return fmt.Sprintf("%s Current: %.0f, target: %.0f.", e.Remediation, gap.Current, gap.Target)
	}
	return fmt.Sprintf(
		"Review the %s configuration for %s and raise it from %.0f toward the target of %.0f.",
		gap.Metric, gap.Category, gap.Current, gap.Target,
	)
}
