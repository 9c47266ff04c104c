package posture

import "sort"

// Compare diffs the current metrics snapshot against the ordered target
// table and returns the gap list: one entry per target whose current value
// falls short. A metric absent from the snapshot is treated as 0, so it still
// gaps against any positive target.
//
// Gaps are ordered by impact (high, medium, low), then by shortfall size
// descending within a tier, with ties broken by category name ascending for
// reproducible output.
func Compare(m Metrics, targets []BestPracticeTarget) []GapEntry {
	var gaps []GapEntry
	for _, t := range targets {
		current, _ := m.Value(t.Category, t.Metric)
		if current < t.Target {
			gaps = append(gaps, GapEntry{
				Category: t.Category,
				Metric:   t.Metric,
				Current:  current,
				Target:   t.Target,
				Impact:   t.Impact,
			})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		if a, b := impactRank(gaps[i].Impact), impactRank(gaps[j].Impact); a != b {
			return a < b
		}
		gi := gaps[i].Target - gaps[i].Current
		gj := gaps[j].Target - gaps[j].Current
		if gi != gj {
			return gi > gj
		}
		return gaps[i].Category < gaps[j].Category
	})
	return gaps
}
