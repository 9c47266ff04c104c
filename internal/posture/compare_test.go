package posture

import "testing"

func snapshot(categories map[string]CategoryMetrics) Metrics {
	return Metrics{Categories: categories}
}

func TestCompare_ReportsShortfalls(t *testing.T) {
	m := snapshot(map[string]CategoryMetrics{
		CategoryIdentity: {
			Values:        map[string]float64{MetricMFAAdoption: 60, MetricCAPolicies: 5},
			Score:         60,
			DataCollected: true,
		},
	})
	targets := []BestPracticeTarget{
		{Category: CategoryIdentity, Metric: MetricMFAAdoption, Target: 90, Impact: ImpactHigh},
		{Category: CategoryIdentity, Metric: MetricCAPolicies, Target: 3, Impact: ImpactHigh},
	}

	gaps := Compare(m, targets)
	if len(gaps) != 1 {
		t.Fatalf("got %d gaps, want 1 (CA policy target is met)", len(gaps))
	}
	gap := gaps[0]
	if gap.Metric != MetricMFAAdoption || gap.Current != 60 || gap.Target != 90 {
		t.Errorf("unexpected gap: %+v", gap)
	}
}

func TestCompare_MetricAtTargetYieldsNoGap(t *testing.T) {
	m := snapshot(map[string]CategoryMetrics{
		CategoryIdentity: {
			Values:        map[string]float64{MetricMFAAdoption: 90},
			DataCollected: true,
		},
	})
	targets := []BestPracticeTarget{
		{Category: CategoryIdentity, Metric: MetricMFAAdoption, Target: 90, Impact: ImpactHigh},
	}
	if gaps := Compare(m, targets); len(gaps) != 0 {
		t.Errorf("got %d gaps, want 0 when current equals target", len(gaps))
	}
}

func TestCompare_AbsentMetricTreatedAsZero(t *testing.T) {
	m := snapshot(map[string]CategoryMetrics{})
	targets := []BestPracticeTarget{
		{Category: CategoryEndpoint, Metric: MetricCoveragePercent, Target: 90, Impact: ImpactMedium},
	}
	gaps := Compare(m, targets)
	if len(gaps) != 1 {
		t.Fatalf("got %d gaps, want 1 for absent metric", len(gaps))
	}
	if gaps[0].Current != 0 {
		t.Errorf("current = %g, want 0 for absent metric", gaps[0].Current)
	}
}

func TestCompare_Ordering(t *testing.T) {
	m := snapshot(map[string]CategoryMetrics{
		CategoryIdentity: {
			Values: map[string]float64{MetricMFAAdoption: 50}, DataCollected: true,
		},
		CategorySecureScore: {
			Values: map[string]float64{MetricPercentage: 75}, DataCollected: true,
		},
		CategoryEndpoint: {
			Values: map[string]float64{MetricCoveragePercent: 30}, DataCollected: true,
		},
		CategoryCloudApps: {
			Values: map[string]float64{MetricCoveragePercent: 30}, DataCollected: true,
		},
	})
	targets := []BestPracticeTarget{
		{Category: CategoryCloudApps, Metric: MetricCoveragePercent, Target: 75, Impact: ImpactLow},
		{Category: CategoryEndpoint, Metric: MetricCoveragePercent, Target: 90, Impact: ImpactMedium},
		{Category: CategorySecureScore, Metric: MetricPercentage, Target: 80, Impact: ImpactHigh},
		{Category: CategoryIdentity, Metric: MetricMFAAdoption, Target: 90, Impact: ImpactHigh},
	}

	gaps := Compare(m, targets)
	want := []string{
		CategoryIdentity,    // high impact, shortfall 40
		CategorySecureScore, // high impact, shortfall 5
		CategoryEndpoint,    // medium impact
		CategoryCloudApps,   // low impact
	}
	if len(gaps) != len(want) {
		t.Fatalf("got %d gaps, want %d", len(gaps), len(want))
	}
	for i, category := range want {
		if gaps[i].Category != category {
			t.Errorf("gap[%d].Category = %s, want %s", i, gaps[i].Category, category)
		}
	}
}

func TestCompare_TiesBrokenByCategoryName(t *testing.T) {
	m := snapshot(map[string]CategoryMetrics{})
	targets := []BestPracticeTarget{
		{Category: "zeta", Metric: "m", Target: 50, Impact: ImpactHigh},
		{Category: "alpha", Metric: "m", Target: 50, Impact: ImpactHigh},
	}
	gaps := Compare(m, targets)
	if len(gaps) != 2 {
		t.Fatalf("got %d gaps, want 2", len(gaps))
	}
	if gaps[0].Category != "alpha" || gaps[1].Category != "zeta" {
		t.Errorf("tie order = [%s, %s], want [alpha, zeta]", gaps[0].Category, gaps[1].Category)
	}
}

func TestCompare_EveryGapIsShortfall(t *testing.T) {
	m := snapshot(map[string]CategoryMetrics{
		CategoryIdentity: {
			Values: map[string]float64{MetricMFAAdoption: 95, MetricCAPolicies: 1}, DataCollected: true,
		},
	})
	targets := []BestPracticeTarget{
		{Category: CategoryIdentity, Metric: MetricMFAAdoption, Target: 90, Impact: ImpactHigh},
		{Category: CategoryIdentity, Metric: MetricCAPolicies, Target: 3, Impact: ImpactHigh},
		{Category: CategoryEndpoint, Metric: MetricCoveragePercent, Target: 90, Impact: ImpactMedium},
	}
	gaps := Compare(m, targets)
	for _, gap := range gaps {
		if gap.Current >= gap.Target {
			t.Errorf("gap %s/%s has current %g >= target %g", gap.Category, gap.Metric, gap.Current, gap.Target)
		}
	}
}
