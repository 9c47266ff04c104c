package posture

import (
	"errors"
	"strings"
	"testing"
)

func TestAggregate_DefaultWeights(t *testing.T) {
	scores := map[string]int{
		CategoryLicense:     85,
		CategorySecureScore: 70,
		CategoryIdentity:    60,
	}
	// 85*0.3 + 70*0.4 + 60*0.3 = 71.5, which rounds half up.
	overall, err := Aggregate(scores, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overall != 72 {
		t.Errorf("overall = %d, want 72", overall)
	}
}

func TestAggregate_RedistributesMissingCategoryWeight(t *testing.T) {
	// secureScore absent: its 0.4 spreads across license and identity,
	// leaving them at 0.5 each.
	scores := map[string]int{
		CategoryLicense:  80,
		CategoryIdentity: 60,
	}
	overall, err := Aggregate(scores, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overall != 70 {
		t.Errorf("overall = %d, want 70 after redistribution", overall)
	}
}

func TestAggregate_SingleCategoryTakesFullWeight(t *testing.T) {
	scores := map[string]int{CategoryIdentity: 63}
	overall, err := Aggregate(scores, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overall != 63 {
		t.Errorf("overall = %d, want 63", overall)
	}
}

func TestAggregate_WeightSumNotOne(t *testing.T) {
	scores := map[string]int{"a": 50, "b": 50}
	weights := map[string]float64{"a": 0.5, "b": 0.4}
	_, err := Aggregate(scores, weights)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Key != "weights" {
		t.Errorf("error key = %q, want \"weights\"", cfgErr.Key)
	}
}

func TestAggregate_NegativeWeight(t *testing.T) {
	scores := map[string]int{"a": 50, "b": 50}
	weights := map[string]float64{"a": 1.2, "b": -0.2}
	_, err := Aggregate(scores, weights)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(cfgErr.Key, "b") {
		t.Errorf("error key = %q, want it to name the offending weight", cfgErr.Key)
	}
}

func TestAggregate_NoOverlapBetweenWeightsAndScores(t *testing.T) {
	scores := map[string]int{"x": 50}
	_, err := Aggregate(scores, DefaultWeights())
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError when no weighted category is present, got %v", err)
	}
}

func TestAggregate_UnweightedCategoriesIgnored(t *testing.T) {
	scores := map[string]int{
		CategoryLicense:     85,
		CategorySecureScore: 70,
		CategoryIdentity:    60,
		CategoryEndpoint:    5, // no weight configured, must not drag the score
	}
	overall, err := Aggregate(scores, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overall != 72 {
		t.Errorf("overall = %d, want 72 with unweighted category ignored", overall)
	}
}

func TestAggregate_ResultWithinRange(t *testing.T) {
	cases := []map[string]int{
		{CategoryLicense: 0, CategorySecureScore: 0, CategoryIdentity: 0},
		{CategoryLicense: 100, CategorySecureScore: 100, CategoryIdentity: 100},
		{CategoryLicense: 0, CategorySecureScore: 100, CategoryIdentity: 50},
		{CategoryLicense: 33, CategoryIdentity: 67},
	}
	for _, scores := range cases {
		overall, err := Aggregate(scores, DefaultWeights())
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", scores, err)
		}
		if overall < 0 || overall > 100 {
			t.Errorf("overall = %d for %v, want within [0,100]", overall, scores)
		}
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	weights := map[string]float64{"a": 0.1, "b": 0.2, "c": 0.3, "d": 0.4}
	scores := map[string]int{"a": 13, "b": 57, "c": 91, "d": 22}
	first, err := Aggregate(scores, weights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := Aggregate(scores, weights)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d produced %d, first run produced %d", i, again, first)
		}
	}
}

func TestRedistributeWeights_PreservesSum(t *testing.T) {
	weights := DefaultWeights()
	scores := map[string]int{CategoryLicense: 50, CategoryIdentity: 50}
	effective, err := RedistributeWeights(weights, scores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0.0
	for _, w := range effective {
		sum += w
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("redistributed weights sum to %g, want 1.0", sum)
	}
	if effective[CategoryLicense] != 0.5 || effective[CategoryIdentity] != 0.5 {
		t.Errorf("effective weights = %v, want 0.5 each", effective)
	}
}
