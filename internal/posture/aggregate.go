package posture

import (
	"fmt"
	"math"
	"sort"
)

// weightSumTolerance is how far the (redistributed) weight sum may deviate
// from 1.0 before aggregation fails.
const weightSumTolerance = 1e-9

// DefaultWeights is the default category weight table for the three-category
// scheme. Deployments may configure any category set; explicit weights are
// required for every configured category.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		CategoryLicense:     0.3,
		CategorySecureScore: 0.4,
		CategoryIdentity:    0.3,
	}
}

// RedistributeWeights returns the effective weight map for the categories
// actually present in the score map. The weight of each configured category
// missing from scores is spread proportionally across the remaining ones, so
// a weight table summing to 1.0 still sums to 1.0 after redistribution.
func RedistributeWeights(weights map[string]float64, scores map[string]int) (map[string]float64, error) {
	present := make(map[string]float64)
	presentSum := 0.0
	totalSum := 0.0
	for category, w := range weights {
		if w < 0 {
			return nil, &ConfigError{
				Key:    "weights." + category,
				Reason: fmt.Sprintf("weight must not be negative, got %g", w),
			}
		}
		totalSum += w
		if _, ok := scores[category]; ok {
			present[category] = w
			presentSum += w
		}
	}

	if len(present) == 0 {
		return nil, &ConfigError{
			Key:    "weights",
			Reason: "no configured category is present in the score map",
		}
	}
	if presentSum == 0 {
		return nil, &ConfigError{
			Key:    "weights",
			Reason: "weights of present categories sum to zero",
		}
	}

	// Scaling by totalSum/presentSum hands each absent category's weight to
	// the remaining categories in proportion to their own weights.
	for category, w := range present {
		present[category] = w * totalSum / presentSum
	}
	return present, nil
}

// Aggregate combines category scores into the overall 0-100 score using the
// configured weights. Categories in the score map without a configured weight
// contribute nothing. Fails with a ConfigError when the redistributed weights
// do not sum to 1.0 within tolerance. Deterministic for identical inputs.
func Aggregate(scores map[string]int, weights map[string]float64) (int, error) {
	effective, err := RedistributeWeights(weights, scores)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, w := range effective {
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return 0, &ConfigError{
			Key:    "weights",
			Reason: fmt.Sprintf("weights sum to %g after redistribution, want 1.0", sum),
		}
	}

	// Iterate in sorted order so float accumulation is reproducible.
	categories := make([]string, 0, len(effective))
	for category := range effective {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	weighted := 0.0
	for _, category := range categories {
		weighted += float64(scores[category]) * effective[category]
	}
	return roundHalfUp(weighted), nil
}
