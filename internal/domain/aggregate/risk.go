package aggregate

import "github.com/okian/hirelens/internal/domain/model"

// Risk categories, bucketed on a 0-1 probability scale.
const (
	RiskHigh         = "High Risk"
	RiskMedium       = "Medium Risk"
	RiskLow          = "Low Risk"
	RiskUnclassified = "Unclassified"
)

// RiskCategories lists the categories in display order.
var RiskCategories = []string{RiskHigh, RiskMedium, RiskLow, RiskUnclassified}

// RiskShare is the number of rows in one risk category.
type RiskShare struct {
	Category string
	Count    int
}

// Classify maps a placement probability to a category using the right-closed
// bins (0, 0.4], (0.4, 0.7] and (0.7, 1]. Zero, negatives, values above one
// and NaN fall in no bin and are Unclassified.
func Classify(score float64) string {
	switch {
	case score > 0 && score <= 0.4:
		return RiskHigh
	case score > 0.4 && score <= 0.7:
		return RiskMedium
	case score > 0.7 && score <= 1:
		return RiskLow
	default:
		return RiskUnclassified
	}
}

// RiskBuckets counts the view per category. All four categories are returned
// in RiskCategories order, including empty ones.
func RiskBuckets(v View) ([]RiskShare, error) {
	if err := v.Require(model.ColPlacementProbability); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(RiskCategories))
	for _, r := range v.Rows() {
		counts[Classify(r.PlacementProbability)]++
	}
	out := make([]RiskShare, len(RiskCategories))
	for i, c := range RiskCategories {
		out[i] = RiskShare{Category: c, Count: counts[c]}
	}
	return out, nil
}
