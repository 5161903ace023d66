package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/hirelens/internal/domain/model"
)

// DefaultTopFeatures is how many features the ranking keeps by default.
const DefaultTopFeatures = 10

// Feature is one numeric column and its absolute correlation with the
// placement probability.
type Feature struct {
	Name       string
	Importance float64
}

// FeatureImportance ranks the numeric columns of the whole table by the
// absolute Pearson correlation with placement_probability_score. Each pair
// uses the rows where both cells are present. Undefined correlations are
// dropped, the target is excluded by name and at most top features are kept.
func FeatureImportance(t Table, top int) ([]Feature, error) {
	target, err := numericColumn(t, model.ColPlacementProbability)
	if err != nil {
		return nil, err
	}
	if top <= 0 {
		top = DefaultTopFeatures
	}

	out := make([]Feature, 0, len(t.Numeric()))
	for _, c := range t.Numeric() {
		if c.Name == target.Name {
			continue
		}
		r := pairwiseCorrelation(c.Values, target.Values)
		if math.IsNaN(r) {
			continue
		}
		out = append(out, Feature{Name: c.Name, Importance: math.Min(math.Abs(r), 1)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Importance > out[j].Importance })
	if len(out) > top {
		out = out[:top]
	}
	return out, nil
}

func pairwiseCorrelation(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
