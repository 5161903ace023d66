package aggregate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/hirelens/internal/domain/model"
)

// DefaultHistogramBins is the bin count of the score distribution.
const DefaultHistogramBins = 25

// Bin is one histogram bar over [Low, High). The last bin also holds High.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// ScoreHistogram splits the placement probabilities of the whole table into
// equal-width bins between the smallest and largest finite value. Infinite
// values are left out. An empty column yields no bins. A single bin holds
// everything when the range is zero or too narrow or too wide to split.
func ScoreHistogram(t Table, bins int) ([]Bin, error) {
	col, err := numericColumn(t, model.ColPlacementProbability)
	if err != nil {
		return nil, err
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	vals := finite(col.Values)
	if len(vals) == 0 {
		return []Bin{}, nil
	}
	lo, hi := floats.Min(vals), floats.Max(vals)
	width := (hi - lo) / float64(bins)
	if width == 0 || math.IsInf(width, 0) {
		return []Bin{{Low: lo, High: hi, Count: len(vals)}}, nil
	}

	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi
	for _, v := range vals {
		i := min(max(int((v-lo)/width), 0), bins-1)
		out[i].Count++
	}
	return out, nil
}
