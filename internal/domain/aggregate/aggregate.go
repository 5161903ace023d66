// Package aggregate reduces a filtered view of the candidate table to the
// KPIs and chart datasets shown on the dashboard. Every function is pure.
package aggregate

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/hirelens/internal/domain/model"
)

// ErrNotNumeric is returned when a column used for statistics is not numeric.
var ErrNotNumeric = errors.New("column is not numeric")

// View is a filtered set of rows.
type View interface {
	Rows() []model.Candidate
	Require(names ...string) error
}

// Table is the unfiltered candidate table with its numeric columns.
type Table interface {
	Numeric() []model.Column
	Require(names ...string) error
}

func numericColumn(t Table, name string) (model.Column, error) {
	if err := t.Require(name); err != nil {
		return model.Column{}, err
	}
	for _, c := range t.Numeric() {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Column{}, fmt.Errorf("%w: %s", ErrNotNumeric, name)
}

// finite drops NaN and infinite values.
func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// present drops NaN cells.
func present(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
