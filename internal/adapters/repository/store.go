// Package repository loads the candidate table and memoises it per path.
package repository

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/hirelens/internal/domain/model"
)

// Table is the immutable, loaded candidate table.
type Table struct {
	path    string
	records []model.Candidate
	columns map[string]struct{}
	numeric []model.Column
}

// FromRecords builds a Table from already typed rows. All known columns are
// treated as present and the four numeric fields become the numeric columns.
func FromRecords(records []model.Candidate) *Table {
	t := &Table{
		records: records,
		columns: make(map[string]struct{}),
	}
	for _, c := range model.CategoricalColumns {
		t.columns[c] = struct{}{}
	}
	fields := []struct {
		name string
		get  func(model.Candidate) float64
	}{
		{model.ColInterviewAvgScore, func(c model.Candidate) float64 { return c.InterviewAvgScore }},
		{model.ColSkillsMatch, func(c model.Candidate) float64 { return c.SkillsMatch }},
		{model.ColPlacementProbability, func(c model.Candidate) float64 { return c.PlacementProbability }},
		{model.ColCertifications, func(c model.Candidate) float64 { return c.Certifications }},
	}
	for _, f := range fields {
		vals := make([]float64, len(records))
		for i, r := range records {
			vals[i] = f.get(r)
		}
		t.columns[f.name] = struct{}{}
		t.numeric = append(t.numeric, model.Column{Name: f.name, Values: vals})
	}
	return t
}

// Path returns the file the table was loaded from, empty for in-memory tables.
func (t *Table) Path() string { return t.path }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.records) }

// Records returns the rows in file order. Callers must not modify the slice.
func (t *Table) Records() []model.Candidate { return t.records }

// Numeric returns the numeric columns in header order.
func (t *Table) Numeric() []model.Column { return t.numeric }

// HasColumn reports whether the header contained name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Require returns ErrMissingColumn for the first absent column.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, n)
		}
	}
	return nil
}

// Distinct returns the sorted, deduplicated, non-missing values of a
// categorical column.
func (t *Table) Distinct(column string) ([]string, error) {
	if err := t.Require(column); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range t.records {
		v := r.Categorical(column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// NumericValues returns a copy-free view of a numeric column by name.
func (t *Table) NumericValues(name string) ([]float64, error) {
	for _, c := range t.numeric {
		if c.Name == name {
			return c.Values, nil
		}
	}
	if err := t.Require(name); err != nil {
		return nil, err
	}
	// Present but not numeric: every cell counts as missing.
	vals := make([]float64, len(t.records))
	for i := range vals {
		vals[i] = math.NaN()
	}
	return vals, nil
}

var nan = math.NaN()
