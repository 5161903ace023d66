// Package filter narrows the candidate table to the rows matching the
// dashboard's four dropdown selections.
package filter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/okian/hirelens/internal/domain/model"
)

// All is the dropdown value meaning "no constraint". The empty string means
// the same thing so that absent query parameters select everything.
const All = "All"

// ErrInvalidSelection is returned when a selection value is not one of the
// offered options.
var ErrInvalidSelection = errors.New("invalid selection")

// StatusDomain is the fixed status enumeration offered to the user. It does not
// depend on the values observed in the file.
var StatusDomain = []string{model.StatusPlaced, model.StatusNotPlaced}

// Source is the table a selection is applied to.
type Source interface {
	Records() []model.Candidate
	Require(names ...string) error
	Distinct(column string) ([]string, error)
}

// Selection holds the four optional equality constraints.
type Selection struct {
	CompanyTier        string
	ExperienceCategory string
	CompetitionLevel   string
	Status             string
}

// constraints pairs each selection value with its column.
func (s Selection) constraints() []constraint {
	return []constraint{
		{model.ColCompanyTier, s.CompanyTier},
		{model.ColExperienceCategory, s.ExperienceCategory},
		{model.ColCompetitionLevel, s.CompetitionLevel},
		{model.ColStatus, s.Status},
	}
}

// Unconstrained reports whether every field is All or empty.
func (s Selection) Unconstrained() bool {
	for _, c := range s.constraints() {
		if c.active() {
			return false
		}
	}
	return true
}

// String renders the selection for logs.
func (s Selection) String() string {
	return fmt.Sprintf("company_tier=%s experience_category=%s competition_level=%s status=%s",
		orAll(s.CompanyTier), orAll(s.ExperienceCategory), orAll(s.CompetitionLevel), orAll(s.Status))
}

// Validate rejects values outside the closed enumerations in opts.
func (s Selection) Validate(opts Options) error {
	checks := []struct {
		column string
		value  string
		domain []string
	}{
		{model.ColCompanyTier, s.CompanyTier, opts.CompanyTier},
		{model.ColExperienceCategory, s.ExperienceCategory, opts.ExperienceCategory},
		{model.ColCompetitionLevel, s.CompetitionLevel, opts.CompetitionLevel},
		{model.ColStatus, s.Status, opts.Status},
	}
	for _, c := range checks {
		if c.value == "" || c.value == All {
			continue
		}
		if !slices.Contains(c.domain, c.value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSelection, c.column, c.value)
		}
	}
	return nil
}

type constraint struct {
	column string
	value  string
}

func (c constraint) active() bool { return c.value != "" && c.value != All }

// View is the ordered subset of rows selected by a Selection.
type View struct {
	source Source
	rows   []model.Candidate
}

// NewView wraps rows that were already selected from source.
func NewView(source Source, rows []model.Candidate) View {
	return View{source: source, rows: rows}
}

// Rows returns the selected rows in table order. Callers must not modify it.
func (v View) Rows() []model.Candidate { return v.rows }

// Len returns the number of selected rows.
func (v View) Len() int { return len(v.rows) }

// Require checks that the underlying table has the named columns.
func (v View) Require(names ...string) error {
	if v.source == nil {
		return nil
	}
	return v.source.Require(names...)
}

// Apply returns the rows of src matching every active constraint in sel using
// exact, case-sensitive equality. A constrained column must exist in src.
func Apply(src Source, sel Selection) (View, error) {
	active := make([]constraint, 0, 4)
	for _, c := range sel.constraints() {
		if !c.active() {
			continue
		}
		if err := src.Require(c.column); err != nil {
			return View{}, err
		}
		active = append(active, c)
	}

	records := src.Records()
	if len(active) == 0 {
		return NewView(src, records), nil
	}

	rows := make([]model.Candidate, 0, len(records))
	for _, r := range records {
		if matches(r, active) {
			rows = append(rows, r)
		}
	}
	return NewView(src, rows), nil
}

func matches(r model.Candidate, active []constraint) bool {
	for _, c := range active {
		if r.Categorical(c.column) != c.value {
			return false
		}
	}
	return true
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}
