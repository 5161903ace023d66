package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/hirelens/internal/domain/model"
)

// missingMarkers are the cell values read as missing, in addition to empty cells.
var missingMarkers = []string{"", "NA", "NaN", "nan", "N/A", "null", "<nil>"}

// Load reads the CSV at path into a Table. It fails with ErrFileNotFound when
// the file does not exist and ErrParse when the content is not a table.
func Load(ctx context.Context, path string) (*Table, error) {
	const op = "repository.load"
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w: %s: %w", op, ErrFileNotFound, path, err)
		}
		return nil, fmt.Errorf("%s: open %s: %w", op, path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Parse(ctx, path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// Parse decodes CSV content into a Table. name is recorded as the table path.
func Parse(_ context.Context, name string, r io.Reader) (*Table, error) {
	types := make(map[string]series.Type, len(model.CategoricalColumns))
	for _, c := range model.CategoricalColumns {
		types[c] = series.String
	}

	df := dataframe.ReadCSV(r,
		dataframe.WithTypes(types),
		dataframe.NaNValues(missingMarkers),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, name, df.Err)
	}
	if df.Ncol() == 0 {
		return nil, fmt.Errorf("%w: %s: no columns", ErrParse, name)
	}

	t := &Table{
		path:    name,
		records: make([]model.Candidate, df.Nrow()),
		columns: make(map[string]struct{}, df.Ncol()),
	}
	for _, col := range df.Names() {
		t.columns[col] = struct{}{}
	}

	for _, col := range model.CategoricalColumns {
		if !t.HasColumn(col) {
			continue
		}
		s := df.Col(col)
		for i := range t.records {
			if e := s.Elem(i); !e.IsNA() {
				setCategorical(&t.records[i], col, e.String())
			}
		}
	}

	numericFields := []struct {
		name string
		set  func(*model.Candidate, float64)
	}{
		{model.ColInterviewAvgScore, func(c *model.Candidate, v float64) { c.InterviewAvgScore = v }},
		{model.ColSkillsMatch, func(c *model.Candidate, v float64) { c.SkillsMatch = v }},
		{model.ColPlacementProbability, func(c *model.Candidate, v float64) { c.PlacementProbability = v }},
		{model.ColCertifications, func(c *model.Candidate, v float64) { c.Certifications = v }},
	}
	for _, f := range numericFields {
		var vals []float64
		if t.HasColumn(f.name) {
			vals = df.Col(f.name).Float()
		}
		for i := range t.records {
			v := nan
			if vals != nil {
				v = vals[i]
			}
			f.set(&t.records[i], v)
		}
	}

	// Only integer and float columns take part in correlations; booleans and
	// strings do not.
	names := df.Names()
	for i, typ := range df.Types() {
		if typ != series.Int && typ != series.Float {
			continue
		}
		t.numeric = append(t.numeric, model.Column{
			Name:   names[i],
			Values: df.Col(names[i]).Float(),
		})
	}
	return t, nil
}

func setCategorical(c *model.Candidate, column, v string) {
	switch column {
	case model.ColCompanyTier:
		c.CompanyTier = v
	case model.ColExperienceCategory:
		c.ExperienceCategory = v
	case model.ColCompetitionLevel:
		c.CompetitionLevel = v
	case model.ColStatus:
		c.Status = v
	}
}
