package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/hirelens/internal/domain/model"
)

// ScatterPoint is one row of the interview vs probability scatter.
type ScatterPoint struct {
	InterviewAvgScore    float64
	PlacementProbability float64
	Status               string
	SkillsMatch          float64
	CompanyTier          string
	ExperienceCategory   string
	CompetitionLevel     string
}

// Scatter projects every row of the view, without aggregation.
func Scatter(v View) ([]ScatterPoint, error) {
	if err := v.Require(
		model.ColInterviewAvgScore,
		model.ColPlacementProbability,
		model.ColStatus,
		model.ColSkillsMatch,
		model.ColCompanyTier,
		model.ColExperienceCategory,
		model.ColCompetitionLevel,
	); err != nil {
		return nil, err
	}
	rows := v.Rows()
	out := make([]ScatterPoint, len(rows))
	for i, r := range rows {
		out[i] = ScatterPoint{
			InterviewAvgScore:    r.InterviewAvgScore,
			PlacementProbability: r.PlacementProbability,
			Status:               r.Status,
			SkillsMatch:          r.SkillsMatch,
			CompanyTier:          r.CompanyTier,
			ExperienceCategory:   r.ExperienceCategory,
			CompetitionLevel:     r.CompetitionLevel,
		}
	}
	return out, nil
}

// FiveNumber is the box plot summary of a group.
type FiveNumber struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// BoxGroup holds the skills match values of one status.
type BoxGroup struct {
	Status  string
	Values  []float64
	Summary FiveNumber
}

// SkillsByStatus groups skills_match_percentage by status in order of first
// appearance. Rows without a status are left out, as are missing values. A
// group whose values are all missing keeps a zero summary and no values.
func SkillsByStatus(v View) ([]BoxGroup, error) {
	if err := v.Require(model.ColStatus, model.ColSkillsMatch); err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var groups []BoxGroup
	for _, r := range v.Rows() {
		if !r.HasStatus() {
			continue
		}
		i, ok := index[r.Status]
		if !ok {
			i = len(groups)
			index[r.Status] = i
			groups = append(groups, BoxGroup{Status: r.Status})
		}
		groups[i].Values = append(groups[i].Values, r.SkillsMatch)
	}
	for i := range groups {
		groups[i].Values = present(groups[i].Values)
		groups[i].Summary = summarize(groups[i].Values)
	}
	return groups, nil
}

func summarize(vals []float64) FiveNumber {
	if len(vals) == 0 {
		return FiveNumber{}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	q := func(p float64) float64 { return stat.Quantile(p, stat.LinInterp, sorted, nil) }
	return FiveNumber{
		Min:    sorted[0],
		Q1:     q(0.25),
		Median: q(0.5),
		Q3:     q(0.75),
		Max:    sorted[len(sorted)-1],
	}
}
