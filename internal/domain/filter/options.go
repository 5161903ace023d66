package filter

import "github.com/okian/hirelens/internal/domain/model"

// Options are the values each dropdown offers, each list starting with All.
type Options struct {
	CompanyTier        []string `json:"company_tier"`
	ExperienceCategory []string `json:"experience_category"`
	CompetitionLevel   []string `json:"competition_level"`
	Status             []string `json:"status"`
}

// OptionsFor collects the observed, sorted, de-duplicated values of the three
// categorical columns and the fixed status domain. A missing column yields
// only the All entry.
func OptionsFor(src Source) Options {
	return Options{
		CompanyTier:        observed(src, model.ColCompanyTier),
		ExperienceCategory: observed(src, model.ColExperienceCategory),
		CompetitionLevel:   observed(src, model.ColCompetitionLevel),
		Status:             append([]string{All}, StatusDomain...),
	}
}

func observed(src Source, column string) []string {
	vals, err := src.Distinct(column)
	if err != nil {
		return []string{All}
	}
	return append([]string{All}, vals...)
}
