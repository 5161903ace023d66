package filter_test

import (
	"errors"
	"testing"

	"github.com/okian/hirelens/internal/adapters/repository"
	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func candidates() []model.Candidate {
	return []model.Candidate{
		{CompanyTier: "Tier 1", ExperienceCategory: "Fresher", CompetitionLevel: "High", Status: "placed"},
		{CompanyTier: "Tier 2", ExperienceCategory: "Experienced", CompetitionLevel: "Low", Status: "not placed"},
		{CompanyTier: "Tier 1", ExperienceCategory: "Experienced", CompetitionLevel: "High", Status: "placed"},
		{CompanyTier: "Tier 3", ExperienceCategory: "Fresher", CompetitionLevel: "Medium", Status: ""},
		{CompanyTier: "", ExperienceCategory: "Fresher", CompetitionLevel: "High", Status: "not placed"},
		{CompanyTier: "tier 1", ExperienceCategory: "Fresher", CompetitionLevel: "High", Status: "placed"},
	}
}

// partialSource lacks the company_tier column.
type partialSource struct{ rows []model.Candidate }

func (p partialSource) Records() []model.Candidate { return p.rows }

func (p partialSource) Require(names ...string) error {
	for _, n := range names {
		if n == model.ColCompanyTier {
			return repository.ErrMissingColumn
		}
	}
	return nil
}

func (p partialSource) Distinct(column string) ([]string, error) {
	if column == model.ColCompanyTier {
		return nil, repository.ErrMissingColumn
	}
	return []string{"x"}, nil
}

func TestApply(t *testing.T) {
	Convey("Given a candidate table", t, func() {
		table := repository.FromRecords(candidates())

		Convey("When no constraint is selected", func() {
			for _, sel := range []filter.Selection{
				{},
				{CompanyTier: filter.All, ExperienceCategory: filter.All, CompetitionLevel: filter.All, Status: filter.All},
			} {
				view, err := filter.Apply(table, sel)

				So(err, ShouldBeNil)
				So(sel.Unconstrained(), ShouldBeTrue)
				So(view.Rows(), ShouldResemble, table.Records())
			}
		})

		Convey("When a single constraint is selected", func() {
			view, err := filter.Apply(table, filter.Selection{CompanyTier: "Tier 1"})

			Convey("Then only exact, case-sensitive matches remain", func() {
				So(err, ShouldBeNil)
				So(view.Len(), ShouldEqual, 2)
				for _, r := range view.Rows() {
					So(r.CompanyTier, ShouldEqual, "Tier 1")
				}
			})
		})

		Convey("When constraints are combined", func() {
			view, err := filter.Apply(table, filter.Selection{
				CompanyTier:        "Tier 1",
				ExperienceCategory: "Experienced",
				Status:             "placed",
			})

			Convey("Then they are ANDed together", func() {
				So(err, ShouldBeNil)
				So(view.Len(), ShouldEqual, 1)
				So(view.Rows()[0], ShouldResemble, candidates()[2])
			})
		})

		Convey("When the selection matches nothing", func() {
			view, err := filter.Apply(table, filter.Selection{
				CompanyTier:        "Tier 3",
				ExperienceCategory: "Experienced",
				CompetitionLevel:   "Low",
				Status:             "placed",
			})

			Convey("Then the view is empty and no error is raised", func() {
				So(err, ShouldBeNil)
				So(view.Len(), ShouldEqual, 0)
			})
		})

		Convey("When any selection is applied", func() {
			sels := []filter.Selection{
				{Status: "placed"},
				{Status: "not placed"},
				{CompetitionLevel: "High"},
				{ExperienceCategory: "Fresher", CompetitionLevel: "High"},
			}

			Convey("Then the view is a subset of the table in table order", func() {
				for _, sel := range sels {
					view, err := filter.Apply(table, sel)
					So(err, ShouldBeNil)
					So(view.Len(), ShouldBeLessThanOrEqualTo, table.Len())
					So(isOrderedSubset(view.Rows(), table.Records()), ShouldBeTrue)
				}
			})
		})
	})

	Convey("Given a table without a constrained column", t, func() {
		src := partialSource{rows: candidates()}

		Convey("When filtering on that column", func() {
			_, err := filter.Apply(src, filter.Selection{CompanyTier: "Tier 1"})

			Convey("Then the missing column fails the pass", func() {
				So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
			})
		})

		Convey("When filtering on other columns", func() {
			view, err := filter.Apply(src, filter.Selection{Status: "placed"})

			Convey("Then it succeeds", func() {
				So(err, ShouldBeNil)
				So(view.Len(), ShouldEqual, 3)
			})
		})
	})
}

func TestOptions(t *testing.T) {
	Convey("Given a candidate table", t, func() {
		opts := filter.OptionsFor(repository.FromRecords(candidates()))

		Convey("Then observed values are sorted, unique and drop missing cells", func() {
			So(opts.CompanyTier, ShouldResemble, []string{filter.All, "Tier 1", "Tier 2", "Tier 3", "tier 1"})
			So(opts.ExperienceCategory, ShouldResemble, []string{filter.All, "Experienced", "Fresher"})
			So(opts.CompetitionLevel, ShouldResemble, []string{filter.All, "High", "Low", "Medium"})
		})

		Convey("Then status uses the fixed domain", func() {
			So(opts.Status, ShouldResemble, []string{filter.All, "placed", "not placed"})
		})
	})

	Convey("Given a table without company_tier", t, func() {
		opts := filter.OptionsFor(partialSource{})

		Convey("Then that dropdown only offers All", func() {
			So(opts.CompanyTier, ShouldResemble, []string{filter.All})
			So(opts.ExperienceCategory, ShouldResemble, []string{filter.All, "x"})
		})
	})
}

func TestSelection_Validate(t *testing.T) {
	Convey("Given the options of a table", t, func() {
		opts := filter.OptionsFor(repository.FromRecords(candidates()))

		Convey("When every value is offered", func() {
			sel := filter.Selection{CompanyTier: "Tier 2", ExperienceCategory: filter.All, Status: "not placed"}

			So(sel.Validate(opts), ShouldBeNil)
		})

		Convey("When a value is not offered", func() {
			err := filter.Selection{CompetitionLevel: "Extreme"}.Validate(opts)

			Convey("Then it is rejected naming the column", func() {
				So(errors.Is(err, filter.ErrInvalidSelection), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "competition_level")
			})
		})

		Convey("When status is outside the fixed domain", func() {
			err := filter.Selection{Status: "withdrawn"}.Validate(opts)

			So(errors.Is(err, filter.ErrInvalidSelection), ShouldBeTrue)
		})
	})
}

func TestSelection_String(t *testing.T) {
	Convey("Given a partly set selection", t, func() {
		sel := filter.Selection{Status: "placed"}

		Convey("Then unset fields print as All", func() {
			So(sel.String(), ShouldEqual,
				"company_tier=All experience_category=All competition_level=All status=placed")
			So(sel.Unconstrained(), ShouldBeFalse)
		})
	})
}

func isOrderedSubset(sub, all []model.Candidate) bool {
	j := 0
	for _, r := range sub {
		for j < len(all) && all[j] != r {
			j++
		}
		if j == len(all) {
			return false
		}
		j++
	}
	return true
}
