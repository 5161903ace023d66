package aggregate_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/okian/hirelens/internal/adapters/repository"
	"github.com/okian/hirelens/internal/domain/aggregate"
	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var nan = math.NaN()

func row(status string, interview, skills, prob, certs float64) model.Candidate {
	return model.Candidate{
		CompanyTier:          "Tier 1",
		ExperienceCategory:   "Fresher",
		CompetitionLevel:     "High",
		Status:               status,
		InterviewAvgScore:    interview,
		SkillsMatch:          skills,
		PlacementProbability: prob,
		Certifications:       certs,
	}
}

// tenRows has six placed and four not placed candidates.
func tenRows() []model.Candidate {
	return []model.Candidate{
		row("placed", 80, 90, 0.9, 3),
		row("placed", 70, 85, 0.8, 3),
		row("not placed", 40, 50, 0.3, 1),
		row("placed", 75, 70, 0.65, 2),
		row("not placed", 50, 60, 0.2, 0),
		row("placed", 90, 95, 0.95, 4),
		row("not placed", 45, 55, 0.35, 1),
		row("placed", 60, 75, 0.55, 2),
		row("not placed", 55, 40, 0.45, 0),
		row("placed", 85, 80, 0.75, 2),
	}
}

func view(t *testing.T, rows []model.Candidate, sel filter.Selection) filter.View {
	t.Helper()
	v, err := filter.Apply(repository.FromRecords(rows), sel)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	return v
}

// missingView is a view over a table without the given column.
type missingView struct {
	rows    []model.Candidate
	missing string
}

func (m missingView) Rows() []model.Candidate { return m.rows }

func (m missingView) Require(names ...string) error {
	for _, n := range names {
		if n == m.missing {
			return fmt.Errorf("%w: %s", repository.ErrMissingColumn, n)
		}
	}
	return nil
}

func TestComputeKPIs(t *testing.T) {
	Convey("Given ten rows with six placed and no filter", t, func() {
		k, err := aggregate.ComputeKPIs(view(t, tenRows(), filter.Selection{}))

		Convey("Then the rates follow from the status counts", func() {
			So(err, ShouldBeNil)
			So(k.TotalCandidates, ShouldEqual, 10)
			So(k.PlacementRate, ShouldAlmostEqual, 60.0)
			So(k.AcceptanceRate, ShouldAlmostEqual, 60.0)
			So(k.DropoutRate, ShouldAlmostEqual, 40.0)
		})

		Convey("Then the means cover every row", func() {
			So(k.AvgInterviewScore, ShouldAlmostEqual, 65.0)
			So(k.AvgSkillsMatch, ShouldAlmostEqual, 70.0)
		})

		Convey("Then every probability on the 0-1 scale counts as high risk", func() {
			So(k.HighRiskPercentage, ShouldAlmostEqual, 100.0)
		})
	})

	Convey("Given filters that match no row", t, func() {
		k, err := aggregate.ComputeKPIs(view(t, tenRows(), filter.Selection{
			CompanyTier:        "Tier 9",
			ExperienceCategory: "Fresher",
			CompetitionLevel:   "High",
			Status:             "placed",
		}))

		Convey("Then the guarded rates are defined and the means are not", func() {
			So(err, ShouldBeNil)
			So(k.TotalCandidates, ShouldEqual, 0)
			So(k.PlacementRate, ShouldEqual, 0.0)
			So(k.AcceptanceRate, ShouldEqual, 0.0)
			So(k.DropoutRate, ShouldEqual, 100.0)
			So(math.IsNaN(k.AvgInterviewScore), ShouldBeTrue)
			So(math.IsNaN(k.AvgSkillsMatch), ShouldBeTrue)
			So(math.IsNaN(k.HighRiskPercentage), ShouldBeTrue)
		})
	})

	Convey("Given rows with statuses outside the placed/not placed pair", t, func() {
		rows := []model.Candidate{
			row("placed", 70, 70, 0.5, 1),
			row("", 70, 70, 0.5, 1),
			row("withdrawn", 70, 70, 0.5, 1),
			row("placed", 70, 70, 0.5, 1),
		}
		k, err := aggregate.ComputeKPIs(view(t, rows, filter.Selection{}))

		Convey("Then placement and acceptance rates diverge", func() {
			So(err, ShouldBeNil)
			So(k.PlacementRate, ShouldAlmostEqual, 200.0/3)
			So(k.AcceptanceRate, ShouldAlmostEqual, 50.0)
		})
	})

	Convey("Given rows with missing numeric cells", t, func() {
		rows := []model.Candidate{
			row("placed", 80, nan, nan, 1),
			row("placed", nan, 60, 75, 1),
			row("not placed", 60, 40, 30, 1),
		}
		k, err := aggregate.ComputeKPIs(view(t, rows, filter.Selection{}))

		Convey("Then means skip the missing cells", func() {
			So(err, ShouldBeNil)
			So(k.AvgInterviewScore, ShouldAlmostEqual, 70.0)
			So(k.AvgSkillsMatch, ShouldAlmostEqual, 50.0)
		})

		Convey("Then a missing probability is not below the threshold", func() {
			So(k.HighRiskPercentage, ShouldAlmostEqual, 100.0/3)
		})
	})

	Convey("Given any selection", t, func() {
		sels := []filter.Selection{
			{},
			{Status: "placed"},
			{Status: "not placed"},
			{CompanyTier: "Tier 2"},
		}

		Convey("Then acceptance and dropout add up to 100", func() {
			for _, sel := range sels {
				k, err := aggregate.ComputeKPIs(view(t, tenRows(), sel))
				So(err, ShouldBeNil)
				So(k.AcceptanceRate+k.DropoutRate, ShouldEqual, 100.0)
			}
		})
	})

	Convey("Given a view without the status column", t, func() {
		_, err := aggregate.ComputeKPIs(missingView{rows: tenRows(), missing: model.ColStatus})

		Convey("Then the pass fails", func() {
			So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
		})
	})
}

func TestScatter(t *testing.T) {
	Convey("Given a filtered view", t, func() {
		v := view(t, tenRows(), filter.Selection{Status: "not placed"})

		points, err := aggregate.Scatter(v)

		Convey("Then every row is projected in order", func() {
			So(err, ShouldBeNil)
			So(len(points), ShouldEqual, 4)
			So(points[0], ShouldResemble, aggregate.ScatterPoint{
				InterviewAvgScore:    40,
				PlacementProbability: 0.3,
				Status:               "not placed",
				SkillsMatch:          50,
				CompanyTier:          "Tier 1",
				ExperienceCategory:   "Fresher",
				CompetitionLevel:     "High",
			})
		})
	})
}

func TestSkillsByStatus(t *testing.T) {
	Convey("Given rows of two statuses and one without status", t, func() {
		rows := []model.Candidate{
			row("not placed", 0, 40, 0, 0),
			row("placed", 0, 90, 0, 0),
			row("", 0, 10, 0, 0),
			row("placed", 0, 70, 0, 0),
			row("not placed", 0, nan, 0, 0),
			row("placed", 0, 80, 0, 0),
		}

		groups, err := aggregate.SkillsByStatus(view(t, rows, filter.Selection{}))

		Convey("Then groups follow first appearance and drop missing values", func() {
			So(err, ShouldBeNil)
			So(len(groups), ShouldEqual, 2)
			So(groups[0].Status, ShouldEqual, "not placed")
			So(groups[0].Values, ShouldResemble, []float64{40})
			So(groups[1].Status, ShouldEqual, "placed")
			So(groups[1].Values, ShouldResemble, []float64{90, 70, 80})
		})

		Convey("Then the summary is ordered", func() {
			s := groups[1].Summary
			So(s.Min, ShouldEqual, 70)
			So(s.Max, ShouldEqual, 90)
			So(s.Q1, ShouldBeBetweenOrEqual, s.Min, s.Median)
			So(s.Q3, ShouldBeBetweenOrEqual, s.Median, s.Max)
			So(groups[0].Summary.Median, ShouldEqual, 40)
		})
	})
}

func TestCertificationImpact(t *testing.T) {
	Convey("Given two placed rows with three certifications", t, func() {
		rows := []model.Candidate{
			row("placed", 0, 0, 0, 3),
			row("placed", 0, 0, 0, 3),
			row("not placed", 0, 0, 0, 1),
		}

		points, err := aggregate.CertificationImpact(view(t, rows, filter.Selection{}))

		Convey("Then count three has rate one", func() {
			So(err, ShouldBeNil)
			So(points, ShouldContain, aggregate.CertPoint{Certifications: 3, PlacementRate: 1.0})
		})

		Convey("Then a count with no placed rows reads zero", func() {
			So(points, ShouldContain, aggregate.CertPoint{Certifications: 1, PlacementRate: 0})
		})

		Convey("Then counts without rows are absent", func() {
			So(len(points), ShouldEqual, 2)
			for _, p := range points {
				So(p.Certifications, ShouldNotEqual, 2)
			}
		})
	})

	Convey("Given the ten row table", t, func() {
		rows := tenRows()
		points, err := aggregate.CertificationImpact(view(t, rows, filter.Selection{}))

		Convey("Then points are ascending and rates are placed over group size", func() {
			So(err, ShouldBeNil)
			So(len(points), ShouldEqual, 5)
			for i, p := range points {
				if i > 0 {
					So(p.Certifications, ShouldBeGreaterThan, points[i-1].Certifications)
				}
				var placed, total int
				for _, r := range rows {
					if int(r.Certifications) == p.Certifications {
						total++
						if r.Placed() {
							placed++
						}
					}
				}
				So(p.PlacementRate, ShouldBeBetweenOrEqual, 0, 1)
				So(p.PlacementRate, ShouldAlmostEqual, float64(placed)/float64(total))
			}
		})
	})

	Convey("Given rows with missing counts or statuses", t, func() {
		rows := []model.Candidate{
			row("placed", 0, 0, 0, nan),
			row("placed", 0, 0, 0, 2),
			row("", 0, 0, 0, 2),
			row("not placed", 0, 0, 0, 2),
			row("", 0, 0, 0, 5),
		}

		points, err := aggregate.CertificationImpact(view(t, rows, filter.Selection{}))

		Convey("Then missing statuses stay out of the denominator", func() {
			So(err, ShouldBeNil)
			So(points, ShouldResemble, []aggregate.CertPoint{
				{Certifications: 2, PlacementRate: 0.5},
				{Certifications: 5, PlacementRate: 0},
			})
		})
	})

	Convey("Given counts that are not whole numbers", t, func() {
		rows := []model.Candidate{
			row("placed", 0, 0, 0, 2),
			row("not placed", 0, 0, 0, 2.5),
			row("not placed", 0, 0, 0, math.Inf(1)),
			row("not placed", 0, 0, 0, math.Inf(-1)),
		}

		points, err := aggregate.CertificationImpact(view(t, rows, filter.Selection{}))

		Convey("Then those rows are skipped like missing counts", func() {
			So(err, ShouldBeNil)
			So(points, ShouldResemble, []aggregate.CertPoint{{Certifications: 2, PlacementRate: 1}})
		})
	})
}

func TestRisk(t *testing.T) {
	Convey("Given probabilities on the bin edges", t, func() {
		cases := map[float64]string{
			0:     aggregate.RiskUnclassified,
			0.001: aggregate.RiskHigh,
			0.4:   aggregate.RiskHigh,
			0.41:  aggregate.RiskMedium,
			0.7:   aggregate.RiskMedium,
			0.71:  aggregate.RiskLow,
			1:     aggregate.RiskLow,
			1.5:   aggregate.RiskUnclassified,
			-0.2:  aggregate.RiskUnclassified,
			75:    aggregate.RiskUnclassified,
		}

		Convey("Then bins are right-closed", func() {
			for score, want := range cases {
				So(aggregate.Classify(score), ShouldEqual, want)
			}
			So(aggregate.Classify(nan), ShouldEqual, aggregate.RiskUnclassified)
		})
	})

	Convey("Given a row with probability zero", t, func() {
		rows := []model.Candidate{row("placed", 0, 0, 0, 0), row("placed", 0, 0, 0.2, 0)}

		shares, err := aggregate.RiskBuckets(view(t, rows, filter.Selection{}))

		Convey("Then it lands in the unclassified bucket, not high risk", func() {
			So(err, ShouldBeNil)
			So(shares, ShouldResemble, []aggregate.RiskShare{
				{Category: aggregate.RiskHigh, Count: 1},
				{Category: aggregate.RiskMedium, Count: 0},
				{Category: aggregate.RiskLow, Count: 0},
				{Category: aggregate.RiskUnclassified, Count: 1},
			})
		})
	})

	Convey("Given a probability of 0.5", t, func() {
		rows := []model.Candidate{row("placed", 70, 70, 0.5, 1)}
		v := view(t, rows, filter.Selection{})

		Convey("Then it is medium risk yet counted by the high-risk KPI", func() {
			k, err := aggregate.ComputeKPIs(v)
			So(err, ShouldBeNil)
			So(aggregate.Classify(0.5), ShouldEqual, aggregate.RiskMedium)
			So(k.HighRiskPercentage, ShouldEqual, 100.0)
		})
	})
}

// columnTable is a table made of named numeric columns.
type columnTable struct{ cols []model.Column }

func (c columnTable) Numeric() []model.Column { return c.cols }

func (c columnTable) Require(names ...string) error {
	for _, n := range names {
		found := false
		for _, col := range c.cols {
			found = found || col.Name == n
		}
		if !found {
			return fmt.Errorf("%w: %s", repository.ErrMissingColumn, n)
		}
	}
	return nil
}

func TestFeatureImportance(t *testing.T) {
	target := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	noise := []float64{1, -1, 1, -1, 1, -1, 1, -1}

	Convey("Given twelve columns correlated to different degrees", t, func() {
		cols := []model.Column{{Name: model.ColPlacementProbability, Values: target}}
		for k := 11; k >= 0; k-- {
			vals := make([]float64, len(target))
			for i := range vals {
				vals[i] = target[i] + float64(k)*noise[i]
			}
			cols = append(cols, model.Column{Name: fmt.Sprintf("f%02d", k), Values: vals})
		}
		cols = append(cols,
			model.Column{Name: "constant", Values: []float64{3, 3, 3, 3, 3, 3, 3, 3}},
			model.Column{Name: "sparse", Values: []float64{1, nan, nan, nan, nan, nan, nan, nan}},
		)

		features, err := aggregate.FeatureImportance(columnTable{cols: cols}, 10)

		Convey("Then at most ten features are kept, strongest first", func() {
			So(err, ShouldBeNil)
			So(len(features), ShouldEqual, 10)
			So(features[0].Name, ShouldEqual, "f00")
			So(features[0].Importance, ShouldAlmostEqual, 1.0)
			for i, f := range features {
				So(f.Importance, ShouldBeBetweenOrEqual, 0, 1)
				if i > 0 {
					So(f.Importance, ShouldBeLessThanOrEqualTo, features[i-1].Importance)
				}
			}
		})

		Convey("Then the target and undefined correlations never appear", func() {
			for _, f := range features {
				So(f.Name, ShouldNotEqual, model.ColPlacementProbability)
				So(f.Name, ShouldNotEqual, "constant")
				So(f.Name, ShouldNotEqual, "sparse")
			}
		})
	})

	Convey("Given a negatively correlated column with gaps", t, func() {
		neg := []float64{-1, -2, nan, -4, -5, -6, -7, -8}
		features, err := aggregate.FeatureImportance(columnTable{cols: []model.Column{
			{Name: model.ColPlacementProbability, Values: target},
			{Name: "neg", Values: neg},
		}}, 0)

		Convey("Then it uses the complete pairs and the absolute value", func() {
			So(err, ShouldBeNil)
			So(len(features), ShouldEqual, 1)
			So(features[0].Importance, ShouldAlmostEqual, 1.0)
		})
	})

	Convey("Given tables with and without the target", t, func() {
		_, err := aggregate.FeatureImportance(repository.FromRecords(nil), 10)

		Convey("Then a table from records still has the target", func() {
			So(err, ShouldBeNil)
		})

		_, err = aggregate.FeatureImportance(columnTable{cols: []model.Column{{Name: "x"}}}, 10)

		Convey("Then a table without it fails", func() {
			So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
		})
	})
}

func TestScoreHistogram(t *testing.T) {
	Convey("Given probabilities spread over the unit interval", t, func() {
		vals := make([]float64, 0, 101)
		for i := 0; i <= 100; i++ {
			vals = append(vals, float64(i)/100)
		}
		vals = append(vals, nan)
		table := columnTable{cols: []model.Column{{Name: model.ColPlacementProbability, Values: vals}}}

		bins, err := aggregate.ScoreHistogram(table, aggregate.DefaultHistogramBins)

		Convey("Then there are 25 equal bins holding every present value", func() {
			So(err, ShouldBeNil)
			So(len(bins), ShouldEqual, 25)
			So(bins[0].Low, ShouldEqual, 0)
			So(bins[24].High, ShouldEqual, 1)
			total := 0
			for _, b := range bins {
				So(b.High-b.Low, ShouldAlmostEqual, 0.04)
				total += b.Count
			}
			So(total, ShouldEqual, 101)
		})
	})

	Convey("Given a constant column", t, func() {
		table := columnTable{cols: []model.Column{{Name: model.ColPlacementProbability, Values: []float64{0.5, 0.5}}}}

		bins, err := aggregate.ScoreHistogram(table, 25)

		Convey("Then a single bin holds every value", func() {
			So(err, ShouldBeNil)
			So(bins, ShouldResemble, []aggregate.Bin{{Low: 0.5, High: 0.5, Count: 2}})
		})
	})

	Convey("Given an empty column", t, func() {
		table := columnTable{cols: []model.Column{{Name: model.ColPlacementProbability}}}

		bins, err := aggregate.ScoreHistogram(table, 25)

		So(err, ShouldBeNil)
		So(bins, ShouldBeEmpty)
	})

	Convey("Given a column with an infinite cell", t, func() {
		table := columnTable{cols: []model.Column{{
			Name:   model.ColPlacementProbability,
			Values: []float64{0.2, math.Inf(1), 0.6, math.Inf(-1)},
		}}}

		bins, err := aggregate.ScoreHistogram(table, 4)

		Convey("Then the infinite values are left out", func() {
			So(err, ShouldBeNil)
			So(len(bins), ShouldEqual, 4)
			So(bins[0].Low, ShouldEqual, 0.2)
			So(bins[3].High, ShouldEqual, 0.6)
			So(bins[0].Count+bins[3].Count, ShouldEqual, 2)
		})
	})

	Convey("Given finite scores whose range overflows", t, func() {
		table := columnTable{cols: []model.Column{{
			Name:   model.ColPlacementProbability,
			Values: []float64{-1e308, 0.5, 1e308},
		}}}

		Convey("Then a single bin spans the whole range", func() {
			var (
				bins []aggregate.Bin
				err  error
			)
			So(func() { bins, err = aggregate.ScoreHistogram(table, 25) }, ShouldNotPanic)
			So(err, ShouldBeNil)
			So(bins, ShouldResemble, []aggregate.Bin{{Low: -1e308, High: 1e308, Count: 3}})
		})
	})

	Convey("Given a range too narrow to split", t, func() {
		table := columnTable{cols: []model.Column{{
			Name:   model.ColPlacementProbability,
			Values: []float64{0, 5e-324},
		}}}

		Convey("Then a single bin holds both values", func() {
			var (
				bins []aggregate.Bin
				err  error
			)
			So(func() { bins, err = aggregate.ScoreHistogram(table, 25) }, ShouldNotPanic)
			So(err, ShouldBeNil)
			So(bins, ShouldResemble, []aggregate.Bin{{Low: 0, High: 5e-324, Count: 2}})
		})
	})

	Convey("Given only infinite cells", t, func() {
		table := columnTable{cols: []model.Column{{
			Name:   model.ColPlacementProbability,
			Values: []float64{math.Inf(1), nan},
		}}}

		bins, err := aggregate.ScoreHistogram(table, 25)

		So(err, ShouldBeNil)
		So(bins, ShouldBeEmpty)
	})
}
