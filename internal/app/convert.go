package service

import (
	"strconv"

	"github.com/okian/hirelens/internal/domain/aggregate"
	"github.com/okian/hirelens/internal/domain/filter"
	"github.com/okian/hirelens/internal/domain/types"
)

// Metric keys in display order.
const (
	MetricTotalCandidates = "total_candidates"
	MetricPlacementRate   = "placement_rate"
	MetricAcceptanceRate  = "acceptance_rate"
	MetricDropoutRate     = "dropout_rate"
	MetricAvgInterview    = "avg_interview_score"
	MetricAvgSkills       = "avg_skills_match"
	MetricHighRisk        = "high_risk_percentage"
)

func metricTiles(k aggregate.KPIs) []types.Metric {
	m := func(key, label string, v float64) types.Metric {
		n := types.Number(v)
		return types.Metric{Key: key, Label: label, Value: n, Display: n.String()}
	}
	return []types.Metric{
		{
			Key:     MetricTotalCandidates,
			Label:   "Total Candidates",
			Value:   types.Number(k.TotalCandidates),
			Display: strconv.Itoa(k.TotalCandidates),
		},
		m(MetricPlacementRate, "Placement Rate (%)", k.PlacementRate),
		m(MetricAcceptanceRate, "Job Acceptance Rate (%)", k.AcceptanceRate),
		m(MetricDropoutRate, "Offer Dropout Rate (%)", k.DropoutRate),
		m(MetricAvgInterview, "Avg Interview Score", k.AvgInterviewScore),
		m(MetricAvgSkills, "Avg Skills Match (%)", k.AvgSkillsMatch),
		m(MetricHighRisk, "High-Risk Candidates (%)", k.HighRiskPercentage),
	}
}

func selectionDTO(sel filter.Selection) types.Selection {
	orAll := func(v string) string {
		if v == "" {
			return filter.All
		}
		return v
	}
	return types.Selection{
		CompanyTier:        orAll(sel.CompanyTier),
		ExperienceCategory: orAll(sel.ExperienceCategory),
		CompetitionLevel:   orAll(sel.CompetitionLevel),
		Status:             orAll(sel.Status),
	}
}

func scatterDTO(points []aggregate.ScatterPoint) []types.ScatterPoint {
	out := make([]types.ScatterPoint, len(points))
	for i, p := range points {
		out[i] = types.ScatterPoint{
			InterviewAvgScore:    types.Number(p.InterviewAvgScore),
			PlacementProbability: types.Number(p.PlacementProbability),
			Status:               p.Status,
			SkillsMatch:          types.Number(p.SkillsMatch),
			CompanyTier:          p.CompanyTier,
			ExperienceCategory:   p.ExperienceCategory,
			CompetitionLevel:     p.CompetitionLevel,
		}
	}
	return out
}

func boxDTO(groups []aggregate.BoxGroup) []types.BoxGroup {
	out := make([]types.BoxGroup, len(groups))
	for i, g := range groups {
		values := make([]types.Number, len(g.Values))
		for j, v := range g.Values {
			values[j] = types.Number(v)
		}
		out[i] = types.BoxGroup{
			Status: g.Status,
			Values: values,
			Min:    types.Number(g.Summary.Min),
			Q1:     types.Number(g.Summary.Q1),
			Median: types.Number(g.Summary.Median),
			Q3:     types.Number(g.Summary.Q3),
			Max:    types.Number(g.Summary.Max),
		}
	}
	return out
}

func certDTO(points []aggregate.CertPoint) []types.CertPoint {
	out := make([]types.CertPoint, len(points))
	for i, p := range points {
		out[i] = types.CertPoint{Certifications: p.Certifications, PlacementRate: p.PlacementRate}
	}
	return out
}

func riskDTO(shares []aggregate.RiskShare) []types.RiskShare {
	out := make([]types.RiskShare, len(shares))
	for i, s := range shares {
		out[i] = types.RiskShare{Category: s.Category, Count: s.Count}
	}
	return out
}

func featureDTO(features []aggregate.Feature) []types.Feature {
	out := make([]types.Feature, len(features))
	for i, f := range features {
		out[i] = types.Feature{Name: f.Name, Importance: f.Importance}
	}
	return out
}

func binDTO(bins []aggregate.Bin) []types.Bin {
	out := make([]types.Bin, len(bins))
	for i, b := range bins {
		out[i] = types.Bin{Low: b.Low, High: b.High, Count: b.Count}
	}
	return out
}
