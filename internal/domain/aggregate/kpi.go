package aggregate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/hirelens/internal/domain/model"
)

// HighRiskThreshold is the placement probability below which a candidate
// counts towards the high-risk KPI. It is on a 0-100 scale while the risk
// buckets use 0-1; both are kept as they are.
const HighRiskThreshold = 60

// KPIs are the seven scalar metrics of the dashboard. Means and the high-risk
// share are NaN when the view has no usable values.
type KPIs struct {
	TotalCandidates    int
	PlacementRate      float64
	AcceptanceRate     float64
	DropoutRate        float64
	AvgInterviewScore  float64
	AvgSkillsMatch     float64
	HighRiskPercentage float64
}

// ComputeKPIs derives the KPI set from the view.
//
// PlacementRate is the share of "placed" among rows that have a status.
// AcceptanceRate divides the placed count by max(1, total), so an empty view
// reads 0 and DropoutRate, its complement, reads 100.
func ComputeKPIs(v View) (KPIs, error) {
	if err := v.Require(
		model.ColStatus,
		model.ColInterviewAvgScore,
		model.ColSkillsMatch,
		model.ColPlacementProbability,
	); err != nil {
		return KPIs{}, err
	}

	rows := v.Rows()
	var (
		placed, withStatus, highRisk int
		interview                    = make([]float64, 0, len(rows))
		skills                       = make([]float64, 0, len(rows))
	)
	for _, r := range rows {
		if r.HasStatus() {
			withStatus++
		}
		if r.Placed() {
			placed++
		}
		if r.PlacementProbability < HighRiskThreshold {
			highRisk++
		}
		interview = append(interview, r.InterviewAvgScore)
		skills = append(skills, r.SkillsMatch)
	}

	k := KPIs{TotalCandidates: len(rows)}
	if withStatus > 0 {
		k.PlacementRate = float64(placed) / float64(withStatus) * 100
	}
	k.AcceptanceRate = float64(placed) / float64(max(1, len(rows))) * 100
	k.DropoutRate = 100 - k.AcceptanceRate
	k.AvgInterviewScore = mean(interview)
	k.AvgSkillsMatch = mean(skills)
	k.HighRiskPercentage = math.NaN()
	if len(rows) > 0 {
		k.HighRiskPercentage = float64(highRisk) / float64(len(rows)) * 100
	}
	return k, nil
}

// mean skips missing values and is NaN when none remain.
func mean(vals []float64) float64 {
	vals = present(vals)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}
