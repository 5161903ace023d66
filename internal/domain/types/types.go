// Package types contains the JSON shapes shared by the HTTP API and its clients.
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float64 that encodes NaN as JSON null so undefined KPIs are
// told apart from zero.
type Number float64

// NaN reports whether the value is undefined.
func (n Number) NaN() bool { return math.IsNaN(float64(n)) }

// String formats the value with two decimals, or "nan" when undefined.
func (n Number) String() string {
	if n.NaN() {
		return "nan"
	}
	return strconv.FormatFloat(float64(n), 'f', 2, 64)
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.NaN() || math.IsInf(float64(n), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to NaN.
func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Selection echoes the filters a dashboard was computed for.
type Selection struct {
	CompanyTier        string `json:"company_tier"`
	ExperienceCategory string `json:"experience_category"`
	CompetitionLevel   string `json:"competition_level"`
	Status             string `json:"status"`
}

// Metric is one KPI tile.
type Metric struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Value   Number `json:"value"`
	Display string `json:"display"`
}

// ScatterPoint is one dot of the interview vs probability chart.
type ScatterPoint struct {
	InterviewAvgScore    Number `json:"interview_avg_score"`
	PlacementProbability Number `json:"placement_probability_score"`
	Status               string `json:"status"`
	SkillsMatch          Number `json:"skills_match_percentage"`
	CompanyTier          string `json:"company_tier"`
	ExperienceCategory   string `json:"experience_category"`
	CompetitionLevel     string `json:"competition_level"`
}

// BoxGroup is the skills match distribution of one status.
type BoxGroup struct {
	Status string   `json:"status"`
	Values []Number `json:"values"`
	Min    Number   `json:"min"`
	Q1     Number   `json:"q1"`
	Median Number   `json:"median"`
	Q3     Number   `json:"q3"`
	Max    Number   `json:"max"`
}

// CertPoint is one point of the certification impact line.
type CertPoint struct {
	Certifications int     `json:"certifications_count"`
	PlacementRate  float64 `json:"placement_rate"`
}

// RiskShare is one slice of the risk pie.
type RiskShare struct {
	Category string `json:"risk_category"`
	Count    int    `json:"count"`
}

// Feature is one bar of the feature importance chart.
type Feature struct {
	Name       string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Bin is one bar of the score histogram.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Charts holds the six chart datasets.
type Charts struct {
	Scatter             []ScatterPoint `json:"scatter"`
	SkillsByStatus      []BoxGroup     `json:"skills_by_status"`
	CertificationImpact []CertPoint    `json:"certification_impact"`
	RiskDistribution    []RiskShare    `json:"risk_distribution"`
	FeatureImportance   []Feature      `json:"feature_importance"`
	ScoreHistogram      []Bin          `json:"score_histogram"`
}

// Recommendation is one entry of the static advice block.
type Recommendation struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Dashboard is the full page model in display order.
type Dashboard struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Selection       Selection        `json:"selection"`
	Metrics         []Metric         `json:"metrics"`
	Charts          Charts           `json:"charts"`
	Recommendations []Recommendation `json:"recommendations"`
	Footer          string           `json:"footer"`
}

// Filters lists the values each dropdown offers.
type Filters struct {
	CompanyTier        []string `json:"company_tier"`
	ExperienceCategory []string `json:"experience_category"`
	CompetitionLevel   []string `json:"competition_level"`
	Status             []string `json:"status"`
}
