// Package model contains domain models passed between layers.
package model

import "math"

// Column names as they appear in the placement CSV header.
const (
	ColCompanyTier          = "company_tier"
	ColExperienceCategory   = "experience_category"
	ColCompetitionLevel     = "competition_level"
	ColStatus               = "status"
	ColInterviewAvgScore    = "interview_avg_score"
	ColSkillsMatch          = "skills_match_percentage"
	ColPlacementProbability = "placement_probability_score"
	ColCertifications       = "certifications_count"
)

// Placement outcomes recognised by the dashboard.
const (
	StatusPlaced    = "placed"
	StatusNotPlaced = "not placed"
)

// CategoricalColumns are read as strings regardless of their content.
var CategoricalColumns = []string{
	ColCompanyTier,
	ColExperienceCategory,
	ColCompetitionLevel,
	ColStatus,
}

// Column is one numeric column of the source file. Missing cells are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Candidate is one row of the placement table.
// Empty strings mark missing categorical cells; NaN marks missing numbers.
type Candidate struct {
	CompanyTier          string
	ExperienceCategory   string
	CompetitionLevel     string
	Status               string
	InterviewAvgScore    float64
	SkillsMatch          float64 // skills_match_percentage
	PlacementProbability float64 // placement_probability_score
	Certifications       float64 // certifications_count
}

// Placed reports whether the row's status is exactly "placed".
func (c Candidate) Placed() bool { return c.Status == StatusPlaced }

// HasStatus reports whether the status cell was present.
func (c Candidate) HasStatus() bool { return c.Status != "" }

// maxCount bounds certification counts to values float64 holds exactly.
const maxCount = 1 << 53

// CertificationCount returns the certification count and false when the cell
// is missing or is not a whole number (NaN, ±Inf, 2.5, out of range).
func (c Candidate) CertificationCount() (int, bool) {
	v := c.Certifications
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > maxCount {
		return 0, false
	}
	return int(v), true
}

// Categorical returns the value of one of CategoricalColumns.
func (c Candidate) Categorical(column string) string {
	switch column {
	case ColCompanyTier:
		return c.CompanyTier
	case ColExperienceCategory:
		return c.ExperienceCategory
	case ColCompetitionLevel:
		return c.CompetitionLevel
	case ColStatus:
		return c.Status
	}
	return ""
}
