package service

import "github.com/okian/hirelens/internal/domain/types"

// Static page text.
const (
	pageTitle       = "Job Acceptance Prediction System"
	pageDescription = "Business-focused analytics dashboard to analyze placement outcomes, " +
		"candidate performance, and future risk using data-driven insights."
	pageFooter = "Job Acceptance Prediction System | Built with Go, gonum/plot & go-chart"
)

var recommendations = []types.Recommendation{
	{
		Title: "Improve Interview Preparation",
		Body:  "Interview performance has the strongest influence on placement success.",
	},
	{
		Title: "Focus on Skill Alignment",
		Body:  "Candidates with higher skills match show significantly better acceptance rates.",
	},
	{
		Title: "Reduce Offer Dropouts",
		Body:  "High-risk candidates can be identified early using placement probability scores.",
	},
	{
		Title: "Certification Strategy",
		Body:  "Encouraging certifications improves placement probability, especially for freshers.",
	},
	{
		Title: "Data-Driven Hiring Decisions",
		Body:  "Predictive insights help HR teams reduce hiring cost and time-to-fill.",
	},
}

// Recommendations returns a copy of the static advice block.
func Recommendations() []types.Recommendation {
	out := make([]types.Recommendation, len(recommendations))
	copy(out, recommendations)
	return out
}
