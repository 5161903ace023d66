package snapshot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/okian/hirelens/internal/domain/types"
)

// printDashboard writes every section of d in page order.
func printDashboard(w io.Writer, d types.Dashboard, showPoints bool) {
	fmt.Fprintf(w, "%s\n%s\n\n", d.Title, d.Description)
	printSelection(w, d.Selection)
	printMetrics(w, d.Metrics)
	if showPoints {
		printScatter(w, d.Charts.Scatter)
	}
	printBoxes(w, d.Charts.SkillsByStatus)
	printCertifications(w, d.Charts.CertificationImpact)
	printRisk(w, d.Charts.RiskDistribution)
	printFeatures(w, d.Charts.FeatureImportance)
	printHistogram(w, d.Charts.ScoreHistogram)
	printRecommendations(w, d.Recommendations)
	fmt.Fprintln(w, d.Footer)
}

func newTable(w io.Writer, title string, header ...string) *tablewriter.Table {
	fmt.Fprintf(w, "%s\n", title)
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func printSelection(w io.Writer, s types.Selection) {
	table := newTable(w, "Filters", "Company Tier", "Experience Category", "Competition Level", "Status")
	table.Append([]string{s.CompanyTier, s.ExperienceCategory, s.CompetitionLevel, s.Status})
	table.Render()
	fmt.Fprintln(w)
}

func printMetrics(w io.Writer, metrics []types.Metric) {
	table := newTable(w, "Key Performance Indicators", "Metric", "Value")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, m := range metrics {
		table.Append([]string{m.Label, m.Display})
	}
	table.Render()
	fmt.Fprintln(w)
}

func printScatter(w io.Writer, points []types.ScatterPoint) {
	table := newTable(w, "Interview Performance vs Placement Probability",
		"Interview", "Probability", "Skills Match", "Status", "Company Tier", "Experience", "Competition")
	for _, p := range points {
		table.Append([]string{
			p.InterviewAvgScore.String(),
			p.PlacementProbability.String(),
			p.SkillsMatch.String(),
			p.Status,
			p.CompanyTier,
			p.ExperienceCategory,
			p.CompetitionLevel,
		})
	}
	table.Render()
	fmt.Fprintln(w)
}

func printBoxes(w io.Writer, groups []types.BoxGroup) {
	table := newTable(w, "Skills Match Percentage vs Placement Outcome",
		"Status", "N", "Min", "Q1", "Median", "Q3", "Max")
	for _, g := range groups {
		table.Append([]string{
			statusLabel(g.Status),
			strconv.Itoa(len(g.Values)),
			g.Min.String(),
			g.Q1.String(),
			g.Median.String(),
			g.Q3.String(),
			g.Max.String(),
		})
	}
	table.Render()
	fmt.Fprintln(w)
}

func printCertifications(w io.Writer, points []types.CertPoint) {
	table := newTable(w, "Certification Count Impact on Placement Probability", "Certifications", "Placement Rate")
	for _, p := range points {
		table.Append([]string{strconv.Itoa(p.Certifications), formatFloat(p.PlacementRate, 4)})
	}
	table.Render()
	fmt.Fprintln(w)
}

func printRisk(w io.Writer, shares []types.RiskShare) {
	total := 0
	for _, s := range shares {
		total += s.Count
	}

	table := newTable(w, "Candidate Dropout Risk Distribution", "Risk Category", "Count", "Share (%)")
	for _, s := range shares {
		share := "-"
		if total > 0 {
			share = formatFloat(float64(s.Count)/float64(total)*100, 2)
		}
		table.Append([]string{s.Category, strconv.Itoa(s.Count), share})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(total), ""})
	table.Render()
	fmt.Fprintln(w)
}

func printFeatures(w io.Writer, features []types.Feature) {
	table := newTable(w, "Top Factors Influencing Placement Probability", "Feature", "Importance")
	for _, f := range features {
		table.Append([]string{f.Name, formatFloat(f.Importance, 4)})
	}
	table.Render()
	fmt.Fprintln(w)
}

// histogramBarWidth is the width of the longest bar in characters.
const histogramBarWidth = 40

func printHistogram(w io.Writer, bins []types.Bin) {
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}

	table := newTable(w, "Placement Probability Score Distribution", "Range", "Count", "")
	for _, b := range bins {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("#", b.Count*histogramBarWidth/peak)
		}
		table.Append([]string{
			fmt.Sprintf("%s - %s", formatFloat(b.Low, 3), formatFloat(b.High, 3)),
			strconv.Itoa(b.Count),
			bar,
		})
	}
	table.Render()
	fmt.Fprintln(w)
}

func printRecommendations(w io.Writer, recs []types.Recommendation) {
	fmt.Fprintln(w, "Business Recommendations")
	for _, r := range recs {
		fmt.Fprintf(w, "  * %s\n    %s\n", r.Title, r.Body)
	}
	fmt.Fprintln(w)
}

// printFilters writes the values each dropdown offers, one column per filter.
func printFilters(w io.Writer, f types.Filters) {
	columns := [][]string{f.CompanyTier, f.ExperienceCategory, f.CompetitionLevel, f.Status}
	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c))
	}

	table := newTable(w, "Available Filters", "Company Tier", "Experience Category", "Competition Level", "Status")
	for i := 0; i < rows; i++ {
		row := make([]string, len(columns))
		for j, c := range columns {
			if i < len(c) {
				row[j] = c[i]
			}
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

// statusLabel names the missing-status group.
func statusLabel(s string) string {
	if s == "" {
		return "(missing)"
	}
	return s
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
