// Package render draws the dashboard charts as PNG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/hirelens/internal/domain/aggregate"
	"github.com/okian/hirelens/internal/domain/types"
)

// Chart names accepted by Render.
const (
	ChartScatter        = "scatter"
	ChartSkills         = "skills"
	ChartCertifications = "certifications"
	ChartRisk           = "risk"
	ChartImportance     = "importance"
	ChartHistogram      = "histogram"
)

// Charts lists every chart in page order.
var Charts = []string{
	ChartScatter,
	ChartSkills,
	ChartCertifications,
	ChartRisk,
	ChartImportance,
	ChartHistogram,
}

var (
	// ErrUnknownChart is returned for a chart name outside Charts.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrRender wraps failures of the plotting libraries.
	ErrRender = errors.New("render chart")
)

// pngDPI is the resolution of the gonum PNG canvas.
const pngDPI = 96

// Renderer draws charts at a fixed size.
type Renderer struct {
	widthPx  int
	heightPx int
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{widthPx: defaultWidthPx, heightPx: defaultHeightPx}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Known reports whether name is a chart Render can draw.
func Known(name string) bool { return slices.Contains(Charts, name) }

// Render writes the named chart of data as PNG to w.
func (r *Renderer) Render(w io.Writer, name string, data types.Charts) error {
	if name == ChartRisk {
		if err := r.riskPie(w, data.RiskDistribution); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
		}
		return nil
	}

	var (
		p   *plot.Plot
		err error
	)
	switch name {
	case ChartScatter:
		p, err = scatter(data.Scatter)
	case ChartSkills:
		p, err = skillsBox(data.SkillsByStatus)
	case ChartCertifications:
		p, err = certificationLine(data.CertificationImpact)
	case ChartImportance:
		p, err = importanceBars(data.FeatureImportance)
	case ChartHistogram:
		p, err = histogram(data.ScoreHistogram)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	if err := r.writePNG(w, p); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	return nil
}

func (r *Renderer) writePNG(w io.Writer, p *plot.Plot) error {
	width := vg.Length(r.widthPx) * vg.Inch / pngDPI
	height := vg.Length(r.heightPx) * vg.Inch / pngDPI
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func scatter(points []types.ScatterPoint) (*plot.Plot, error) {
	p := newPlot("Interview Performance vs Placement Probability",
		"interview_avg_score", "placement_probability_score")
	p.Legend.Top = true

	// One series per status so the legend doubles as the colour key.
	var order []string
	byStatus := make(map[string]plotter.XYs)
	sizes := make(map[string][]float64)
	for _, pt := range points {
		if pt.InterviewAvgScore.NaN() || pt.PlacementProbability.NaN() {
			continue
		}
		status := pt.Status
		if status == "" {
			status = "missing"
		}
		if _, ok := byStatus[status]; !ok {
			order = append(order, status)
		}
		byStatus[status] = append(byStatus[status], plotter.XY{
			X: float64(pt.InterviewAvgScore),
			Y: float64(pt.PlacementProbability),
		})
		sizes[status] = append(sizes[status], float64(pt.SkillsMatch))
	}

	for i, status := range order {
		s, err := plotter.NewScatter(byStatus[status])
		if err != nil {
			return nil, err
		}
		c := plotutil.Color(i)
		sz := sizes[status]
		s.GlyphStyleFunc = func(j int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: c, Shape: draw.CircleGlyph{}, Radius: skillRadius(sz[j])}
		}
		p.Add(s)
		p.Legend.Add(status, s)
	}
	return p, nil
}

// skillRadius maps a skills match percentage to a dot size.
func skillRadius(skills float64) vg.Length {
	if math.IsNaN(skills) {
		return vg.Points(2)
	}
	return vg.Points(2 + math.Max(0, math.Min(skills, 100))/25)
}

func skillsBox(groups []types.BoxGroup) (*plot.Plot, error) {
	p := newPlot("Skills Match Percentage vs Placement Outcome", "status", "skills_match_percentage")
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		values := make(plotter.Values, 0, len(g.Values))
		for _, v := range g.Values {
			if !v.NaN() && !math.IsInf(float64(v), 0) {
				values = append(values, float64(v))
			}
		}
		if len(values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(len(names)), values)
		if err != nil {
			return nil, err
		}
		box.FillColor = plotutil.Color(len(names))
		p.Add(box)
		names = append(names, g.Status)
	}
	if len(names) > 0 {
		p.NominalX(names...)
	}
	return p, nil
}

func certificationLine(points []types.CertPoint) (*plot.Plot, error) {
	p := newPlot("Certification Count Impact on Placement Probability", "certifications_count", "placement_rate")
	if len(points) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: float64(pt.Certifications), Y: pt.PlacementRate}
	}
	line, dots, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(2)
	line.Color = plotutil.Color(0)
	dots.Shape = draw.CircleGlyph{}
	dots.Color = plotutil.Color(0)
	p.Add(line, dots)
	return p, nil
}

func importanceBars(features []types.Feature) (*plot.Plot, error) {
	p := newPlot("Top Factors Influencing Placement Probability", "Importance", "Feature")
	if len(features) == 0 {
		return p, nil
	}
	// Bars are drawn bottom-up; reverse so the strongest feature is on top.
	values := make(plotter.Values, len(features))
	names := make([]string, len(features))
	for i, f := range features {
		j := len(features) - 1 - i
		values[j] = f.Importance
		names[j] = f.Name
	}
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(names...)
	return p, nil
}

func histogram(bins []types.Bin) (*plot.Plot, error) {
	p := newPlot("Placement Probability Score Distribution", "placement_probability_score", "count")
	if len(bins) == 0 {
		return p, nil
	}
	h := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins)),
		FillColor: plotutil.Color(0),
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, b := range bins {
		h.Bins[i] = plotter.HistogramBin{Min: b.Low, Max: b.High, Weight: float64(b.Count)}
	}
	h.Width = bins[0].High - bins[0].Low
	p.Add(h)
	return p, nil
}

var riskColors = map[string]drawing.Color{
	aggregate.RiskHigh:         {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	aggregate.RiskMedium:       {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	aggregate.RiskLow:          {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	aggregate.RiskUnclassified: {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
}

func (r *Renderer) riskPie(w io.Writer, shares []types.RiskShare) error {
	values := make([]chart.Value, 0, len(shares))
	for _, s := range shares {
		if s.Count == 0 {
			continue
		}
		v := chart.Value{Value: float64(s.Count), Label: fmt.Sprintf("%s (%d)", s.Category, s.Count)}
		if c, ok := riskColors[s.Category]; ok {
			v.Style = chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite}
		}
		values = append(values, v)
	}
	// The pie needs one non-zero slice.
	if len(values) == 0 {
		values = append(values, chart.Value{
			Value: 1,
			Label: "No candidates",
			Style: chart.Style{FillColor: drawing.Color{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}},
		})
	}
	pie := chart.PieChart{
		Title:  "Candidate Dropout Risk Distribution",
		Width:  r.widthPx,
		Height: r.heightPx,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}
