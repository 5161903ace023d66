package aggregate

import (
	"sort"

	"github.com/okian/hirelens/internal/domain/model"
)

// CertPoint is the placement rate among candidates with a given number of
// certifications. Rate is a fraction in [0, 1].
type CertPoint struct {
	Certifications int
	PlacementRate  float64
}

// CertificationImpact groups the view by certifications_count, ascending.
// The rate of a group is placed rows over rows that have a status, and 0 when
// none of them are placed. Counts that occur in no row are absent and rows
// with a missing count are skipped.
func CertificationImpact(v View) ([]CertPoint, error) {
	if err := v.Require(model.ColCertifications, model.ColStatus); err != nil {
		return nil, err
	}
	type tally struct{ placed, withStatus int }
	groups := make(map[int]*tally)
	for _, r := range v.Rows() {
		n, ok := r.CertificationCount()
		if !ok {
			continue
		}
		g, ok := groups[n]
		if !ok {
			g = &tally{}
			groups[n] = g
		}
		if r.HasStatus() {
			g.withStatus++
		}
		if r.Placed() {
			g.placed++
		}
	}

	out := make([]CertPoint, 0, len(groups))
	for n, g := range groups {
		p := CertPoint{Certifications: n}
		if g.placed > 0 {
			p.PlacementRate = float64(g.placed) / float64(g.withStatus)
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Certifications < out[j].Certifications })
	return out, nil
}
