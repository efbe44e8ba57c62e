package spikeview

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"github.com/neurotap/spikeview/model"
)

// TemplateFeatureProjection builds the paired coordinate arrays of a
// two-cluster template-feature comparison. For each cluster's selected
// spikes, the x coordinate is the spike's template-feature row averaged with
// the FIRST cluster's template histogram as weights, and the y coordinate
// the same row averaged with the SECOND cluster's histogram. Two clusters
// with identical histograms therefore project onto the diagonal.
//
// Exactly two cluster ids are required.
func (c *Controller) TemplateFeatureProjection(clusterIDs []model.ClusterID) (*model.ProjectionBundle, error) {
	if len(clusterIDs) != 2 {
		return nil, ErrClusterPairRequired
	}
	clu0, clu1 := clusterIDs[0], clusterIDs[1]

	s0 := c.featureSpikeIDs(clu0)
	s1 := c.featureSpikeIDs(clu1)

	n0 := countsToFloats(c.TemplateCounts(clu0))
	n1 := countsToFloats(c.TemplateCounts(clu1))

	t0, err := c.ds.TemplateFeatures(s0)
	if err != nil {
		return nil, err
	}
	t1, err := c.ds.TemplateFeatures(s1)
	if err != nil {
		return nil, err
	}

	out := &model.ProjectionBundle{
		X0: weightedRowAverage(t0, n0),
		Y0: weightedRowAverage(t0, n1),
		X1: weightedRowAverage(t1, n0),
		Y1: weightedRowAverage(t1, n1),
	}
	out.Bounds = coordinateBounds(out)
	c.logger.DebugContext(context.Background(), "projection completed",
		"clusters", []int{int(clu0), int(clu1)},
		"points", len(out.X0)+len(out.X1),
	)
	return out, nil
}

func countsToFloats(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, n := range counts {
		out[i] = float64(n)
	}
	return out
}

// weightedRowAverage reduces each row of m to its weighted average. A zero
// total weight (empty cluster histogram) yields zeros.
func weightedRowAverage(m *model.Matrix, weights []float64) []float64 {
	total := floats.Sum(weights)
	out := make([]float64, m.Rows())
	if total == 0 {
		return out
	}
	row := make([]float64, m.Cols())
	for r := 0; r < m.Rows(); r++ {
		src := m.Row(r)
		for j, v := range src {
			row[j] = float64(v)
		}
		out[r] = floats.Dot(row, weights) / total
	}
	return out
}

func coordinateBounds(p *model.ProjectionBundle) model.Bounds {
	xs := append(append([]float64{}, p.X0...), p.X1...)
	ys := append(append([]float64{}, p.Y0...), p.Y1...)
	if len(xs) == 0 || len(ys) == 0 {
		return model.Bounds{}
	}
	return model.Bounds{
		MinX: floats.Min(xs),
		MinY: floats.Min(ys),
		MaxX: floats.Max(xs),
		MaxY: floats.Max(ys),
	}
}
