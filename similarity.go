package spikeview

import (
	"sort"

	"github.com/neurotap/spikeview/model"
)

// Similarity ranks every current cluster (the source included) by
// template-overlap similarity to the source cluster, descending, ties kept
// in ascending cluster-id order.
//
// The score of a cluster pair is the maximum precomputed template-pair
// similarity over (source active template, other active template). Instead
// of enumerating pairs, the row-wise max over the source's active templates
// is taken once, then reduced over each other cluster's active set. Cluster
// ids inside the template range short-circuit to a direct lookup.
func (c *Controller) Similarity(clusterID model.ClusterID) []model.SimilarityEntry {
	nT := c.ds.NumTemplates()
	counts := c.TemplateCounts(clusterID)

	// sims[j] = max over the source's active templates i of similarity(i, j).
	sims := make([]float64, nT)
	hasActive := false
	for i, n := range counts {
		if n == 0 {
			continue
		}
		for j := 0; j < nT; j++ {
			s := c.ds.TemplateSimilarity(model.TemplateID(i), model.TemplateID(j))
			if !hasActive || s > sims[j] {
				sims[j] = s
			}
		}
		hasActive = true
	}

	score := func(other model.ClusterID) float64 {
		if !hasActive {
			return 0
		}
		if int(other) >= 0 && int(other) < nT {
			return sims[other]
		}
		best := 0.0
		found := false
		for t, n := range c.TemplateCounts(other) {
			if n == 0 {
				continue
			}
			if !found || sims[t] > best {
				best = sims[t]
			}
			found = true
		}
		if !found {
			return 0
		}
		return best
	}

	ids := c.clustering.ClusterIDs()
	out := make([]model.SimilarityEntry, len(ids))
	for i, id := range ids {
		out[i] = model.SimilarityEntry{ClusterID: id, Score: score(id)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
