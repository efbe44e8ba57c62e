package spikeview

import "github.com/neurotap/spikeview/model"

// SelectSpikes returns a deterministic, bounded subset of the spikes
// belonging to the given clusters, sorted by spike index (hence by time).
//
// When the clusters hold at most maxCount spikes, all of them are returned
// unchanged. Otherwise the membership is partitioned into contiguous runs of
// batchSize spikes and an evenly-spaced quota is drawn from each run, so the
// result spans the whole temporal extent instead of the first spikes only.
// batchSize <= 0 means one run of maxCount.
//
// Identical inputs always produce identical output; there is no randomness.
// maxCount <= 0 or empty membership yields an empty result.
func (c *Controller) SelectSpikes(clusterIDs []model.ClusterID, maxCount, batchSize int) []model.SpikeID {
	return subsample(c.clustering.Spikes(clusterIDs...), maxCount, batchSize)
}

func subsample(spikes []model.SpikeID, maxCount, batchSize int) []model.SpikeID {
	n := len(spikes)
	if maxCount <= 0 || n == 0 {
		return nil
	}
	if n <= maxCount {
		return spikes
	}
	if batchSize <= 0 || batchSize > n {
		batchSize = maxCount
	}

	nBatches := (n + batchSize - 1) / batchSize
	perBatch := maxCount / nBatches
	if perBatch < 1 {
		// More batches than the budget allows: spread globally instead.
		out := make([]model.SpikeID, maxCount)
		for i := range out {
			out[i] = spikes[i*n/maxCount]
		}
		return out
	}

	out := make([]model.SpikeID, 0, perBatch*nBatches)
	for a := 0; a < n; a += batchSize {
		b := min(a+batchSize, n)
		q := min(perBatch, b-a)
		for j := 0; j < q; j++ {
			out = append(out, spikes[a+j*(b-a)/q])
		}
	}
	return out
}
