package spikeview

import (
	"context"
	"math"

	"github.com/neurotap/spikeview/model"
)

// Correlograms computes pairwise spike-time-difference histograms for a set
// of clusters, over a bounded selection of their spikes. Lags are binned
// into 2*floor(window/2/bin)+1 bins of binSize seconds, the center bin at
// zero lag; Counts[i][j] mirrors Counts[j][i] around the center.
//
// Cluster assignment is read from the live clustering view, so merges and
// splits applied since loading are reflected.
func (c *Controller) Correlograms(clusterIDs []model.ClusterID, binSize, windowSize float64) (*model.CorrelogramBundle, error) {
	if binSize <= 0 || windowSize <= 0 {
		return nil, ErrInvalidBinning
	}

	spikeIDs := c.SelectSpikes(clusterIDs, c.nSpikesCorrelogram, c.nSpikesCorrelogram)
	times := c.ds.Times(spikeIDs)

	local := make(map[model.ClusterID]int, len(clusterIDs))
	for i, id := range clusterIDs {
		local[id] = i
	}
	clusters := make([]int, len(spikeIDs))
	for i, s := range spikeIDs {
		idx, ok := local[c.clustering.ClusterOf(s)]
		if !ok {
			idx = -1
		}
		clusters[i] = idx
	}

	half := int(windowSize / 2 / binSize)
	nBins := 2*half + 1
	counts := make([][][]int, len(clusterIDs))
	for i := range counts {
		counts[i] = make([][]int, len(clusterIDs))
		for j := range counts[i] {
			counts[i][j] = make([]int, nBins)
		}
	}

	halfWindow := float64(half) * binSize
	for i := range times {
		ci := clusters[i]
		if ci < 0 {
			continue
		}
		for j := i + 1; j < len(times); j++ {
			dt := times[j] - times[i]
			if dt > halfWindow {
				break
			}
			cj := clusters[j]
			if cj < 0 {
				continue
			}
			bin := int(math.Floor(dt/binSize + 0.5))
			if bin > half {
				continue
			}
			counts[ci][cj][half+bin]++
			counts[cj][ci][half-bin]++
		}
	}

	c.logger.DebugContext(context.Background(), "correlograms completed",
		"clusters", len(clusterIDs),
		"spikes", len(spikeIDs),
		"bins", nBins,
	)
	return &model.CorrelogramBundle{
		ClusterIDs: clusterIDs,
		BinSize:    binSize,
		WindowSize: windowSize,
		Counts:     counts,
	}, nil
}
