package spikeview

import (
	"context"

	"github.com/neurotap/spikeview/model"
)

// Amplitudes returns paired (time, amplitude) arrays for a cluster, using
// the same bounded selection discipline as the feature extractors.
func (c *Controller) Amplitudes(clusterID model.ClusterID) *model.AmplitudeBundle {
	spikeIDs := c.SelectSpikes([]model.ClusterID{clusterID}, c.nSpikesAmplitudes, c.nSpikesAmplitudes)
	c.logger.LogExtract(context.Background(), "amplitudes", clusterID, len(spikeIDs), nil)
	return &model.AmplitudeBundle{
		X:        c.ds.Times(spikeIDs),
		Y:        c.ds.Amplitudes(spikeIDs),
		SpikeIDs: spikeIDs,
	}
}
