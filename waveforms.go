package spikeview

import (
	"context"

	"github.com/neurotap/spikeview/model"
)

// Waveforms extracts waveform snippets for a cluster: up to the configured
// spike count, drawn in batches across the cluster's temporal extent, and
// restricted to the dominant template's channels. An empty cluster yields an
// empty bundle, not an error.
func (c *Controller) Waveforms(clusterID model.ClusterID) (*model.WaveformBundle, error) {
	spikeIDs := c.SelectSpikes([]model.ClusterID{clusterID}, c.nSpikesWaveforms, c.batchSizeWaveforms)
	channelIDs := c.BestChannels(clusterID)

	data, err := c.ds.Waveforms(spikeIDs, channelIDs)
	c.logger.LogExtract(context.Background(), "waveforms", clusterID, len(spikeIDs), err)
	if err != nil {
		return nil, err
	}
	return &model.WaveformBundle{
		Data:       data,
		SpikeIDs:   spikeIDs,
		ChannelIDs: channelIDs,
	}, nil
}
