package spikeview

import (
	"context"

	"github.com/neurotap/spikeview/model"
)

// featureSpikeIDs selects the spikes feature-like views use for a cluster:
// the standard bounded selection with a single batch.
func (c *Controller) featureSpikeIDs(clusterID model.ClusterID) []model.SpikeID {
	return c.SelectSpikes([]model.ClusterID{clusterID}, c.nSpikesFeatures, c.nSpikesFeatures)
}

// backgroundSpikeIDs returns a fixed-stride subsample of all spikes in the
// session, used to draw the background point cloud behind a cluster.
func (c *Controller) backgroundSpikeIDs() []model.SpikeID {
	n := c.ds.NumSpikes()
	stride := max(1, n/c.nSpikesFeatures)
	out := make([]model.SpikeID, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		out = append(out, model.SpikeID(i))
	}
	return out
}

// Features extracts feature rows for a cluster on its best channels.
func (c *Controller) Features(clusterID model.ClusterID) (*model.FeatureBundle, error) {
	spikeIDs := c.featureSpikeIDs(clusterID)
	channelIDs := c.BestChannels(clusterID)

	data, err := c.ds.Features(spikeIDs, channelIDs)
	c.logger.LogExtract(context.Background(), "features", clusterID, len(spikeIDs), err)
	if err != nil {
		return nil, err
	}
	return &model.FeatureBundle{
		Data:       data,
		SpikeIDs:   spikeIDs,
		ChannelIDs: channelIDs,
	}, nil
}

// BackgroundFeatures extracts feature rows for the background point cloud.
// With no cluster to derive channels from, the channel subset must be given
// explicitly; an empty subset is a contract violation.
func (c *Controller) BackgroundFeatures(channelIDs []model.ChannelID) (*model.FeatureBundle, error) {
	if len(channelIDs) == 0 {
		return nil, ErrMissingChannels
	}
	spikeIDs := c.backgroundSpikeIDs()

	data, err := c.ds.Features(spikeIDs, channelIDs)
	if err != nil {
		return nil, err
	}
	return &model.FeatureBundle{
		Data:       data,
		SpikeIDs:   spikeIDs,
		ChannelIDs: channelIDs,
	}, nil
}

// SpikeTimes returns the spike times of the cluster's feature selection with
// the recording's time range, for axis scaling.
func (c *Controller) SpikeTimes(clusterID model.ClusterID) *model.TimeSeriesBundle {
	spikeIDs := c.featureSpikeIDs(clusterID)
	return &model.TimeSeriesBundle{
		Data: c.ds.Times(spikeIDs),
		Lim:  [2]float64{0, c.ds.Duration()},
	}
}

// BackgroundSpikeTimes returns the spike times of the background selection.
func (c *Controller) BackgroundSpikeTimes() *model.TimeSeriesBundle {
	spikeIDs := c.backgroundSpikeIDs()
	return &model.TimeSeriesBundle{
		Data: c.ds.Times(spikeIDs),
		Lim:  [2]float64{0, c.ds.Duration()},
	}
}
