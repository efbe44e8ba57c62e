package spikeview

import (
	"errors"

	"github.com/neurotap/spikeview/cluster"
	"github.com/neurotap/spikeview/dataset"
	"github.com/neurotap/spikeview/model"
)

// Controller is the extraction API over one session: an immutable dataset
// plus the live clustering view. All methods are safe for concurrent use as
// long as clustering mutations are serialized by the caller.
type Controller struct {
	ds         *dataset.Dataset
	clustering *cluster.Clustering
	colors     ColorResolver
	logger     *Logger

	nSpikesWaveforms   int
	batchSizeWaveforms int
	nSpikesFeatures    int
	nSpikesAmplitudes  int
	nSpikesCorrelogram int
}

// New creates a Controller for the given dataset and clustering view.
func New(ds *dataset.Dataset, clustering *cluster.Clustering, optFns ...Option) (*Controller, error) {
	if ds == nil {
		return nil, errors.New("spikeview: dataset required")
	}
	if clustering == nil {
		return nil, errors.New("spikeview: clustering required")
	}
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return &Controller{
		ds:                 ds,
		clustering:         clustering,
		colors:             o.colors,
		logger:             o.logger,
		nSpikesWaveforms:   o.nSpikesWaveforms,
		batchSizeWaveforms: o.batchSizeWaveforms,
		nSpikesFeatures:    o.nSpikesFeatures,
		nSpikesAmplitudes:  o.nSpikesAmplitudes,
		nSpikesCorrelogram: o.nSpikesCorrelogram,
	}, nil
}

// Dataset returns the session dataset.
func (c *Controller) Dataset() *dataset.Dataset { return c.ds }

// Clustering returns the live clustering view.
func (c *Controller) Clustering() *cluster.Clustering { return c.clustering }

// TemplateCounts returns the per-template spike-count histogram of a
// cluster, with one entry per template in the session.
func (c *Controller) TemplateCounts(clusterID model.ClusterID) []int {
	counts := make([]int, c.ds.NumTemplates())
	for _, s := range c.clustering.Spikes(clusterID) {
		t := c.ds.SpikeTemplate(s)
		if int(t) >= 0 && int(t) < len(counts) {
			counts[t]++
		}
	}
	return counts
}

// TemplateForCluster returns the cluster's dominant template: the template
// with the highest spike count, smallest id on ties. ok is false for an
// empty cluster.
func (c *Controller) TemplateForCluster(clusterID model.ClusterID) (model.TemplateID, bool) {
	counts := c.TemplateCounts(clusterID)
	best, bestCount := -1, 0
	for t, n := range counts {
		if n > bestCount {
			best, bestCount = t, n
		}
	}
	if best < 0 {
		return 0, false
	}
	return model.TemplateID(best), true
}

// BestChannel returns the peak channel of a cluster's dominant template.
func (c *Controller) BestChannel(clusterID model.ClusterID) (model.ChannelID, bool) {
	tid, ok := c.TemplateForCluster(clusterID)
	if !ok {
		return 0, false
	}
	tmpl, ok := c.ds.Template(tid)
	if !ok {
		return 0, false
	}
	return tmpl.BestChannel, true
}

// BestChannels returns the channel subset of a cluster's dominant template,
// or nil for an empty cluster.
func (c *Controller) BestChannels(clusterID model.ClusterID) []model.ChannelID {
	tid, ok := c.TemplateForCluster(clusterID)
	if !ok {
		return nil
	}
	tmpl, ok := c.ds.Template(tid)
	if !ok {
		return nil
	}
	return tmpl.ChannelIDs
}

// ProbeDepth returns the depth (probe y-coordinate) of a cluster's best
// channel, or 0 for an empty cluster.
func (c *Controller) ProbeDepth(clusterID model.ClusterID) float64 {
	ch, ok := c.BestChannel(clusterID)
	if !ok {
		return 0
	}
	return c.ds.ChannelPosition(ch).Y
}
