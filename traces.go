package spikeview

import (
	"context"

	"github.com/neurotap/spikeview/model"
)

// Traces slices the raw recording for a time interval and attaches a clip
// for every spike whose waveform window fits fully inside the slice. Spikes
// whose window would cross either edge are skipped, not clipped. Clips are
// emitted in spike-time order and colored for the given selection.
func (c *Controller) Traces(iv model.Interval, selected ...model.ClusterID) (*model.TraceBundle, error) {
	if !iv.Valid() {
		return nil, ErrInvalidInterval
	}
	sr := c.ds.SampleRate()

	slice, s0, err := c.ds.TraceSlice(iv)
	if err != nil {
		c.logger.ErrorContext(context.Background(), "trace slice failed", "interval", iv.String(), "error", err)
		return nil, err
	}
	out := &model.TraceBundle{
		Data:      slice,
		StartTime: float64(s0) / sr,
	}

	a, b := c.ds.SearchTimeRange(iv.Start, iv.End)
	k := c.ds.TemplateLength() / 2
	for i := a; i < b; i++ {
		clusterID := c.clustering.ClusterOf(i)
		s := c.ds.SpikeSample(i) - s0
		if s-k < 0 || s+k >= slice.Rows() {
			continue
		}
		channelIDs := c.BestChannels(clusterID)
		cols := make([]int, len(channelIDs))
		for j, ch := range channelIDs {
			cols[j] = int(ch)
		}
		out.Waveforms = append(out.Waveforms, model.TraceClip{
			Data:       slice.SliceRows(s-k, s+k).SelectColumns(cols),
			ChannelIDs: channelIDs,
			StartTime:  float64(s+s0-k) / sr,
			ClusterID:  clusterID,
			Color:      c.colors.Resolve(clusterID, selected, c.clustering.Group(clusterID)),
		})
	}
	return out, nil
}
