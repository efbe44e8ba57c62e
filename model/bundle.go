package model

// WaveformBundle carries the waveform snippets extracted for a cluster.
// Data holds one snippet per selected spike, each shaped
// templateLength x len(ChannelIDs).
type WaveformBundle struct {
	Data       []*Matrix
	SpikeIDs   []SpikeID
	ChannelIDs []ChannelID
}

// FeatureBundle carries per-spike feature rows restricted to a channel
// subset. Data is shaped len(SpikeIDs) x (len(ChannelIDs) * featuresPerChannel).
type FeatureBundle struct {
	Data       *Matrix
	SpikeIDs   []SpikeID
	ChannelIDs []ChannelID
}

// TimeSeriesBundle carries per-spike scalar values over time with the axis
// limits the view should use.
type TimeSeriesBundle struct {
	Data []float64
	Lim  [2]float64
}

// AmplitudeBundle carries paired (time, amplitude) arrays for a cluster.
type AmplitudeBundle struct {
	X        []float64
	Y        []float64
	SpikeIDs []SpikeID
}

// TraceClip is a single spike's waveform cut out of a trace window,
// restricted to the spike's best channels.
type TraceClip struct {
	Data       *Matrix
	ChannelIDs []ChannelID
	StartTime  float64
	ClusterID  ClusterID
	Color      Color
}

// TraceBundle is a raw trace slice for an interval plus the clips of every
// spike whose window fits fully inside it, in spike-time order.
type TraceBundle struct {
	Data      *Matrix
	StartTime float64
	Waveforms []TraceClip
}

// Bounds is an axis-aligned bounding box for scatter coordinates.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// ProjectionBundle carries the paired coordinate arrays of a two-cluster
// template-feature comparison. X0/Y0 belong to the first cluster's spikes,
// X1/Y1 to the second's.
type ProjectionBundle struct {
	X0     []float64
	Y0     []float64
	X1     []float64
	Y1     []float64
	Bounds Bounds
}

// CorrelogramBundle holds pairwise spike-time difference histograms.
// Counts[i][j][b] is the number of spike pairs (s in cluster i, s' in
// cluster j) whose lag falls into bin b; the center bin is zero lag.
type CorrelogramBundle struct {
	ClusterIDs []ClusterID
	BinSize    float64
	WindowSize float64
	Counts     [][][]int
}

// NumBins returns the number of lag bins per cluster pair.
func (b *CorrelogramBundle) NumBins() int {
	if len(b.Counts) == 0 || len(b.Counts[0]) == 0 {
		return 0
	}
	return len(b.Counts[0][0])
}
