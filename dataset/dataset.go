// Package dataset holds the immutable per-session arrays extraction reads
// from: spike columns (time, cluster, template, amplitude), template kernels,
// channel positions, per-spike template features and the template similarity
// matrix, plus the raw multichannel recording behind a RawSource.
//
// Everything is loaded once and read-only for the lifetime of a session.
// Cluster membership is deliberately NOT part of the dataset; it lives in
// the cluster package and may change between extraction calls.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/neurotap/spikeview/model"
)

var (
	// ErrNoRawData is returned when an operation needs the raw recording and
	// the dataset was built without one.
	ErrNoRawData = errors.New("dataset: no raw trace source")
	// ErrNoFeatures is returned when per-spike features were not loaded.
	ErrNoFeatures = errors.New("dataset: no per-spike features")
	// ErrNoTemplateFeatures is returned when template features were not loaded.
	ErrNoTemplateFeatures = errors.New("dataset: no template features")
	// ErrUnsortedSpikeTimes is returned when spike times are not non-decreasing.
	ErrUnsortedSpikeTimes = errors.New("dataset: spike times must be non-decreasing")
)

// ShapeError reports an array whose length or shape disagrees with the rest
// of the dataset. It is a contract violation, not a recoverable condition.
type ShapeError struct {
	Field string
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataset: %s has length %d, want %d", e.Field, e.Got, e.Want)
}

// Params assembles a Dataset. SpikeTimes, SpikeClusters, SpikeTemplates and
// Amplitudes are parallel columns indexed by spike id. Features and
// TemplateFeatures are optional; Raw is optional for amplitude/feature-only
// sessions.
type Params struct {
	SampleRate float64

	SpikeTimes     []float64
	SpikeClusters  []model.ClusterID
	SpikeTemplates []model.TemplateID
	Amplitudes     []float64

	Templates        []model.Template
	ChannelPositions []model.Point

	// TemplateSimilarity is the precomputed nTemplates x nTemplates
	// template-pair similarity matrix.
	TemplateSimilarity *model.Matrix

	// TemplateFeatures holds one row per spike with the spike's projection
	// onto every template (nSpikes x nTemplates).
	TemplateFeatures *model.Matrix

	// Features holds one row per spike, laid out as FeaturesPerChannel
	// values per recording channel (nSpikes x nChannels*FeaturesPerChannel).
	Features           *model.Matrix
	FeaturesPerChannel int

	Raw RawSource
}

// Dataset is the read-only sample source extraction operates on.
type Dataset struct {
	sampleRate float64

	spikeTimes     []float64
	spikeClusters  []model.ClusterID
	spikeTemplates []model.TemplateID
	amplitudes     []float64

	templates      []model.Template
	templateLength int

	channelPositions   []model.Point
	templateSimilarity *model.Matrix
	templateFeatures   *model.Matrix

	features           *model.Matrix
	featuresPerChannel int

	raw RawSource
}

// New validates the arrays and assembles a Dataset.
func New(p Params) (*Dataset, error) {
	if p.SampleRate <= 0 {
		return nil, fmt.Errorf("dataset: sample rate must be positive, got %g", p.SampleRate)
	}
	n := len(p.SpikeTimes)
	if len(p.SpikeClusters) != n {
		return nil, &ShapeError{Field: "spike clusters", Want: n, Got: len(p.SpikeClusters)}
	}
	if len(p.SpikeTemplates) != n {
		return nil, &ShapeError{Field: "spike templates", Want: n, Got: len(p.SpikeTemplates)}
	}
	if len(p.Amplitudes) != n {
		return nil, &ShapeError{Field: "amplitudes", Want: n, Got: len(p.Amplitudes)}
	}
	if !sort.Float64sAreSorted(p.SpikeTimes) {
		return nil, ErrUnsortedSpikeTimes
	}
	if len(p.Templates) == 0 {
		return nil, errors.New("dataset: at least one template required")
	}

	tLen := p.Templates[0].Length()
	for i := range p.Templates {
		t := &p.Templates[i]
		if t.Length() != tLen {
			return nil, &ShapeError{Field: fmt.Sprintf("template %d length", t.ID), Want: tLen, Got: t.Length()}
		}
		if t.Waveform.Cols() != len(t.ChannelIDs) {
			return nil, &ShapeError{Field: fmt.Sprintf("template %d channels", t.ID), Want: t.Waveform.Cols(), Got: len(t.ChannelIDs)}
		}
	}

	nT := len(p.Templates)
	if p.TemplateSimilarity != nil {
		if p.TemplateSimilarity.Rows() != nT || p.TemplateSimilarity.Cols() != nT {
			return nil, &ShapeError{Field: "template similarity rows", Want: nT, Got: p.TemplateSimilarity.Rows()}
		}
	}
	if p.TemplateFeatures != nil {
		if p.TemplateFeatures.Rows() != n {
			return nil, &ShapeError{Field: "template feature rows", Want: n, Got: p.TemplateFeatures.Rows()}
		}
		if p.TemplateFeatures.Cols() != nT {
			return nil, &ShapeError{Field: "template feature cols", Want: nT, Got: p.TemplateFeatures.Cols()}
		}
	}
	if p.Features != nil {
		if p.FeaturesPerChannel <= 0 {
			return nil, errors.New("dataset: features per channel must be positive when features are present")
		}
		if p.Features.Rows() != n {
			return nil, &ShapeError{Field: "feature rows", Want: n, Got: p.Features.Rows()}
		}
		if p.Raw != nil {
			want := p.Raw.NumChannels() * p.FeaturesPerChannel
			if p.Features.Cols() != want {
				return nil, &ShapeError{Field: "feature cols", Want: want, Got: p.Features.Cols()}
			}
		}
	}

	return &Dataset{
		sampleRate:         p.SampleRate,
		spikeTimes:         p.SpikeTimes,
		spikeClusters:      p.SpikeClusters,
		spikeTemplates:     p.SpikeTemplates,
		amplitudes:         p.Amplitudes,
		templates:          p.Templates,
		templateLength:     tLen,
		channelPositions:   p.ChannelPositions,
		templateSimilarity: p.TemplateSimilarity,
		templateFeatures:   p.TemplateFeatures,
		features:           p.Features,
		featuresPerChannel: p.FeaturesPerChannel,
		raw:                p.Raw,
	}, nil
}

// NumSpikes returns the number of spikes in the session.
func (d *Dataset) NumSpikes() int { return len(d.spikeTimes) }

// NumTemplates returns the number of templates.
func (d *Dataset) NumTemplates() int { return len(d.templates) }

// NumChannels returns the recording channel count, or 0 without raw data.
func (d *Dataset) NumChannels() int {
	if d.raw == nil {
		return 0
	}
	return d.raw.NumChannels()
}

// SampleRate returns the sampling rate in Hz.
func (d *Dataset) SampleRate() float64 { return d.sampleRate }

// Duration returns the recording duration in seconds: the raw extent when
// raw data is present, otherwise the last spike time.
func (d *Dataset) Duration() float64 {
	if d.raw != nil {
		return float64(d.raw.NumSamples()) / d.sampleRate
	}
	if n := len(d.spikeTimes); n > 0 {
		return d.spikeTimes[n-1]
	}
	return 0
}

// TemplateLength returns the template waveform length in samples.
func (d *Dataset) TemplateLength() int { return d.templateLength }

// SpikeTime returns the time of spike id in seconds.
func (d *Dataset) SpikeTime(id model.SpikeID) float64 { return d.spikeTimes[id] }

// SpikeCluster returns the original (sorting-time) cluster of spike id.
func (d *Dataset) SpikeCluster(id model.SpikeID) model.ClusterID { return d.spikeClusters[id] }

// SpikeTemplate returns the dominant template of spike id.
func (d *Dataset) SpikeTemplate(id model.SpikeID) model.TemplateID { return d.spikeTemplates[id] }

// Amplitude returns the amplitude of spike id.
func (d *Dataset) Amplitude(id model.SpikeID) float64 { return d.amplitudes[id] }

// SpikeClusters returns the full original assignment column.
func (d *Dataset) SpikeClusters() []model.ClusterID { return d.spikeClusters }

// SpikeSample returns the sample offset of spike id: round(time * rate).
func (d *Dataset) SpikeSample(id model.SpikeID) int {
	return int(math.Round(d.spikeTimes[id] * d.sampleRate))
}

// Template returns the template with the given id.
func (d *Dataset) Template(id model.TemplateID) (*model.Template, bool) {
	if int(id) < 0 || int(id) >= len(d.templates) {
		return nil, false
	}
	return &d.templates[id], true
}

// ChannelPosition returns the probe coordinate of a channel.
func (d *Dataset) ChannelPosition(id model.ChannelID) model.Point {
	return d.channelPositions[id]
}

// TemplateSimilarity returns the template-pair similarity value for (i, j),
// or 0 when no similarity matrix was loaded.
func (d *Dataset) TemplateSimilarity(i, j model.TemplateID) float64 {
	if d.templateSimilarity == nil {
		return 0
	}
	return float64(d.templateSimilarity.At(int(i), int(j)))
}

// SearchTimeRange returns the half-open spike id range [a, b) of spikes with
// time in [t0, t1), via binary search over the sorted time column.
func (d *Dataset) SearchTimeRange(t0, t1 float64) (a, b model.SpikeID) {
	lo := sort.SearchFloat64s(d.spikeTimes, t0)
	hi := sort.SearchFloat64s(d.spikeTimes, t1)
	return model.SpikeID(lo), model.SpikeID(hi)
}

// Times returns the spike times for the given ids.
func (d *Dataset) Times(spikeIDs []model.SpikeID) []float64 {
	out := make([]float64, len(spikeIDs))
	for i, id := range spikeIDs {
		out[i] = d.spikeTimes[id]
	}
	return out
}

// Amplitudes returns the amplitudes for the given ids.
func (d *Dataset) Amplitudes(spikeIDs []model.SpikeID) []float64 {
	out := make([]float64, len(spikeIDs))
	for i, id := range spikeIDs {
		out[i] = d.amplitudes[id]
	}
	return out
}

// TemplateFeatures returns the template-feature rows for the given spikes
// (len(spikeIDs) x nTemplates).
func (d *Dataset) TemplateFeatures(spikeIDs []model.SpikeID) (*model.Matrix, error) {
	if d.templateFeatures == nil {
		return nil, ErrNoTemplateFeatures
	}
	out := model.NewMatrix(len(spikeIDs), d.templateFeatures.Cols())
	for i, id := range spikeIDs {
		copy(out.Row(i), d.templateFeatures.Row(int(id)))
	}
	return out, nil
}

// Features returns the feature rows for the given spikes restricted to the
// given channels (len(spikeIDs) x len(channelIDs)*featuresPerChannel).
func (d *Dataset) Features(spikeIDs []model.SpikeID, channelIDs []model.ChannelID) (*model.Matrix, error) {
	if d.features == nil {
		return nil, ErrNoFeatures
	}
	fpc := d.featuresPerChannel
	out := model.NewMatrix(len(spikeIDs), len(channelIDs)*fpc)
	for i, id := range spikeIDs {
		src := d.features.Row(int(id))
		dst := out.Row(i)
		for j, ch := range channelIDs {
			copy(dst[j*fpc:(j+1)*fpc], src[int(ch)*fpc:(int(ch)+1)*fpc])
		}
	}
	return out, nil
}

// Waveforms extracts a fixed-length snippet around each spike, restricted to
// the given channels. Snippets are templateLength samples long and centered
// the way templates are (floor(L/2) samples before the spike). Windows
// crossing the recording edges are zero-filled outside the recording.
func (d *Dataset) Waveforms(spikeIDs []model.SpikeID, channelIDs []model.ChannelID) ([]*model.Matrix, error) {
	if d.raw == nil {
		return nil, ErrNoRawData
	}
	L := d.templateLength
	k0 := L / 2
	k1 := L - k0
	n := d.raw.NumSamples()
	cols := make([]int, len(channelIDs))
	for i, ch := range channelIDs {
		cols[i] = int(ch)
	}

	out := make([]*model.Matrix, len(spikeIDs))
	for i, id := range spikeIDs {
		snippet := model.NewMatrix(L, len(channelIDs))
		s := d.SpikeSample(id)
		lo, hi := s-k0, s+k1
		clo, chi := max(lo, 0), min(hi, n)
		if chi > clo {
			seg, err := d.raw.Slice(clo, chi)
			if err != nil {
				return nil, err
			}
			picked := seg.SelectColumns(cols)
			for r := 0; r < picked.Rows(); r++ {
				copy(snippet.Row(r+clo-lo), picked.Row(r))
			}
		}
		out[i] = snippet
	}
	return out, nil
}

// TraceSlice returns the raw rows covering the interval, clamped to the
// recording bounds, along with the absolute sample index of the first row.
func (d *Dataset) TraceSlice(iv model.Interval) (*model.Matrix, int, error) {
	if d.raw == nil {
		return nil, 0, ErrNoRawData
	}
	return SelectTraces(d.raw, iv, d.sampleRate)
}
