package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotap/spikeview/model"
)

func testParams(t *testing.T) Params {
	t.Helper()

	raw := model.NewMatrix(100, 2)
	for r := 0; r < 100; r++ {
		raw.Set(r, 0, float32(r))
		raw.Set(r, 1, float32(-r))
	}

	kernel := model.NewMatrix(4, 1)
	for r := 0; r < 4; r++ {
		kernel.Set(r, 0, 1)
	}
	return Params{
		SampleRate:       10,
		SpikeTimes:       []float64{0.5, 1.2, 3.0, 7.7},
		SpikeClusters:    []model.ClusterID{0, 0, 1, 1},
		SpikeTemplates:   []model.TemplateID{0, 0, 0, 0},
		Amplitudes:       []float64{1, 2, 3, 4},
		Templates:        []model.Template{{ID: 0, Waveform: kernel, ChannelIDs: []model.ChannelID{0}, BestChannel: 0}},
		ChannelPositions: []model.Point{{X: 0, Y: 0}, {X: 0, Y: 20}},
		Raw:              NewMemorySource(raw),
	}
}

func TestNew_ShapeValidation(t *testing.T) {
	p := testParams(t)
	p.Amplitudes = p.Amplitudes[:2]
	_, err := New(p)
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 4, se.Want)
	assert.Equal(t, 2, se.Got)
}

func TestNew_RejectsUnsortedTimes(t *testing.T) {
	p := testParams(t)
	p.SpikeTimes = []float64{0.5, 0.3, 3.0, 7.7}
	_, err := New(p)
	assert.ErrorIs(t, err, ErrUnsortedSpikeTimes)
}

func TestSearchTimeRange(t *testing.T) {
	ds, err := New(testParams(t))
	require.NoError(t, err)

	a, b := ds.SearchTimeRange(1.0, 4.0)
	assert.Equal(t, model.SpikeID(1), a)
	assert.Equal(t, model.SpikeID(3), b)

	a, b = ds.SearchTimeRange(8.0, 9.0)
	assert.Equal(t, a, b)

	// The range is half-open: a spike exactly at the end is excluded.
	a, b = ds.SearchTimeRange(0.5, 3.0)
	assert.Equal(t, model.SpikeID(0), a)
	assert.Equal(t, model.SpikeID(2), b)
}

func TestSpikeSample_Rounding(t *testing.T) {
	ds, err := New(testParams(t))
	require.NoError(t, err)
	assert.Equal(t, 5, ds.SpikeSample(0))  // 0.5 * 10
	assert.Equal(t, 12, ds.SpikeSample(1)) // 1.2 * 10
	assert.Equal(t, 77, ds.SpikeSample(3))
}

func TestTraceSlice_ClampsToRecording(t *testing.T) {
	ds, err := New(testParams(t))
	require.NoError(t, err)

	m, s0, err := ds.TraceSlice(model.Interval{Start: -1, End: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, s0)
	assert.Equal(t, 20, m.Rows())

	m, s0, err = ds.TraceSlice(model.Interval{Start: 9, End: 20})
	require.NoError(t, err)
	assert.Equal(t, 90, s0)
	assert.Equal(t, 10, m.Rows())
	assert.Equal(t, float32(90), m.At(0, 0))
}

func TestWaveforms_ZeroFillAtEdges(t *testing.T) {
	ds, err := New(testParams(t))
	require.NoError(t, err)

	// Template length 4: a spike at sample 77 covers rows 75..78.
	snippets, err := ds.Waveforms([]model.SpikeID{3}, []model.ChannelID{0, 1})
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	s := snippets[0]
	assert.Equal(t, float32(75), s.At(0, 0))
	assert.Equal(t, float32(-78), s.At(3, 1))

	// A spike at sample 5 near the start still fits; shrink the recording
	// instead: spike at sample 99 covers 97..100, the last row zero-filled.
	p := testParams(t)
	p.SpikeTimes = []float64{9.9}
	p.SpikeClusters = p.SpikeClusters[:1]
	p.SpikeTemplates = p.SpikeTemplates[:1]
	p.Amplitudes = p.Amplitudes[:1]
	ds2, err := New(p)
	require.NoError(t, err)
	snippets, err = ds2.Waveforms([]model.SpikeID{0}, []model.ChannelID{0})
	require.NoError(t, err)
	s = snippets[0]
	assert.Equal(t, float32(97), s.At(0, 0))
	assert.Equal(t, float32(98), s.At(1, 0))
	assert.Equal(t, float32(99), s.At(2, 0))
	assert.Zero(t, s.At(3, 0))
}

func TestFeatures_MissingIsContractError(t *testing.T) {
	ds, err := New(testParams(t))
	require.NoError(t, err)
	_, err = ds.Features([]model.SpikeID{0}, []model.ChannelID{0})
	assert.ErrorIs(t, err, ErrNoFeatures)
	_, err = ds.TemplateFeatures([]model.SpikeID{0})
	assert.ErrorIs(t, err, ErrNoTemplateFeatures)
}

func TestDuration(t *testing.T) {
	ds, err := New(testParams(t))
	require.NoError(t, err)
	assert.Equal(t, 10.0, ds.Duration()) // 100 samples at 10 Hz

	p := testParams(t)
	p.Raw = nil
	ds, err = New(p)
	require.NoError(t, err)
	assert.Equal(t, 7.7, ds.Duration()) // falls back to the last spike
}

func TestDescribe(t *testing.T) {
	ds, err := New(testParams(t))
	require.NoError(t, err)
	var sb strings.Builder
	ds.Describe(&sb)
	out := sb.String()
	assert.Regexp(t, `spikes\s+4`, out)
	assert.Regexp(t, `templates\s+1 \(4 samples\)`, out)
	assert.Regexp(t, `channels\s+2`, out)
}
