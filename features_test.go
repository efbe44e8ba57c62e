package spikeview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotap/spikeview/model"
)

func TestFeatures_ClusterOnBestChannels(t *testing.T) {
	ctl := newTestController(t)

	got, err := ctl.Features(1)
	require.NoError(t, err)

	assert.Equal(t, []model.SpikeID{2, 4}, got.SpikeIDs)
	assert.Equal(t, []model.ChannelID{1, 2}, got.ChannelIDs)
	require.Equal(t, 2, got.Data.Rows())
	require.Equal(t, 4, got.Data.Cols()) // 2 channels x 2 PCs

	// Feature rows are 100*spike + featureIndex; channels 1 and 2 occupy
	// feature columns 2..5.
	assert.Equal(t, []float32{202, 203, 204, 205}, got.Data.Row(0))
	assert.Equal(t, []float32{402, 403, 404, 405}, got.Data.Row(1))
}

func TestBackgroundFeatures_RequiresChannels(t *testing.T) {
	ctl := newTestController(t)
	_, err := ctl.BackgroundFeatures(nil)
	assert.ErrorIs(t, err, ErrMissingChannels)
}

func TestBackgroundFeatures_StrideSubsample(t *testing.T) {
	ctl := newTestController(t, WithFeatureLimit(3))

	got, err := ctl.BackgroundFeatures([]model.ChannelID{0})
	require.NoError(t, err)

	// 6 spikes with a budget of 3: stride 2 picks spikes 0, 2, 4.
	assert.Equal(t, []model.SpikeID{0, 2, 4}, got.SpikeIDs)
	require.Equal(t, 3, got.Data.Rows())
	assert.Equal(t, []float32{0, 1}, got.Data.Row(0))
	assert.Equal(t, []float32{200, 201}, got.Data.Row(1))
	assert.Equal(t, []float32{400, 401}, got.Data.Row(2))
}

func TestSpikeTimes_AxisLimits(t *testing.T) {
	ctl := newTestController(t)

	got := ctl.SpikeTimes(0)
	assert.Equal(t, []float64{0.00, 0.10, 0.20, 0.30}, got.Data)
	assert.Equal(t, [2]float64{0, 10}, got.Lim) // 1000 samples at 100 Hz

	bg := ctl.BackgroundSpikeTimes()
	assert.Len(t, bg.Data, 6)
	assert.Equal(t, [2]float64{0, 10}, bg.Lim)
}

func TestAmplitudes_PairedArrays(t *testing.T) {
	ctl := newTestController(t)

	got := ctl.Amplitudes(1)
	assert.Equal(t, []float64{0.15, 0.25}, got.X)
	assert.Equal(t, []float64{3, 5}, got.Y)
	assert.Equal(t, []model.SpikeID{2, 4}, got.SpikeIDs)
}

func TestAmplitudes_EmptyCluster(t *testing.T) {
	ctl := newTestController(t)
	got := ctl.Amplitudes(42)
	assert.Empty(t, got.X)
	assert.Empty(t, got.Y)
}
