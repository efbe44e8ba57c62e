package spikeview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotap/spikeview/model"
)

func seq(n int) []model.SpikeID {
	out := make([]model.SpikeID, n)
	for i := range out {
		out[i] = model.SpikeID(i)
	}
	return out
}

func TestSubsample_SmallClusterReturnedUnchanged(t *testing.T) {
	spikes := seq(5)
	got := subsample(spikes, 100, 10)
	assert.Equal(t, spikes, got)
}

func TestSubsample_BatchedSpread(t *testing.T) {
	got := subsample(seq(250), 100, 10)
	require.Len(t, got, 100)

	// 4 spikes from each of the 25 batches, not the first 100 spikes.
	perBatch := make(map[int]int)
	for _, s := range got {
		perBatch[int(s)/10]++
	}
	require.Len(t, perBatch, 25)
	for batch, n := range perBatch {
		assert.Equal(t, 4, n, "batch %d", batch)
	}

	for i := 1; i < len(got); i++ {
		require.Greater(t, got[i], got[i-1], "selection must be strictly increasing")
	}
}

func TestSubsample_Deterministic(t *testing.T) {
	a := subsample(seq(2500), 300, 17)
	b := subsample(seq(2500), 300, 17)
	assert.Equal(t, a, b)
}

func TestSubsample_MoreBatchesThanBudget(t *testing.T) {
	// 100 batches but a budget of 10: global even spread.
	got := subsample(seq(1000), 10, 10)
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		require.Greater(t, got[i], got[i-1])
	}
	assert.Equal(t, model.SpikeID(0), got[0])
	assert.Equal(t, model.SpikeID(900), got[9])
}

func TestSubsample_EmptyAndZeroBudget(t *testing.T) {
	assert.Empty(t, subsample(nil, 100, 10))
	assert.Empty(t, subsample(seq(50), 0, 10))
	assert.Empty(t, subsample(seq(50), -1, 10))
}

func TestSelectSpikes_UnionAcrossClusters(t *testing.T) {
	ctl := newTestController(t)
	got := ctl.SelectSpikes([]model.ClusterID{0, 1}, 100, 10)
	assert.Equal(t, seq(6), got)
}

func TestSelectSpikes_ReflectsMembershipChanges(t *testing.T) {
	ctl := newTestController(t)

	before := ctl.SelectSpikes([]model.ClusterID{1}, 100, 10)
	assert.Equal(t, []model.SpikeID{2, 4}, before)

	// Merge cluster 1 into a new cluster; selection must re-resolve.
	ctl.Clustering().Assign([]model.SpikeID{2, 4}, 5)
	assert.Empty(t, ctl.SelectSpikes([]model.ClusterID{1}, 100, 10))
	assert.Equal(t, []model.SpikeID{2, 4}, ctl.SelectSpikes([]model.ClusterID{5}, 100, 10))
}
