package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotap/spikeview/blobstore"
	"github.com/neurotap/spikeview/codec"
	"github.com/neurotap/spikeview/model"
)

func persistParams(t *testing.T) Params {
	p := testParams(t)

	sim := model.NewMatrix(1, 1)
	sim.Set(0, 0, 1)
	p.TemplateSimilarity = sim

	tf := model.NewMatrix(4, 1)
	for i := 0; i < 4; i++ {
		tf.Set(i, 0, float32(i)+0.5)
	}
	p.TemplateFeatures = tf

	feats := model.NewMatrix(4, 4) // 2 channels x 2 PCs
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			feats.Set(i, j, float32(10*i+j))
		}
	}
	p.Features = feats
	p.FeaturesPerChannel = 2
	return p
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	ctx := context.Background()
	src, err := New(persistParams(t))
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, src, codec.CompressionLZ4))

	got, err := Load(ctx, store, LoadParams{
		SampleRate:         src.SampleRate(),
		FeaturesPerChannel: 2,
		Raw:                NewMemorySource(model.NewMatrix(100, 2)),
	})
	require.NoError(t, err)

	assert.Equal(t, src.NumSpikes(), got.NumSpikes())
	assert.Equal(t, src.NumTemplates(), got.NumTemplates())
	assert.Equal(t, src.TemplateLength(), got.TemplateLength())
	for i := 0; i < src.NumSpikes(); i++ {
		id := model.SpikeID(i)
		assert.Equal(t, src.SpikeTime(id), got.SpikeTime(id))
		assert.Equal(t, src.SpikeCluster(id), got.SpikeCluster(id))
		assert.Equal(t, src.SpikeTemplate(id), got.SpikeTemplate(id))
		assert.Equal(t, src.Amplitude(id), got.Amplitude(id))
	}
	assert.Equal(t, src.ChannelPosition(1), got.ChannelPosition(1))
	assert.Equal(t, src.TemplateSimilarity(0, 0), got.TemplateSimilarity(0, 0))

	srcT, _ := src.Template(0)
	gotT, ok := got.Template(0)
	require.True(t, ok)
	assert.Equal(t, srcT.ChannelIDs, gotT.ChannelIDs)
	assert.Equal(t, srcT.BestChannel, gotT.BestChannel)
	assert.Equal(t, srcT.Waveform.Data(), gotT.Waveform.Data())

	ids := []model.SpikeID{0, 1, 2, 3}
	srcTF, err := src.TemplateFeatures(ids)
	require.NoError(t, err)
	gotTF, err := got.TemplateFeatures(ids)
	require.NoError(t, err)
	assert.Equal(t, srcTF.Data(), gotTF.Data())

	srcF, err := src.Features(ids, []model.ChannelID{0, 1})
	require.NoError(t, err)
	gotF, err := got.Features(ids, []model.ChannelID{0, 1})
	require.NoError(t, err)
	assert.Equal(t, srcF.Data(), gotF.Data())
}

func TestLoad_FeaturesOptional(t *testing.T) {
	ctx := context.Background()
	p := persistParams(t)
	p.Features = nil
	p.FeaturesPerChannel = 0
	src, err := New(p)
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, src, codec.CompressionNone))

	got, err := Load(ctx, store, LoadParams{SampleRate: 10})
	require.NoError(t, err)
	_, err = got.Features([]model.SpikeID{0}, []model.ChannelID{0})
	assert.ErrorIs(t, err, ErrNoFeatures)
}

func TestLoad_MissingRequiredBlob(t *testing.T) {
	ctx := context.Background()
	src, err := New(persistParams(t))
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, src, codec.CompressionNone))

	// A store without the time column cannot be assembled.
	partial := blobstore.NewMemoryStore()
	for _, name := range []string{
		BlobAmplitudes, BlobSpikeClusters, BlobSpikeTemplates,
		BlobChannelPositions, BlobTemplateSimilarity, BlobTemplateFeatures,
		BlobTemplateWaveforms, BlobTemplateChannels, BlobTemplateBestChannels,
	} {
		data, err := blobstore.Fetch(ctx, store, name)
		require.NoError(t, err)
		require.NoError(t, partial.Put(ctx, name, data))
	}

	_, err = Load(ctx, partial, LoadParams{SampleRate: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
