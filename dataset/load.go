package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/neurotap/spikeview/blobstore"
	"github.com/neurotap/spikeview/codec"
	"github.com/neurotap/spikeview/model"
)

// Blob names of the array sections a session is assembled from.
const (
	BlobSpikeTimes           = "spike_times.bin"
	BlobSpikeClusters        = "spike_clusters.bin"
	BlobSpikeTemplates       = "spike_templates.bin"
	BlobAmplitudes           = "amplitudes.bin"
	BlobChannelPositions     = "channel_positions.bin"
	BlobTemplateSimilarity   = "similar_templates.bin"
	BlobTemplateFeatures     = "template_features.bin"
	BlobFeatures             = "features.bin"
	BlobTemplateWaveforms    = "template_waveforms.bin"
	BlobTemplateChannels     = "template_channels.bin"
	BlobTemplateBestChannels = "template_best_channels.bin"
)

// LoadParams configures Load. The raw recording is opened separately (it is
// a flat file, not a codec section) and passed in here.
type LoadParams struct {
	SampleRate         float64
	FeaturesPerChannel int
	Raw                RawSource
}

// Load fetches the session arrays from a blob store concurrently and
// assembles a Dataset. The per-spike feature blob is optional; every other
// blob is required.
func Load(ctx context.Context, store blobstore.BlobStore, p LoadParams) (*Dataset, error) {
	var (
		times      []float64
		amplitudes []float64
		clusters   []int32
		templates  []int32

		positions  *model.Matrix
		similarity *model.Matrix
		tFeatures  *model.Matrix
		features   *model.Matrix

		tWaveforms *model.Matrix
		tChannels  struct {
			rows, cols int
			v          []int32
		}
		tBest []int32
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	fetchFloat64s := func(name string, dst *[]float64) {
		g.Go(func() error {
			data, err := blobstore.Fetch(ctx, store, name)
			if err != nil {
				return fmt.Errorf("dataset: fetch %s: %w", name, err)
			}
			*dst, err = codec.DecodeFloat64s(bytes.NewReader(data))
			return err
		})
	}
	fetchInt32s := func(name string, dst *[]int32) {
		g.Go(func() error {
			data, err := blobstore.Fetch(ctx, store, name)
			if err != nil {
				return fmt.Errorf("dataset: fetch %s: %w", name, err)
			}
			_, _, v, err := codec.DecodeInt32s(bytes.NewReader(data))
			*dst = v
			return err
		})
	}
	fetchMatrix := func(name string, dst **model.Matrix, optional bool) {
		g.Go(func() error {
			data, err := blobstore.Fetch(ctx, store, name)
			if errors.Is(err, blobstore.ErrNotFound) && optional {
				return nil
			}
			if err != nil {
				return fmt.Errorf("dataset: fetch %s: %w", name, err)
			}
			*dst, err = codec.DecodeMatrix(bytes.NewReader(data))
			return err
		})
	}

	fetchFloat64s(BlobSpikeTimes, &times)
	fetchFloat64s(BlobAmplitudes, &amplitudes)
	fetchInt32s(BlobSpikeClusters, &clusters)
	fetchInt32s(BlobSpikeTemplates, &templates)
	fetchMatrix(BlobChannelPositions, &positions, false)
	fetchMatrix(BlobTemplateSimilarity, &similarity, false)
	fetchMatrix(BlobTemplateFeatures, &tFeatures, false)
	fetchMatrix(BlobFeatures, &features, true)
	fetchMatrix(BlobTemplateWaveforms, &tWaveforms, false)
	fetchInt32s(BlobTemplateBestChannels, &tBest)
	g.Go(func() error {
		data, err := blobstore.Fetch(ctx, store, BlobTemplateChannels)
		if err != nil {
			return fmt.Errorf("dataset: fetch %s: %w", BlobTemplateChannels, err)
		}
		tChannels.rows, tChannels.cols, tChannels.v, err = codec.DecodeInt32s(bytes.NewReader(data))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tmpls, err := assembleTemplates(tWaveforms, tChannels.rows, tChannels.cols, tChannels.v, tBest)
	if err != nil {
		return nil, err
	}

	spikeClusters := make([]model.ClusterID, len(clusters))
	for i, c := range clusters {
		spikeClusters[i] = model.ClusterID(c)
	}
	spikeTemplates := make([]model.TemplateID, len(templates))
	for i, t := range templates {
		spikeTemplates[i] = model.TemplateID(t)
	}

	chPositions := make([]model.Point, positions.Rows())
	if positions.Cols() != 2 {
		return nil, &ShapeError{Field: "channel position cols", Want: 2, Got: positions.Cols()}
	}
	for i := range chPositions {
		chPositions[i] = model.Point{X: float64(positions.At(i, 0)), Y: float64(positions.At(i, 1))}
	}

	return New(Params{
		SampleRate:         p.SampleRate,
		SpikeTimes:         times,
		SpikeClusters:      spikeClusters,
		SpikeTemplates:     spikeTemplates,
		Amplitudes:         amplitudes,
		Templates:          tmpls,
		ChannelPositions:   chPositions,
		TemplateSimilarity: similarity,
		TemplateFeatures:   tFeatures,
		Features:           features,
		FeaturesPerChannel: p.FeaturesPerChannel,
		Raw:                p.Raw,
	})
}

// assembleTemplates rebuilds the template slice from its three blobs:
// a stacked waveform matrix (nTemplates*L x maxChannels), a channel-id
// matrix (nTemplates x maxChannels, -1 padded) and a best-channel vector.
func assembleTemplates(waveforms *model.Matrix, nTemplates, maxChannels int, channels []int32, best []int32) ([]model.Template, error) {
	if nTemplates == 0 {
		return nil, errors.New("dataset: template channel blob is empty")
	}
	if len(best) != nTemplates {
		return nil, &ShapeError{Field: "template best channels", Want: nTemplates, Got: len(best)}
	}
	if waveforms.Rows()%nTemplates != 0 {
		return nil, &ShapeError{Field: "template waveform rows", Want: nTemplates, Got: waveforms.Rows()}
	}
	if waveforms.Cols() != maxChannels {
		return nil, &ShapeError{Field: "template waveform cols", Want: maxChannels, Got: waveforms.Cols()}
	}
	L := waveforms.Rows() / nTemplates

	out := make([]model.Template, nTemplates)
	for t := 0; t < nTemplates; t++ {
		row := channels[t*maxChannels : (t+1)*maxChannels]
		var chIDs []model.ChannelID
		for _, c := range row {
			if c < 0 {
				break
			}
			chIDs = append(chIDs, model.ChannelID(c))
		}
		cols := make([]int, len(chIDs))
		for i := range cols {
			cols[i] = i
		}
		out[t] = model.Template{
			ID:          model.TemplateID(t),
			Waveform:    waveforms.SliceRows(t*L, (t+1)*L).SelectColumns(cols),
			ChannelIDs:  chIDs,
			BestChannel: model.ChannelID(best[t]),
		}
	}
	return out, nil
}
