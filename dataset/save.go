package dataset

import (
	"bytes"
	"context"
	"fmt"

	"github.com/neurotap/spikeview/blobstore"
	"github.com/neurotap/spikeview/codec"
	"github.com/neurotap/spikeview/model"
)

// Save writes the dataset's arrays to a blob store in the layout Load
// expects. The raw recording is not written; it stays a flat file.
func Save(ctx context.Context, store blobstore.Putter, d *Dataset, c codec.Compression) error {
	put := func(name string, encode func(*bytes.Buffer) error) error {
		var buf bytes.Buffer
		if err := encode(&buf); err != nil {
			return fmt.Errorf("dataset: encode %s: %w", name, err)
		}
		if err := store.Put(ctx, name, buf.Bytes()); err != nil {
			return fmt.Errorf("dataset: put %s: %w", name, err)
		}
		return nil
	}

	if err := put(BlobSpikeTimes, func(b *bytes.Buffer) error {
		return codec.EncodeFloat64s(b, d.spikeTimes, c)
	}); err != nil {
		return err
	}
	if err := put(BlobAmplitudes, func(b *bytes.Buffer) error {
		return codec.EncodeFloat64s(b, d.amplitudes, c)
	}); err != nil {
		return err
	}
	if err := put(BlobSpikeClusters, func(b *bytes.Buffer) error {
		v := make([]int32, len(d.spikeClusters))
		for i, id := range d.spikeClusters {
			v[i] = int32(id)
		}
		return codec.EncodeInt32s(b, len(v), 1, v, c)
	}); err != nil {
		return err
	}
	if err := put(BlobSpikeTemplates, func(b *bytes.Buffer) error {
		v := make([]int32, len(d.spikeTemplates))
		for i, id := range d.spikeTemplates {
			v[i] = int32(id)
		}
		return codec.EncodeInt32s(b, len(v), 1, v, c)
	}); err != nil {
		return err
	}
	if err := put(BlobChannelPositions, func(b *bytes.Buffer) error {
		m := model.NewMatrix(len(d.channelPositions), 2)
		for i, p := range d.channelPositions {
			m.Set(i, 0, float32(p.X))
			m.Set(i, 1, float32(p.Y))
		}
		return codec.EncodeMatrix(b, m, c)
	}); err != nil {
		return err
	}
	if d.templateSimilarity != nil {
		if err := put(BlobTemplateSimilarity, func(b *bytes.Buffer) error {
			return codec.EncodeMatrix(b, d.templateSimilarity, c)
		}); err != nil {
			return err
		}
	}
	if d.templateFeatures != nil {
		if err := put(BlobTemplateFeatures, func(b *bytes.Buffer) error {
			return codec.EncodeMatrix(b, d.templateFeatures, c)
		}); err != nil {
			return err
		}
	}
	if d.features != nil {
		if err := put(BlobFeatures, func(b *bytes.Buffer) error {
			return codec.EncodeMatrix(b, d.features, c)
		}); err != nil {
			return err
		}
	}
	return saveTemplates(ctx, store, d.templates, c, put)
}

func saveTemplates(_ context.Context, _ blobstore.Putter, templates []model.Template, c codec.Compression, put func(string, func(*bytes.Buffer) error) error) error {
	nT := len(templates)
	L := templates[0].Length()
	maxCh := 0
	for i := range templates {
		maxCh = max(maxCh, len(templates[i].ChannelIDs))
	}

	stacked := model.NewMatrix(nT*L, maxCh)
	channels := make([]int32, nT*maxCh)
	best := make([]int32, nT)
	for t := range templates {
		tmpl := &templates[t]
		best[t] = int32(tmpl.BestChannel)
		for j := 0; j < maxCh; j++ {
			if j < len(tmpl.ChannelIDs) {
				channels[t*maxCh+j] = int32(tmpl.ChannelIDs[j])
			} else {
				channels[t*maxCh+j] = -1
			}
		}
		for r := 0; r < L; r++ {
			for j := range tmpl.ChannelIDs {
				stacked.Set(t*L+r, j, tmpl.Waveform.At(r, j))
			}
		}
	}

	if err := put(BlobTemplateWaveforms, func(b *bytes.Buffer) error {
		return codec.EncodeMatrix(b, stacked, c)
	}); err != nil {
		return err
	}
	if err := put(BlobTemplateChannels, func(b *bytes.Buffer) error {
		return codec.EncodeInt32s(b, nT, maxCh, channels, c)
	}); err != nil {
		return err
	}
	return put(BlobTemplateBestChannels, func(b *bytes.Buffer) error {
		return codec.EncodeInt32s(b, nT, 1, best, c)
	})
}
