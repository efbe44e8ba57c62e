package spikeview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurotap/spikeview/cluster"
	"github.com/neurotap/spikeview/dataset"
	"github.com/neurotap/spikeview/model"
)

// newTestSession builds a small session:
//
//	sample rate 100 Hz, 1000 samples, 3 channels, raw[r][c] = r*10 + c
//	template 0: channels {0,1}, best 0; template 1: channels {1,2}, best 2
//	template length 4
//	spikes (time, cluster, template):
//	  0: 0.00 c0 T0   (window crosses the recording start)
//	  1: 0.10 c0 T0
//	  2: 0.15 c1 T1
//	  3: 0.20 c0 T0
//	  4: 0.25 c1 T1
//	  5: 0.30 c0 T0
func newTestSession(t *testing.T) (*dataset.Dataset, *cluster.Clustering) {
	t.Helper()

	raw := model.NewMatrix(1000, 3)
	for r := 0; r < 1000; r++ {
		for c := 0; c < 3; c++ {
			raw.Set(r, c, float32(r*10+c))
		}
	}

	kernel := func(fill float32) *model.Matrix {
		m := model.NewMatrix(4, 2)
		for r := 0; r < 4; r++ {
			for c := 0; c < 2; c++ {
				m.Set(r, c, fill)
			}
		}
		return m
	}
	templates := []model.Template{
		{ID: 0, Waveform: kernel(1), ChannelIDs: []model.ChannelID{0, 1}, BestChannel: 0},
		{ID: 1, Waveform: kernel(2), ChannelIDs: []model.ChannelID{1, 2}, BestChannel: 2},
	}

	similarity := model.NewMatrix(2, 2)
	similarity.Set(0, 0, 1.0)
	similarity.Set(0, 1, 0.3)
	similarity.Set(1, 0, 0.3)
	similarity.Set(1, 1, 1.0)

	n := 6
	templateFeatures := model.NewMatrix(n, 2)
	features := model.NewMatrix(n, 6) // 3 channels x 2 PCs
	for i := 0; i < n; i++ {
		templateFeatures.Set(i, 0, float32(i))
		templateFeatures.Set(i, 1, float32(10*i))
		for j := 0; j < 6; j++ {
			features.Set(i, j, float32(100*i+j))
		}
	}

	ds, err := dataset.New(dataset.Params{
		SampleRate:     100,
		SpikeTimes:     []float64{0.00, 0.10, 0.15, 0.20, 0.25, 0.30},
		SpikeClusters:  []model.ClusterID{0, 0, 1, 0, 1, 0},
		SpikeTemplates: []model.TemplateID{0, 0, 1, 0, 1, 0},
		Amplitudes:     []float64{1, 2, 3, 4, 5, 6},
		Templates:      templates,
		ChannelPositions: []model.Point{
			{X: 0, Y: 20}, {X: 10, Y: 40}, {X: 0, Y: 60},
		},
		TemplateSimilarity: similarity,
		TemplateFeatures:   templateFeatures,
		Features:           features,
		FeaturesPerChannel: 2,
		Raw:                dataset.NewMemorySource(raw),
	})
	require.NoError(t, err)

	return ds, cluster.NewFromAssignments(ds.SpikeClusters())
}

func newTestController(t *testing.T, optFns ...Option) *Controller {
	t.Helper()
	ds, clustering := newTestSession(t)
	ctl, err := New(ds, clustering, optFns...)
	require.NoError(t, err)
	return ctl
}
