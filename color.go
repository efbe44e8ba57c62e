package spikeview

import "github.com/neurotap/spikeview/model"

// ColorResolver maps a cluster to a display color given the current view
// selection and the cluster's curation label.
type ColorResolver interface {
	Resolve(clusterID model.ClusterID, selected []model.ClusterID, group string) model.Color
}

// Palette is the default ColorResolver: selected clusters cycle through a
// fixed colormap by selection position, "noise" and "mua" clusters are
// dimmed, and everything else gets a muted default.
type Palette struct {
	colormap []model.Color
	dimmed   model.Color
	fallback model.Color
}

// NewPalette creates the default palette.
func NewPalette() *Palette {
	return &Palette{
		colormap: []model.Color{
			{R: 0.03, G: 0.57, B: 0.98, A: 1},
			{R: 1.00, G: 0.00, B: 0.00, A: 1},
			{R: 0.98, G: 0.90, B: 0.02, A: 1},
			{R: 0.34, G: 0.65, B: 0.16, A: 1},
			{R: 0.62, G: 0.30, B: 0.80, A: 1},
			{R: 0.98, G: 0.57, B: 0.03, A: 1},
		},
		dimmed:   model.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.25},
		fallback: model.Color{R: 0.7, G: 0.7, B: 0.7, A: 0.5},
	}
}

// Resolve implements ColorResolver.
func (p *Palette) Resolve(clusterID model.ClusterID, selected []model.ClusterID, group string) model.Color {
	for i, id := range selected {
		if id == clusterID {
			return p.colormap[i%len(p.colormap)]
		}
	}
	if group == "noise" || group == "mua" {
		return p.dimmed
	}
	return p.fallback
}
