package model

import "fmt"

// SpikeID is the dense index of a spike within a session. Spike ids are
// assigned in time order, so a sorted id sequence is also time-sorted.
type SpikeID int

// ClusterID identifies a spike grouping. Ids below the template count map
// one-to-one onto templates; merges mint ids beyond that range.
type ClusterID int

// TemplateID identifies a learned waveform template.
type TemplateID int

// ChannelID is the index of a recording channel.
type ChannelID int

// Interval is a half-open time interval [Start, End) in seconds.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns End - Start.
func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Valid reports whether the interval is non-empty and ordered.
func (iv Interval) Valid() bool { return iv.End > iv.Start }

// String returns a string representation of the interval.
func (iv Interval) String() string {
	return fmt.Sprintf("[%gs, %gs)", iv.Start, iv.End)
}

// Point is a 2D physical coordinate of a channel on the probe.
// Y is conventionally the depth axis.
type Point struct {
	X float64
	Y float64
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// SimilarityEntry pairs a cluster with its template-overlap score
// relative to some source cluster.
type SimilarityEntry struct {
	ClusterID ClusterID
	Score     float64
}
