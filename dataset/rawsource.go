package dataset

import (
	"fmt"
	"math"

	"github.com/neurotap/spikeview/model"
)

// RawSource is a randomly-indexable view of the raw multichannel recording.
// Implementations must be safe for concurrent reads.
type RawSource interface {
	// NumSamples returns the number of sample rows.
	NumSamples() int
	// NumChannels returns the channel count.
	NumChannels() int
	// Slice returns rows [start, end) as a samples x channels matrix.
	Slice(start, end int) (*model.Matrix, error)
}

// MemorySource is a RawSource backed by an in-memory matrix.
type MemorySource struct {
	m *model.Matrix
}

// NewMemorySource wraps a samples x channels matrix.
func NewMemorySource(m *model.Matrix) *MemorySource {
	return &MemorySource{m: m}
}

// NumSamples returns the number of sample rows.
func (s *MemorySource) NumSamples() int { return s.m.Rows() }

// NumChannels returns the channel count.
func (s *MemorySource) NumChannels() int { return s.m.Cols() }

// Slice returns rows [start, end) as a view.
func (s *MemorySource) Slice(start, end int) (*model.Matrix, error) {
	if start < 0 || end < start || end > s.m.Rows() {
		return nil, fmt.Errorf("dataset: slice [%d, %d) out of range for %d samples", start, end, s.m.Rows())
	}
	return s.m.SliceRows(start, end), nil
}

// SelectTraces slices the raw source for a time interval, clamping to the
// recording bounds. It returns the slice and the absolute sample index of
// its first row.
func SelectTraces(src RawSource, iv model.Interval, sampleRate float64) (*model.Matrix, int, error) {
	s0 := int(math.Round(iv.Start * sampleRate))
	s1 := int(math.Round(iv.End * sampleRate))
	s0 = max(s0, 0)
	s1 = min(s1, src.NumSamples())
	if s1 < s0 {
		s1 = s0
	}
	m, err := src.Slice(s0, s1)
	if err != nil {
		return nil, 0, err
	}
	return m, s0, nil
}
