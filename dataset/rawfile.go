package dataset

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/neurotap/spikeview/internal/mmap"
	"github.com/neurotap/spikeview/model"
)

// SampleType is the on-disk element type of a flat raw recording.
type SampleType uint8

const (
	// Int16 little-endian samples (the common acquisition format).
	Int16 SampleType = 0
	// Float32 little-endian samples.
	Float32 SampleType = 1
)

func (t SampleType) itemSize() int {
	if t == Float32 {
		return 4
	}
	return 2
}

// FlatFile is a RawSource over a headerless binary recording: row-major
// samples x channels, little endian, optionally preceded by a fixed byte
// offset. The file is memory-mapped; Slice decodes on demand.
type FlatFile struct {
	m         *mmap.Mapping
	data      []byte
	nChannels int
	nSamples  int
	dtype     SampleType
}

// OpenFlatFile maps the recording at path. The sample count is derived from
// the file size, the element size and the channel count; offset bytes at the
// start of the file are skipped.
func OpenFlatFile(path string, nChannels int, dtype SampleType, offset int) (*FlatFile, error) {
	if nChannels <= 0 {
		return nil, fmt.Errorf("dataset: channel count must be positive, got %d", nChannels)
	}
	if offset < 0 {
		return nil, fmt.Errorf("dataset: negative offset %d", offset)
	}
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := m.Bytes()
	if err != nil {
		m.Close()
		return nil, err
	}
	if offset > len(data) {
		m.Close()
		return nil, fmt.Errorf("dataset: offset %d exceeds file size %d", offset, len(data))
	}
	data = data[offset:]
	rowSize := dtype.itemSize() * nChannels
	return &FlatFile{
		m:         m,
		data:      data,
		nChannels: nChannels,
		nSamples:  len(data) / rowSize,
		dtype:     dtype,
	}, nil
}

// NumSamples returns the number of sample rows.
func (f *FlatFile) NumSamples() int { return f.nSamples }

// NumChannels returns the channel count.
func (f *FlatFile) NumChannels() int { return f.nChannels }

// Slice decodes rows [start, end) into a float32 matrix.
func (f *FlatFile) Slice(start, end int) (*model.Matrix, error) {
	if start < 0 || end < start || end > f.nSamples {
		return nil, fmt.Errorf("dataset: slice [%d, %d) out of range for %d samples", start, end, f.nSamples)
	}
	out := model.NewMatrix(end-start, f.nChannels)
	itemSize := f.dtype.itemSize()
	rowSize := itemSize * f.nChannels
	for r := start; r < end; r++ {
		row := f.data[r*rowSize : (r+1)*rowSize]
		dst := out.Row(r - start)
		switch f.dtype {
		case Int16:
			for c := 0; c < f.nChannels; c++ {
				dst[c] = float32(int16(binary.LittleEndian.Uint16(row[2*c:])))
			}
		case Float32:
			for c := 0; c < f.nChannels; c++ {
				dst[c] = math.Float32frombits(binary.LittleEndian.Uint32(row[4*c:]))
			}
		}
	}
	return out, nil
}

// Close unmaps the recording.
func (f *FlatFile) Close() error {
	f.data = nil
	return f.m.Close()
}
