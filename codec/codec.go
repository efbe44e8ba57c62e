// Package codec encodes numeric array sections for dataset blobs.
//
// A section is a small header (magic, dtype, shape, compression) followed by
// a single compressed block. The format is self-describing: decoders never
// need out-of-band shape or compression information.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/neurotap/spikeview/model"
)

// Compression selects the block compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, for hot arrays).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd block compression (better ratio, for cold arrays).
	CompressionZSTD Compression = 2
)

// DType identifies the element type of an encoded array.
type DType uint8

const (
	// Float32 elements, little endian.
	Float32 DType = 0
	// Float64 elements, little endian.
	Float64 DType = 1
	// Int32 elements, little endian.
	Int32 DType = 2
)

var magic = [4]byte{'S', 'P', 'K', 'B'}

const version = 1

var (
	// ErrBadMagic is returned when a section does not start with the format magic.
	ErrBadMagic = errors.New("codec: bad section magic")
	// ErrUnknownDType is returned for an unrecognized element type.
	ErrUnknownDType = errors.New("codec: unknown dtype")
	// ErrUnknownCompression is returned for an unrecognized compression id.
	ErrUnknownCompression = errors.New("codec: unknown compression")
)

// header layout: magic[4] version[1] dtype[1] compression[1] pad[1] rows[4] cols[4]
const headerSize = 16

func itemSize(dt DType) (int, error) {
	switch dt {
	case Float32, Int32:
		return 4, nil
	case Float64:
		return 8, nil
	default:
		return 0, ErrUnknownDType
	}
}

func writeSection(w io.Writer, dt DType, c Compression, rows, cols int, payload []byte) error {
	var hdr [headerSize]byte
	copy(hdr[:4], magic[:])
	hdr[4] = version
	hdr[5] = byte(dt)
	hdr[6] = byte(c)
	binary.LittleEndian.PutUint32(hdr[8:], uint32(rows))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(cols))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	block, err := compressBlock(payload, c)
	if err != nil {
		return err
	}
	_, err = w.Write(block)
	return err
}

func readSection(r io.Reader) (dt DType, rows, cols int, payload []byte, err error) {
	var hdr [headerSize]byte
	if _, err = io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, 0, nil, err
	}
	if [4]byte(hdr[:4]) != magic {
		return 0, 0, 0, nil, ErrBadMagic
	}
	if hdr[4] != version {
		return 0, 0, 0, nil, fmt.Errorf("codec: unsupported section version %d", hdr[4])
	}
	dt = DType(hdr[5])
	rows = int(binary.LittleEndian.Uint32(hdr[8:]))
	cols = int(binary.LittleEndian.Uint32(hdr[12:]))
	size, err := itemSize(dt)
	if err != nil {
		return 0, 0, 0, nil, err
	}
	payload, err = decompressBlock(r, Compression(hdr[6]))
	if err != nil {
		return 0, 0, 0, nil, err
	}
	if want := rows * cols * size; len(payload) != want {
		return 0, 0, 0, nil, fmt.Errorf("codec: payload is %d bytes, want %d for %dx%d", len(payload), want, rows, cols)
	}
	return dt, rows, cols, payload, nil
}

// EncodeMatrix writes m as a Float32 section.
func EncodeMatrix(w io.Writer, m *model.Matrix, c Compression) error {
	data := m.Data()
	payload := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(payload[4*i:], math.Float32bits(v))
	}
	return writeSection(w, Float32, c, m.Rows(), m.Cols(), payload)
}

// DecodeMatrix reads a Float32 section into a matrix.
func DecodeMatrix(r io.Reader) (*model.Matrix, error) {
	dt, rows, cols, payload, err := readSection(r)
	if err != nil {
		return nil, err
	}
	if dt != Float32 {
		return nil, fmt.Errorf("codec: section dtype %d, want float32", dt)
	}
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	return model.NewMatrixFromData(rows, cols, data)
}

// EncodeFloat64s writes v as a Float64 vector section.
func EncodeFloat64s(w io.Writer, v []float64, c Compression) error {
	payload := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(payload[8*i:], math.Float64bits(x))
	}
	return writeSection(w, Float64, c, len(v), 1, payload)
}

// DecodeFloat64s reads a Float64 vector section.
func DecodeFloat64s(r io.Reader) ([]float64, error) {
	dt, rows, cols, payload, err := readSection(r)
	if err != nil {
		return nil, err
	}
	if dt != Float64 || cols != 1 {
		return nil, fmt.Errorf("codec: section %dx%d dtype %d, want float64 vector", rows, cols, dt)
	}
	out := make([]float64, rows)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
	}
	return out, nil
}

// EncodeInt32s writes v as an Int32 matrix section.
func EncodeInt32s(w io.Writer, rows, cols int, v []int32, c Compression) error {
	if len(v) != rows*cols {
		return fmt.Errorf("codec: int32 data length %d does not match %dx%d", len(v), rows, cols)
	}
	payload := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(payload[4*i:], uint32(x))
	}
	return writeSection(w, Int32, c, rows, cols, payload)
}

// DecodeInt32s reads an Int32 matrix section, returning the shape and the
// row-major values.
func DecodeInt32s(r io.Reader) (rows, cols int, v []int32, err error) {
	dt, rows, cols, payload, err := readSection(r)
	if err != nil {
		return 0, 0, nil, err
	}
	if dt != Int32 {
		return 0, 0, nil, fmt.Errorf("codec: section dtype %d, want int32", dt)
	}
	v = make([]int32, rows*cols)
	for i := range v {
		v[i] = int32(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	return rows, cols, v, nil
}
