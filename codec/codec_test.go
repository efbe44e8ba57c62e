package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotap/spikeview/model"
)

var compressions = map[string]Compression{
	"none": CompressionNone,
	"lz4":  CompressionLZ4,
	"zstd": CompressionZSTD,
}

func TestMatrixRoundtrip(t *testing.T) {
	m := model.NewMatrix(37, 5)
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			m.Set(r, c, float32(r)*0.25-float32(c))
		}
	}

	for name, comp := range compressions {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeMatrix(&buf, m, comp))

			got, err := DecodeMatrix(&buf)
			require.NoError(t, err)
			assert.Equal(t, m.Rows(), got.Rows())
			assert.Equal(t, m.Cols(), got.Cols())
			assert.Equal(t, m.Data(), got.Data())
		})
	}
}

func TestFloat64Roundtrip(t *testing.T) {
	v := []float64{0, 0.0001, -3.75, 1e12, 42}
	for name, comp := range compressions {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeFloat64s(&buf, v, comp))
			got, err := DecodeFloat64s(&buf)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestInt32Roundtrip(t *testing.T) {
	v := []int32{-1, 0, 1, 2, 3, 700, -700}
	var buf bytes.Buffer
	require.NoError(t, EncodeInt32s(&buf, 7, 1, v, CompressionZSTD))
	rows, cols, got, err := DecodeInt32s(&buf)
	require.NoError(t, err)
	assert.Equal(t, 7, rows)
	assert.Equal(t, 1, cols)
	assert.Equal(t, v, got)
}

func TestInt32ShapeMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeInt32s(&buf, 2, 2, []int32{1, 2, 3}, CompressionNone)
	assert.Error(t, err)
}

func TestDecode_BadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeFloat64s(&buf, []float64{1, 2}, CompressionNone))
	data := buf.Bytes()
	data[0] = 'X'

	_, err := DecodeFloat64s(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestDecode_DTypeMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeFloat64s(&buf, []float64{1, 2}, CompressionNone))
	_, err := DecodeMatrix(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}

func TestDecode_UnknownCompression(t *testing.T) {
	// A compressible payload guarantees a compressed block, so the decoder
	// has to consult the compression id.
	var buf bytes.Buffer
	require.NoError(t, EncodeFloat64s(&buf, make([]float64, 64), CompressionZSTD))
	data := buf.Bytes()
	data[6] = 99

	_, err := DecodeFloat64s(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestEmptySection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeFloat64s(&buf, nil, CompressionLZ4))
	got, err := DecodeFloat64s(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIncompressiblePayloadFallsBack(t *testing.T) {
	// High-entropy data does not shrink; the block must still round-trip.
	v := make([]float64, 256)
	x := 1.0
	for i := range v {
		x = x*1103515245.5 + 12345.25
		for x > 1e6 {
			x /= 977.3
		}
		v[i] = x
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeFloat64s(&buf, v, CompressionLZ4))
	got, err := DecodeFloat64s(&buf)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
