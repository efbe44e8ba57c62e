package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Block layout: [uncompressedSize uint32][compressedSize uint32][data].
// compressedSize == 0 means the data is stored uncompressed; this is also
// the fallback when compression does not shrink the payload.
const blockHeaderSize = 8

var (
	zstdEncoderOnce sync.Once
	zstdEncoder     *zstd.Encoder
	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
)

func getZstdEncoder() *zstd.Encoder {
	zstdEncoderOnce.Do(func() {
		zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	return zstdEncoder
}

func getZstdDecoder() *zstd.Decoder {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, _ = zstd.NewReader(nil)
	})
	return zstdDecoder
}

func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			compressed = buf[:n]
		}
	case CompressionZSTD:
		compressed = getZstdEncoder().EncodeAll(data, nil)
	default:
		return nil, ErrUnknownCompression
	}

	if compressed == nil || len(compressed) >= len(data) {
		compressed = nil // store uncompressed
	}

	out := make([]byte, blockHeaderSize, blockHeaderSize+len(data))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	if compressed == nil {
		binary.LittleEndian.PutUint32(out[4:], 0)
		return append(out, data...), nil
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	return append(out, compressed...), nil
}

func decompressBlock(r io.Reader, c Compression) ([]byte, error) {
	var hdr [blockHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	uncompressedSize := binary.LittleEndian.Uint32(hdr[0:])
	compressedSize := binary.LittleEndian.Uint32(hdr[4:])

	if compressedSize == 0 {
		data := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
		return data, nil
	}

	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}

	switch c {
	case CompressionLZ4:
		data := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(compressed, data)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("codec: lz4 block expanded to %d bytes, want %d", n, uncompressedSize)
		}
		return data, nil
	case CompressionZSTD:
		return getZstdDecoder().DecodeAll(compressed, make([]byte, 0, uncompressedSize))
	case CompressionNone:
		return nil, fmt.Errorf("codec: compressed block in an uncompressed section")
	default:
		return nil, ErrUnknownCompression
	}
}
