package tracestore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the snapshot blob compression algorithm.
type Compression uint8

const (
	// CompressionNone stores snapshots raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

// Encoder/decoder pools; zstd contexts are expensive to build.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Blob format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means the payload is stored raw; incompressible
// snapshots fall back to raw storage automatically.
const blockHeaderSize = 8

// Compress wraps data in the framed snapshot format.
func Compress(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("unknown compression type %d", c)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return buf[:n], nil
}

// Decompress unwraps the framed snapshot format.
func Decompress(data []byte, c Compression) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, errors.New("snapshot blob too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint32(len(data)) < blockHeaderSize+uncompressedSize {
			return nil, errors.New("snapshot blob truncated")
		}
		out := make([]byte, uncompressedSize)
		copy(out, data[blockHeaderSize:blockHeaderSize+uncompressedSize])
		return out, nil
	}

	if uint32(len(data)) < blockHeaderSize+compressedSize {
		return nil, errors.New("snapshot blob truncated")
	}
	payload := data[blockHeaderSize : blockHeaderSize+compressedSize]
	out := make([]byte, uncompressedSize)

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		decoded, err := dec.DecodeAll(payload, out[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", c)
	}
}

// CompressedStore decorates a Store with transparent blob compression.
type CompressedStore struct {
	inner       Store
	compression Compression
}

var _ Store = (*CompressedStore)(nil)

// NewCompressedStore wraps inner so every Put compresses and every Get
// decompresses with the given algorithm.
func NewCompressedStore(inner Store, c Compression) *CompressedStore {
	return &CompressedStore{inner: inner, compression: c}
}

// Put implements Store.
func (s *CompressedStore) Put(ctx context.Context, name string, data []byte) error {
	framed, err := Compress(data, s.compression)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, name, framed)
}

// Get implements Store.
func (s *CompressedStore) Get(ctx context.Context, name string) ([]byte, error) {
	framed, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decompress(framed, s.compression)
}

// Delete implements Store.
func (s *CompressedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List implements Store.
func (s *CompressedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}
