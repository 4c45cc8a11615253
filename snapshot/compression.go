package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the block compression applied to section payloads.
type Compression uint8

const (
	// CompressionNone stores sections uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, lighter ratio).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ErrBlockTooShort is returned when a section block is shorter than its header.
var ErrBlockTooShort = errors.New("snapshot: block too short")

// ZSTD encoder/decoder pools for efficiency.
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

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Block layout: [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 means the data is stored uncompressed (either
// CompressionNone or a block that compression did not shrink).
const blockHeaderSize = 8

// compressBlock wraps data in a block, compressing with the given algorithm.
// Falls back to storing raw bytes when compression does not help.
func compressBlock(data []byte, comp Compression) ([]byte, error) {
	var compressed []byte

	switch comp {
	case CompressionNone:
		// Stored raw below.
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if n > 0 && n < len(data) {
			compressed = buf[:n]
		}
	case CompressionZSTD:
		enc := getZstdEncoder()
		out := enc.EncodeAll(data, make([]byte, 0, len(data)))
		zstdEncoderPool.Put(enc)
		if len(out) < len(data) {
			compressed = out
		}
	default:
		return nil, fmt.Errorf("snapshot: unknown compression %d", comp)
	}

	if compressed == nil {
		block := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(block[0:4], uint32(len(data)))
		binary.LittleEndian.PutUint32(block[4:8], 0)
		copy(block[blockHeaderSize:], data)
		return block, nil
	}

	block := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(block[0:4], uint32(len(data)))
	binary.LittleEndian.PutUint32(block[4:8], uint32(len(compressed)))
	copy(block[blockHeaderSize:], compressed)
	return block, nil
}

// decompressBlock unwraps a block written by compressBlock.
func decompressBlock(block []byte, comp Compression) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, ErrBlockTooShort
	}

	uncompressedSize := binary.LittleEndian.Uint32(block[0:4])
	compressedSize := binary.LittleEndian.Uint32(block[4:8])
	data := block[blockHeaderSize:]

	if compressedSize == 0 {
		if uint32(len(data)) != uncompressedSize {
			return nil, fmt.Errorf("snapshot: raw block size mismatch: header %d, got %d", uncompressedSize, len(data))
		}
		return data, nil
	}
	if uint32(len(data)) != compressedSize {
		return nil, fmt.Errorf("snapshot: compressed block size mismatch: header %d, got %d", compressedSize, len(data))
	}

	switch comp {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return out[:n], nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("snapshot: compressed block but compression is %s", comp)
	}
}
