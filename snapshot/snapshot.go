// Package snapshot persists a finished cluster analysis as a compact,
// self-describing binary file: particle set, assignment map, and cluster
// membership, each in its own checksummed (optionally compressed) section.
//
// Format:
//  1. header (magic/version/compression/codec name/section count)
//  2. one block per section: type, length, CRC32, payload
//
// Payloads are codec-marshaled and block-compressed; the codec name in the
// header makes files readable regardless of the writer's default codec.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/codec"
	"github.com/hupe1980/clustergo/particle"
)

var (
	magic         = [4]byte{'C', 'G', 'S', '1'}
	formatVersion = uint16(1)
)

const (
	sectionParticles   = uint16(1)
	sectionAssignments = uint16(2)
	sectionClusters    = uint16(3)
)

var (
	// ErrBadMagic is returned when the file does not start with the snapshot magic.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion is returned for format versions newer than this library.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported format version")
	// ErrChecksum is returned when a section fails its CRC32 check.
	ErrChecksum = errors.New("snapshot: section checksum mismatch")
	// ErrUnknownCodec is returned when the header names a codec this build lacks.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
)

// Contents is everything a snapshot carries: the analyzed particle set and
// the result of the most recent analysis.
type Contents struct {
	Box         particle.Box                      `json:"box"`
	Particles   map[particle.ID]particle.Particle `json:"particles"`
	Assignments map[particle.ID]cluster.ID        `json:"assignments"`
	Clusters    map[cluster.ID][]particle.ID      `json:"clusters"`
}

type particlesSection struct {
	Box       particle.Box                      `json:"box"`
	Particles map[particle.ID]particle.Particle `json:"particles"`
}

// Save writes a snapshot of c to w.
// A nil codec falls back to codec.Default.
func Save(w io.Writer, c *Contents, cdc codec.Codec, comp Compression) error {
	if w == nil {
		return fmt.Errorf("snapshot: writer is nil")
	}
	if c == nil {
		return fmt.Errorf("snapshot: contents is nil")
	}
	if cdc == nil {
		cdc = codec.Default
	}

	codecName := cdc.Name()
	if len(codecName) > 0xFFFF {
		return fmt.Errorf("snapshot: codec name too long: %d", len(codecName))
	}

	// Header (16 bytes + codec name)
	// [0:4]   magic
	// [4:6]   version
	// [6]     compression
	// [7]     reserved
	// [8:10]  codec name len
	// [10:12] section count
	// [12:16] reserved
	var hdr [16]byte
	copy(hdr[0:4], magic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], formatVersion)
	hdr[6] = byte(comp)
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(len(codecName)))
	binary.LittleEndian.PutUint16(hdr[10:12], 3)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte(codecName)); err != nil {
		return err
	}

	sections := []struct {
		typ     uint16
		payload any
	}{
		{sectionParticles, particlesSection{Box: c.Box, Particles: c.Particles}},
		{sectionAssignments, c.Assignments},
		{sectionClusters, c.Clusters},
	}

	for _, sec := range sections {
		raw, err := cdc.Marshal(sec.payload)
		if err != nil {
			return fmt.Errorf("snapshot: marshal section %d: %w", sec.typ, err)
		}
		block, err := compressBlock(raw, comp)
		if err != nil {
			return err
		}

		// Section header: [type u16][reserved u16][len u64][crc u32]
		var sh [16]byte
		binary.LittleEndian.PutUint16(sh[0:2], sec.typ)
		binary.LittleEndian.PutUint64(sh[4:12], uint64(len(block)))
		binary.LittleEndian.PutUint32(sh[12:16], crc32.ChecksumIEEE(block))
		if _, err := w.Write(sh[:]); err != nil {
			return err
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}

	return nil
}

// Load reads a snapshot written by Save.
func Load(r io.Reader) (*Contents, error) {
	if r == nil {
		return nil, fmt.Errorf("snapshot: reader is nil")
	}

	var hdr [16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if [4]byte(hdr[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v > formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	comp := Compression(hdr[6])
	codecNameLen := binary.LittleEndian.Uint16(hdr[8:10])
	sectionCount := binary.LittleEndian.Uint16(hdr[10:12])

	codecName := make([]byte, codecNameLen)
	if _, err := io.ReadFull(r, codecName); err != nil {
		return nil, fmt.Errorf("snapshot: read codec name: %w", err)
	}
	cdc, ok := codec.ByName(string(codecName))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	c := &Contents{}
	for i := uint16(0); i < sectionCount; i++ {
		var sh [16]byte
		if _, err := io.ReadFull(r, sh[:]); err != nil {
			return nil, fmt.Errorf("snapshot: read section header: %w", err)
		}
		typ := binary.LittleEndian.Uint16(sh[0:2])
		length := binary.LittleEndian.Uint64(sh[4:12])
		sum := binary.LittleEndian.Uint32(sh[12:16])

		block := make([]byte, length)
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, fmt.Errorf("snapshot: read section %d: %w", typ, err)
		}
		if crc32.ChecksumIEEE(block) != sum {
			return nil, fmt.Errorf("%w: section %d", ErrChecksum, typ)
		}

		raw, err := decompressBlock(block, comp)
		if err != nil {
			return nil, err
		}

		switch typ {
		case sectionParticles:
			var ps particlesSection
			if err := cdc.Unmarshal(raw, &ps); err != nil {
				return nil, fmt.Errorf("snapshot: unmarshal particles: %w", err)
			}
			c.Box = ps.Box
			c.Particles = ps.Particles
		case sectionAssignments:
			if err := cdc.Unmarshal(raw, &c.Assignments); err != nil {
				return nil, fmt.Errorf("snapshot: unmarshal assignments: %w", err)
			}
		case sectionClusters:
			if err := cdc.Unmarshal(raw, &c.Clusters); err != nil {
				return nil, fmt.Errorf("snapshot: unmarshal clusters: %w", err)
			}
		default:
			// Skip sections written by newer minor revisions.
		}
	}

	return c, nil
}
