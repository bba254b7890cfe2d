// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package wad

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/zeebo/xxh3"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/compression"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/containers"
)

const (
	builderMajor = 3
	builderMinor = 4
)

// BuilderChunk is one chunk queued for writing by Builder.
type BuilderChunk struct {
	PathHash uint64
	Kind     compression.Kind // None, GZip, or Zstd
	Data     []byte           // uncompressed payload

	// Checksum overrides the xxh3 checksum of the compressed bytes,
	// when non-nil. The reference computes the checksum automatically
	// unless the builder is told otherwise.
	Checksum *uint64
}

// Builder assembles a new WAD archive in a single pass: it always
// emits the v3.4 header and entry encoding (see package wad doc and
// SPEC_FULL's Open Questions), since nothing requires producing
// legacy archives, only reading them.
type Builder struct {
	chunks []BuilderChunk
	seen   map[uint64]bool
}

func NewBuilder() *Builder {
	return &Builder{seen: make(map[uint64]bool)}
}

// AddChunk queues a chunk for writing. It panics if pathHash has
// already been added — building a WAD with duplicate path hashes is
// a programmer error, not a recoverable input condition.
func (b *Builder) AddChunk(c BuilderChunk) {
	if b.seen[c.PathHash] {
		panic(fmt.Sprintf("wad.Builder: duplicate path_hash %#016x", c.PathHash))
	}
	b.seen[c.PathHash] = true
	b.chunks = append(b.chunks, c)
}

// Write streams the archive to w, which must support seeking so the
// header and table of contents can be back-patched once every
// chunk's data_offset and compressed_size are known.
func (b *Builder) Write(w io.WriteSeeker) error {
	sorted := make([]BuilderChunk, len(b.chunks))
	copy(sorted, b.chunks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PathHash < sorted[j].PathHash })

	const headerSize = headerV3TocOffset
	if err := writeZeroes(w, headerSize); err != nil {
		return err
	}
	tocSize := int64(len(sorted)) * headerV3EntrySize
	if err := writeZeroes(w, tocSize); err != nil {
		return err
	}

	entries := make([]ChunkEntry, len(sorted))
	for i, chunk := range sorted {
		dataOffset, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		compressedSize, err := compression.Encode(&buf, chunk.Kind, chunk.Data)
		if err != nil {
			return err
		}
		checksum := xxh3.Hash(buf.Bytes())
		if chunk.Checksum != nil {
			checksum = *chunk.Checksum
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}

		entries[i] = ChunkEntry{
			PathHash:         chunk.PathHash,
			DataOffset:       uint32(dataOffset),
			CompressedSize:   uint32(compressedSize),
			UncompressedSize: uint32(len(chunk.Data)),
			Kind:             chunk.Kind,
			SubchunkCount:    containers.Optional[uint8]{OK: true, Val: 0},
			SubchunkIndex:    containers.Optional[uint32]{OK: true, Val: 0},
			Checksum:         containers.Optional[uint64]{OK: true, Val: checksum},
		}
	}

	_, err := binio.SeekWindow[struct{}](w, 0, func() (struct{}, error) {
		return struct{}{}, writeHeaderV3_4(w, uint32(len(entries)))
	})
	if err != nil {
		return err
	}

	_, err = binio.SeekWindow[struct{}](w, headerV3TocOffset, func() (struct{}, error) {
		for _, e := range entries {
			if err := writeChunkEntryV3_4(w, e); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func writeZeroes(w io.Writer, n int64) error {
	const chunkSize = 4096
	buf := make([]byte, chunkSize)
	for n > 0 {
		k := int64(chunkSize)
		if n < k {
			k = n
		}
		if _, err := w.Write(buf[:k]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

func writeHeaderV3_4(w io.Writer, entryCount uint32) error {
	if _, err := w.Write([]byte{'R', 'W', builderMajor, builderMinor}); err != nil {
		return err
	}
	var sig [256]byte
	if _, err := w.Write(sig[:]); err != nil {
		return err
	}
	if err := binio.WriteU64(w, 0); err != nil { // checksum: unused by readers in this module
		return err
	}
	return binio.WriteU32(w, entryCount)
}
