// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/compression"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/hash"
)

// BuilderChunk is one chunk queued for packaging: a logical path, its
// uncompressed payload, and a codec choice (None or Zstd per ModPkg's
// own compression tag).
type BuilderChunk struct {
	Path string
	Kind Compression
	Data []byte
}

// Builder assembles a new ModPkg in a single pass, mirroring
// lib/wad.Builder's seek-window back-patch approach.
type Builder struct {
	Metadata Metadata
	layers   []Layer
	chunks   []BuilderChunk
	seen     map[string]bool
}

func NewBuilder(metadata Metadata) *Builder {
	return &Builder{Metadata: metadata, seen: make(map[string]bool)}
}

// AddLayer queues a layer. Callers must include a "base" layer before
// calling Write.
func (b *Builder) AddLayer(name string, priority int32) *Builder {
	b.layers = append(b.layers, Layer{Name: name, NameHash: hash.LayerName(name), Priority: priority})
	return b
}

// AddChunk queues a chunk for packaging; it panics on a duplicate
// logical path, mirroring wad.Builder.AddChunk's duplicate-key policy.
func (b *Builder) AddChunk(c BuilderChunk) *Builder {
	if b.seen[c.Path] {
		panic(fmt.Sprintf("modpkg.Builder: duplicate chunk path %q", c.Path))
	}
	b.seen[c.Path] = true
	b.chunks = append(b.chunks, c)
	return b
}

// Write streams the package to w, which must support seeking so the
// chunk table can be back-patched once every chunk's offset, sizes and
// checksum are known. header_size is written up front, computed from
// placeholder chunk records of the same length as the final ones.
func (b *Builder) Write(w io.WriteSeeker) error {
	haveBase := false
	for _, l := range b.layers {
		if l.Name == BaseLayerName {
			haveBase = true
		}
	}
	if !haveBase {
		return &MissingBaseLayerError{}
	}

	metaBytes, err := msgpack.Marshal(&b.Metadata)
	if err != nil {
		return err
	}
	allChunks := append([]BuilderChunk{{
		Path: "metadata.msgpack",
		Kind: CompressionNone,
		Data: metaBytes,
	}}, b.chunks...)
	sort.Slice(allChunks, func(i, j int) bool {
		return hash.ChunkPath(allChunks[i].Path) < hash.ChunkPath(allChunks[j].Path)
	})

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binio.WriteU32(w, formatVersion); err != nil {
		return err
	}

	var header bytes.Buffer
	if err := binio.WriteU32(&header, uint32(len(b.layers))); err != nil {
		return err
	}
	for _, l := range b.layers {
		if err := writeLayer(&header, l); err != nil {
			return err
		}
	}
	if err := binio.WriteU32(&header, uint32(len(allChunks))); err != nil {
		return err
	}

	chunkTableOffset := header.Len()
	for _, bc := range allChunks {
		// placeholder chunk records, patched below once offsets are known
		if err := writeChunk(&header, Chunk{Path: bc.Path}); err != nil {
			return err
		}
	}

	if err := binio.WriteU32(w, uint32(header.Len())); err != nil {
		return err
	}
	headerStart, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := w.Write(header.Bytes()); err != nil {
		return err
	}

	chunks := make([]Chunk, len(allChunks))
	for i, bc := range allChunks {
		dataOffset, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		var compressedSize int64
		switch bc.Kind {
		case CompressionNone:
			compressedSize, err = compression.Encode(&buf, compression.None, bc.Data)
		case CompressionZstd:
			compressedSize, err = compression.Encode(&buf, compression.Zstd, bc.Data)
		default:
			err = &InvalidCompressionTypeError{Got: byte(bc.Kind)}
		}
		if err != nil {
			return err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		chunks[i] = Chunk{
			Path:             bc.Path,
			PathHash:         hash.ChunkPath(bc.Path),
			CompressedSize:   uint64(compressedSize),
			UncompressedSize: uint64(len(bc.Data)),
			DataOffset:       uint64(dataOffset),
			Checksum:         xxh3.Hash(buf.Bytes()),
			Kind:             bc.Kind,
		}
	}

	_, err = binio.SeekWindow[struct{}](w, headerStart+int64(chunkTableOffset), func() (struct{}, error) {
		for _, c := range chunks {
			if err := writeChunk(w, c); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}
