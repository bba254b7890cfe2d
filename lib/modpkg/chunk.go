// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg

import (
	"io"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/hash"
)

// MetadataPathHash is the well-known path hash of the metadata chunk:
// xxh64_lowercase("metadata.msgpack").
var MetadataPathHash = hash.ChunkPath("metadata.msgpack")

// Chunk is one table-of-contents record of a ModPkg.
type Chunk struct {
	Path             string
	PathHash         uint64
	CompressedSize   uint64
	UncompressedSize uint64
	DataOffset       uint64
	Checksum         uint64
	Kind             Compression
}

func readChunk(r io.Reader) (Chunk, error) {
	path, err := binio.ReadLenString16(r)
	if err != nil {
		return Chunk{}, &binio.ReadError{Type: "modpkg.Chunk", Field: "path", Err: err}
	}
	pathHash, err := binio.ReadU64(r)
	if err != nil {
		return Chunk{}, &binio.ReadError{Type: "modpkg.Chunk", Field: "path_hash", Err: err}
	}
	compressedSize, err := binio.ReadU64(r)
	if err != nil {
		return Chunk{}, &binio.ReadError{Type: "modpkg.Chunk", Field: "compressed_size", Err: err}
	}
	uncompressedSize, err := binio.ReadU64(r)
	if err != nil {
		return Chunk{}, &binio.ReadError{Type: "modpkg.Chunk", Field: "uncompressed_size", Err: err}
	}
	dataOffset, err := binio.ReadU64(r)
	if err != nil {
		return Chunk{}, &binio.ReadError{Type: "modpkg.Chunk", Field: "data_offset", Err: err}
	}
	checksum, err := binio.ReadU64(r)
	if err != nil {
		return Chunk{}, &binio.ReadError{Type: "modpkg.Chunk", Field: "checksum", Err: err}
	}
	kindByte, err := binio.ReadU8(r)
	if err != nil {
		return Chunk{}, &binio.ReadError{Type: "modpkg.Chunk", Field: "kind", Err: err}
	}
	kind, err := parseCompression(kindByte)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{
		Path:             path,
		PathHash:         pathHash,
		CompressedSize:   compressedSize,
		UncompressedSize: uncompressedSize,
		DataOffset:       dataOffset,
		Checksum:         checksum,
		Kind:             kind,
	}, nil
}

func writeChunk(w io.Writer, c Chunk) error {
	if err := binio.WriteLenString16(w, c.Path); err != nil {
		return err
	}
	if err := binio.WriteU64(w, c.PathHash); err != nil {
		return err
	}
	if err := binio.WriteU64(w, c.CompressedSize); err != nil {
		return err
	}
	if err := binio.WriteU64(w, c.UncompressedSize); err != nil {
		return err
	}
	if err := binio.WriteU64(w, c.DataOffset); err != nil {
		return err
	}
	if err := binio.WriteU64(w, c.Checksum); err != nil {
		return err
	}
	return binio.WriteU8(w, byte(c.Kind))
}
