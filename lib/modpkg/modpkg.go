// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package modpkg implements the ModPkg mod-distribution container: a
// WAD-like chunked envelope carrying MessagePack metadata and an
// ordered set of overlay layers. See Mount and Modpkg.ExtractAll.
package modpkg

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/compression"
)

var magic = [8]byte{'L', 'T', 'K', 'M', 'O', 'D', 'P', 'K'}

const formatVersion uint32 = 1

// Modpkg is a mounted container: an in-memory layer and chunk table
// plus a handle on the backing stream, single-threaded per the same
// model as lib/wad.
type Modpkg struct {
	r io.ReadSeeker

	Metadata Metadata
	Layers   []Layer
	chunks   []Chunk
	index    map[uint64]int
}

// countingReader mirrors lib/bintree's — kept file-local to avoid a
// cross-package dependency for a two-line helper.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Mount parses a ModPkg envelope from r and locates (but does not
// decode) every chunk. r must support seeking so chunk bytes can be
// streamed on demand by Decoder.
func Mount(r io.ReadSeeker) (*Modpkg, error) {
	var gotMagic [8]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, &binio.ReadError{Type: "modpkg.Modpkg", Field: "magic", Err: err}
	}
	if gotMagic != magic {
		return nil, &InvalidMagicError{Got: gotMagic}
	}

	version, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "modpkg.Modpkg", Field: "version", Err: err}
	}
	if version != formatVersion {
		return nil, &InvalidVersionError{Got: version}
	}

	headerSize, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "modpkg.Modpkg", Field: "header_size", Err: err}
	}

	cr := &countingReader{r: r}
	layerCount, err := binio.ReadU32(cr)
	if err != nil {
		return nil, &binio.ReadError{Type: "modpkg.Modpkg", Field: "layer_count", Err: err}
	}
	layers := make([]Layer, 0, layerCount)
	haveBase := false
	for i := 0; i < int(layerCount); i++ {
		l, err := readLayer(cr)
		if err != nil {
			return nil, err
		}
		if l.Name == BaseLayerName {
			haveBase = true
		}
		layers = append(layers, l)
	}
	if !haveBase {
		return nil, &MissingBaseLayerError{}
	}

	chunkCount, err := binio.ReadU32(cr)
	if err != nil {
		return nil, &binio.ReadError{Type: "modpkg.Modpkg", Field: "chunk_count", Err: err}
	}
	chunks := make([]Chunk, 0, chunkCount)
	for i := 0; i < int(chunkCount); i++ {
		c, err := readChunk(cr)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			switch {
			case c.PathHash < chunks[i-1].PathHash:
				return nil, &UnsortedChunksError{Previous: chunks[i-1].PathHash, Current: c.PathHash}
			case c.PathHash == chunks[i-1].PathHash:
				return nil, &DuplicateChunkError{PathHash: c.PathHash}
			}
		}
		chunks = append(chunks, c)
	}

	if cr.n != int64(headerSize) {
		return nil, &InvalidHeaderSizeError{HeaderSize: headerSize, ActualSize: uint32(cr.n)}
	}

	index := make(map[uint64]int, len(chunks))
	for i, c := range chunks {
		index[c.PathHash] = i
	}

	m := &Modpkg{r: r, Layers: layers, chunks: chunks, index: index}

	metaIdx, ok := index[MetadataPathHash]
	if !ok {
		return nil, &MissingMetadataError{}
	}
	metaBytes, err := m.readChunkBytes(chunks[metaIdx])
	if err != nil {
		return nil, err
	}
	if err := msgpack.Unmarshal(metaBytes, &m.Metadata); err != nil {
		return nil, err
	}
	if err := validateLicenseKind(m.Metadata.License.Kind); err != nil {
		return nil, err
	}

	return m, nil
}

// Chunks returns the chunk table, excluding the metadata chunk, in
// ascending path_hash order.
func (m *Modpkg) Chunks() []Chunk {
	out := make([]Chunk, 0, len(m.chunks))
	for _, c := range m.chunks {
		if c.PathHash == MetadataPathHash {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Get looks up a chunk's table-of-contents record by path hash.
func (m *Modpkg) Get(pathHash uint64) (*Chunk, error) {
	idx, ok := m.index[pathHash]
	if !ok {
		return nil, &MissingChunkError{PathHash: pathHash}
	}
	return &m.chunks[idx], nil
}

func (m *Modpkg) readChunkBytes(c Chunk) ([]byte, error) {
	dec, err := m.decoderFor(c)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// Decoder returns a streaming decompressor for the chunk identified by
// pathHash, seeking the underlying stream to its data. As with
// lib/wad, only one decoder may be live at a time for a given Modpkg.
func (m *Modpkg) Decoder(pathHash uint64) (io.ReadCloser, error) {
	c, err := m.Get(pathHash)
	if err != nil {
		return nil, err
	}
	return m.decoderFor(*c)
}

func (m *Modpkg) decoderFor(c Chunk) (io.ReadCloser, error) {
	if _, err := m.r.Seek(int64(c.DataOffset), io.SeekStart); err != nil {
		return nil, err
	}
	switch c.Kind {
	case CompressionNone:
		return compression.Decode(m.r, compression.None, int64(c.CompressedSize), int64(c.UncompressedSize))
	case CompressionZstd:
		return compression.Decode(m.r, compression.Zstd, int64(c.CompressedSize), int64(c.UncompressedSize))
	default:
		return nil, &InvalidCompressionTypeError{Got: byte(c.Kind)}
	}
}
