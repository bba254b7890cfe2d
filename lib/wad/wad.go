// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package wad implements the WAD versioned asset archive: mounting
// (parsing the header and table of contents), per-chunk streaming
// decode, and single-pass building. Building always emits the v3.4
// header and entry encoding; v1, v2 and v3.0 archives are read but
// never written.
//
// A mounted Wad is single-threaded: its backing stream's cursor is
// mutated on every Decoder call, so at most one Decoder may be open
// against a given Wad at a time. Opening the same file twice, each
// through its own Wad, is the supported path to parallel access.
package wad

import (
	"bytes"
	"io"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/compression"
)

// decodeCacheEntryCap is the largest uncompressed chunk size eligible
// for the optional decode cache; chunks above this are always
// streamed fresh, so one large texture can't evict a mount's entire
// cache of small, frequently-reused chunks (shared materials,
// skeletons).
const decodeCacheEntryCap = 64 * 1024

// Wad is a mounted WAD archive.
type Wad struct {
	r       io.ReadSeeker
	major   uint8
	minor   uint8
	header  header
	entries []ChunkEntry // sorted ascending by PathHash
	index   map[uint64]int

	cache *lru.Cache[uint64, []byte]
}

// Option configures Mount.
type Option func(*Wad)

// WithDecodeCache enables an LRU cache of at most n decoded chunks no
// larger than 64KiB uncompressed, keyed by path_hash. Off by default.
func WithDecodeCache(n int) Option {
	return func(w *Wad) {
		cache, err := lru.New[uint64, []byte](n)
		if err != nil {
			panic(err) // only returns an error for n <= 0, a programmer error
		}
		w.cache = cache
	}
}

// Mount parses r's WAD header and table of contents.
func Mount(r io.ReadSeeker, opts ...Option) (*Wad, error) {
	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != [2]byte{'R', 'W'} {
		return nil, &InvalidMagicError{Got: magic}
	}

	majorBuf := make([]byte, 2)
	if _, err := io.ReadFull(r, majorBuf); err != nil {
		return nil, err
	}
	major, minor := majorBuf[0], majorBuf[1]

	var hdr header
	var err error
	switch major {
	case 1:
		hdr, err = readHeaderV1(r)
	case 2:
		hdr, err = readHeaderV2(r)
	case 3:
		hdr, err = readHeaderV3(r)
	default:
		return nil, &InvalidVersionError{Major: major, Minor: minor}
	}
	if err != nil {
		return nil, err
	}

	codec, err := selectEntryCodec(major, minor)
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(hdr.TocOffset(), io.SeekStart); err != nil {
		return nil, err
	}
	entries := make([]ChunkEntry, hdr.EntryCount())
	for i := range entries {
		entries[i], err = readChunkEntry(r, codec)
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].PathHash < entries[j].PathHash })
	index := make(map[uint64]int, len(entries))
	for i, e := range entries {
		if prev, ok := index[e.PathHash]; ok {
			marked := (entries[prev].IsDuplicate.OK && entries[prev].IsDuplicate.Val) ||
				(e.IsDuplicate.OK && e.IsDuplicate.Val)
			if !marked {
				return nil, &DuplicateChunkError{PathHash: e.PathHash}
			}
		}
		index[e.PathHash] = i
	}

	w := &Wad{
		r:       r,
		major:   major,
		minor:   minor,
		header:  hdr,
		entries: entries,
		index:   index,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Version returns the archive's (major, minor).
func (w *Wad) Version() (major, minor uint8) { return w.major, w.minor }

// Chunks returns the table of contents, sorted ascending by
// PathHash. The returned slice is a copy; mutating it does not affect
// the mount.
func (w *Wad) Chunks() []ChunkEntry {
	out := make([]ChunkEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Get looks up a chunk by path_hash.
func (w *Wad) Get(pathHash uint64) (*ChunkEntry, error) {
	i, ok := w.index[pathHash]
	if !ok {
		return nil, &UnknownChunkError{PathHash: pathHash}
	}
	return &w.entries[i], nil
}

// Decoder seeks the mount's backing stream to the chunk's data and
// returns a reader yielding its decoded bytes. Only one Decoder may
// be in use against a given Wad at a time.
func (w *Wad) Decoder(pathHash uint64) (io.ReadCloser, error) {
	entry, err := w.Get(pathHash)
	if err != nil {
		return nil, err
	}

	cacheable := w.cache != nil && entry.UncompressedSize <= decodeCacheEntryCap
	if cacheable {
		if data, ok := w.cache.Get(pathHash); ok {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}

	if _, err := w.r.Seek(int64(entry.DataOffset), io.SeekStart); err != nil {
		return nil, err
	}
	dec, err := compression.Decode(w.r, entry.Kind, int64(entry.CompressedSize), int64(entry.UncompressedSize))
	if err != nil {
		return nil, err
	}

	if !cacheable {
		return dec, nil
	}

	data, err := io.ReadAll(dec)
	_ = dec.Close()
	if err != nil {
		return nil, err
	}
	w.cache.Add(pathHash, data)
	return io.NopCloser(bytes.NewReader(data)), nil
}
