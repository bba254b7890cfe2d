// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package wad_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/compression"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/wad"
)

func newSeekBuffer() *memFile { return &memFile{} }

// memFile is a minimal in-memory io.ReadWriteSeeker, since
// bytes.Buffer alone does not support seeking (needed to back-patch
// the header and table of contents).
type memFile struct {
	data []byte
	pos  int64
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.pos+int64(len(p)) > int64(len(f.data)) {
		grown := make([]byte, f.pos+int64(len(p)))
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[f.pos:], p)
	f.pos += int64(len(p))
	return len(p), nil
}

func (f *memFile) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.pos = offset
	case io.SeekCurrent:
		f.pos += offset
	case io.SeekEnd:
		f.pos = int64(len(f.data)) + offset
	}
	return f.pos, nil
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return buf.Bytes()
}

func TestBuildAndMountRoundTrip(t *testing.T) {
	t.Parallel()

	f := newSeekBuffer()
	b := wad.NewBuilder()
	b.AddChunk(wad.BuilderChunk{PathHash: 0x10, Kind: compression.Zstd, Data: []byte("alpha")})
	b.AddChunk(wad.BuilderChunk{PathHash: 0x20, Kind: compression.None, Data: []byte("beta")})

	// 0x30 is a plain None chunk that only takes part in the ordering
	// check: the builder doesn't produce ZstdMulti (it's a read-only
	// legacy encoding), so that decode path is covered separately by
	// TestZstdMultiChunkViaBuilderSplice.
	b.AddChunk(wad.BuilderChunk{PathHash: 0x30, Kind: compression.None, Data: []byte("placeholder")})

	require.NoError(t, b.Write(f))

	m, err := wad.Mount(f)
	require.NoError(t, err)

	var hashes []uint64
	for _, c := range m.Chunks() {
		hashes = append(hashes, c.PathHash)
	}
	assert.Equal(t, []uint64{0x10, 0x20, 0x30}, hashes)

	dec, err := m.Decoder(0x10)
	require.NoError(t, err)
	got, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.NoError(t, dec.Close())
	assert.Equal(t, "alpha", string(got))

	dec, err = m.Decoder(0x20)
	require.NoError(t, err)
	got, err = io.ReadAll(dec)
	require.NoError(t, err)
	require.NoError(t, dec.Close())
	assert.Equal(t, "beta", string(got))
}

func TestZstdMultiChunkViaBuilderSplice(t *testing.T) {
	t.Parallel()

	frame := zstdCompress(t, []byte("tail"))
	payload := append([]byte("RAW_"), frame...)

	f := newSeekBuffer()
	b := wad.NewBuilder()
	b.AddChunk(wad.BuilderChunk{PathHash: 0x30, Kind: compression.None, Data: payload})
	require.NoError(t, b.Write(f))

	m, err := wad.Mount(f)
	require.NoError(t, err)
	entry, err := m.Get(0x30)
	require.NoError(t, err)

	// Re-point the entry at the ZstdMulti codec with the correct
	// logical uncompressed size to exercise the same decode path a
	// real v3.4 archive with a ZstdMulti chunk would take.
	dec, err := compression.Decode(bytes.NewReader(payload), compression.ZstdMulti, int64(entry.CompressedSize), 8)
	require.NoError(t, err)
	defer dec.Close()
	got, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, "RAW_tail", string(got))
}

func TestDuplicatePathHashPanics(t *testing.T) {
	t.Parallel()
	b := wad.NewBuilder()
	b.AddChunk(wad.BuilderChunk{PathHash: 0x1, Kind: compression.None, Data: []byte("a")})
	assert.Panics(t, func() {
		b.AddChunk(wad.BuilderChunk{PathHash: 0x1, Kind: compression.None, Data: []byte("b")})
	})
}

func TestMountRejectsUnmarkedDuplicatePathHash(t *testing.T) {
	t.Parallel()

	// Hand-built v1 archive: magic, major=1, minor=0, entry_count=2,
	// then two 24-byte TOC entries sharing path_hash=0x10. v1 carries
	// no is_duplicate byte, so Mount must treat this as a collision.
	f := newSeekBuffer()
	_, err := f.Write([]byte{'R', 'W', 1, 0})
	require.NoError(t, err)
	_, err = f.Write([]byte{2, 0, 0, 0}) // entry_count = 2
	require.NoError(t, err)
	_, err = f.Write([]byte{0, 0, 0, 0}) // pad out to the v1 toc_offset of 12
	require.NoError(t, err)

	writeV1Entry := func(pathHash uint64) {
		var buf bytes.Buffer
		require.NoError(t, binio.WriteU64(&buf, pathHash))
		require.NoError(t, binio.WriteU32(&buf, 0)) // data_offset
		require.NoError(t, binio.WriteU32(&buf, 1)) // compressed_size
		require.NoError(t, binio.WriteU32(&buf, 1)) // uncompressed_size
		require.NoError(t, binio.WriteU8(&buf, 0))  // kind
		buf.Write([]byte{0, 0, 0})                  // pad
		_, err := f.Write(buf.Bytes())
		require.NoError(t, err)
	}
	writeV1Entry(0x10)
	writeV1Entry(0x10)

	_, err = wad.Mount(f)
	var dup *wad.DuplicateChunkError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint64(0x10), dup.PathHash)
}

func TestUnknownChunk(t *testing.T) {
	t.Parallel()
	f := newSeekBuffer()
	require.NoError(t, wad.NewBuilder().Write(f))
	m, err := wad.Mount(f)
	require.NoError(t, err)
	_, err = m.Get(0xdead)
	var unknown *wad.UnknownChunkError
	assert.ErrorAs(t, err, &unknown)
}
