// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/modpkg"
)

// memFile is a minimal in-memory io.ReadWriteSeeker, matching the
// helper used by lib/wad's tests.
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

func buildSimplePkg(t *testing.T) *memFile {
	t.Helper()
	b := modpkg.NewBuilder(modpkg.Metadata{
		Name:        "example",
		DisplayName: "Example Mod",
		Version:     "1.0.0",
		Authors:     []modpkg.Author{{Name: "author"}},
		License:     modpkg.License{Kind: modpkg.LicenseNone},
	})
	b.AddLayer("base", 0)
	b.AddChunk(modpkg.BuilderChunk{Path: "assets/thing.txt", Kind: modpkg.CompressionZstd, Data: []byte("hello")})

	f := &memFile{}
	require.NoError(t, b.Write(f))
	return f
}

func TestMountRoundTrip(t *testing.T) {
	t.Parallel()
	f := buildSimplePkg(t)

	m, err := modpkg.Mount(f)
	require.NoError(t, err)
	assert.Equal(t, "example", m.Metadata.Name)
	assert.Len(t, m.Chunks(), 1)

	dec, err := m.Decoder(m.Chunks()[0].PathHash)
	require.NoError(t, err)
	got, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.NoError(t, dec.Close())
	assert.Equal(t, "hello", string(got))
}

func TestExtractAll(t *testing.T) {
	t.Parallel()
	f := buildSimplePkg(t)
	m, err := modpkg.Mount(f)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, m.ExtractAll(context.Background(), dir))

	got, err := os.ReadFile(filepath.Join(dir, "assets", "thing.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1) // only "assets/", no stray metadata.msgpack file
}

// rawChunk hand-encodes a chunk table record in the on-disk field
// order (path, path_hash, compressed_size, uncompressed_size,
// data_offset, checksum, kind), bypassing the builder so a table can
// be constructed that the builder itself would never produce.
func rawChunk(t *testing.T, buf *bytes.Buffer, path string, pathHash uint64) {
	t.Helper()
	require.NoError(t, binio.WriteLenString16(buf, path))
	require.NoError(t, binio.WriteU64(buf, pathHash))
	require.NoError(t, binio.WriteU64(buf, 0)) // compressed_size
	require.NoError(t, binio.WriteU64(buf, 0)) // uncompressed_size
	require.NoError(t, binio.WriteU64(buf, 0)) // data_offset
	require.NoError(t, binio.WriteU64(buf, 0)) // checksum
	require.NoError(t, binio.WriteU8(buf, byte(modpkg.CompressionNone)))
}

func TestUnsortedChunksRejected(t *testing.T) {
	t.Parallel()

	var header bytes.Buffer
	require.NoError(t, binio.WriteU32(&header, 1)) // layer_count
	require.NoError(t, binio.WriteLenString16(&header, "base"))
	require.NoError(t, binio.WriteI32(&header, 0)) // priority
	require.NoError(t, binio.WriteU32(&header, 2)) // chunk_count
	rawChunk(t, &header, "b.bin", 0x200)
	rawChunk(t, &header, "a.bin", 0x100) // out of order: previous 0x200, current 0x100

	f := &memFile{}
	_, err := f.Write([]byte{'L', 'T', 'K', 'M', 'O', 'D', 'P', 'K'})
	require.NoError(t, err)
	require.NoError(t, binio.WriteU32(f, 1)) // version
	require.NoError(t, binio.WriteU32(f, uint32(header.Len())))
	_, err = f.Write(header.Bytes())
	require.NoError(t, err)

	_, err = modpkg.Mount(f)
	var unsorted *modpkg.UnsortedChunksError
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, uint64(0x200), unsorted.Previous)
	assert.Equal(t, uint64(0x100), unsorted.Current)
}

func TestDuplicateChunkRejected(t *testing.T) {
	t.Parallel()

	var header bytes.Buffer
	require.NoError(t, binio.WriteU32(&header, 1)) // layer_count
	require.NoError(t, binio.WriteLenString16(&header, "base"))
	require.NoError(t, binio.WriteI32(&header, 0)) // priority
	require.NoError(t, binio.WriteU32(&header, 2)) // chunk_count
	rawChunk(t, &header, "a.bin", 0x100)
	rawChunk(t, &header, "a2.bin", 0x100) // same path_hash as the previous entry

	f := &memFile{}
	_, err := f.Write([]byte{'L', 'T', 'K', 'M', 'O', 'D', 'P', 'K'})
	require.NoError(t, err)
	require.NoError(t, binio.WriteU32(f, 1))
	require.NoError(t, binio.WriteU32(f, uint32(header.Len())))
	_, err = f.Write(header.Bytes())
	require.NoError(t, err)

	_, err = modpkg.Mount(f)
	var dup *modpkg.DuplicateChunkError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint64(0x100), dup.PathHash)
}

func TestExtractAllRejectsUnexpectedCompression(t *testing.T) {
	t.Parallel()
	f := buildSimplePkg(t)
	m, err := modpkg.Mount(f)
	require.NoError(t, err)

	pathHash := m.Chunks()[0].PathHash
	dir := t.TempDir()
	err = m.ExtractAll(context.Background(), dir, modpkg.WithExpectedCompression(pathHash, modpkg.CompressionNone))
	var unexpected *modpkg.UnexpectedCompressionTypeError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, modpkg.CompressionNone, unexpected.Expected)
	assert.Equal(t, modpkg.CompressionZstd, unexpected.Actual)
}

func TestMountRejectsInvalidLicenseType(t *testing.T) {
	t.Parallel()
	b := modpkg.NewBuilder(modpkg.Metadata{
		Name:    "example",
		Version: "1.0.0",
		License: modpkg.License{Kind: modpkg.LicenseKind(99)},
	})
	b.AddLayer("base", 0)
	f := &memFile{}
	require.NoError(t, b.Write(f))

	_, err := modpkg.Mount(f)
	var invalid *modpkg.InvalidLicenseTypeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, byte(99), invalid.Got)
}

func TestMissingBaseLayerRejected(t *testing.T) {
	t.Parallel()
	b := modpkg.NewBuilder(modpkg.Metadata{Name: "x", Version: "1.0.0"})
	f := &memFile{}
	err := b.Write(f)
	var missing *modpkg.MissingBaseLayerError
	require.ErrorAs(t, err, &missing)
}
