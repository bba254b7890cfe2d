// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compression_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/compression"
)

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

func TestNonePassthrough(t *testing.T) {
	t.Parallel()
	r, err := compression.Decode(bytes.NewReader([]byte("alpha")), compression.None, 5, 5)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(got))
}

func TestZstdRoundTrip(t *testing.T) {
	t.Parallel()
	compressed := zstdCompress(t, []byte("beta-beta-beta"))
	r, err := compression.Decode(bytes.NewReader(compressed), compression.Zstd, int64(len(compressed)), 14)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "beta-beta-beta", string(got))
}

func TestZstdMultiPrefixHandling(t *testing.T) {
	t.Parallel()
	frame := zstdCompress(t, []byte("body"))
	compressed := append([]byte("HDR!"), frame...)

	r, err := compression.Decode(bytes.NewReader(compressed), compression.ZstdMulti, int64(len(compressed)), 8)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "HDR!body", string(got))
}

func TestZstdMultiMissingMagic(t *testing.T) {
	t.Parallel()
	compressed := []byte("no zstd frame here at all")
	_, err := compression.Decode(bytes.NewReader(compressed), compression.ZstdMulti, int64(len(compressed)), 8)
	var missing *compression.MissingZstdMagicError
	assert.ErrorAs(t, err, &missing)
}

func TestSatelliteUnsupported(t *testing.T) {
	t.Parallel()
	_, err := compression.Decode(bytes.NewReader(nil), compression.Satellite, 0, 0)
	var unsupported *compression.UnsupportedCompressionError
	assert.ErrorAs(t, err, &unsupported)
}

func TestParseKindInvalid(t *testing.T) {
	t.Parallel()
	_, err := compression.ParseKind(0xFF)
	var invalid *compression.InvalidCompressionError
	assert.ErrorAs(t, err, &invalid)
}
