// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package binio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
)

func TestLenString16RoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, binio.WriteLenString16(&buf, "hello"))
	assert.Equal(t, []byte{5, 0, 'h', 'e', 'l', 'l', 'o'}, buf.Bytes())

	got, err := binio.ReadLenString16(&buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestPaddedStringRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, binio.WritePaddedString(&buf, "abc", 8))
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 0, 0, 0, 0}, buf.Bytes())

	got, err := binio.ReadPaddedString(&buf, 8)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestPaddedStringTooLong(t *testing.T) {
	t.Parallel()
	err := binio.WritePaddedString(&bytes.Buffer{}, "toolongforfield", 4)
	assert.Error(t, err)
}

func TestU24RoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, binio.WriteU24(&buf, 0x00ABCDEF))
	assert.Equal(t, []byte{0xEF, 0xCD, 0xAB}, buf.Bytes())

	got, err := binio.ReadU24(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00ABCDEF), got)
}

func TestColorIsNotLittleEndian(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, binio.WriteColor(&buf, binio.Color{R: 1, G: 2, B: 3, A: 4}))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestSeekMeasure(t *testing.T) {
	t.Parallel()
	buf := bytes.NewReader(make([]byte, 16))
	n, _, err := binio.SeekMeasure[struct{}](buf, func() (struct{}, error) {
		_, err := buf.Seek(4, 1)
		return struct{}{}, err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestSeekWindow(t *testing.T) {
	t.Parallel()
	data := make([]byte, 16)
	r := bytes.NewReader(data)

	_, err := r.Seek(10, 0)
	require.NoError(t, err)

	_, err = binio.SeekWindow[struct{}](r, 0, func() (struct{}, error) {
		var b [4]byte
		_, err := r.Read(b[:])
		return struct{}{}, err
	})
	require.NoError(t, err)

	pos, err := r.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos)
}
