// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package compression implements the chunk-codec dispatch shared by
// WAD and ModPkg: given a stream positioned at a chunk's data, its
// compressed size, its declared codec, and its expected uncompressed
// size, it returns a streaming reader whose total yield equals the
// uncompressed size.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Kind is a chunk's compression codec tag.
type Kind uint8

const (
	None      Kind = 0
	GZip      Kind = 1
	Satellite Kind = 2
	Zstd      Kind = 3
	ZstdMulti Kind = 4
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case GZip:
		return "GZip"
	case Satellite:
		return "Satellite"
	case Zstd:
		return "Zstd"
	case ZstdMulti:
		return "ZstdMulti"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// InvalidCompressionError is returned when a tag byte does not
// correspond to any known Kind.
type InvalidCompressionError struct {
	Tag byte
}

func (e *InvalidCompressionError) Error() string {
	return fmt.Sprintf("compression: invalid compression tag %#02x", e.Tag)
}

// UnsupportedCompressionError is returned for a recognized-but-unimplemented
// codec (Satellite, per the reference).
type UnsupportedCompressionError struct {
	Kind Kind
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("compression: unsupported codec %v", e.Kind)
}

// MissingZstdMagicError is returned when a ZstdMulti chunk's
// compressed payload does not contain the zstd frame magic anywhere
// within it.
type MissingZstdMagicError struct{}

func (e *MissingZstdMagicError) Error() string {
	return "compression: ZstdMulti payload does not contain a zstd frame magic"
}

// ParseKind maps an on-disk tag byte to a Kind, failing with
// InvalidCompressionError for unrecognized tags.
func ParseKind(tag byte) (Kind, error) {
	switch Kind(tag) {
	case None, GZip, Satellite, Zstd, ZstdMulti:
		return Kind(tag), nil
	default:
		return 0, &InvalidCompressionError{Tag: tag}
	}
}

var zstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// Decode returns a reader that yields exactly uncompressedSize bytes
// of decoded chunk data, reading at most compressedSize bytes of
// encoded data from r (r must already be positioned at the chunk's
// data_offset). Callers must Close the returned reader once done.
func Decode(r io.Reader, kind Kind, compressedSize, uncompressedSize int64) (io.ReadCloser, error) {
	src := io.LimitReader(r, compressedSize)
	switch kind {
	case None:
		return capReader(io.NopCloser(src), uncompressedSize), nil
	case GZip:
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, err
		}
		return capReader(gz, uncompressedSize), nil
	case Zstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, err
		}
		return capReader(zstdReadCloser{dec}, uncompressedSize), nil
	case ZstdMulti:
		return decodeZstdMulti(src, uncompressedSize)
	case Satellite:
		return nil, &UnsupportedCompressionError{Kind: kind}
	default:
		return nil, &InvalidCompressionError{Tag: byte(kind)}
	}
}

type zstdReadCloser struct{ *zstd.Decoder }

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// decodeZstdMulti reads the whole (at most compressedSize-byte)
// compressed blob into memory, locates the zstd frame magic within
// it, and returns a reader that yields the literal prefix bytes
// followed by the zstd-decoded remainder.
func decodeZstdMulti(src io.Reader, uncompressedSize int64) (io.ReadCloser, error) {
	blob, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	idx := findFirst(blob, zstdMagic[:])
	if idx < 0 {
		return nil, &MissingZstdMagicError{}
	}
	prefix := blob[:idx]
	frame := blob[idx:]

	dec, err := zstd.NewReader(bytes.NewReader(frame))
	if err != nil {
		return nil, err
	}
	tail := capReader(zstdReadCloser{dec}, uncompressedSize-int64(len(prefix)))
	return capReader(struct {
		io.Reader
		io.Closer
	}{
		Reader: io.MultiReader(bytes.NewReader(prefix), tail),
		Closer: tail,
	}, uncompressedSize), nil
}

// capReader wraps rc so that reads never yield more than n total
// bytes, matching the top-level chunk decoder's cursor-capping rule:
// each read is capped to uncompressed_size - position.
func capReader(rc io.ReadCloser, n int64) io.ReadCloser {
	return &cappedReader{rc: rc, remaining: n}
}

type cappedReader struct {
	rc        io.ReadCloser
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.rc.Read(p)
	c.remaining -= int64(n)
	return n, err
}

func (c *cappedReader) Close() error {
	return c.rc.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Encode streams data through kind's encoder into w, returning the
// number of compressed bytes written. Builders only ever emit None,
// GZip, or Zstd — ZstdMulti and Satellite are read-only encodings per
// the reference and are rejected here.
func Encode(w io.Writer, kind Kind, data []byte) (int64, error) {
	cw := &countingWriter{w: w}
	switch kind {
	case None:
		if _, err := cw.Write(data); err != nil {
			return cw.n, err
		}
	case GZip:
		gz := gzip.NewWriter(cw)
		if _, err := gz.Write(data); err != nil {
			return cw.n, err
		}
		if err := gz.Close(); err != nil {
			return cw.n, err
		}
	case Zstd:
		enc, err := zstd.NewWriter(cw)
		if err != nil {
			return cw.n, err
		}
		if _, err := enc.Write(data); err != nil {
			return cw.n, err
		}
		if err := enc.Close(); err != nil {
			return cw.n, err
		}
	default:
		return 0, &UnsupportedCompressionError{Kind: kind}
	}
	return cw.n, nil
}
