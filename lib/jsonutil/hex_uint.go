// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package jsonutil

import (
	"encoding/binary"
	"fmt"
	"io"

	"git.lukeshu.com/go/lowmemjson"
)

// HexUint64 renders a uint64 hash (a path_hash, class_hash, or
// checksum) as a hex-encoded JSON string rather than a JSON number,
// matching how the reference renders its own hash-like fields.
type HexUint64 uint64

var (
	_ lowmemjson.Encodable = HexUint64(0)
	_ lowmemjson.Decodable = (*HexUint64)(nil)
)

func (h HexUint64) EncodeJSON(w io.Writer) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(h))
	return EncodeHexString(w, buf[:])
}

func (h *HexUint64) DecodeJSON(r io.RuneScanner) error {
	var buf []byte
	if err := DecodeHexString(r, &byteSliceWriter{&buf}); err != nil {
		return err
	}
	if len(buf) != 8 {
		return fmt.Errorf("jsonutil: HexUint64 must decode to 8 bytes, got %d", len(buf))
	}
	*h = HexUint64(binary.BigEndian.Uint64(buf))
	return nil
}

type byteSliceWriter struct{ buf *[]byte }

func (w *byteSliceWriter) WriteByte(b byte) error {
	*w.buf = append(*w.buf, b)
	return nil
}
