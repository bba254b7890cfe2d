// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package wad

import "fmt"

// InvalidMagicError is returned when the 2-byte WAD magic does not
// read "RW".
type InvalidMagicError struct {
	Got [2]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("wad: invalid magic %q, expected \"RW\"", e.Got[:])
}

// InvalidVersionError is returned for an unsupported major version.
type InvalidVersionError struct {
	Major, Minor uint8
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("wad: unsupported version %d.%d", e.Major, e.Minor)
}

// InvalidHeaderError is returned when a version's header carries a
// constant field (v2's toc_offset/entry_size) that does not match its
// required value.
type InvalidHeaderError struct {
	Field    string
	Want, Got uint64
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("wad: invalid header field %s: want %d, got %d", e.Field, e.Want, e.Got)
}

// UnknownChunkError is returned by Get/Decoder for a path_hash absent
// from the table of contents.
type UnknownChunkError struct {
	PathHash uint64
}

func (e *UnknownChunkError) Error() string {
	return fmt.Sprintf("wad: no such chunk: path_hash=%#016x", e.PathHash)
}

// DuplicateChunkError is returned by Mount when two table-of-contents
// entries share a path_hash and neither is explicitly marked
// is_duplicate.
type DuplicateChunkError struct {
	PathHash uint64
}

func (e *DuplicateChunkError) Error() string {
	return fmt.Sprintf("wad: duplicate chunk: path_hash=%#016x", e.PathHash)
}
