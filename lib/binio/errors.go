// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package binio

import (
	"fmt"
)

// ReadError wraps an error encountered while decoding a named field of
// a binary structure, in the style of (Type, Field, Err) used
// throughout the WAD/BIN/ModPkg readers.
type ReadError struct {
	Type  string // e.g. "wad.ChunkEntry"
	Field string // e.g. "path_hash"
	Err   error
}

func (e *ReadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Field, e.Err)
}
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is ReadError's write-side counterpart.
type WriteError struct {
	Type  string
	Field string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Field, e.Err)
}
func (e *WriteError) Unwrap() error { return e.Err }
