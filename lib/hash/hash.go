// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package hash implements the four hash functions used across the
// WAD, BIN, and ModPkg formats. Every function here is computed over
// the lowercase form of its input; none of them take a caller-supplied
// case transform, to keep every call site consistent with the
// reference implementation's lowercasing rule.
package hash

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// LayerName hashes a ModPkg layer name with xxh3_64 over its lowercase
// UTF-8 bytes.
func LayerName(name string) uint64 {
	return xxh3.HashString(strings.ToLower(name))
}

// ChunkPath hashes a WAD or ModPkg chunk path with xxh64 (seed 0) over
// its lowercase UTF-8 bytes.
func ChunkPath(path string) uint64 {
	return xxhash.Sum64String(strings.ToLower(path))
}

// fnv1a32Offset and fnv1a32Prime are the standard 32-bit FNV-1a
// constants.
const (
	fnv1a32Offset uint32 = 0x811c9dc5
	fnv1a32Prime  uint32 = 0x01000193
)

// BinName hashes a BIN property/object/class name with FNV-1a
// (32-bit), lowercasing each codepoint before folding its encoded
// UTF-8 bytes into the hash — so "É" and "é" hash identically, not
// merely ASCII-cased names.
func BinName(name string) uint32 {
	hash := fnv1a32Offset
	for _, r := range name {
		lower := unicode.ToLower(r)
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], lower)
		for _, b := range buf[:n] {
			hash ^= uint32(b)
			hash *= fnv1a32Prime
		}
	}
	return hash
}

// Elf computes the legacy ELF hash over the bytes of the lowercase
// form of s.
func Elf(s string) uint32 {
	s = strings.ToLower(s)
	var h, high uint32
	for i := 0; i < len(s); i++ {
		h = (h << 4) + uint32(s[i])
		high = h & 0xF0000000
		if high != 0 {
			h ^= high >> 24
		}
		h &^= high
	}
	return h
}
