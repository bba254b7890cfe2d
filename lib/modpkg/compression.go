// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg

// Compression is ModPkg's own one-byte compression tag. It
// deliberately does not share a numbering with lib/compression.Kind:
// a ModPkg chunk may only be None or Zstd.
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Invalid"
	}
}

func parseCompression(tag byte) (Compression, error) {
	switch tag {
	case byte(CompressionNone):
		return CompressionNone, nil
	case byte(CompressionZstd):
		return CompressionZstd, nil
	default:
		return 0, &InvalidCompressionTypeError{Got: tag}
	}
}
