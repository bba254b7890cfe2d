// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg

import "fmt"

type InvalidMagicError struct {
	Got [8]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("modpkg: invalid magic %q", e.Got[:])
}

type InvalidVersionError struct {
	Got uint32
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("modpkg: invalid version %d, only version %d is supported", e.Got, formatVersion)
}

type InvalidHeaderSizeError struct {
	HeaderSize, ActualSize uint32
}

func (e *InvalidHeaderSizeError) Error() string {
	return fmt.Sprintf("modpkg: invalid header size: declared %d, actual %d", e.HeaderSize, e.ActualSize)
}

type UnsortedChunksError struct {
	Previous, Current uint64
}

func (e *UnsortedChunksError) Error() string {
	return fmt.Sprintf("modpkg: chunks are not in ascending order: previous %#x, current %#x", e.Previous, e.Current)
}

type MissingMetadataError struct{}

func (e *MissingMetadataError) Error() string { return "modpkg: missing metadata chunk" }

type MissingBaseLayerError struct{}

func (e *MissingBaseLayerError) Error() string { return "modpkg: missing base layer" }

type DuplicateChunkError struct {
	PathHash uint64
}

func (e *DuplicateChunkError) Error() string {
	return fmt.Sprintf("modpkg: duplicate chunk %#x", e.PathHash)
}

type MissingChunkError struct {
	PathHash uint64
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("modpkg: chunk not found: %#x", e.PathHash)
}

type InvalidCompressionTypeError struct {
	Got byte
}

func (e *InvalidCompressionTypeError) Error() string {
	return fmt.Sprintf("modpkg: invalid compression type %d", e.Got)
}

type UnexpectedCompressionTypeError struct {
	Chunk            uint64
	Expected, Actual Compression
}

func (e *UnexpectedCompressionTypeError) Error() string {
	return fmt.Sprintf("modpkg: unexpected compression type: chunk %#x, expected %v, actual %v", e.Chunk, e.Expected, e.Actual)
}

type InvalidLicenseTypeError struct {
	Got byte
}

func (e *InvalidLicenseTypeError) Error() string {
	return fmt.Sprintf("modpkg: invalid license type %d", e.Got)
}
