// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package wad

import (
	"io"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/containers"
)

// header is the common surface of the three WAD header layouts
// (v1, v2, v3), mirroring the reference's HeaderExt trait.
type header interface {
	TocOffset() int64
	EntrySize() int64
	EntryCount() uint32
	Checksum() containers.Optional[uint64]
	Signature() containers.Optional[[256]byte]
}

type headerV1 struct {
	entryCount uint32
}

func (h *headerV1) TocOffset() int64                        { return 12 }
func (h *headerV1) EntrySize() int64                         { return 24 }
func (h *headerV1) EntryCount() uint32                        { return h.entryCount }
func (h *headerV1) Checksum() containers.Optional[uint64]     { return containers.Optional[uint64]{} }
func (h *headerV1) Signature() containers.Optional[[256]byte] { return containers.Optional[[256]byte]{} }

func readHeaderV1(r io.Reader) (*headerV1, error) {
	entryCount, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV1", Field: "entry_count", Err: err}
	}
	return &headerV1{entryCount: entryCount}, nil
}

const (
	headerV2TocOffset  = 104
	headerV2EntrySize  = 24
	headerV3TocOffset  = 272
	headerV3EntrySize  = 32
)

type headerV2 struct {
	checksum   uint64
	entryCount uint32
}

func (h *headerV2) TocOffset() int64 { return headerV2TocOffset }
func (h *headerV2) EntrySize() int64 { return headerV2EntrySize }
func (h *headerV2) EntryCount() uint32 { return h.entryCount }
func (h *headerV2) Checksum() containers.Optional[uint64] {
	return containers.Optional[uint64]{OK: true, Val: h.checksum}
}
func (h *headerV2) Signature() containers.Optional[[256]byte] { return containers.Optional[[256]byte]{} }

func readHeaderV2(r io.Reader) (*headerV2, error) {
	reserved := make([]byte, 84)
	if _, err := io.ReadFull(r, reserved); err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV2", Field: "reserved", Err: err}
	}
	checksum, err := binio.ReadU64(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV2", Field: "checksum", Err: err}
	}
	tocOffset, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV2", Field: "toc_offset", Err: err}
	}
	if tocOffset != headerV2TocOffset {
		return nil, &InvalidHeaderError{Field: "toc_offset", Want: headerV2TocOffset, Got: uint64(tocOffset)}
	}
	entrySize, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV2", Field: "entry_size", Err: err}
	}
	if entrySize != headerV2EntrySize {
		return nil, &InvalidHeaderError{Field: "entry_size", Want: headerV2EntrySize, Got: uint64(entrySize)}
	}
	entryCount, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV2", Field: "entry_count", Err: err}
	}
	return &headerV2{checksum: checksum, entryCount: entryCount}, nil
}

type headerV3 struct {
	signature  [256]byte
	checksum   uint64
	entryCount uint32
}

func (h *headerV3) TocOffset() int64 { return headerV3TocOffset }
func (h *headerV3) EntrySize() int64 { return headerV3EntrySize }
func (h *headerV3) EntryCount() uint32 { return h.entryCount }
func (h *headerV3) Checksum() containers.Optional[uint64] {
	return containers.Optional[uint64]{OK: true, Val: h.checksum}
}
func (h *headerV3) Signature() containers.Optional[[256]byte] {
	return containers.Optional[[256]byte]{OK: true, Val: h.signature}
}

func readHeaderV3(r io.Reader) (*headerV3, error) {
	var sig [256]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV3", Field: "signature", Err: err}
	}
	checksum, err := binio.ReadU64(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV3", Field: "checksum", Err: err}
	}
	entryCount, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "wad.headerV3", Field: "entry_count", Err: err}
	}
	return &headerV3{signature: sig, checksum: checksum, entryCount: entryCount}, nil
}
