// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package wad

import (
	"io"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/compression"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/containers"
)

// ChunkEntry is a single table-of-contents record, normalized across
// the four on-disk encodings (v1, v2, v3.0, v3.4+). Fields that a
// given encoding does not carry report containers.Optional{OK: false},
// mirroring the reference's EntryExt trait returning Option<T>.
type ChunkEntry struct {
	PathHash         uint64
	DataOffset       uint32
	CompressedSize   uint32
	UncompressedSize uint32
	Kind             compression.Kind

	SubchunkCount containers.Optional[uint8]
	IsDuplicate   containers.Optional[bool]
	SubchunkIndex containers.Optional[uint32]
	Checksum      containers.Optional[uint64]
}

// entryCodec is selected once per mount, from the header's (major,
// minor), and used for every one of entry_count table-of-contents
// records.
type entryCodec int

const (
	entryCodecV1 entryCodec = iota
	entryCodecV2
	entryCodecV3_0
	entryCodecV3_4
)

func selectEntryCodec(major, minor uint8) (entryCodec, error) {
	switch major {
	case 1:
		return entryCodecV1, nil
	case 2:
		return entryCodecV2, nil
	case 3:
		if minor >= 4 {
			return entryCodecV3_4, nil
		}
		return entryCodecV3_0, nil
	default:
		return 0, &InvalidVersionError{Major: major, Minor: minor}
	}
}

func readChunkEntry(r io.Reader, codec entryCodec) (ChunkEntry, error) {
	var e ChunkEntry
	var err error

	e.PathHash, err = binio.ReadU64(r)
	if err != nil {
		return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "path_hash", Err: err}
	}
	e.DataOffset, err = binio.ReadU32(r)
	if err != nil {
		return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "data_offset", Err: err}
	}
	e.CompressedSize, err = binio.ReadU32(r)
	if err != nil {
		return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "compressed_size", Err: err}
	}
	e.UncompressedSize, err = binio.ReadU32(r)
	if err != nil {
		return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "uncompressed_size", Err: err}
	}

	switch codec {
	case entryCodecV1:
		kindByte, err := binio.ReadU8(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "kind", Err: err}
		}
		kind, err := compression.ParseKind(kindByte)
		if err != nil {
			return e, err
		}
		e.Kind = kind
		pad := make([]byte, 3)
		if _, err := io.ReadFull(r, pad); err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "pad", Err: err}
		}

	case entryCodecV2:
		kindByte, err := binio.ReadU8(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "kind", Err: err}
		}
		kind, err := compression.ParseKind(kindByte)
		if err != nil {
			return e, err
		}
		e.Kind = kind
		subchunkCount, err := binio.ReadU8(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "subchunk_count", Err: err}
		}
		e.SubchunkCount = containers.Optional[uint8]{OK: true, Val: subchunkCount}
		isDuplicate, err := binio.ReadBool(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "is_duplicate", Err: err}
		}
		e.IsDuplicate = containers.Optional[bool]{OK: true, Val: isDuplicate}
		subchunkIndex, err := binio.ReadU16(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "subchunk_index", Err: err}
		}
		e.SubchunkIndex = containers.Optional[uint32]{OK: true, Val: uint32(subchunkIndex)}

	case entryCodecV3_0:
		packed, err := binio.ReadU8(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "kind_subchunk_count", Err: err}
		}
		kind, err := compression.ParseKind(packed & 0xF)
		if err != nil {
			return e, err
		}
		e.Kind = kind
		e.SubchunkCount = containers.Optional[uint8]{OK: true, Val: packed >> 4}
		isDuplicate, err := binio.ReadBool(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "is_duplicate", Err: err}
		}
		e.IsDuplicate = containers.Optional[bool]{OK: true, Val: isDuplicate}
		subchunkIndex, err := binio.ReadU16(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "subchunk_index", Err: err}
		}
		e.SubchunkIndex = containers.Optional[uint32]{OK: true, Val: uint32(subchunkIndex)}
		checksum, err := binio.ReadU64(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "checksum", Err: err}
		}
		e.Checksum = containers.Optional[uint64]{OK: true, Val: checksum}

	case entryCodecV3_4:
		packed, err := binio.ReadU8(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "kind_subchunk_count", Err: err}
		}
		kind, err := compression.ParseKind(packed & 0xF)
		if err != nil {
			return e, err
		}
		e.Kind = kind
		e.SubchunkCount = containers.Optional[uint8]{OK: true, Val: packed >> 4}
		// No is_duplicate byte in v3.4+: the 3-byte subchunk_index
		// immediately follows the packed kind/subchunk byte.
		subchunkIndex, err := binio.ReadU24(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "subchunk_index", Err: err}
		}
		e.SubchunkIndex = containers.Optional[uint32]{OK: true, Val: subchunkIndex}
		checksum, err := binio.ReadU64(r)
		if err != nil {
			return e, &binio.ReadError{Type: "wad.ChunkEntry", Field: "checksum", Err: err}
		}
		e.Checksum = containers.Optional[uint64]{OK: true, Val: checksum}
	}

	return e, nil
}

// writeChunkEntryV3_4 writes e in the v3.4+ encoding; building only
// ever emits the newest fully-specified version (see package doc).
func writeChunkEntryV3_4(w io.Writer, e ChunkEntry) error {
	if err := binio.WriteU64(w, e.PathHash); err != nil {
		return err
	}
	if err := binio.WriteU32(w, e.DataOffset); err != nil {
		return err
	}
	if err := binio.WriteU32(w, e.CompressedSize); err != nil {
		return err
	}
	if err := binio.WriteU32(w, e.UncompressedSize); err != nil {
		return err
	}
	packed := byte(e.Kind) & 0xF
	if e.SubchunkCount.OK {
		packed |= e.SubchunkCount.Val << 4
	}
	if err := binio.WriteU8(w, packed); err != nil {
		return err
	}
	var subchunkIndex uint32
	if e.SubchunkIndex.OK {
		subchunkIndex = e.SubchunkIndex.Val
	}
	if err := binio.WriteU24(w, subchunkIndex); err != nil {
		return err
	}
	var checksum uint64
	if e.Checksum.OK {
		checksum = e.Checksum.Val
	}
	return binio.WriteU64(w, checksum)
}
