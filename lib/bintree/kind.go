// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bintree

import "fmt"

// Kind is the on-disk tag byte identifying a BIN property's value
// shape — a closed set of ~24 variants. The numeric values below are
// this module's own modern tag assignment; see LegacyKindPermutation
// for the historical ordering some files still use, and DESIGN.md for
// why that permutation's exact values are a documented decision
// rather than a value lifted from the reference.
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindVector2
	KindVector3
	KindVector4
	KindMatrix44
	KindColor
	KindString
	KindHash
	KindWadChunkLink
	KindStruct
	KindEmbedded
	KindObjectLink
	KindBitBool
	KindOptional
	KindContainer
	KindUnorderedContainer
	KindMap

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "Bool"
	case KindI8:
		return "I8"
	case KindU8:
		return "U8"
	case KindI16:
		return "I16"
	case KindU16:
		return "U16"
	case KindI32:
		return "I32"
	case KindU32:
		return "U32"
	case KindI64:
		return "I64"
	case KindU64:
		return "U64"
	case KindF32:
		return "F32"
	case KindVector2:
		return "Vector2"
	case KindVector3:
		return "Vector3"
	case KindVector4:
		return "Vector4"
	case KindMatrix44:
		return "Matrix44"
	case KindColor:
		return "Color"
	case KindString:
		return "String"
	case KindHash:
		return "Hash"
	case KindWadChunkLink:
		return "WadChunkLink"
	case KindStruct:
		return "Struct"
	case KindEmbedded:
		return "Embedded"
	case KindObjectLink:
		return "ObjectLink"
	case KindBitBool:
		return "BitBool"
	case KindOptional:
		return "Optional"
	case KindContainer:
		return "Container"
	case KindUnorderedContainer:
		return "UnorderedContainer"
	case KindMap:
		return "Map"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsContainerKind reports whether k is one of the four kinds that
// nest other values (Optional, Container, UnorderedContainer, Map).
// An Optional may not wrap one of these — see InvalidNestingError.
func IsContainerKind(k Kind) bool {
	switch k {
	case KindOptional, KindContainer, KindUnorderedContainer, KindMap:
		return true
	default:
		return false
	}
}

// IsPrimitiveKind reports whether k is eligible as a Map key: every
// kind except None and the four container kinds above.
func IsPrimitiveKind(k Kind) bool {
	if k == KindNone {
		return false
	}
	return !IsContainerKind(k)
}

// LegacyKindPermutation maps a historical (legacy) on-disk tag byte to
// its modern Kind. It is queried only when a caller opts into legacy
// decoding (the legacy parameter of Read); writing always
// emits the modern tag numbering.
var LegacyKindPermutation = map[byte]Kind{
	0:  KindNone,
	1:  KindBool,
	2:  KindI8,
	3:  KindU8,
	4:  KindI16,
	5:  KindU16,
	6:  KindI32,
	7:  KindU32,
	8:  KindI64,
	9:  KindU64,
	10: KindF32,
	11: KindVector2,
	12: KindVector3,
	13: KindVector4,
	14: KindMatrix44,
	15: KindColor,
	16: KindString,
	17: KindHash,
	18: KindContainer,
	19: KindStruct,
	20: KindOptional,
	21: KindMap,
	22: KindEmbedded,
	23: KindObjectLink,
	24: KindWadChunkLink,
	25: KindUnorderedContainer,
	26: KindBitBool,
}

// UnpackKind decodes an on-disk tag byte to a Kind. When legacy is
// true, raw is looked up in LegacyKindPermutation; otherwise raw must
// equal one of the modern Kind constants directly.
func UnpackKind(raw byte, legacy bool) (Kind, error) {
	if legacy {
		k, ok := LegacyKindPermutation[raw]
		if !ok {
			return 0, &InvalidPropertyKindError{Tag: raw, Legacy: true}
		}
		return k, nil
	}
	if raw >= byte(kindCount) {
		return 0, &InvalidPropertyKindError{Tag: raw, Legacy: false}
	}
	return Kind(raw), nil
}

// PackKind encodes k as its modern on-disk tag byte.
func PackKind(k Kind) byte { return byte(k) }
