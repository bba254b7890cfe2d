// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bintree

import "github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"

// Value is any of the ~24 BIN property value shapes. SizeNoHeader
// reports the number of on-disk bytes the value occupies after its
// own kind tag, including, for Optional/Container/UnorderedContainer/
// Map, the type-describing bytes and total_size/count fields that
// follow the tag — it is what total_size/struct_size/body_size
// accounting is checked against.
type Value interface {
	Kind() Kind
	SizeNoHeader() int64
}

type (
	NoneValue         struct{}
	BoolValue         bool
	I8Value           int8
	U8Value           uint8
	I16Value          int16
	U16Value          uint16
	I32Value          int32
	U32Value          uint32
	I64Value          int64
	U64Value          uint64
	F32Value          float32
	Vector2Value      binio.Vec2
	Vector3Value      binio.Vec3
	Vector4Value      binio.Vec4
	Matrix44Value     binio.Mat4
	ColorValue        binio.Color
	StringValue       string
	HashValue         uint32
	WadChunkLinkValue uint64
	ObjectLinkValue   uint32
	BitBoolValue      bool
)

func (NoneValue) Kind() Kind         { return KindNone }
func (NoneValue) SizeNoHeader() int64 { return 0 }

func (BoolValue) Kind() Kind          { return KindBool }
func (BoolValue) SizeNoHeader() int64 { return 1 }

func (I8Value) Kind() Kind          { return KindI8 }
func (I8Value) SizeNoHeader() int64 { return 1 }

func (U8Value) Kind() Kind          { return KindU8 }
func (U8Value) SizeNoHeader() int64 { return 1 }

func (I16Value) Kind() Kind          { return KindI16 }
func (I16Value) SizeNoHeader() int64 { return 2 }

func (U16Value) Kind() Kind          { return KindU16 }
func (U16Value) SizeNoHeader() int64 { return 2 }

func (I32Value) Kind() Kind          { return KindI32 }
func (I32Value) SizeNoHeader() int64 { return 4 }

func (U32Value) Kind() Kind          { return KindU32 }
func (U32Value) SizeNoHeader() int64 { return 4 }

func (I64Value) Kind() Kind          { return KindI64 }
func (I64Value) SizeNoHeader() int64 { return 8 }

func (U64Value) Kind() Kind          { return KindU64 }
func (U64Value) SizeNoHeader() int64 { return 8 }

func (F32Value) Kind() Kind          { return KindF32 }
func (F32Value) SizeNoHeader() int64 { return 4 }

func (Vector2Value) Kind() Kind          { return KindVector2 }
func (Vector2Value) SizeNoHeader() int64 { return 8 }

func (Vector3Value) Kind() Kind          { return KindVector3 }
func (Vector3Value) SizeNoHeader() int64 { return 12 }

func (Vector4Value) Kind() Kind          { return KindVector4 }
func (Vector4Value) SizeNoHeader() int64 { return 16 }

func (Matrix44Value) Kind() Kind          { return KindMatrix44 }
func (Matrix44Value) SizeNoHeader() int64 { return 64 }

func (ColorValue) Kind() Kind          { return KindColor }
func (ColorValue) SizeNoHeader() int64 { return 4 }

func (v StringValue) Kind() Kind          { return KindString }
func (v StringValue) SizeNoHeader() int64 { return 2 + int64(len(v)) }

func (HashValue) Kind() Kind          { return KindHash }
func (HashValue) SizeNoHeader() int64 { return 4 }

func (WadChunkLinkValue) Kind() Kind          { return KindWadChunkLink }
func (WadChunkLinkValue) SizeNoHeader() int64 { return 8 }

func (ObjectLinkValue) Kind() Kind          { return KindObjectLink }
func (ObjectLinkValue) SizeNoHeader() int64 { return 4 }

func (BitBoolValue) Kind() Kind          { return KindBitBool }
func (BitBoolValue) SizeNoHeader() int64 { return 1 }

// StructValue is shared by Kind Struct and Kind Embedded: both encode
// a class_hash followed, when non-zero, by a struct_size-prefixed
// property list. A zero class_hash means "no value" and carries no
// struct_size or properties.
type StructValue struct {
	IsEmbedded bool
	ClassHash  uint32
	Properties []Property
}

func (v StructValue) Kind() Kind {
	if v.IsEmbedded {
		return KindEmbedded
	}
	return KindStruct
}

func (v StructValue) SizeNoHeader() int64 {
	if v.ClassHash == 0 {
		return 4
	}
	return 4 + 4 + 2 + propertiesSize(v.Properties) // class_hash + struct_size + prop_count
}

// OptionalValue is Kind Optional: a presence byte followed, when
// present, by one inner value. InnerKind is always recorded (even when
// Value is absent) since the inner kind byte precedes the presence
// byte on disk.
type OptionalValue struct {
	InnerKind Kind
	HasValue  bool
	Value     Value
}

func (OptionalValue) Kind() Kind { return KindOptional }

func (v OptionalValue) SizeNoHeader() int64 {
	size := int64(2) // inner_kind + presence byte
	if v.HasValue {
		size += v.Value.SizeNoHeader()
	}
	return size
}

// ContainerValue is Kind Container or Kind UnorderedContainer: an
// elem_kind byte, a u32 element count, and count elements of that
// kind, all behind a total_size u32 that the caller validates.
type ContainerValue struct {
	Unordered bool
	ElemKind  Kind
	Elements  []Value
}

func (v ContainerValue) Kind() Kind {
	if v.Unordered {
		return KindUnorderedContainer
	}
	return KindContainer
}

func (v ContainerValue) SizeNoHeader() int64 {
	var size int64 = 1 + 4 + 4 // elem_kind + total_size + count
	for _, e := range v.Elements {
		size += e.SizeNoHeader()
	}
	return size
}

// MapEntry is one key/value pair of a MapValue.
type MapEntry struct {
	Key   Value
	Value Value
}

// MapValue is Kind Map: a key_kind byte, a value_kind byte, a u32
// entry count, and count (key, value) pairs, behind a total_size u32.
type MapValue struct {
	KeyKind   Kind
	ValueKind Kind
	Entries   []MapEntry
}

func (MapValue) Kind() Kind { return KindMap }

func (v MapValue) SizeNoHeader() int64 {
	var size int64 = 1 + 1 + 4 + 4 // key_kind + value_kind + total_size + count
	for _, e := range v.Entries {
		size += e.Key.SizeNoHeader() + e.Value.SizeNoHeader()
	}
	return size
}

func propertiesSize(props []Property) int64 {
	var size int64
	for _, p := range props {
		size += p.SizeNoHeader()
	}
	return size
}
