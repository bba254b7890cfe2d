// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bintree

import (
	"io"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
)

// Property is a named value attached to an Object: name_hash (an
// FNV-1a hash of the property's declared name), plus the value
// itself.
type Property struct {
	NameHash uint32
	Value    Value
}

// SizeNoHeader is the number of bytes a written Property occupies,
// including its own name_hash and kind byte — this is what a
// Struct/Embedded's struct_size accounts for.
func (p Property) SizeNoHeader() int64 {
	return 4 + 1 + p.Value.SizeNoHeader()
}

// countingReader wraps an io.Reader, counting bytes read through it.
// Used to validate total_size/struct_size/body_size against bytes
// actually consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func readProperty(r io.Reader, legacy bool) (Property, error) {
	nameHash, err := binio.ReadU32(r)
	if err != nil {
		return Property{}, &binio.ReadError{Type: "bintree.Property", Field: "name_hash", Err: err}
	}
	tag, err := binio.ReadU8(r)
	if err != nil {
		return Property{}, &binio.ReadError{Type: "bintree.Property", Field: "kind", Err: err}
	}
	kind, err := UnpackKind(tag, legacy)
	if err != nil {
		return Property{}, err
	}
	val, err := readValue(r, kind, legacy)
	if err != nil {
		return Property{}, err
	}
	return Property{NameHash: nameHash, Value: val}, nil
}

func writeProperty(w io.Writer, p Property) error {
	if err := binio.WriteU32(w, p.NameHash); err != nil {
		return &binio.WriteError{Type: "bintree.Property", Field: "name_hash", Err: err}
	}
	if err := binio.WriteU8(w, PackKind(p.Value.Kind())); err != nil {
		return &binio.WriteError{Type: "bintree.Property", Field: "kind", Err: err}
	}
	return writeValue(w, p.Value)
}

// readValue decodes the payload for a value of the given kind,
// enforcing the nesting, key-type, and size-consistency invariants.
func readValue(r io.Reader, kind Kind, legacy bool) (Value, error) {
	switch kind {
	case KindNone:
		return NoneValue{}, nil
	case KindBool:
		v, err := binio.ReadBool(r)
		return BoolValue(v), wrapReadErr(err, "Bool")
	case KindBitBool:
		v, err := binio.ReadBool(r)
		return BitBoolValue(v), wrapReadErr(err, "BitBool")
	case KindI8:
		v, err := binio.ReadI8(r)
		return I8Value(v), wrapReadErr(err, "I8")
	case KindU8:
		v, err := binio.ReadU8(r)
		return U8Value(v), wrapReadErr(err, "U8")
	case KindI16:
		v, err := binio.ReadI16(r)
		return I16Value(v), wrapReadErr(err, "I16")
	case KindU16:
		v, err := binio.ReadU16(r)
		return U16Value(v), wrapReadErr(err, "U16")
	case KindI32:
		v, err := binio.ReadI32(r)
		return I32Value(v), wrapReadErr(err, "I32")
	case KindU32:
		v, err := binio.ReadU32(r)
		return U32Value(v), wrapReadErr(err, "U32")
	case KindI64:
		v, err := binio.ReadI64(r)
		return I64Value(v), wrapReadErr(err, "I64")
	case KindU64:
		v, err := binio.ReadU64(r)
		return U64Value(v), wrapReadErr(err, "U64")
	case KindF32:
		v, err := binio.ReadF32(r)
		return F32Value(v), wrapReadErr(err, "F32")
	case KindVector2:
		v, err := binio.ReadVec2(r)
		return Vector2Value(v), wrapReadErr(err, "Vector2")
	case KindVector3:
		v, err := binio.ReadVec3(r)
		return Vector3Value(v), wrapReadErr(err, "Vector3")
	case KindVector4:
		v, err := binio.ReadVec4(r)
		return Vector4Value(v), wrapReadErr(err, "Vector4")
	case KindMatrix44:
		v, err := binio.ReadMat4(r)
		return Matrix44Value(v), wrapReadErr(err, "Matrix44")
	case KindColor:
		v, err := binio.ReadColor(r)
		return ColorValue(v), wrapReadErr(err, "Color")
	case KindString:
		v, err := binio.ReadLenString16(r)
		return StringValue(v), wrapReadErr(err, "String")
	case KindHash:
		v, err := binio.ReadU32(r)
		return HashValue(v), wrapReadErr(err, "Hash")
	case KindObjectLink:
		v, err := binio.ReadU32(r)
		return ObjectLinkValue(v), wrapReadErr(err, "ObjectLink")
	case KindWadChunkLink:
		v, err := binio.ReadU64(r)
		return WadChunkLinkValue(v), wrapReadErr(err, "WadChunkLink")
	case KindStruct, KindEmbedded:
		return readStruct(r, kind == KindEmbedded, legacy)
	case KindOptional:
		return readOptional(r, legacy)
	case KindContainer, KindUnorderedContainer:
		return readContainer(r, kind == KindUnorderedContainer, legacy)
	case KindMap:
		return readMap(r, legacy)
	default:
		return nil, &InvalidPropertyKindError{Tag: byte(kind), Legacy: legacy}
	}
}

func wrapReadErr(err error, kind string) error {
	if err == nil {
		return nil
	}
	return &binio.ReadError{Type: "bintree.Value", Field: kind, Err: err}
}

func readStruct(r io.Reader, embedded, legacy bool) (Value, error) {
	classHash, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.StructValue", Field: "class_hash", Err: err}
	}
	if classHash == 0 {
		return StructValue{IsEmbedded: embedded}, nil
	}
	structSize, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.StructValue", Field: "struct_size", Err: err}
	}
	cr := &countingReader{r: r}
	propCount, err := binio.ReadU16(cr)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.StructValue", Field: "prop_count", Err: err}
	}
	props := make([]Property, 0, propCount)
	for i := 0; i < int(propCount); i++ {
		p, err := readProperty(cr, legacy)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	if cr.n != int64(structSize) {
		return nil, &InvalidSizeError{Expected: int64(structSize), Got: cr.n}
	}
	return StructValue{IsEmbedded: embedded, ClassHash: classHash, Properties: props}, nil
}

func readOptional(r io.Reader, legacy bool) (Value, error) {
	innerTag, err := binio.ReadU8(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.OptionalValue", Field: "inner_kind", Err: err}
	}
	innerKind, err := UnpackKind(innerTag, legacy)
	if err != nil {
		return nil, err
	}
	if IsContainerKind(innerKind) {
		return nil, &InvalidNestingError{Kind: innerKind}
	}
	isSome, err := binio.ReadBool(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.OptionalValue", Field: "is_some", Err: err}
	}
	if !isSome {
		return OptionalValue{InnerKind: innerKind}, nil
	}
	inner, err := readValue(r, innerKind, legacy)
	if err != nil {
		return nil, err
	}
	return OptionalValue{InnerKind: innerKind, HasValue: true, Value: inner}, nil
}

func readContainer(r io.Reader, unordered, legacy bool) (Value, error) {
	elemTag, err := binio.ReadU8(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.ContainerValue", Field: "elem_kind", Err: err}
	}
	elemKind, err := UnpackKind(elemTag, legacy)
	if err != nil {
		return nil, err
	}
	totalSize, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.ContainerValue", Field: "total_size", Err: err}
	}
	cr := &countingReader{r: r}
	count, err := binio.ReadU32(cr)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.ContainerValue", Field: "count", Err: err}
	}
	elems := make([]Value, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := readValue(cr, elemKind, legacy)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if cr.n != int64(totalSize) {
		return nil, &InvalidSizeError{Expected: int64(totalSize), Got: cr.n}
	}
	return ContainerValue{Unordered: unordered, ElemKind: elemKind, Elements: elems}, nil
}

func readMap(r io.Reader, legacy bool) (Value, error) {
	keyTag, err := binio.ReadU8(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.MapValue", Field: "key_kind", Err: err}
	}
	keyKind, err := UnpackKind(keyTag, legacy)
	if err != nil {
		return nil, err
	}
	if !IsPrimitiveKind(keyKind) {
		return nil, &InvalidKeyTypeError{Kind: keyKind}
	}
	valTag, err := binio.ReadU8(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.MapValue", Field: "value_kind", Err: err}
	}
	valKind, err := UnpackKind(valTag, legacy)
	if err != nil {
		return nil, err
	}
	totalSize, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.MapValue", Field: "total_size", Err: err}
	}
	cr := &countingReader{r: r}
	count, err := binio.ReadU32(cr)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.MapValue", Field: "count", Err: err}
	}
	entries := make([]MapEntry, 0, count)
	for i := 0; i < int(count); i++ {
		k, err := readValue(cr, keyKind, legacy)
		if err != nil {
			return nil, err
		}
		v, err := readValue(cr, valKind, legacy)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: k, Value: v})
	}
	if cr.n != int64(totalSize) {
		return nil, &InvalidSizeError{Expected: int64(totalSize), Got: cr.n}
	}
	return MapValue{KeyKind: keyKind, ValueKind: valKind, Entries: entries}, nil
}

// writeValue always emits the modern (non-legacy) kind tag numbering:
// writing a legacy-tagged file is not supported (see
// LegacyKindPermutation).
func writeValue(w io.Writer, v Value) error {
	switch val := v.(type) {
	case NoneValue:
		return nil
	case BoolValue:
		return binio.WriteBool(w, bool(val))
	case BitBoolValue:
		return binio.WriteBool(w, bool(val))
	case I8Value:
		return binio.WriteI8(w, int8(val))
	case U8Value:
		return binio.WriteU8(w, uint8(val))
	case I16Value:
		return binio.WriteI16(w, int16(val))
	case U16Value:
		return binio.WriteU16(w, uint16(val))
	case I32Value:
		return binio.WriteI32(w, int32(val))
	case U32Value:
		return binio.WriteU32(w, uint32(val))
	case I64Value:
		return binio.WriteI64(w, int64(val))
	case U64Value:
		return binio.WriteU64(w, uint64(val))
	case F32Value:
		return binio.WriteF32(w, float32(val))
	case Vector2Value:
		return binio.WriteVec2(w, binio.Vec2(val))
	case Vector3Value:
		return binio.WriteVec3(w, binio.Vec3(val))
	case Vector4Value:
		return binio.WriteVec4(w, binio.Vec4(val))
	case Matrix44Value:
		return binio.WriteMat4(w, binio.Mat4(val))
	case ColorValue:
		return binio.WriteColor(w, binio.Color(val))
	case StringValue:
		return binio.WriteLenString16(w, string(val))
	case HashValue:
		return binio.WriteU32(w, uint32(val))
	case ObjectLinkValue:
		return binio.WriteU32(w, uint32(val))
	case WadChunkLinkValue:
		return binio.WriteU64(w, uint64(val))
	case StructValue:
		return writeStruct(w, val)
	case OptionalValue:
		return writeOptional(w, val)
	case ContainerValue:
		return writeContainer(w, val)
	case MapValue:
		return writeMap(w, val)
	default:
		panic("bintree: unreachable Value implementation")
	}
}

func writeStruct(w io.Writer, v StructValue) error {
	if err := binio.WriteU32(w, v.ClassHash); err != nil {
		return err
	}
	if v.ClassHash == 0 {
		return nil
	}
	if err := binio.WriteU32(w, uint32(propertiesSize(v.Properties)+2)); err != nil {
		return err
	}
	if err := binio.WriteU16(w, uint16(len(v.Properties))); err != nil {
		return err
	}
	for _, p := range v.Properties {
		if err := writeProperty(w, p); err != nil {
			return err
		}
	}
	return nil
}

func writeOptional(w io.Writer, v OptionalValue) error {
	if IsContainerKind(v.InnerKind) {
		return &InvalidNestingError{Kind: v.InnerKind}
	}
	if err := binio.WriteU8(w, PackKind(v.InnerKind)); err != nil {
		return err
	}
	if err := binio.WriteBool(w, v.HasValue); err != nil {
		return err
	}
	if v.HasValue {
		return writeValue(w, v.Value)
	}
	return nil
}

func writeContainer(w io.Writer, v ContainerValue) error {
	if len(v.Elements) == 0 && v.ElemKind == KindNone {
		return ErrEmptyContainer
	}
	for _, e := range v.Elements {
		if e.Kind() != v.ElemKind {
			return &MismatchedContainerTypesError{Expected: v.ElemKind, Got: e.Kind()}
		}
	}
	if err := binio.WriteU8(w, PackKind(v.ElemKind)); err != nil {
		return err
	}
	var elemsSize int64
	for _, e := range v.Elements {
		elemsSize += e.SizeNoHeader()
	}
	if err := binio.WriteU32(w, uint32(elemsSize+4)); err != nil { // +4 for count
		return err
	}
	if err := binio.WriteU32(w, uint32(len(v.Elements))); err != nil {
		return err
	}
	for _, e := range v.Elements {
		if err := writeValue(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeMap(w io.Writer, v MapValue) error {
	if len(v.Entries) == 0 && v.KeyKind == KindNone {
		return ErrEmptyContainer
	}
	if !IsPrimitiveKind(v.KeyKind) {
		return &InvalidKeyTypeError{Kind: v.KeyKind}
	}
	for _, e := range v.Entries {
		if e.Key.Kind() != v.KeyKind {
			return &MismatchedContainerTypesError{Expected: v.KeyKind, Got: e.Key.Kind()}
		}
		if e.Value.Kind() != v.ValueKind {
			return &MismatchedContainerTypesError{Expected: v.ValueKind, Got: e.Value.Kind()}
		}
	}
	if err := binio.WriteU8(w, PackKind(v.KeyKind)); err != nil {
		return err
	}
	if err := binio.WriteU8(w, PackKind(v.ValueKind)); err != nil {
		return err
	}
	var entriesSize int64
	for _, e := range v.Entries {
		entriesSize += e.Key.SizeNoHeader() + e.Value.SizeNoHeader()
	}
	if err := binio.WriteU32(w, uint32(entriesSize+4)); err != nil { // +4 for count
		return err
	}
	if err := binio.WriteU32(w, uint32(len(v.Entries))); err != nil {
		return err
	}
	for _, e := range v.Entries {
		if err := writeValue(w, e.Key); err != nil {
			return err
		}
		if err := writeValue(w, e.Value); err != nil {
			return err
		}
	}
	return nil
}
