// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bintree

import (
	"errors"
	"fmt"
)

// InvalidMagicError is returned when a tree's 4-byte magic is neither
// "PROP" nor "PTCH".
type InvalidMagicError struct {
	Got [4]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("bintree: invalid magic %q, expected \"PROP\" or \"PTCH\"", e.Got[:])
}

// InvalidPropertyKindError is returned when a tag byte does not
// correspond to any known Kind (under the selected legacy/modern
// numbering).
type InvalidPropertyKindError struct {
	Tag    byte
	Legacy bool
}

func (e *InvalidPropertyKindError) Error() string {
	return fmt.Sprintf("bintree: invalid property kind tag %#02x (legacy=%v)", e.Tag, e.Legacy)
}

// InvalidNestingError is returned when an Optional's inner_kind is
// itself a container Kind.
type InvalidNestingError struct {
	Kind Kind
}

func (e *InvalidNestingError) Error() string {
	return fmt.Sprintf("bintree: invalid nesting: Optional may not wrap %v", e.Kind)
}

// InvalidKeyTypeError is returned when a Map's key_kind is not a
// primitive Kind.
type InvalidKeyTypeError struct {
	Kind Kind
}

func (e *InvalidKeyTypeError) Error() string {
	return fmt.Sprintf("bintree: invalid map key type: %v is not a primitive kind", e.Kind)
}

// InvalidSizeError is returned when a declared size field
// (body_size, struct_size, or a container/map's total_size) does not
// match the number of bytes actually consumed decoding it.
type InvalidSizeError struct {
	Expected, Got int64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("bintree: invalid size: expected %d bytes, consumed %d", e.Expected, e.Got)
}

// MismatchedContainerTypesError is returned when a Container or
// UnorderedContainer's elements don't all report elem_kind, or a
// Map's pairs don't all report (key_kind, value_kind).
type MismatchedContainerTypesError struct {
	Expected, Got Kind
}

func (e *MismatchedContainerTypesError) Error() string {
	return fmt.Sprintf("bintree: mismatched container element types: expected %v, got %v", e.Expected, e.Got)
}

// ErrOverrideWriteUnsupported is returned by Tree.Write for a tree
// with IsOverride set: the override-bin (PTCH) write path is
// unimplemented in the reference this module is grounded on, and this
// module deliberately does not invent a format for it.
var ErrOverrideWriteUnsupported = errors.New("bintree: writing override (PTCH) trees is not supported")

// ErrEmptyContainer is returned where a Kind is required to type an
// empty Container/UnorderedContainer/Map but none was supplied.
var ErrEmptyContainer = errors.New("bintree: empty container requires an explicit element kind")
