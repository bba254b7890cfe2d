// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bintree_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/bintree"
)

func roundTripValue(t *testing.T, v bintree.Value) bintree.Value {
	t.Helper()
	prop := bintree.Property{NameHash: 0x42, Value: v}

	var buf bytes.Buffer
	obj := bintree.NewObjectBuilder(1, 2)
	obj.AddProperty(prop.NameHash, prop.Value)
	tree := bintree.NewTreeBuilder().AddObject(obj).Build()
	require.NoError(t, tree.Write(&buf))

	got, err := bintree.Read(&buf, false)
	require.NoError(t, err)
	require.Len(t, got.Objects[0].Properties, 1)
	return got.Objects[0].Properties[0].Value
}

func TestScalarValueRoundTrip(t *testing.T) {
	t.Parallel()
	assert.Equal(t, bintree.I32Value(-7), roundTripValue(t, bintree.I32Value(-7)))
	assert.Equal(t, bintree.U64Value(0xFFFFFFFFFFFFFFFF), roundTripValue(t, bintree.U64Value(0xFFFFFFFFFFFFFFFF)))
	assert.Equal(t, bintree.StringValue("hello"), roundTripValue(t, bintree.StringValue("hello")))
	assert.Equal(t, bintree.BoolValue(true), roundTripValue(t, bintree.BoolValue(true)))
}

func TestOptionalRoundTrip(t *testing.T) {
	t.Parallel()
	none := bintree.OptionalValue{InnerKind: bintree.KindI32}
	got := roundTripValue(t, none)
	assert.Equal(t, none, got)

	some := bintree.OptionalValue{InnerKind: bintree.KindI32, HasValue: true, Value: bintree.I32Value(5)}
	got = roundTripValue(t, some)
	assert.Equal(t, some, got)
}

func TestEmptyContainerRequiresElemKind(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	obj := bintree.NewObjectBuilder(1, 2)
	obj.AddProperty(1, bintree.ContainerValue{})
	tree := bintree.NewTreeBuilder().AddObject(obj).Build()
	assert.ErrorIs(t, tree.Write(&buf), bintree.ErrEmptyContainer)
}

func TestMismatchedContainerElementRejected(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	obj := bintree.NewObjectBuilder(1, 2)
	obj.AddProperty(1, bintree.ContainerValue{
		ElemKind: bintree.KindI32,
		Elements: []bintree.Value{bintree.I32Value(1), bintree.StringValue("oops")},
	})
	tree := bintree.NewTreeBuilder().AddObject(obj).Build()

	err := tree.Write(&buf)
	var mismatch *bintree.MismatchedContainerTypesError
	require.ErrorAs(t, err, &mismatch)
}

func TestWriteRejectsInvalidOptionalNesting(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	obj := bintree.NewObjectBuilder(1, 2)
	obj.AddProperty(1, bintree.OptionalValue{InnerKind: bintree.KindContainer})
	tree := bintree.NewTreeBuilder().AddObject(obj).Build()

	err := tree.Write(&buf)
	var nesting *bintree.InvalidNestingError
	require.ErrorAs(t, err, &nesting)
}

func TestWriteRejectsNonPrimitiveMapKeyType(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	obj := bintree.NewObjectBuilder(1, 2)
	obj.AddProperty(1, bintree.MapValue{KeyKind: bintree.KindMap, ValueKind: bintree.KindI32})
	tree := bintree.NewTreeBuilder().AddObject(obj).Build()

	err := tree.Write(&buf)
	var keyType *bintree.InvalidKeyTypeError
	require.ErrorAs(t, err, &keyType)
}
