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
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
)

func TestTreeRoundTripNestedContainers(t *testing.T) {
	t.Parallel()

	obj := bintree.NewObjectBuilder(0x11223344, 0xAABBCCDD).
		AddProperty(0x1, bintree.ContainerValue{
			ElemKind: bintree.KindI32,
			Elements: []bintree.Value{
				bintree.I32Value(1), bintree.I32Value(2), bintree.I32Value(3), bintree.I32Value(-7),
			},
		}).
		AddProperty(0x2, bintree.MapValue{
			KeyKind:   bintree.KindHash,
			ValueKind: bintree.KindString,
			Entries: []bintree.MapEntry{
				{Key: bintree.HashValue(0xDEAD), Value: bintree.StringValue("x")},
				{Key: bintree.HashValue(0xBEEF), Value: bintree.StringValue("yz")},
			},
		})
	tree := bintree.NewTreeBuilder().AddObject(obj).Build()

	var buf bytes.Buffer
	require.NoError(t, tree.Write(&buf))

	got, err := bintree.Read(&buf, false)
	require.NoError(t, err)

	require.Len(t, got.Objects, 1)
	assert.Equal(t, uint32(0x11223344), got.Objects[0].PathHash)
	assert.Equal(t, uint32(0xAABBCCDD), got.Objects[0].ClassHash)
	require.Len(t, got.Objects[0].Properties, 2)

	container, ok := got.Objects[0].Properties[0].Value.(bintree.ContainerValue)
	require.True(t, ok)
	assert.Equal(t, bintree.KindI32, container.ElemKind)
	require.Len(t, container.Elements, 4)
	assert.Equal(t, bintree.I32Value(-7), container.Elements[3])

	m, ok := got.Objects[0].Properties[1].Value.(bintree.MapValue)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, bintree.StringValue("yz"), m.Entries[1].Value)
}

func TestTreeRejectsInvalidOptionalNesting(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.WriteByte(bintree.PackKind(bintree.KindContainer)) // inner_kind
	buf.WriteByte(1)                                       // is_some (never read: nesting check fails first)

	// Wrap the Optional payload above in a full property (name_hash +
	// kind byte), then in a minimal one-object tree.
	var prop bytes.Buffer
	require.NoError(t, binio.WriteU32(&prop, 0xAAAA))
	prop.WriteByte(bintree.PackKind(bintree.KindOptional))
	prop.Write(buf.Bytes())

	tree := bytes.NewBuffer(nil)
	tree.Write([]byte("PROP"))
	require.NoError(t, binio.WriteU32(tree, 3))
	require.NoError(t, binio.WriteU32(tree, 0)) // dep_count
	require.NoError(t, binio.WriteU32(tree, 1)) // object_count
	require.NoError(t, binio.WriteU32(tree, 0xCAFE))

	var body bytes.Buffer
	require.NoError(t, binio.WriteU32(&body, 0xF00D)) // path_hash
	require.NoError(t, binio.WriteU16(&body, 1))       // prop_count
	body.Write(prop.Bytes())

	require.NoError(t, binio.WriteU32(tree, uint32(body.Len())))
	tree.Write(body.Bytes())

	_, err := bintree.Read(tree, false)
	var nesting *bintree.InvalidNestingError
	require.ErrorAs(t, err, &nesting)
	assert.Equal(t, bintree.KindContainer, nesting.Kind)
}

func TestMapRejectsNonPrimitiveKeyType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.WriteByte(bintree.PackKind(bintree.KindMap)) // key_kind = Map, invalid
	buf.WriteByte(bintree.PackKind(bintree.KindString))
	require.NoError(t, binio.WriteU32(&buf, 4))
	require.NoError(t, binio.WriteU32(&buf, 0))

	var prop bytes.Buffer
	require.NoError(t, binio.WriteU32(&prop, 0x1))
	prop.WriteByte(bintree.PackKind(bintree.KindMap))
	prop.Write(buf.Bytes())

	tree := bytes.NewBuffer(nil)
	tree.Write([]byte("PROP"))
	require.NoError(t, binio.WriteU32(tree, 3))
	require.NoError(t, binio.WriteU32(tree, 0))
	require.NoError(t, binio.WriteU32(tree, 1))
	require.NoError(t, binio.WriteU32(tree, 0))

	var body bytes.Buffer
	require.NoError(t, binio.WriteU32(&body, 0))
	require.NoError(t, binio.WriteU16(&body, 1))
	body.Write(prop.Bytes())
	require.NoError(t, binio.WriteU32(tree, uint32(body.Len())))
	tree.Write(body.Bytes())

	_, err := bintree.Read(tree, false)
	var keyErr *bintree.InvalidKeyTypeError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, bintree.KindMap, keyErr.Kind)
}

func TestStructSizeMismatchRejected(t *testing.T) {
	t.Parallel()

	var structBody bytes.Buffer
	require.NoError(t, binio.WriteU16(&structBody, 0)) // prop_count = 0, no properties

	var val bytes.Buffer
	require.NoError(t, binio.WriteU32(&val, 0x1234)) // class_hash
	require.NoError(t, binio.WriteU32(&val, 99))     // struct_size: deliberately wrong
	val.Write(structBody.Bytes())

	var prop bytes.Buffer
	require.NoError(t, binio.WriteU32(&prop, 0x1))
	prop.WriteByte(bintree.PackKind(bintree.KindStruct))
	prop.Write(val.Bytes())

	tree := bytes.NewBuffer(nil)
	tree.Write([]byte("PROP"))
	require.NoError(t, binio.WriteU32(tree, 3))
	require.NoError(t, binio.WriteU32(tree, 0))
	require.NoError(t, binio.WriteU32(tree, 1))
	require.NoError(t, binio.WriteU32(tree, 0))

	var body bytes.Buffer
	require.NoError(t, binio.WriteU32(&body, 0))
	require.NoError(t, binio.WriteU16(&body, 1))
	body.Write(prop.Bytes())
	require.NoError(t, binio.WriteU32(tree, uint32(body.Len())))
	tree.Write(body.Bytes())

	_, err := bintree.Read(tree, false)
	var sizeErr *bintree.InvalidSizeError
	require.ErrorAs(t, err, &sizeErr)
}

func TestWriteOverrideTreeUnsupported(t *testing.T) {
	t.Parallel()
	tree := &bintree.Tree{IsOverride: true}
	assert.ErrorIs(t, tree.Write(&bytes.Buffer{}), bintree.ErrOverrideWriteUnsupported)
}
