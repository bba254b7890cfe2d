// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bintree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/bintree"
)

func TestUnpackKindModern(t *testing.T) {
	t.Parallel()
	k, err := bintree.UnpackKind(bintree.PackKind(bintree.KindMap), false)
	require.NoError(t, err)
	assert.Equal(t, bintree.KindMap, k)
}

func TestUnpackKindLegacy(t *testing.T) {
	t.Parallel()
	k, err := bintree.UnpackKind(19, true)
	require.NoError(t, err)
	assert.Equal(t, bintree.KindStruct, k)
}

func TestUnpackKindInvalid(t *testing.T) {
	t.Parallel()
	_, err := bintree.UnpackKind(0xFF, false)
	var invalid *bintree.InvalidPropertyKindError
	assert.ErrorAs(t, err, &invalid)
}

func TestIsContainerAndPrimitiveKind(t *testing.T) {
	t.Parallel()
	assert.True(t, bintree.IsContainerKind(bintree.KindOptional))
	assert.True(t, bintree.IsContainerKind(bintree.KindMap))
	assert.False(t, bintree.IsContainerKind(bintree.KindString))

	assert.True(t, bintree.IsPrimitiveKind(bintree.KindHash))
	assert.False(t, bintree.IsPrimitiveKind(bintree.KindContainer))
	assert.False(t, bintree.IsPrimitiveKind(bintree.KindNone))
}
