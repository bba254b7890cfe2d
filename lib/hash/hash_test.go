// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/hash"
)

func TestLayerNameCaseInsensitive(t *testing.T) {
	t.Parallel()
	assert.Equal(t, hash.LayerName("Base"), hash.LayerName("base"))
	assert.Equal(t, hash.LayerName("base"), hash.LayerName("BASE"))
}

func TestChunkPathCaseInsensitive(t *testing.T) {
	t.Parallel()
	assert.Equal(t, hash.ChunkPath("Assets/Thing.txt"), hash.ChunkPath("assets/thing.txt"))
}

func TestBinNameKnownValue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint32(0xafd071e5), hash.BinName("test"))
	assert.Equal(t, uint32(0xafd071e5), hash.BinName("TEST"))
}

func TestElfKnownValue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint32(248446350), hash.Elf("jdfgsdhfsdfsd 6445dsfsd7fg/*/+bfjsdgf%$^"))
}

func TestMetadataChunkPathHash(t *testing.T) {
	t.Parallel()
	// Sanity check that the well-known metadata chunk path hashes to a
	// stable, non-zero value; package modpkg hashes its metadata chunk
	// path through this same function, and no exact constant is pinned.
	assert.NotZero(t, hash.ChunkPath("metadata.msgpack"))
}
