// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package wad_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/wad"
)

func TestHashtableResolve(t *testing.T) {
	t.Parallel()
	table, err := wad.LoadHashtable(strings.NewReader(
		"10 data/characters/ahri/ahri.bin\n" +
			"\n" +
			"  20\tdata/characters/ahri/ahri.dds\n",
	))
	require.NoError(t, err)

	path, ok := table.Resolve(0x10)
	require.True(t, ok)
	assert.Equal(t, "data/characters/ahri/ahri.bin", path)

	path, ok = table.Resolve(0x20)
	require.True(t, ok)
	assert.Equal(t, "data/characters/ahri/ahri.dds", path)

	assert.Equal(t, "0xdead", table.ResolveOrDefault(0xdead))
}
