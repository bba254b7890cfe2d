// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg

import (
	"io"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/hash"
)

// BaseLayerName is the mandatory layer every ModPkg must declare.
const BaseLayerName = "base"

// Layer is one named overlay. Higher Priority shadows lower Priority
// at apply time; layer order in the table is insertion order, not
// priority order.
type Layer struct {
	Name     string
	NameHash uint64
	Priority int32
}

func readLayer(r io.Reader) (Layer, error) {
	name, err := binio.ReadLenString16(r)
	if err != nil {
		return Layer{}, &binio.ReadError{Type: "modpkg.Layer", Field: "name", Err: err}
	}
	priority, err := binio.ReadI32(r)
	if err != nil {
		return Layer{}, &binio.ReadError{Type: "modpkg.Layer", Field: "priority", Err: err}
	}
	return Layer{Name: name, NameHash: hash.LayerName(name), Priority: priority}, nil
}

func writeLayer(w io.Writer, l Layer) error {
	if err := binio.WriteLenString16(w, l.Name); err != nil {
		return err
	}
	return binio.WriteI32(w, l.Priority)
}
