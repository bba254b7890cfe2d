// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg

// LicenseKind tags the shape of a Metadata's license field.
type LicenseKind byte

const (
	LicenseNone LicenseKind = iota
	LicenseSpdx
	LicenseCustom
)

// License is a mod's declared license: either absent, an SPDX
// identifier, or a custom name/URL pair.
type License struct {
	Kind   LicenseKind `msgpack:"kind"`
	SpdxID string      `msgpack:"spdx_id,omitempty"`
	Name   string      `msgpack:"name,omitempty"`
	URL    string      `msgpack:"url,omitempty"`
}

// Author is one credited contributor. Role is optional ("artist",
// "porter", "maintainer", ...).
type Author struct {
	Name string `msgpack:"name"`
	Role string `msgpack:"role,omitempty"`
}

func validateLicenseKind(k LicenseKind) error {
	switch k {
	case LicenseNone, LicenseSpdx, LicenseCustom:
		return nil
	default:
		return &InvalidLicenseTypeError{Got: byte(k)}
	}
}

// Metadata is the MessagePack-encoded document stored in the
// well-known metadata chunk (see MetadataPathHash).
type Metadata struct {
	Name        string   `msgpack:"name"`
	DisplayName string   `msgpack:"display_name"`
	Description string   `msgpack:"description,omitempty"`
	Version     string   `msgpack:"version"`
	Distributor string   `msgpack:"distributor,omitempty"`
	Authors     []Author `msgpack:"authors"`
	License     License  `msgpack:"license"`
}
