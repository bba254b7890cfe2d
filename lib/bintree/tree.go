// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package bintree implements the BIN property-tree container format:
// a class-tagged object graph serialized as a flat, size-delimited
// byte stream ("PROP"/"PTCH" magic). See Tree.Read and Tree.Write.
package bintree

import (
	"io"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/binio"
)

var (
	magicProp = [4]byte{'P', 'R', 'O', 'P'}
	magicPtch = [4]byte{'P', 'T', 'C', 'H'}
)

// Object is one entry of a Tree: a class-tagged, path-addressed
// property bag. Properties preserve the order in which they were
// written or read.
type Object struct {
	PathHash   uint32
	ClassHash  uint32
	Properties []Property
}

func (o Object) bodySize() int64 {
	var size int64 = 4 + 2 // path_hash + prop_count
	for _, p := range o.Properties {
		size += p.SizeNoHeader()
	}
	return size
}

// Tree is a full BIN document: optional dependency list (files this
// tree's classes reference) and an ordered list of Objects. Objects
// preserve insertion/read order; the on-disk class table and body
// table both iterate objects in this same order.
type Tree struct {
	IsOverride   bool
	Version      uint32
	Dependencies []string
	Objects      []Object
}

// Read parses a Tree from r. legacy controls whether property kind
// tags are interpreted via LegacyKindPermutation.
func Read(r io.Reader, legacy bool) (*Tree, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, &binio.ReadError{Type: "bintree.Tree", Field: "magic", Err: err}
	}
	var isOverride bool
	switch magic {
	case magicProp:
		isOverride = false
	case magicPtch:
		isOverride = true
	default:
		return nil, &InvalidMagicError{Got: magic}
	}

	version, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.Tree", Field: "version", Err: err}
	}

	var deps []string
	if version >= 2 {
		depCount, err := binio.ReadU32(r)
		if err != nil {
			return nil, &binio.ReadError{Type: "bintree.Tree", Field: "dep_count", Err: err}
		}
		deps = make([]string, 0, depCount)
		for i := 0; i < int(depCount); i++ {
			dep, err := binio.ReadLenString16(r)
			if err != nil {
				return nil, &binio.ReadError{Type: "bintree.Tree", Field: "dependency", Err: err}
			}
			deps = append(deps, dep)
		}
	}

	objectCount, err := binio.ReadU32(r)
	if err != nil {
		return nil, &binio.ReadError{Type: "bintree.Tree", Field: "object_count", Err: err}
	}

	classHashes := make([]uint32, objectCount)
	for i := range classHashes {
		classHashes[i], err = binio.ReadU32(r)
		if err != nil {
			return nil, &binio.ReadError{Type: "bintree.Tree", Field: "class_hash", Err: err}
		}
	}

	objects := make([]Object, objectCount)
	for i := range objects {
		bodySize, err := binio.ReadU32(r)
		if err != nil {
			return nil, &binio.ReadError{Type: "bintree.Object", Field: "body_size", Err: err}
		}
		cr := &countingReader{r: r}
		pathHash, err := binio.ReadU32(cr)
		if err != nil {
			return nil, &binio.ReadError{Type: "bintree.Object", Field: "path_hash", Err: err}
		}
		propCount, err := binio.ReadU16(cr)
		if err != nil {
			return nil, &binio.ReadError{Type: "bintree.Object", Field: "prop_count", Err: err}
		}
		props := make([]Property, 0, propCount)
		for j := 0; j < int(propCount); j++ {
			p, err := readProperty(cr, legacy)
			if err != nil {
				return nil, err
			}
			props = append(props, p)
		}
		if cr.n != int64(bodySize) {
			return nil, &InvalidSizeError{Expected: int64(bodySize), Got: cr.n}
		}
		objects[i] = Object{PathHash: pathHash, ClassHash: classHashes[i], Properties: props}
	}

	if isOverride && version >= 3 {
		overrideCount, err := binio.ReadU32(r)
		if err != nil {
			return nil, &binio.ReadError{Type: "bintree.Tree", Field: "data_override_count", Err: err}
		}
		// Unused in this revision; the reference always emits zero and
		// this module does not implement the override entries
		// themselves.
		for i := uint32(0); i < overrideCount; i++ {
			if _, err := binio.ReadLenString16(r); err != nil {
				return nil, &binio.ReadError{Type: "bintree.Tree", Field: "data_override", Err: err}
			}
		}
	}

	return &Tree{
		IsOverride:   isOverride,
		Version:      version,
		Dependencies: deps,
		Objects:      objects,
	}, nil
}

// Write serializes t, always emitting version 3 with the dependency
// list enabled. Writing an override (PTCH) tree is not supported — see
// ErrOverrideWriteUnsupported.
func (t *Tree) Write(w io.Writer) error {
	if t.IsOverride {
		return ErrOverrideWriteUnsupported
	}
	if _, err := w.Write(magicProp[:]); err != nil {
		return err
	}
	if err := binio.WriteU32(w, 3); err != nil {
		return err
	}
	if err := binio.WriteU32(w, uint32(len(t.Dependencies))); err != nil {
		return err
	}
	for _, dep := range t.Dependencies {
		if err := binio.WriteLenString16(w, dep); err != nil {
			return err
		}
	}
	if err := binio.WriteU32(w, uint32(len(t.Objects))); err != nil {
		return err
	}
	for _, obj := range t.Objects {
		if err := binio.WriteU32(w, obj.ClassHash); err != nil {
			return err
		}
	}
	for _, obj := range t.Objects {
		if err := binio.WriteU32(w, uint32(obj.bodySize())); err != nil {
			return err
		}
		if err := binio.WriteU32(w, obj.PathHash); err != nil {
			return err
		}
		if err := binio.WriteU16(w, uint16(len(obj.Properties))); err != nil {
			return err
		}
		for _, p := range obj.Properties {
			if err := writeProperty(w, p); err != nil {
				return err
			}
		}
	}
	return nil
}
