// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package bintree

// TreeBuilder assembles a Tree in memory, preserving object insertion
// order (mirroring the ordering guarantee that object iteration for
// writing matches the order objects were added).
type TreeBuilder struct {
	dependencies []string
	objects      []Object
}

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

func (b *TreeBuilder) AddDependency(path string) *TreeBuilder {
	b.dependencies = append(b.dependencies, path)
	return b
}

func (b *TreeBuilder) AddObject(o *ObjectBuilder) *TreeBuilder {
	b.objects = append(b.objects, o.Build())
	return b
}

func (b *TreeBuilder) Build() *Tree {
	return &Tree{
		Version:      3,
		Dependencies: b.dependencies,
		Objects:      b.objects,
	}
}

// ObjectBuilder assembles one Object, preserving property insertion
// order.
type ObjectBuilder struct {
	pathHash, classHash uint32
	properties          []Property
}

func NewObjectBuilder(pathHash, classHash uint32) *ObjectBuilder {
	return &ObjectBuilder{pathHash: pathHash, classHash: classHash}
}

func (b *ObjectBuilder) AddProperty(nameHash uint32, v Value) *ObjectBuilder {
	b.properties = append(b.properties, Property{NameHash: nameHash, Value: v})
	return b
}

func (b *ObjectBuilder) Build() Object {
	return Object{
		PathHash:   b.pathHash,
		ClassHash:  b.classHash,
		Properties: b.properties,
	}
}
