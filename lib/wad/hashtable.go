// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package wad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Hashtable is an immutable path_hash -> human-readable-path resolver,
// loaded once from a "hash path" text table (one entry per line, a
// hex hash, whitespace, then the path) and safe to share by reference
// across concurrently-open mounts, per the shared-resource policy.
type Hashtable struct {
	paths map[uint64]string
}

// LoadHashtable parses r as a whitespace-separated "hash path" table,
// one entry per line. Blank lines are skipped.
func LoadHashtable(r io.Reader) (*Hashtable, error) {
	paths := make(map[uint64]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		hexHash, path, ok := strings.Cut(line, " ")
		if !ok {
			hexHash, path, ok = strings.Cut(line, "\t")
			if !ok {
				return nil, fmt.Errorf("wad: hashtable line %d: missing whitespace separator", lineNo)
			}
		}
		hexHash = strings.TrimSpace(hexHash)
		path = strings.TrimSpace(path)
		hash, err := strconv.ParseUint(hexHash, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("wad: hashtable line %d: %w", lineNo, err)
		}
		paths[hash] = path
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Hashtable{paths: paths}, nil
}

// Resolve returns the human-readable path for hash, if known.
func (h *Hashtable) Resolve(hash uint64) (string, bool) {
	path, ok := h.paths[hash]
	return path, ok
}

// ResolveOrDefault returns the human-readable path for hash, falling
// back to "0x<hex>" for unknown hashes.
func (h *Hashtable) ResolveOrDefault(hash uint64) string {
	if path, ok := h.paths[hash]; ok {
		return path
	}
	return fmt.Sprintf("0x%x", hash)
}
