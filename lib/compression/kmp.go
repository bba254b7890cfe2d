// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compression

// buildKMPTable and findFirst implement a Knuth-Morris-Pratt search
// over an in-memory byte slice, adapted from the streaming-reader
// version used elsewhere in this module's ambient stack: the
// ZstdMulti prefix is read into memory as a whole (its length is
// known up front from compressed_size), so there is no need for the
// io.ByteReader-driven streaming form.
func buildKMPTable(substr []byte) []int {
	table := make([]int, len(substr))
	for j := range table {
		if j == 0 {
			continue
		}
		val := table[j-1]
		for val > 0 && substr[j] != substr[val] {
			val = table[val-1]
		}
		if substr[val] == substr[j] {
			val++
		}
		table[j] = val
	}
	return table
}

// findFirst returns the starting index of the first occurrence of
// substr in data, or -1 if it does not occur.
func findFirst(data, substr []byte) int {
	if len(substr) == 0 {
		return 0
	}
	table := buildKMPTable(substr)
	matchLen := 0
	for i, b := range data {
		for matchLen > 0 && b != substr[matchLen] {
			matchLen = table[matchLen-1]
		}
		if b == substr[matchLen] {
			matchLen++
			if matchLen == len(substr) {
				return i - matchLen + 1
			}
		}
	}
	return -1
}
