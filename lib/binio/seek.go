// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package binio

import "io"

// SeekMeasure runs op against s and reports how many bytes the
// stream's cursor advanced (or, if op seeks backwards, the signed
// delta). The position is sampled before and after op regardless of
// whether op returns an error, but a seek error querying the
// position is returned immediately without running op.
func SeekMeasure[T any](s io.Seeker, op func() (T, error)) (int64, T, error) {
	var zero T
	before, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, zero, err
	}
	result, opErr := op()
	after, posErr := s.Seek(0, io.SeekCurrent)
	if posErr != nil {
		if opErr != nil {
			return 0, result, opErr
		}
		return 0, zero, posErr
	}
	if opErr != nil {
		return after - before, result, opErr
	}
	return after - before, result, nil
}

// SeekWindow seeks s to offset, runs op, then restores the stream's
// original cursor position — whether or not op returned an error —
// and propagates op's error unchanged. This is the back-patching
// primitive the WAD/ModPkg builders use to rewrite a header or table
// of contents after streaming the body that follows it.
func SeekWindow[T any](s io.Seeker, offset int64, op func() (T, error)) (T, error) {
	var zero T
	orig, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return zero, err
	}
	if _, err := s.Seek(offset, io.SeekStart); err != nil {
		return zero, err
	}
	result, opErr := op()
	if _, err := s.Seek(orig, io.SeekStart); err != nil {
		if opErr != nil {
			return result, opErr
		}
		return zero, err
	}
	return result, opErr
}
