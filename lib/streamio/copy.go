// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package streamio implements utilities for working with streaming
// I/O.
package streamio

import (
	"context"
	"io"
	"time"

	"github.com/datawire/dlib/dlog"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/textui"
)

// CopyWithProgress is like io.Copy, but logs progress through ctx via
// textui.Progress as it goes, and aborts early once ctx is canceled.
//
// total may be zero if the size of src isn't known up front; in that
// case the reported percentage is always pinned at the denominator of
// whatever has been copied so far.
func CopyWithProgress(ctx context.Context, dst io.Writer, src io.Reader, total int64) (int64, error) {
	progress := textui.Portion[int64]{D: total}
	unknownTotal := total == 0
	reporter := textui.NewProgress[textui.Portion[int64]](ctx, dlog.LogLevelInfo, textui.Tunable(1*time.Second))
	defer reporter.Done()
	reporter.Set(progress)

	var written int64
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n, rErr := src.Read(buf)
		if n > 0 {
			wn, wErr := dst.Write(buf[:n])
			written += int64(wn)
			progress.N = written
			if unknownTotal {
				progress.D = progress.N
			}
			reporter.Set(progress)
			if wErr != nil {
				return written, wErr
			}
			if wn != n {
				return written, io.ErrShortWrite
			}
		}
		if rErr != nil {
			if rErr == io.EOF {
				return written, nil
			}
			return written, rErr
		}
	}
}
