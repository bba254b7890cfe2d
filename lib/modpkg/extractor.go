// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package modpkg

import (
	"context"
	"os"
	"path/filepath"

	"github.com/LeagueToolkit/league-toolkit-sub001/lib/streamio"
)

// ExtractOption configures ExtractAll.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	expected map[uint64]Compression
}

// WithExpectedCompression asserts that the chunk identified by
// pathHash must be encoded with expected. ExtractAll fails
// UnexpectedCompressionTypeError for that chunk if the table of
// contents instead records a different codec, rather than silently
// decoding it with whatever codec is actually present.
func WithExpectedCompression(pathHash uint64, expected Compression) ExtractOption {
	return func(c *extractConfig) {
		if c.expected == nil {
			c.expected = make(map[uint64]Compression)
		}
		c.expected[pathHash] = expected
	}
}

// ExtractAll decodes every non-metadata chunk and writes it to
// outputDir, joined with the chunk's logical path. Parent directories
// are created as needed. An error on any one chunk aborts the
// operation; files already written are left in place.
func (m *Modpkg) ExtractAll(ctx context.Context, outputDir string, opts ...ExtractOption) error {
	var cfg extractConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, c := range m.Chunks() {
		if expected, ok := cfg.expected[c.PathHash]; ok && c.Kind != expected {
			return &UnexpectedCompressionTypeError{Chunk: c.PathHash, Expected: expected, Actual: c.Kind}
		}
		if err := m.extractChunk(ctx, outputDir, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Modpkg) extractChunk(ctx context.Context, outputDir string, c Chunk) error {
	dec, err := m.decoderFor(c)
	if err != nil {
		return err
	}
	defer dec.Close()

	target := filepath.Join(outputDir, filepath.FromSlash(c.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = streamio.CopyWithProgress(ctx, f, dec, int64(c.UncompressedSize))
	return err
}
