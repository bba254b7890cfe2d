// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/LeagueToolkit/league-toolkit-sub001/cmd/internal/cliutil"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/jsonutil"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/profile"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/textui"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/wad"
)

type logLevelFlag struct {
	logrus.Level
}

func (lvl *logLevelFlag) Type() string { return "loglevel" }
func (lvl *logLevelFlag) Set(str string) error {
	var err error
	lvl.Level, err = logrus.ParseLevel(str)
	return err
}

var _ pflag.Value = (*logLevelFlag)(nil)

func main() {
	logLevel := logLevelFlag{Level: logrus.InfoLevel}
	var hashtablePath string

	argparser := &cobra.Command{
		Use:   "ltk-wad {[flags]|SUBCOMMAND}",
		Short: "Inspect and extract League of Legends WAD archives",

		Args: cliutil.WrapPositionalArgs(cliutil.OnlySubcommands),
		RunE: cliutil.RunSubcommands,

		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.PersistentFlags().Var(&logLevel, "verbosity", "set the verbosity")
	argparser.PersistentFlags().StringVar(&hashtablePath, "hashtable", "",
		"path to a `hashtable` file mapping hex path hashes to human-readable paths")

	stopProfiling := profile.AddProfileFlags(argparser.PersistentFlags(), "profile-")

	argparser.AddCommand(newInfoCmd(&logLevel, &hashtablePath))
	argparser.AddCommand(newExtractCmd(&logLevel, &hashtablePath))

	err := argparser.ExecuteContext(context.Background())
	if stopErr := stopProfiling(); stopErr != nil && err == nil {
		err = stopErr
	}
	if err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}

func mountFromArgs(ctx context.Context, path, hashtablePath string) (*wad.Wad, *wad.Hashtable, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := wad.Mount(f)
	if err != nil {
		f.Close()
		return nil, nil, nil, err
	}
	var table *wad.Hashtable
	if hashtablePath != "" {
		hf, err := os.Open(hashtablePath)
		if err != nil {
			f.Close()
			return nil, nil, nil, err
		}
		defer hf.Close()
		table, err = wad.LoadHashtable(hf)
		if err != nil {
			f.Close()
			return nil, nil, nil, err
		}
	}
	dlog.Debugf(ctx, "mounted %s: %d chunks", path, len(m.Chunks()))
	return m, table, f, nil
}

// infoEntry is the --json shape of one chunk listing, with the
// path_hash rendered as a hex string instead of a JSON number.
type infoEntry struct {
	PathHash         jsonutil.HexUint64 `json:"path_hash"`
	Path             string             `json:"path,omitempty"`
	UncompressedSize uint32             `json:"uncompressed_size"`
	Kind             string             `json:"kind"`
}

func newInfoCmd(logLevel *logLevelFlag, hashtablePath *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info WAD_FILE",
		Short: "List the chunks in a WAD archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), logLevel)
			m, table, f, err := mountFromArgs(ctx, args[0], *hashtablePath)
			if err != nil {
				return err
			}
			defer f.Close()

			if asJSON {
				entries := make([]infoEntry, 0, len(m.Chunks()))
				for _, c := range m.Chunks() {
					var resolved string
					if table != nil {
						resolved = table.ResolveOrDefault(c.PathHash)
					}
					entries = append(entries, infoEntry{
						PathHash:         jsonutil.HexUint64(c.PathHash),
						Path:             resolved,
						UncompressedSize: c.UncompressedSize,
						Kind:             c.Kind.String(),
					})
				}
				return cliutil.WriteJSON(cmd.OutOrStdout(), entries)
			}

			for _, c := range m.Chunks() {
				path := fmt.Sprintf("%#016x", c.PathHash)
				if table != nil {
					path = table.ResolveOrDefault(c.PathHash)
				}
				textui.Fprintf(cmd.OutOrStdout(), "%-60s %10s %s\n",
					path, textui.Humanized(c.UncompressedSize), c.Kind)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the chunk list as JSON instead of a table")
	return cmd
}

func newExtractCmd(logLevel *logLevelFlag, hashtablePath *string) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "extract WAD_FILE",
		Short: "Decode every chunk of a WAD archive to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), logLevel)
			m, table, f, err := mountFromArgs(ctx, args[0], *hashtablePath)
			if err != nil {
				return err
			}
			defer f.Close()

			for _, c := range m.Chunks() {
				path := fmt.Sprintf("%#016x.bin", c.PathHash)
				if table != nil {
					if resolved, ok := table.Resolve(c.PathHash); ok {
						path = resolved
					}
				}
				dec, err := m.Decoder(c.PathHash)
				if err != nil {
					return err
				}
				target := filepath.Join(outDir, filepath.FromSlash(path))
				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					dec.Close()
					return err
				}
				out, err := os.Create(target)
				if err != nil {
					dec.Close()
					return err
				}
				_, copyErr := io.Copy(out, dec)
				dec.Close()
				out.Close()
				if copyErr != nil {
					return copyErr
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "output", ".", "directory to extract into")
	return cmd
}

func withLogger(ctx context.Context, lvl *logLevelFlag) context.Context {
	logger := logrus.New()
	logger.SetLevel(lvl.Level)
	return dlog.WithLogger(ctx, dlog.WrapLogrus(logger))
}
