// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/LeagueToolkit/league-toolkit-sub001/cmd/internal/cliutil"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/jsonutil"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/modpkg"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/profile"
	"github.com/LeagueToolkit/league-toolkit-sub001/lib/textui"
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

	argparser := &cobra.Command{
		Use:   "ltk-mod {[flags]|SUBCOMMAND}",
		Short: "Inspect and extract ModPkg mod packages",

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

	stopProfiling := profile.AddProfileFlags(argparser.PersistentFlags(), "profile-")

	argparser.AddCommand(newInfoCmd(&logLevel))
	argparser.AddCommand(newExtractCmd(&logLevel))

	err := argparser.ExecuteContext(context.Background())
	if stopErr := stopProfiling(); stopErr != nil && err == nil {
		err = stopErr
	}
	if err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}

func withLogger(ctx context.Context, lvl *logLevelFlag) context.Context {
	logger := logrus.New()
	logger.SetLevel(lvl.Level)
	return dlog.WithLogger(ctx, dlog.WrapLogrus(logger))
}

// infoOutput is the --json shape of `info`'s report, with path hashes
// rendered as hex strings instead of JSON numbers.
type infoOutput struct {
	Metadata modpkg.Metadata `json:"metadata"`
	Layers   []modpkg.Layer  `json:"layers"`
	Chunks   []infoChunk     `json:"chunks"`
}

type infoChunk struct {
	Path             string             `json:"path"`
	PathHash         jsonutil.HexUint64 `json:"path_hash"`
	UncompressedSize uint64             `json:"uncompressed_size"`
	Kind             string             `json:"kind"`
}

func newInfoCmd(logLevel *logLevelFlag) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info MODPKG_FILE",
		Short: "Print a ModPkg's metadata, layers, and chunk list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), logLevel)
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			m, err := modpkg.Mount(f)
			if err != nil {
				return err
			}
			dlog.Debugf(ctx, "mounted %s: %d chunks", args[0], len(m.Chunks()))

			if asJSON {
				chunks := make([]infoChunk, 0, len(m.Chunks()))
				for _, c := range m.Chunks() {
					chunks = append(chunks, infoChunk{
						Path:             c.Path,
						PathHash:         jsonutil.HexUint64(c.PathHash),
						UncompressedSize: c.UncompressedSize,
						Kind:             c.Kind.String(),
					})
				}
				return cliutil.WriteJSON(cmd.OutOrStdout(), infoOutput{
					Metadata: m.Metadata,
					Layers:   m.Layers,
					Chunks:   chunks,
				})
			}

			out := cmd.OutOrStdout()
			textui.Fprintf(out, "name:         %s\n", m.Metadata.Name)
			textui.Fprintf(out, "display name: %s\n", m.Metadata.DisplayName)
			textui.Fprintf(out, "version:      %s\n", m.Metadata.Version)
			for _, l := range m.Layers {
				textui.Fprintf(out, "layer: %-20s priority=%d\n", l.Name, l.Priority)
			}
			for _, c := range m.Chunks() {
				textui.Fprintf(out, "chunk: %-50s %10s %s\n", c.Path, textui.Humanized(c.UncompressedSize), c.Kind)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print metadata/layers/chunks as JSON instead of a table")
	return cmd
}

func newExtractCmd(logLevel *logLevelFlag) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "extract MODPKG_FILE",
		Short: "Extract every chunk of a ModPkg to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), logLevel)
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			m, err := modpkg.Mount(f)
			if err != nil {
				return err
			}
			return m.ExtractAll(ctx, outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "output", ".", "directory to extract into")
	return cmd
}
