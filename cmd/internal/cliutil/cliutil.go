// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package cliutil holds the small cobra conveniences the teacher
// pulled from github.com/datawire/ocibuild/pkg/cliutil. That
// dependency has nothing else for this module to exercise, so only
// the handful of helpers actually used by cmd/ltk-wad and cmd/ltk-mod
// are reimplemented here, in the same idiom.
package cliutil

import (
	"bufio"
	"fmt"
	"io"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/spf13/cobra"
)

// OnlySubcommands is a cobra.PositionalArgs that rejects any
// positional argument, for a command whose entire purpose is to
// dispatch to subcommands.
func OnlySubcommands(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

// WrapPositionalArgs adapts fn to also print the command's usage
// string on validation failure, matching cobra's own convention for
// RunE but applied to Args.
func WrapPositionalArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
		}
		return nil
	}
}

// RunSubcommands is a RunE for a command with no behavior of its own
// beyond listing/dispatching subcommands (cobra already dispatches;
// reaching this RunE means no subcommand matched).
func RunSubcommands(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// FlagErrorFunc prints flag-parsing errors alongside usage, suitable
// for cobra.Command.SetFlagErrorFunc.
func FlagErrorFunc(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
}

// HelpTemplate is the template used by both CLI entry points' root
// commands.
const HelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

// WriteJSON writes obj to w as indented JSON via lowmemjson, for a
// command's `--json` output mode. Mirrors the teacher's
// cmd/btrfs-rec/util.go writeJSONFile.
func WriteJSON(w io.Writer, obj any) (err error) {
	buffer := bufio.NewWriter(w)
	defer func() {
		if ferr := buffer.Flush(); err == nil && ferr != nil {
			err = ferr
		}
	}()
	cfg := lowmemjson.ReEncoderConfig{
		Indent:                "\t",
		ForceTrailingNewlines: true,
	}
	cfg.Out = buffer
	return lowmemjson.Encode(&cfg, obj)
}
