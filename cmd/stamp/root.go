// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/stamp/cmd/stamp/commands"
	"github.com/walteh/stamp/cmd/stamp/opts"
	"github.com/walteh/stamp/pkg/log"
)

// newRootCmd builds the command tree writing to the given streams
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newRootCmdWithOpts(&opts.RootOpts{Stdout: stdout, Stderr: stderr})
}

func newRootCmdWithOpts(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stamp",
		Short: "Create projects from templates",
		Long: `stamp renders a template directory into a new project.

A template is a directory holding a template manifest (template.yaml,
template.yml, template.json or template.hcl) next to the source directories
it names. Placeholders like {{name}} are replaced in file contents and
paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := setupLogging(cmd, o)
			cmd.SetContext(ctx)
		},
	}

	rootCmd.SetOut(o.Stdout)
	rootCmd.SetErr(o.Stderr)
	rootCmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(commands.NewNewCmd(o), commands.NewListCmd(o), newVersionCmd())
	rootCmd.AddCommand(commands.NewBuiltinCmds(o)...)

	return rootCmd
}

// setupLogging stores a zerolog logger and the console logger in the
// command context
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) context.Context {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: o.Stderr, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("command", cmd.Name()).
		Logger()

	ctx := zlog.WithContext(cmd.Context())
	return log.NewContext(ctx, log.New(o.Stdout, zlog))
}
