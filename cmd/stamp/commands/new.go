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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/stamp/cmd/stamp/opts"
	"github.com/walteh/stamp/pkg/log"
	"github.com/walteh/stamp/pkg/operation"
	"github.com/walteh/stamp/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewNewCmd creates the generic new command
func NewNewCmd(o *opts.RootOpts) *cobra.Command {
	var flags createFlags

	cmd := &cobra.Command{
		Use:   "new <template> <name>",
		Short: "Create a project from any template",
		Long: `New resolves a template by id and renders it into a new directory.

Templates are searched for in --src-dir directories, then STAMP_PATH, then
the user config directory, and finally the built-in templates.

Names are either qualified (acme/widget, acme.widget) or bare (widget).`,
		Example: `  stamp new app acme/widget
  stamp new com.acme/service github.com/acme/billing --src-dir ./templates
  stamp new lib acme/parser --overwrite delete --var license=MIT`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req, err := flags.request(args[0], args[1])
			if err != nil {
				return err
			}

			log.FromContext(ctx).Header(req.String())

			c, err := o.Creator(ctx)
			if err != nil {
				return errors.Errorf("creating creator: %w", err)
			}

			res, err := c.Create(ctx, req)
			if err != nil {
				return err
			}
			report(cmd, res)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// report prints the summary line of a finished run.
func report(cmd *cobra.Command, res *operation.Result) {
	ctx := cmd.Context()
	zerolog.Ctx(ctx).Debug().
		Str("template", res.Template.ID).
		Str("state", res.State.String()).
		Int("files", len(res.Files)).
		Msg("creation finished")

	console := log.FromContext(ctx)
	if res.State == operation.PresentOverwrite {
		console.Warningf("Wrote into existing directory %s", res.Request.TargetDir)
	}
	if n := countUnchanged(res.Files); n > 0 {
		console.Infof("%d files already up to date", n)
	}
	console.Successf("Created %s from %s in %s (%d files)",
		res.Vars["name"], res.Template.ID, res.Request.TargetDir, len(res.Files))
}

func countUnchanged(files []status.FileInfo) int {
	n := 0
	for _, f := range files {
		if f.Status == status.StatusUnchanged {
			n++
		}
	}
	return n
}
