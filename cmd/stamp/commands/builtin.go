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
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/stamp/cmd/stamp/opts"
	"github.com/walteh/stamp/pkg/config"
	"github.com/walteh/stamp/pkg/log"
	"github.com/walteh/stamp/pkg/operation"
	"github.com/walteh/stamp/pkg/templates"
	"gitlab.com/tozd/go/errors"
)

type builtinFunc func(ctx context.Context, c *operation.Creator, req config.Request) (*operation.Result, error)

// NewBuiltinCmds creates one command per built-in template
func NewBuiltinCmds(o *opts.RootOpts) []*cobra.Command {
	return []*cobra.Command{
		newBuiltinCmd(o, templates.AppID, "Create a Go application", templates.App),
		newBuiltinCmd(o, templates.LibID, "Create a Go library", templates.Lib),
		newBuiltinCmd(o, templates.ScratchID, "Create a single-file Go program", templates.Scratch),
		newBuiltinCmd(o, templates.ModID, "Write a go.mod into an existing directory (current directory by default)", templates.Mod),
	}
}

func newBuiltinCmd(o *opts.RootOpts, id, short string, run builtinFunc) *cobra.Command {
	var flags createFlags

	cmd := &cobra.Command{
		Use:   id + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req, err := flags.request(id, args[0])
			if err != nil {
				return err
			}

			log.FromContext(ctx).Header(req.String())

			c, err := o.Creator(ctx)
			if err != nil {
				return errors.Errorf("creating creator: %w", err)
			}

			res, err := run(ctx, c, req)
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
