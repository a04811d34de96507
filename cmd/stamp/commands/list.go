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
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/stamp/cmd/stamp/opts"
	"github.com/walteh/stamp/pkg/log"
	"github.com/walteh/stamp/pkg/resolve"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates the list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var srcDirs []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Long: `List shows every template found in the search roots, in lookup order.
Templates hidden by an earlier root with the same id are marked shadowed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			roots := make([]resolve.Root, 0, len(srcDirs))
			for _, dir := range srcDirs {
				roots = append(roots, resolve.DirRoot(dir))
			}
			roots = append(roots, o.SearchRoots(ctx)...)

			listings, err := resolve.Discover(ctx, roots)
			if err != nil {
				return errors.Errorf("discovering templates: %w", err)
			}

			console := log.FromContext(ctx)
			if len(listings) == 0 {
				console.Warning("no templates found")
				return nil
			}
			for _, l := range listings {
				if l.Err != nil {
					console.Warningf("template %s in %s failed to load: %v", l.ID, l.Root, l.Err)
				}
			}

			out, err := renderListings(listings)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringArrayVar(&srcDirs, "src-dir", nil, "extra directory to search for templates (repeatable)")
	return cmd
}

func renderListings(listings []resolve.Listing) (string, error) {
	data := pterm.TableData{{"TEMPLATE", "ROOT", "DESCRIPTION"}}
	for _, l := range listings {
		desc := l.Description
		switch {
		case l.Err != nil:
			desc = "invalid manifest"
		case l.Shadowed:
			desc = "(shadowed) " + desc
		}
		data = append(data, []string{l.ID, l.Root, desc})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering template table: %w", err)
	}
	return out + "\n", nil
}
