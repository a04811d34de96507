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

package opts

import (
	"context"
	"io"
	"time"

	"github.com/walteh/stamp/pkg/hooks"
	"github.com/walteh/stamp/pkg/log"
	"github.com/walteh/stamp/pkg/operation"
	"github.com/walteh/stamp/pkg/resolve"
	"github.com/walteh/stamp/pkg/templates"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Debug  bool
	Stdout io.Writer
	Stderr io.Writer

	// Roots are searched before STAMP_PATH and the built-in templates.
	Roots []resolve.Root
	// Hooks defaults to hooks.Default.
	Hooks *hooks.Registry
	// Now defaults to time.Now.
	Now func() time.Time
}

// SearchRoots returns every root a template id is looked up in, in order.
func (o *RootOpts) SearchRoots(ctx context.Context) []resolve.Root {
	roots := append([]resolve.Root{}, o.Roots...)
	roots = append(roots, resolve.EnvRoots(ctx)...)
	return append(roots, templates.Root())
}

// Creator builds a creator that prints to the console logger stored in ctx.
func (o *RootOpts) Creator(ctx context.Context) (*operation.Creator, error) {
	return operation.NewCreator(operation.Options{
		Resolver: &resolve.Resolver{Implicit: o.SearchRoots(ctx)},
		Hooks:    o.Hooks,
		Console:  log.FromContext(ctx),
		Now:      o.Now,
	})
}
