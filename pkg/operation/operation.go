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

package operation

import (
	"context"
	"time"

	"github.com/walteh/stamp/pkg/hooks"
	"github.com/walteh/stamp/pkg/log"
	"github.com/walteh/stamp/pkg/resolve"
	"github.com/walteh/stamp/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single step of a creation run
type Operation interface {
	Name() string
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for the creator
type Options struct {
	// Resolver finds templates. Required.
	Resolver *resolve.Resolver
	// Hooks resolves data-fn, template-fn and post-process-fn names.
	// Defaults to hooks.Default.
	Hooks *hooks.Registry
	// Remover deletes the target for overwrite=delete. Defaults to DefaultRemover.
	Remover Remover
	// Console receives user-facing progress lines. Defaults to a discarding logger.
	Console *log.Logger
	// Formatter formats the per-file debug log lines.
	Formatter status.FileFormatter
	// Now stamps requests that carry no time.
	Now func() time.Time
}

// 🏭 NewCreator creates a new creator with the given options
func NewCreator(opts Options) (*Creator, error) {
	if opts.Resolver == nil {
		return nil, errors.Errorf("resolver is required")
	}
	if opts.Hooks == nil {
		opts.Hooks = hooks.Default
	}
	if opts.Remover == nil {
		opts.Remover = DefaultRemover
	}
	if opts.Console == nil {
		opts.Console = log.Discard()
	}
	if opts.Formatter == nil {
		opts.Formatter = status.NewDefaultFileFormatter()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Creator{
		resolver:  opts.Resolver,
		hooks:     opts.Hooks,
		remover:   opts.Remover,
		console:   opts.Console,
		formatter: opts.Formatter,
		now:       opts.Now,
	}, nil
}
