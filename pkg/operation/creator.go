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
	"maps"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/stamp/pkg/config"
	"github.com/walteh/stamp/pkg/hooks"
	"github.com/walteh/stamp/pkg/log"
	"github.com/walteh/stamp/pkg/resolve"
	"github.com/walteh/stamp/pkg/status"
	"github.com/walteh/stamp/pkg/vars"
	"gitlab.com/tozd/go/errors"
)

// 🎮 Creator runs creation requests
type Creator struct {
	resolver  *resolve.Resolver
	hooks     *hooks.Registry
	remover   Remover
	console   *log.Logger
	formatter status.FileFormatter
	now       func() time.Time
}

// 📋 Result describes a finished run.
type Result struct {
	Template *resolve.Template
	Manifest *config.Manifest
	// Request is the request after template-fn and defaults.
	Request config.Request
	Vars    vars.Map
	State   State
	Files   []status.FileInfo
}

// 🏃 Create generates a project from req.
//
// The template is resolved and its manifest validated first, then the
// manifest's template-fn may rewrite the request, except for its Template. The overwrite policy is
// enforced before the first write.
func (c *Creator) Create(ctx context.Context, req config.Request) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := req.Validate(); err != nil {
		return nil, errors.Errorf("invalid request: %w", err)
	}

	tmpl, err := c.resolver.Resolve(ctx, req.Template, req.SrcDirs)
	if err != nil {
		return nil, err
	}

	m, err := config.LoadFS(ctx, tmpl.FS, tmpl.Manifest)
	if err != nil {
		return nil, errors.Errorf("loading template %s from %s: %w", tmpl.ID, tmpl.ManifestPath(), err)
	}

	fns, err := c.lookupHooks(m)
	if err != nil {
		return nil, err
	}

	if fns.template != nil {
		req, err = fns.template(ctx, req.Clone())
		if err != nil {
			return nil, errors.Errorf("running template-fn %s: %w", m.TemplateFn, err)
		}
		if err := req.Validate(); err != nil {
			return nil, errors.Errorf("template-fn %s returned an invalid request: %w", m.TemplateFn, err)
		}
		if req.Template != tmpl.ID {
			return nil, errors.Errorf("template-fn %s changed the template from %q to %q", m.TemplateFn, tmpl.ID, req.Template)
		}
	}

	req = req.WithDefaults()
	if req.Now.IsZero() {
		req.Now = c.now()
	}

	v := vars.Build(req)
	if fns.data != nil {
		extra, err := fns.data(ctx, maps.Clone(v), req)
		if err != nil {
			return nil, errors.Errorf("running data-fn %s: %w", m.DataFn, err)
		}
		v = vars.Merge(v, extra)
	}

	target := status.NewManager(req.TargetDir, c.formatter)

	exists, err := target.Exists(ctx)
	if err != nil {
		return nil, err
	}
	state, err := Decide(exists, req.Overwrite)
	logger.Debug().
		Str("target", req.TargetDir).
		Bool("exists", exists).
		Str("overwrite", string(req.Overwrite)).
		Str("state", state.String()).
		Msg("overwrite policy decided")
	if err != nil {
		return nil, errors.Errorf("%w: %s", err, req.TargetDir)
	}

	if state == PresentDelete {
		c.console.Deleting(ctx, req.TargetDir)
		if err := c.remover.RemoveTree(ctx, req.TargetDir); err != nil {
			return nil, errors.Errorf("deleting %s: %w", req.TargetDir, err)
		}
	}

	c.console.StartTemplate(ctx, log.TemplateOperation{
		Template: req.Template,
		Target:   req.TargetDir,
		Location: tmpl.ManifestPath(),
	})
	defer c.console.EndTemplate(ctx)

	ops := make([]Operation, 0, len(m.Transform)+1)
	for _, spec := range m.Entries() {
		ops = append(ops, &Transform{
			Spec:    spec,
			Source:  tmpl.FS,
			Target:  target,
			Vars:    v,
			Ignore:  m.Ignore,
			Console: c.console,
		})
	}
	if err := NewRunner(logger).RunAll(ctx, ops...); err != nil {
		return nil, err
	}

	if fns.postProcess != nil {
		if err := fns.postProcess(ctx, m, req); err != nil {
			return nil, errors.Errorf("running post-process-fn %s: %w", m.PostProcessFn, err)
		}
	}

	return &Result{
		Template: tmpl,
		Manifest: m,
		Request:  req,
		Vars:     v,
		State:    state,
		Files:    target.ListFiles(ctx),
	}, nil
}

type manifestHooks struct {
	data        hooks.DataFn
	template    hooks.TemplateFn
	postProcess hooks.PostProcessFn
}

// lookupHooks resolves every hook the manifest names so a missing one fails
// the run before anything is written.
func (c *Creator) lookupHooks(m *config.Manifest) (manifestHooks, error) {
	var out manifestHooks
	var err error
	if m.DataFn != "" {
		if out.data, err = c.hooks.Data(m.DataFn); err != nil {
			return out, err
		}
	}
	if m.TemplateFn != "" {
		if out.template, err = c.hooks.Template(m.TemplateFn); err != nil {
			return out, err
		}
	}
	if m.PostProcessFn != "" {
		if out.postProcess, err = c.hooks.PostProcess(m.PostProcessFn); err != nil {
			return out, err
		}
	}
	return out, nil
}
