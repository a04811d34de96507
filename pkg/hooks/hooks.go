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

// Package hooks holds the named callables a manifest can reference through
// its data-fn, template-fn and post-process-fn keys.
package hooks

import (
	"context"
	"sort"
	"sync"

	"github.com/walteh/stamp/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrHookNotRegistered is returned when a manifest names a hook that was never registered.
var ErrHookNotRegistered = errors.Base("hook not registered")

// 🧩 DataFn augments the substitution map. The returned map is merged over base.
type DataFn func(ctx context.Context, base map[string]string, req config.Request) (map[string]string, error)

// 🧩 TemplateFn rewrites the request before any filesystem work happens.
type TemplateFn func(ctx context.Context, req config.Request) (config.Request, error)

// 🧩 PostProcessFn runs once every file has been written.
type PostProcessFn func(ctx context.Context, m *config.Manifest, req config.Request) error

// 🗺️ Registry maps hook names to callables.
type Registry struct {
	mu          sync.RWMutex
	data        map[string]DataFn
	template    map[string]TemplateFn
	postProcess map[string]PostProcessFn
}

// Default is the registry the built-in templates register into.
var Default = NewRegistry()

// 🏭 NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		data:        make(map[string]DataFn),
		template:    make(map[string]TemplateFn),
		postProcess: make(map[string]PostProcessFn),
	}
}

// 📝 RegisterData registers a data hook, replacing any hook with the same name
func (r *Registry) RegisterData(name string, fn DataFn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[name] = fn
}

// 📝 RegisterTemplate registers a template hook
func (r *Registry) RegisterTemplate(name string, fn TemplateFn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.template[name] = fn
}

// 📝 RegisterPostProcess registers a post-process hook
func (r *Registry) RegisterPostProcess(name string, fn PostProcessFn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postProcess[name] = fn
}

// 🎯 Data returns the data hook registered under name
func (r *Registry) Data(name string) (DataFn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.data[name]
	if !ok {
		return nil, errors.Errorf("%w: data-fn %q", ErrHookNotRegistered, name)
	}
	return fn, nil
}

// 🎯 Template returns the template hook registered under name
func (r *Registry) Template(name string) (TemplateFn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.template[name]
	if !ok {
		return nil, errors.Errorf("%w: template-fn %q", ErrHookNotRegistered, name)
	}
	return fn, nil
}

// 🎯 PostProcess returns the post-process hook registered under name
func (r *Registry) PostProcess(name string) (PostProcessFn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.postProcess[name]
	if !ok {
		return nil, errors.Errorf("%w: post-process-fn %q", ErrHookNotRegistered, name)
	}
	return fn, nil
}

// Names lists every registered hook as "kind:name", sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.data)+len(r.template)+len(r.postProcess))
	for n := range r.data {
		names = append(names, "data-fn:"+n)
	}
	for n := range r.template {
		names = append(names, "template-fn:"+n)
	}
	for n := range r.postProcess {
		names = append(names, "post-process-fn:"+n)
	}
	sort.Strings(names)
	return names
}
