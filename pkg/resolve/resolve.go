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

// Package resolve maps a template identifier to a template directory.
//
// Explicit search roots are always tried before the implicit ones (STAMP_PATH,
// the user config directory and the templates built into the binary).
package resolve

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/stamp/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrTemplateNotFound is returned when no search root holds the template.
var ErrTemplateNotFound = errors.Base("template not found")

// EnvPath names the environment variable holding extra template roots.
const EnvPath = "STAMP_PATH"

// 📁 Root is a named filesystem that templates are looked up in.
type Root struct {
	Name string
	FS   fs.FS
}

// DirRoot returns a root backed by a directory on disk.
func DirRoot(dir string) Root {
	return Root{Name: dir, FS: os.DirFS(dir)}
}

// 📦 Template is a resolved template directory.
type Template struct {
	ID string
	// Root is the name of the root the template was found in.
	Root string
	// Dir is the template directory relative to its root.
	Dir string
	// Manifest is the manifest file name inside Dir.
	Manifest string
	// FS is the template directory itself.
	FS fs.FS
}

// ManifestPath returns a printable location of the manifest.
func (t *Template) ManifestPath() string {
	return path.Join(filepath.ToSlash(t.Root), t.Dir, t.Manifest)
}

// 🔍 Finder walks search roots looking for a template. A missing template is
// reported with found == false, not an error.
type Finder interface {
	FindTemplateRoot(ctx context.Context, id string, roots []Root) (tmpl *Template, found bool, err error)
}

// FSFinder looks for a directory named after the id that holds one of
// config.ManifestNames.
type FSFinder struct{}

var _ Finder = FSFinder{}

func (FSFinder) FindTemplateRoot(ctx context.Context, id string, roots []Root) (*Template, bool, error) {
	logger := zerolog.Ctx(ctx)

	dirs := Candidates(id)
	for _, root := range roots {
		for _, dir := range dirs {
			for _, name := range config.ManifestNames {
				fi, err := fs.Stat(root.FS, path.Join(dir, name))
				if err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						continue
					}
					logger.Debug().Err(err).Str("root", root.Name).Str("dir", dir).Msg("skipping unreadable candidate")
					continue
				}
				if fi.IsDir() {
					continue
				}

				sub, err := fs.Sub(root.FS, dir)
				if err != nil {
					return nil, false, errors.Errorf("opening template dir %s in %s: %w", dir, root.Name, err)
				}

				logger.Debug().
					Str("template", id).
					Str("root", root.Name).
					Str("dir", dir).
					Str("manifest", name).
					Msg("template found")

				return &Template{
					ID:       id,
					Root:     root.Name,
					Dir:      dir,
					Manifest: name,
					FS:       sub,
				}, true, nil
			}
		}
	}
	return nil, false, nil
}

// Candidates returns the directories a template id may live in. A dotted
// group is also tried as nested directories: com.acme/svc -> com/acme/svc.
func Candidates(id string) []string {
	id = strings.Trim(path.Clean(filepath.ToSlash(strings.TrimSpace(id))), "/")
	if id == "" || id == "." || !fs.ValidPath(id) {
		return nil
	}

	out := []string{id}
	group, artifact, qualified := config.ParseName(id)
	if !qualified {
		return out
	}
	alt := strings.ReplaceAll(group, ".", "/") + "/" + artifact
	if alt != id && fs.ValidPath(alt) {
		out = append(out, alt)
	}
	return out
}

// 🎯 Resolver resolves template ids against explicit and implicit roots.
type Resolver struct {
	Finder   Finder
	Implicit []Root
}

// Resolve tries each extra directory in order, then the implicit roots.
func (r *Resolver) Resolve(ctx context.Context, id string, extra []string) (*Template, error) {
	roots := make([]Root, 0, len(extra)+len(r.Implicit))
	for _, dir := range extra {
		roots = append(roots, DirRoot(dir))
	}
	roots = append(roots, r.Implicit...)

	finder := r.Finder
	if finder == nil {
		finder = FSFinder{}
	}

	tmpl, found, err := finder.FindTemplateRoot(ctx, id, roots)
	if err != nil {
		return nil, errors.Errorf("resolving template %q: %w", id, err)
	}
	if !found {
		names := make([]string, len(roots))
		for i, root := range roots {
			names[i] = root.Name
		}
		return nil, errors.Errorf("%w: %q (searched: %s)", ErrTemplateNotFound, id, strings.Join(names, ", "))
	}
	return tmpl, nil
}

// EnvRoots returns the roots named by STAMP_PATH followed by the user's
// config directory. Directories that do not exist are left out.
func EnvRoots(ctx context.Context) []Root {
	logger := zerolog.Ctx(ctx)

	var dirs []string
	dirs = append(dirs, filepath.SplitList(os.Getenv(EnvPath))...)
	if cfg, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(cfg, "stamp", "templates"))
	}

	var roots []Root
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			logger.Debug().Str("dir", dir).Msg("ignoring missing template root")
			continue
		}
		roots = append(roots, DirRoot(dir))
	}
	return roots
}
