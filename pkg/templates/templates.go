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

// Package templates embeds the built-in project templates and the hooks their
// manifests reference.
package templates

import (
	"context"
	"embed"
	"io/fs"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/rs/zerolog"
	"github.com/walteh/stamp/pkg/config"
	"github.com/walteh/stamp/pkg/hooks"
	"github.com/walteh/stamp/pkg/operation"
	"github.com/walteh/stamp/pkg/resolve"
	"gitlab.com/tozd/go/errors"
)

//go:embed builtin
var builtinFS embed.FS

// Built-in template ids.
const (
	AppID     = "app"
	LibID     = "lib"
	ScratchID = "scratch"
	ModID     = "mod"
)

// Hook names referenced by the built-in manifests.
const (
	GoModuleHook   = "stamp/go-module"
	CurrentDirHook = "stamp/current-dir"
)

// DefaultGoVersion is written into generated go.mod files.
const DefaultGoVersion = "1.23"

func init() {
	RegisterHooks(hooks.Default)
}

// Root returns the embedded templates as a lookup root.
func Root() resolve.Root {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return resolve.Root{Name: "builtin", FS: sub}
}

// IDs returns the built-in template ids.
func IDs() []string {
	return []string{AppID, LibID, ScratchID, ModID}
}

// RegisterHooks adds the hooks used by the built-in manifests to r.
func RegisterHooks(r *hooks.Registry) {
	r.RegisterData(GoModuleHook, GoModule)
	r.RegisterTemplate(CurrentDirHook, CurrentDir)
}

// 🚀 App creates a Go application.
func App(ctx context.Context, c *operation.Creator, req config.Request) (*operation.Result, error) {
	req.Template = AppID
	return c.Create(ctx, req)
}

// 📚 Lib creates a Go library.
func Lib(ctx context.Context, c *operation.Creator, req config.Request) (*operation.Result, error) {
	req.Template = LibID
	return c.Create(ctx, req)
}

// 🧪 Scratch creates a single-file program.
func Scratch(ctx context.Context, c *operation.Creator, req config.Request) (*operation.Result, error) {
	req.Template = ScratchID
	return c.Create(ctx, req)
}

// 📦 Mod writes a go.mod into an existing directory, the current one by
// default. Unless the caller picked a policy, existing files are overwritten.
func Mod(ctx context.Context, c *operation.Creator, req config.Request) (*operation.Result, error) {
	req.Template = ModID
	if req.Overwrite == config.OverwriteUnset {
		req.Overwrite = config.OverwriteTrue
	}
	return c.Create(ctx, req)
}

// GoModule adds go/module, go/package and go/version. Values already present
// in base, for example from --var, are kept.
func GoModule(ctx context.Context, base map[string]string, req config.Request) (map[string]string, error) {
	artifact := base["main"]
	if artifact == "" {
		return nil, errors.Errorf("substitution map has no main key")
	}

	out := map[string]string{
		"go/module":  base["scm/domain"] + "/" + base["scm/user"] + "/" + base["scm/repo"],
		"go/package": PackageName(artifact),
		"go/version": DefaultGoVersion,
	}
	for k := range out {
		if v, ok := base[k]; ok && v != "" {
			out[k] = v
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("module", out["go/module"]).
		Str("package", out["go/package"]).
		Msg("derived go module")

	return out, nil
}

// CurrentDir targets the working directory when the request names no target.
func CurrentDir(ctx context.Context, req config.Request) (config.Request, error) {
	if req.TargetDir == "" {
		req.TargetDir = "."
	}
	return req, nil
}

// PackageName converts an artifact name into a valid Go package name:
// "cool-widget" becomes "coolwidget".
func PackageName(s string) string {
	var b strings.Builder
	for _, r := range strcase.ToSnake(s) {
		if r < unicode.MaxASCII && (unicode.IsLower(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	switch {
	case out == "":
		return "app"
	case unicode.IsDigit(rune(out[0])):
		return "x" + out
	}
	return out
}
