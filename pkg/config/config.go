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

package config

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for manifest parsers
type Parser interface {
	// 📝 Parse decodes the manifest into an untyped tree of
	// map[string]any, []any and scalars
	Parse(ctx context.Context, filename string, data []byte) (any, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// ManifestNames lists the file names a template directory may use for its
// manifest, in lookup order.
var ManifestNames = []string{
	"template.yaml",
	"template.yml",
	"template.json",
	"template.hcl",
}

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// 🎯 Load loads and validates a manifest from the local filesystem
func Load(ctx context.Context, file string) (*Manifest, error) {
	return LoadFS(ctx, os.DirFS(filepath.Dir(file)), filepath.Base(file))
}

// 🎯 LoadFS loads and validates the manifest at name inside fsys.
//
// Syntax errors are reported as ErrManifestUnreadable, shape errors as
// ErrManifestInvalid wrapping a *SchemaViolation.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("manifest", name).Msg("loading manifest")

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Errorf("reading manifest %s: %w", name, err)
	}

	p := GetParser(name)
	if p == nil {
		return nil, errors.Errorf("%w: no parser found for file: %s", ErrManifestUnreadable, name)
	}

	raw, err := p.Parse(ctx, name, data)
	if err != nil {
		return nil, errors.WithStack(&ParseError{File: name, Err: err})
	}

	m, err := Validate(raw)
	if err != nil {
		return nil, errors.Errorf("validating manifest %s: %w", name, err)
	}
	m.location = name

	logger.Debug().
		Str("manifest", name).
		Str("root", m.Root).
		Int("transforms", len(m.Transform)).
		Msg("manifest loaded")

	return m, nil
}
