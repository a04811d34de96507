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
	"fmt"
	"sort"
	"strings"

	"github.com/walteh/stamp/pkg/text"
)

// DefaultRoot is the template directory copied to the top of the project when
// the manifest does not name one.
const DefaultRoot = "root"

// Option keywords accepted at the tail of a transform entry.
const (
	KeywordOnly = ":only"
	KeywordRaw  = ":raw"
)

// 🔧 Options holds the trailing option keywords of a transform entry
type Options struct {
	Only bool // copy exactly the files named in Files
	Raw  bool // copy contents verbatim, no placeholder substitution
}

func (o Options) String() string {
	var parts []string
	if o.Only {
		parts = append(parts, KeywordOnly)
	}
	if o.Raw {
		parts = append(parts, KeywordRaw)
	}
	return strings.Join(parts, " ")
}

// 📦 TransformSpec describes one template directory to copy into the project
type TransformSpec struct {
	Src    string            // directory inside the template
	Target string            // directory inside the project, "" is the project root
	Files  map[string]string // nil when the entry has no files mapping
	Delims *text.Delims      // nil means text.DefaultDelims
	Opts   Options
}

// EffectiveDelims returns the delimiter pair used for this entry.
func (t TransformSpec) EffectiveDelims() text.Delims {
	if t.Delims == nil {
		return text.DefaultDelims
	}
	return *t.Delims
}

// FileKeys returns the keys of Files in sorted order.
func (t TransformSpec) FileKeys() []string {
	keys := make([]string, 0, len(t.Files))
	for k := range t.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// 📝 String renders the entry back in its positional form
func (t TransformSpec) String() string {
	parts := []string{fmt.Sprintf("%q", t.Src), fmt.Sprintf("%q", t.Target)}
	if t.Files != nil {
		pairs := make([]string, 0, len(t.Files))
		for _, k := range t.FileKeys() {
			pairs = append(pairs, fmt.Sprintf("%q %q", k, t.Files[k]))
		}
		parts = append(parts, "{"+strings.Join(pairs, ", ")+"}")
	}
	if t.Delims != nil {
		parts = append(parts, fmt.Sprintf("[%q %q]", t.Delims.Open, t.Delims.Close))
	}
	if o := t.Opts.String(); o != "" {
		parts = append(parts, o)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// 📚 Manifest is the normalized form of a template's manifest file
type Manifest struct {
	Root          string
	Description   string
	DataFn        string
	TemplateFn    string
	PostProcessFn string
	Transform     []TransformSpec
	Ignore        []string // doublestar globs relative to each entry's src

	location string
}

// Location returns the file the manifest was loaded from, if any.
func (m *Manifest) Location() string {
	return m.location
}

// RootEntry is the implicit entry that copies the root directory to the top
// of the project.
func (m *Manifest) RootEntry() TransformSpec {
	return TransformSpec{Src: m.Root, Target: ""}
}

// Entries returns the root entry followed by every declared transform, in
// the order they are applied.
func (m *Manifest) Entries() []TransformSpec {
	out := make([]TransformSpec, 0, len(m.Transform)+1)
	out = append(out, m.RootEntry())
	return append(out, m.Transform...)
}
