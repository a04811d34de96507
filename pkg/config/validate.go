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
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/stamp/pkg/text"
)

// EntryGrammar is the positional shape of a transform entry.
const EntryGrammar = "[src target? files? delims? opts*]"

// part is one optional positional component that may follow src/target.
type part int

const (
	partFiles part = iota
	partDelims
)

// alternative is one way of reading the elements after src and target.
// Trailing option keywords are always allowed after the listed parts.
type alternative struct {
	name  string
	parts []part
}

// tailGrammar is tried in order; the longest alternative comes first.
var tailGrammar = []alternative{
	{name: "files+delims+opts", parts: []part{partFiles, partDelims}},
	{name: "files+opts", parts: []part{partFiles}},
	{name: "delims+opts", parts: []part{partDelims}},
	{name: "opts", parts: nil},
}

type validator struct {
	violations []Violation
}

func (v *validator) addf(path string, format string, args ...any) {
	v.violations = append(v.violations, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
}

// 🔍 Validate checks an untyped manifest tree against the manifest shape and
// returns the normalized manifest with defaults applied.
//
// Unknown top-level keys are ignored. On failure the returned error is a
// *SchemaViolation listing every non-conforming path.
func Validate(raw any) (*Manifest, error) {
	v := &validator{}

	top, ok := asMapping(raw)
	if !ok {
		v.addf("", "expected mapping, got %s", describe(raw))
		return nil, &SchemaViolation{Violations: v.violations}
	}

	m := &Manifest{Root: DefaultRoot}

	if x, ok := top["root"]; ok {
		if s, ok := v.relPath("root", x, false); ok {
			m.Root = s
		}
	}
	if x, ok := top["description"]; ok {
		if s, ok := v.str("description", x); ok {
			m.Description = s
		}
	}
	m.DataFn = v.hookName(top, "data-fn")
	m.TemplateFn = v.hookName(top, "template-fn")
	m.PostProcessFn = v.hookName(top, "post-process-fn")

	if x, ok := top["transform"]; ok {
		m.Transform = v.transforms("transform", x)
	}
	if x, ok := top["ignore"]; ok {
		m.Ignore = v.globs("ignore", x)
	}

	if len(v.violations) > 0 {
		return nil, &SchemaViolation{Violations: v.violations}
	}
	return m, nil
}

func (v *validator) str(path string, x any) (string, bool) {
	s, ok := x.(string)
	if !ok {
		v.addf(path, "expected string, got %s", describe(x))
		return "", false
	}
	return s, true
}

func (v *validator) hookName(top map[string]any, key string) string {
	x, ok := top[key]
	if !ok {
		return ""
	}
	s, ok := v.str(key, x)
	if !ok {
		return ""
	}
	if s == "" {
		v.addf(key, "expected a registered hook name, got empty string")
	}
	return s
}

// relPath accepts a string naming a path that stays inside its parent
// directory. allowEmpty permits "" (the parent itself).
func (v *validator) relPath(path string, x any, allowEmpty bool) (string, bool) {
	s, ok := v.str(path, x)
	if !ok {
		return "", false
	}
	if reason := checkRelPath(s, allowEmpty); reason != "" {
		v.addf(path, "%s", reason)
		return "", false
	}
	if s == "" {
		return "", true
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(s)))
	if allowEmpty && clean == "." {
		return "", true
	}
	return clean, true
}

func checkRelPath(s string, allowEmpty bool) string {
	if s == "" {
		if allowEmpty {
			return ""
		}
		return "expected non-empty relative path"
	}
	if !filepath.IsLocal(filepath.FromSlash(s)) {
		return fmt.Sprintf("path %q must be relative and stay inside its directory", s)
	}
	return ""
}

func (v *validator) globs(path string, x any) []string {
	seq, ok := asSequence(x)
	if !ok {
		v.addf(path, "expected sequence of glob patterns, got %s", describe(x))
		return nil
	}
	out := make([]string, 0, len(seq))
	for i, el := range seq {
		p := fmt.Sprintf("%s[%d]", path, i)
		s, ok := v.str(p, el)
		if !ok {
			continue
		}
		if !doublestar.ValidatePattern(s) {
			v.addf(p, "invalid glob pattern %q", s)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (v *validator) transforms(path string, x any) []TransformSpec {
	seq, ok := asSequence(x)
	if !ok {
		v.addf(path, "expected sequence of %s entries, got %s", EntryGrammar, describe(x))
		return nil
	}
	if len(seq) == 0 {
		v.addf(path, "must not be empty when present")
		return nil
	}
	out := make([]TransformSpec, 0, len(seq))
	for i, el := range seq {
		if spec, ok := v.entry(fmt.Sprintf("%s[%d]", path, i), el); ok {
			out = append(out, spec)
		}
	}
	return out
}

// entry destructures one positional transform entry.
func (v *validator) entry(path string, x any) (TransformSpec, bool) {
	elems, ok := asSequence(x)
	if !ok {
		v.addf(path, "expected sequence %s, got %s", EntryGrammar, describe(x))
		return TransformSpec{}, false
	}

	if len(elems) == 0 {
		v.addf(path+"[0]", "src: required string is missing")
		return TransformSpec{}, false
	}
	src, ok := elems[0].(string)
	if !ok || isKeyword(src) {
		v.addf(path+"[0]", "src: expected string as first element, got %s", describe(elems[0]))
		return TransformSpec{}, false
	}

	n := len(v.violations)
	spec := TransformSpec{}
	spec.Src, _ = v.relPath(path+"[0]", src, false)

	idx := 1
	spec.Target = spec.Src
	if idx < len(elems) {
		if s, ok := elems[idx].(string); ok && !isKeyword(s) {
			spec.Target, _ = v.relPath(fmt.Sprintf("%s[%d]", path, idx), s, true)
			idx++
		}
	}

	if !v.tail(path, elems, idx, &spec) {
		return TransformSpec{}, false
	}
	return spec, len(v.violations) == n
}

// tail tries each alternative of tailGrammar against elems[start:] and keeps
// the first one that consumes every element.
func (v *validator) tail(path string, elems []any, start int, spec *TransformSpec) bool {
	failures := make([]AlternativeFailure, 0, len(tailGrammar))
	for _, alt := range tailGrammar {
		attempt := *spec
		if fail := matchAlternative(alt, elems, start, &attempt); fail != nil {
			failures = append(failures, *fail)
			continue
		}
		*spec = attempt
		return true
	}

	// report at the element where the most permissive reading got furthest
	furthest := start
	for _, f := range failures {
		if f.Index > furthest {
			furthest = f.Index
		}
	}
	v.violations = append(v.violations, Violation{
		Path:         fmt.Sprintf("%s[%d]", path, furthest),
		Message:      fmt.Sprintf("entry does not match %s", EntryGrammar),
		Alternatives: failures,
	})
	return false
}

func matchAlternative(alt alternative, elems []any, start int, spec *TransformSpec) *AlternativeFailure {
	i := start
	for _, p := range alt.parts {
		if i >= len(elems) {
			return &AlternativeFailure{Alternative: alt.name, Index: i, Reason: fmt.Sprintf("missing %s", p)}
		}
		var reason string
		switch p {
		case partFiles:
			spec.Files, reason = parseFiles(elems[i])
		case partDelims:
			spec.Delims, reason = parseDelims(elems[i])
		}
		if reason != "" {
			return &AlternativeFailure{Alternative: alt.name, Index: i, Reason: reason}
		}
		i++
	}
	for ; i < len(elems); i++ {
		s, ok := elems[i].(string)
		switch {
		case ok && s == KeywordOnly:
			spec.Opts.Only = true
		case ok && s == KeywordRaw:
			spec.Opts.Raw = true
		default:
			return &AlternativeFailure{
				Alternative: alt.name,
				Index:       i,
				Reason:      fmt.Sprintf("expected option keyword %s or %s, got %s", KeywordOnly, KeywordRaw, describe(elems[i])),
			}
		}
	}
	return nil
}

func (p part) String() string {
	switch p {
	case partFiles:
		return "files mapping"
	case partDelims:
		return "delims pair"
	default:
		return "unknown"
	}
}

func parseFiles(x any) (map[string]string, string) {
	mp, ok := asMapping(x)
	if !ok {
		return nil, fmt.Sprintf("expected files mapping of string to string, got %s", describe(x))
	}
	out := make(map[string]string, len(mp))
	keys := make([]string, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if reason := checkRelPath(k, false); reason != "" {
			return nil, fmt.Sprintf("files key: %s", reason)
		}
		s, ok := mp[k].(string)
		if !ok {
			return nil, fmt.Sprintf("files[%q]: expected string, got %s", k, describe(mp[k]))
		}
		if s == "" {
			return nil, fmt.Sprintf("files[%q]: expected non-empty target path", k)
		}
		out[filepath.ToSlash(filepath.Clean(filepath.FromSlash(k)))] = s
	}
	return out, ""
}

func parseDelims(x any) (*text.Delims, string) {
	seq, ok := asSequence(x)
	if !ok {
		return nil, fmt.Sprintf("expected delims pair [open close], got %s", describe(x))
	}
	if len(seq) != 2 {
		return nil, fmt.Sprintf("expected delims pair [open close], got sequence of %d", len(seq))
	}
	open, ok1 := seq[0].(string)
	cls, ok2 := seq[1].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Sprintf("expected delims of two strings, got [%s %s]", describe(seq[0]), describe(seq[1]))
	}
	if open == "" || cls == "" {
		return nil, "delims must be non-empty strings"
	}
	return &text.Delims{Open: open, Close: cls}, ""
}

func isKeyword(s string) bool {
	return s == KeywordOnly || s == KeywordRaw
}

// asMapping normalizes the mapping types produced by the parsers.
func asMapping(x any) (map[string]any, bool) {
	switch m := x.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSequence(x any) ([]any, bool) {
	switch s := x.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, el := range s {
			out[i] = el
		}
		return out, true
	default:
		return nil, false
	}
}

// describe names the kind of an untyped value for diagnostics.
func describe(x any) string {
	switch t := x.(type) {
	case nil:
		return "null"
	case string:
		if isKeyword(t) {
			return fmt.Sprintf("keyword %s", t)
		}
		return fmt.Sprintf("string %q", t)
	case bool:
		return "boolean"
	case int, int64, uint64, float64, float32, int32:
		return "number"
	case []any, []string:
		return "sequence"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", x)
	}
}
