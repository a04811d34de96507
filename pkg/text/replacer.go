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

// Package text renders {{key}} style placeholders in file contents and paths.
package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Delims is the pair of strings surrounding a placeholder key.
type Delims struct {
	Open  string
	Close string
}

// DefaultDelims is used when a transform entry does not declare its own pair.
var DefaultDelims = Delims{Open: "{{", Close: "}}"}

// Valid reports whether both delimiters are non-empty.
func (d Delims) Valid() bool {
	return d.Open != "" && d.Close != ""
}

// ReplacementResult describes the outcome of rendering one piece of content.
type ReplacementResult struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	ReplacementCount int
	WasModified      bool
}

// Replacer substitutes Open+key+Close for every key present in a map.
// Placeholders whose key is not in the map are left as they are.
type Replacer struct {
	delims Delims
}

// NewReplacer creates a Replacer; invalid delimiters fall back to
// DefaultDelims.
func NewReplacer(d Delims) *Replacer {
	if !d.Valid() {
		d = DefaultDelims
	}
	return &Replacer{delims: d}
}

// Delims returns the pair this replacer matches.
func (r *Replacer) Delims() Delims {
	return r.delims
}

// ReplaceText reads all of content and renders it.
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader, vars map[string]string) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	rendered, count := r.ReplaceString(string(originalContent), vars)

	result := &ReplacementResult{
		OriginalContent:  originalContent,
		ModifiedContent:  originalContent,
		ReplacementCount: count,
	}
	if count > 0 && rendered != string(originalContent) {
		result.WasModified = true
		result.ModifiedContent = []byte(rendered)
	}
	return result, nil
}

// ReplaceString renders s in a single left to right pass, so values that
// themselves contain placeholders are not expanded again.
func (r *Replacer) ReplaceString(s string, vars map[string]string) (string, int) {
	open, cls := r.delims.Open, r.delims.Close
	if len(vars) == 0 || !strings.Contains(s, open) {
		return s, 0
	}

	var b strings.Builder
	b.Grow(len(s))
	count := 0
	for {
		i := strings.Index(s, open)
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		rest := s[i+len(open):]
		j := strings.Index(rest, cls)
		if j < 0 {
			b.WriteString(s[i:])
			break
		}
		if val, ok := vars[rest[:j]]; ok {
			b.WriteString(val)
			count++
			s = rest[j+len(cls):]
			continue
		}
		// unknown key, keep the opening delimiter and keep scanning after it
		b.WriteString(open)
		s = rest
	}
	return b.String(), count
}
