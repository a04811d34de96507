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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stamp/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func manifestWith(entries ...any) map[string]any {
	return map[string]any{"transform": entries}
}

func TestValidateTransformAlternatives(t *testing.T) {
	files := map[string]any{"a.txt": "b.txt"}
	delims := []any{"<%", "%>"}

	tests := []struct {
		name  string
		entry []any
		want  TransformSpec
	}{
		{
			name:  "src_only",
			entry: []any{"resources"},
			want:  TransformSpec{Src: "resources", Target: "resources"},
		},
		{
			name:  "src_target",
			entry: []any{"resources", "out"},
			want:  TransformSpec{Src: "resources", Target: "out"},
		},
		{
			name:  "empty_target_is_project_root",
			entry: []any{"build", ""},
			want:  TransformSpec{Src: "build", Target: ""},
		},
		{
			name:  "dot_target_is_project_root",
			entry: []any{"build", "./"},
			want:  TransformSpec{Src: "build", Target: ""},
		},
		{
			name:  "files_delims_opts",
			entry: []any{"resources", "out", files, delims, ":only", ":raw"},
			want: TransformSpec{
				Src:    "resources",
				Target: "out",
				Files:  map[string]string{"a.txt": "b.txt"},
				Delims: &text.Delims{Open: "<%", Close: "%>"},
				Opts:   Options{Only: true, Raw: true},
			},
		},
		{
			name:  "files_opts",
			entry: []any{"resources", "out", files, ":only"},
			want: TransformSpec{
				Src:    "resources",
				Target: "out",
				Files:  map[string]string{"a.txt": "b.txt"},
				Opts:   Options{Only: true},
			},
		},
		{
			name:  "files_without_target",
			entry: []any{"resources", files},
			want: TransformSpec{
				Src:    "resources",
				Target: "resources",
				Files:  map[string]string{"a.txt": "b.txt"},
			},
		},
		{
			name:  "delims_opts",
			entry: []any{"resources", "out", delims, ":raw"},
			want: TransformSpec{
				Src:    "resources",
				Target: "out",
				Delims: &text.Delims{Open: "<%", Close: "%>"},
				Opts:   Options{Raw: true},
			},
		},
		{
			name:  "delims_without_target_or_files",
			entry: []any{"resources", delims},
			want: TransformSpec{
				Src:    "resources",
				Target: "resources",
				Delims: &text.Delims{Open: "<%", Close: "%>"},
			},
		},
		{
			name:  "opts_only",
			entry: []any{"resources", ":only"},
			want:  TransformSpec{Src: "resources", Target: "resources", Opts: Options{Only: true}},
		},
		{
			name:  "duplicate_opts_are_harmless",
			entry: []any{"resources", "out", ":raw", ":raw"},
			want:  TransformSpec{Src: "resources", Target: "out", Opts: Options{Raw: true}},
		},
		{
			name:  "paths_are_cleaned",
			entry: []any{"./resources/", "out/./sub", map[string]any{"./a.txt": "b.txt"}},
			want: TransformSpec{
				Src:    "resources",
				Target: "out/sub",
				Files:  map[string]string{"a.txt": "b.txt"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Validate(manifestWith(tt.entry))
			require.NoError(t, err)
			require.Len(t, m.Transform, 1)
			assert.Equal(t, tt.want, m.Transform[0])
		})
	}
}

func TestValidateTransformViolations(t *testing.T) {
	tests := []struct {
		name         string
		entry        any
		wantPath     string
		wantContains []string
	}{
		{
			name:         "missing_src",
			entry:        []any{map[string]any{"a.txt": "b.txt"}, ":only"},
			wantPath:     "transform[0][0]",
			wantContains: []string{"src"},
		},
		{
			name:         "empty_entry",
			entry:        []any{},
			wantPath:     "transform[0][0]",
			wantContains: []string{"src", "missing"},
		},
		{
			name:         "keyword_in_src_position",
			entry:        []any{":raw"},
			wantPath:     "transform[0][0]",
			wantContains: []string{"src", "keyword :raw"},
		},
		{
			name:         "entry_is_a_mapping",
			entry:        map[string]any{"src": "resources"},
			wantPath:     "transform[0]",
			wantContains: []string{"expected sequence", "got mapping"},
		},
		{
			name:         "src_escapes_template",
			entry:        []any{"../secrets"},
			wantPath:     "transform[0][0]",
			wantContains: []string{"must be relative"},
		},
		{
			name:         "absolute_target",
			entry:        []any{"resources", "/etc"},
			wantPath:     "transform[0][1]",
			wantContains: []string{"must be relative"},
		},
		{
			name:     "files_value_not_a_string",
			entry:    []any{"resources", "out", map[string]any{"a.txt": 1}},
			wantPath: "transform[0][2]",
			wantContains: []string{
				"files+delims+opts: failed at element 2: files[\"a.txt\"]: expected string, got number",
				"files+opts: failed at element 2",
				"delims+opts: failed at element 2: expected delims pair",
				"opts: failed at element 2: expected option keyword",
			},
		},
		{
			name:     "unknown_option",
			entry:    []any{"resources", "out", ":fast"},
			wantPath: "transform[0][2]",
			wantContains: []string{
				"opts: failed at element 2: expected option keyword :only or :raw, got string \":fast\"",
			},
		},
		{
			name:     "delims_wrong_arity",
			entry:    []any{"resources", "out", []any{"<%"}},
			wantPath: "transform[0][2]",
			wantContains: []string{
				"delims+opts: failed at element 2: expected delims pair [open close], got sequence of 1",
			},
		},
		{
			name:     "delims_before_files",
			entry:    []any{"resources", "out", []any{"<%", "%>"}, map[string]any{"a": "b"}},
			wantPath: "transform[0][3]",
			wantContains: []string{
				"delims+opts: failed at element 3",
			},
		},
		{
			name:     "empty_delims",
			entry:    []any{"resources", []any{"", "%>"}},
			wantPath: "transform[0][1]",
			wantContains: []string{
				"delims must be non-empty strings",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(manifestWith(tt.entry))
			require.Error(t, err)

			var sv *SchemaViolation
			require.True(t, errors.As(err, &sv))
			require.Len(t, sv.Violations, 1)
			assert.Equal(t, tt.wantPath, sv.Violations[0].Path)
			for _, want := range tt.wantContains {
				assert.Contains(t, err.Error(), want)
			}
			assert.ErrorIs(t, err, ErrManifestInvalid)
		})
	}
}

func TestValidateTopLevel(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		wantPaths []string
		check     func(t *testing.T, m *Manifest)
	}{
		{
			name: "empty_manifest_gets_defaults",
			raw:  map[string]any{},
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "root", m.Root)
				assert.Nil(t, m.Transform)
				assert.Equal(t, []TransformSpec{{Src: "root"}}, m.Entries())
			},
		},
		{
			name: "every_field",
			raw: map[string]any{
				"root":            "skeleton",
				"description":     "desc",
				"data-fn":         "data",
				"template-fn":     "tmpl",
				"post-process-fn": "post",
				"ignore":          []any{"**/*.bak", ".DS_Store"},
				"transform":       []any{[]any{"resources"}},
			},
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "skeleton", m.Root)
				assert.Equal(t, "desc", m.Description)
				assert.Equal(t, "data", m.DataFn)
				assert.Equal(t, "tmpl", m.TemplateFn)
				assert.Equal(t, "post", m.PostProcessFn)
				assert.Equal(t, []string{"**/*.bak", ".DS_Store"}, m.Ignore)
				assert.Equal(t, []TransformSpec{
					{Src: "skeleton"},
					{Src: "resources", Target: "resources"},
				}, m.Entries())
			},
		},
		{
			name: "map_with_interface_keys",
			raw:  map[any]any{"root": "skeleton"},
			check: func(t *testing.T, m *Manifest) {
				assert.Equal(t, "skeleton", m.Root)
			},
		},
		{
			name:      "not_a_mapping",
			raw:       []any{"root"},
			wantPaths: []string{""},
		},
		{
			name:      "null_document",
			raw:       nil,
			wantPaths: []string{""},
		},
		{
			name: "every_violation_is_reported",
			raw: map[string]any{
				"root":        []any{},
				"description": 1,
				"data-fn":     true,
				"ignore":      []any{"[", 2},
				"transform": []any{
					[]any{"ok"},
					[]any{1},
					"bad",
					[]any{"a", "b", ":nope"},
				},
			},
			wantPaths: []string{
				"root",
				"description",
				"data-fn",
				"transform[1][0]",
				"transform[2]",
				"transform[3][2]",
				"ignore[0]",
				"ignore[1]",
			},
		},
		{
			name:      "transform_not_a_sequence",
			raw:       map[string]any{"transform": map[string]any{"a": "b"}},
			wantPaths: []string{"transform"},
		},
		{
			name:      "transform_empty",
			raw:       map[string]any{"transform": []any{}},
			wantPaths: []string{"transform"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Validate(tt.raw)
			if tt.wantPaths != nil {
				require.Error(t, err)
				var sv *SchemaViolation
				require.True(t, errors.As(err, &sv))
				assert.Equal(t, tt.wantPaths, sv.Paths())
				return
			}
			require.NoError(t, err)
			tt.check(t, m)
		})
	}
}

func TestTransformSpecString(t *testing.T) {
	spec := TransformSpec{
		Src:    "resources",
		Target: "out",
		Files:  map[string]string{"b": "2", "a": "1"},
		Delims: &text.Delims{Open: "<%", Close: "%>"},
		Opts:   Options{Only: true, Raw: true},
	}
	assert.Equal(t, `["resources" "out" {"a" "1", "b" "2"} ["<%" "%>"] :only :raw]`, spec.String())
	assert.Equal(t, text.Delims{Open: "<%", Close: "%>"}, spec.EffectiveDelims())
	assert.Equal(t, text.DefaultDelims, TransformSpec{Src: "x"}.EffectiveDelims())
}
