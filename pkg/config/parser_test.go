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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	mockParser := &YAMLParser{}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Same(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{
			name:     "yaml_file",
			filename: "template.yaml",
			want:     &YAMLParser{},
		},
		{
			name:     "yml_file",
			filename: "template.yml",
			want:     &YAMLParser{},
		},
		{
			name:     "upper_case_extension",
			filename: "TEMPLATE.YAML",
			want:     &YAMLParser{},
		},
		{
			name:     "json_file",
			filename: "template.json",
			want:     &JSONParser{},
		},
		{
			name:     "hcl_file",
			filename: "template.hcl",
			want:     &HCLParser{},
		},
		{
			name:     "unknown_extension",
			filename: "template.edn",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestHCLParsing tests HCL manifests decode into untyped trees
func TestHCLParsing(t *testing.T) {
	tests := []struct {
		name        string
		manifest    string
		wantErr     bool
		errContains string
		check       func(t *testing.T, raw any)
	}{
		{
			name: "valid_hcl",
			manifest: `
root        = "skeleton"
description = "an app"
data-fn     = "stamp/go-module"
transform = [
  ["resources", "res", { "a.txt" = "b.txt" }, ["<<", ">>"], ":only", ":raw"],
  ["docs"],
]
`,
			check: func(t *testing.T, raw any) {
				top, ok := raw.(map[string]any)
				require.True(t, ok, "top level should be a mapping")
				assert.Equal(t, "skeleton", top["root"])
				assert.Equal(t, "stamp/go-module", top["data-fn"])

				transform, ok := top["transform"].([]any)
				require.True(t, ok, "transform should be a sequence")
				require.Len(t, transform, 2)

				first, ok := transform[0].([]any)
				require.True(t, ok)
				assert.Equal(t, []any{
					"resources",
					"res",
					map[string]any{"a.txt": "b.txt"},
					[]any{"<<", ">>"},
					":only",
					":raw",
				}, first)
			},
		},
		{
			name: "numbers_and_bools",
			manifest: `
count = 3
flag  = true
`,
			check: func(t *testing.T, raw any) {
				top := raw.(map[string]any)
				assert.Equal(t, float64(3), top["count"])
				assert.Equal(t, true, top["flag"])
			},
		},
		{
			name: "invalid_hcl_syntax",
			manifest: `
root =
`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name: "blocks_are_rejected",
			manifest: `
transform {
  src = "resources"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "variables_are_rejected",
			manifest:    `root = var.root`,
			wantErr:     true,
			errContains: "evaluating root",
		},
	}

	parser := &HCLParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := parser.Parse(ctx, "template.hcl", []byte(tt.manifest))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, raw)
			}
		})
	}
}

func TestJSONParsing(t *testing.T) {
	parser := &JSONParser{}
	ctx := context.Background()

	raw, err := parser.Parse(ctx, "template.json", []byte(`{"root": "root", "transform": [["a", "b", ":raw"]]}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"root":      "root",
		"transform": []any{[]any{"a", "b", ":raw"}},
	}, raw)

	_, err = parser.Parse(ctx, "template.json", []byte(`{"root": "root"} {"root": "other"}`))
	require.Error(t, err, "trailing values should be rejected")

	_, err = parser.Parse(ctx, "template.json", []byte(`{"root": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON")
}

func TestYAMLParsing(t *testing.T) {
	parser := &YAMLParser{}
	ctx := context.Background()

	raw, err := parser.Parse(ctx, "template.yaml", []byte(`
root: root
transform:
  - [resources, resources, {a.txt: b.txt}, ":only"]
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"root": "root",
		"transform": []any{
			[]any{"resources", "resources", map[string]any{"a.txt": "b.txt"}, ":only"},
		},
	}, raw)

	raw, err = parser.Parse(ctx, "template.yaml", nil)
	require.NoError(t, err, "an empty document is not a syntax error")
	assert.Nil(t, raw)

	_, err = parser.Parse(ctx, "template.yaml", []byte("root: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")
}
