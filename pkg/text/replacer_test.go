package text

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		delims       Delims
		content      string
		vars         map[string]string
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:         "simple_replacement",
			content:      "Hello {{name}}",
			vars:         map[string]string{"name": "foo"},
			want:         "Hello foo",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "every_occurrence",
			content:      "{{name}} and {{name}} and {{name}}",
			vars:         map[string]string{"name": "foo"},
			want:         "foo and foo and foo",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:         "multiple_keys",
			content:      "{{top}}/{{main}}",
			vars:         map[string]string{"top": "acme", "main": "widget"},
			want:         "acme/widget",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:      "unknown_placeholder_is_kept",
			content:   "Hello {{nobody}}",
			vars:      map[string]string{"name": "foo"},
			want:      "Hello {{nobody}}",
			wantCount: 0,
		},
		{
			name:         "unknown_then_known",
			content:      "{{nobody}} {{name}}",
			vars:         map[string]string{"name": "foo"},
			want:         "{{nobody}} foo",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "stacked_open_delimiters",
			content:      "{{{{name}}",
			vars:         map[string]string{"name": "foo"},
			want:         "{{foo",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:      "unterminated_placeholder",
			content:   "Hello {{name",
			vars:      map[string]string{"name": "foo"},
			want:      "Hello {{name",
			wantCount: 0,
		},
		{
			name:         "values_are_not_expanded_again",
			content:      "{{a}}",
			vars:         map[string]string{"a": "{{b}}", "b": "nope"},
			want:         "{{b}}",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "custom_delims",
			delims:       Delims{Open: "<%", Close: "%>"},
			content:      "<%name%> keeps {{name}}",
			vars:         map[string]string{"name": "foo"},
			want:         "foo keeps {{name}}",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "slash_keys",
			content:      "{{artifact/id}}",
			vars:         map[string]string{"artifact/id": "widget"},
			want:         "widget",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:      "value_equal_to_placeholder",
			content:   "{{x}}",
			vars:      map[string]string{"x": "{{x}}"},
			want:      "{{x}}",
			wantCount: 1,
		},
		{
			name:    "empty_content",
			content: "",
			vars:    map[string]string{"name": "foo"},
			want:    "",
		},
		{
			name:    "empty_vars",
			content: "{{name}}",
			want:    "{{name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReplacer(tt.delims)
			got, err := r.ReplaceText(context.Background(), strings.NewReader(tt.content), tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got.ModifiedContent))
			assert.Equal(t, tt.content, string(got.OriginalContent))
			assert.Equal(t, tt.wantCount, got.ReplacementCount)
			assert.Equal(t, tt.wantModified, got.WasModified)
		})
	}
}

func TestNewReplacerFallsBackToDefaultDelims(t *testing.T) {
	assert.Equal(t, DefaultDelims, NewReplacer(Delims{}).Delims())
	assert.Equal(t, DefaultDelims, NewReplacer(Delims{Open: "<%"}).Delims())
	assert.Equal(t, Delims{Open: "[[", Close: "]]"}, NewReplacer(Delims{Open: "[[", Close: "]]"}).Delims())
}

func TestReplaceStringPaths(t *testing.T) {
	r := NewReplacer(DefaultDelims)
	got, count := r.ReplaceString("src/{{main/file}}/core.go", map[string]string{"main/file": "acme/widget"})
	assert.Equal(t, "src/acme/widget/core.go", got)
	assert.Equal(t, 1, count)
}
