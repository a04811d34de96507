package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stamp/pkg/config"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.RegisterData("d", func(ctx context.Context, base map[string]string, req config.Request) (map[string]string, error) {
		return map[string]string{"main": base["main"] + "!"}, nil
	})
	r.RegisterTemplate("t", func(ctx context.Context, req config.Request) (config.Request, error) {
		req.TargetDir = "custom"
		return req, nil
	})
	r.RegisterPostProcess("p", func(ctx context.Context, m *config.Manifest, req config.Request) error {
		return nil
	})

	ctx := context.Background()

	data, err := r.Data("d")
	require.NoError(t, err)
	out, err := data(ctx, map[string]string{"main": "widget"}, config.Request{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"main": "widget!"}, out)

	tmpl, err := r.Template("t")
	require.NoError(t, err)
	req, err := tmpl(ctx, config.Request{Name: "acme/widget"})
	require.NoError(t, err)
	assert.Equal(t, "custom", req.TargetDir)
	assert.Equal(t, "acme/widget", req.Name)

	_, err = r.PostProcess("p")
	require.NoError(t, err)

	assert.Equal(t, []string{"data-fn:d", "post-process-fn:p", "template-fn:t"}, r.Names())
}

func TestRegistryMissing(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		lookup func() error
		want   string
	}{
		{
			name:   "data",
			lookup: func() error { _, err := r.Data("nope"); return err },
			want:   `data-fn "nope"`,
		},
		{
			name:   "template",
			lookup: func() error { _, err := r.Template("nope"); return err },
			want:   `template-fn "nope"`,
		},
		{
			name:   "post_process",
			lookup: func() error { _, err := r.PostProcess("nope"); return err },
			want:   `post-process-fn "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHookNotRegistered)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
