package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stamp/pkg/config"
)

func TestParseVars(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty"},
		{name: "pairs", pairs: []string{"a=1", "b=x=y", "a=2"}, want: map[string]string{"a": "2", "b": "x=y"}},
		{name: "empty_value", pairs: []string{"a="}, want: map[string]string{"a": ""}},
		{name: "no_equals", pairs: []string{"a"}, wantErr: true},
		{name: "empty_key", pairs: []string{"=v"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVars(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateFlagsRequest(t *testing.T) {
	t.Setenv("USER", "jdoe")

	f := createFlags{
		srcDirs:     []string{"a", "b"},
		targetDir:   "out",
		overwrite:   "delete",
		vars:        []string{"k=v"},
		description: "d",
		version:     "1.0.0",
	}
	req, err := f.request("app", "acme/widget")
	require.NoError(t, err)
	assert.Equal(t, config.Request{
		Template:    "app",
		Name:        "acme/widget",
		SrcDirs:     []string{"a", "b"},
		TargetDir:   "out",
		Overwrite:   config.OverwriteDelete,
		Description: "d",
		Version:     "1.0.0",
		User:        "jdoe",
		Vars:        map[string]string{"k": "v"},
	}, req)

	f.overwrite = "bogus"
	_, err = f.request("app", "acme/widget")
	assert.Error(t, err)
}
