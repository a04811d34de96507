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

package status

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).WithContext(context.Background())
}

func TestWriteFile(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, dir string)
		info       FileInfo
		content    string
		wantStatus FileStatus
		wantErr    string
	}{
		{
			name:       "new_file_in_nested_dir",
			info:       FileInfo{Path: "src/acme/widget/core.go"},
			content:    "package widget\n",
			wantStatus: StatusNew,
		},
		{
			name: "overwrite_existing",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("old"), 0644))
			},
			info:       FileInfo{Path: "README.md"},
			content:    "new",
			wantStatus: StatusModified,
		},
		{
			name: "identical_content",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("same"), 0644))
			},
			info:       FileInfo{Path: "README.md"},
			content:    "same",
			wantStatus: StatusUnchanged,
		},
		{
			name:    "escaping_path",
			info:    FileInfo{Path: "../outside.txt"},
			content: "nope",
			wantErr: "escapes target directory",
		},
		{
			name:    "absolute_path",
			info:    FileInfo{Path: "/etc/passwd"},
			content: "nope",
			wantErr: "escapes target directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			mgr := New(dir)
			ctx := testContext(t)

			got, err := mgr.WriteFile(ctx, tt.info, []byte(tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, mgr.ListFiles(ctx))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, int64(len(tt.content)), got.Size)
			assert.NotEmpty(t, got.Checksum)

			data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(tt.info.Path)))
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))

			assert.Equal(t, []FileInfo{got}, mgr.ListFiles(ctx))

			entries, err := os.ReadDir(filepath.Dir(filepath.Join(dir, filepath.FromSlash(tt.info.Path))))
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotContains(t, e.Name(), ".tmp", "temp files should be cleaned up")
			}
		})
	}
}

func TestWriteFilePreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not preserved on windows")
	}

	dir := t.TempDir()
	mgr := New(dir)

	_, err := mgr.WriteFile(testContext(t), FileInfo{Path: "bin/run.sh", Mode: 0755}, []byte("#!/bin/sh\n"))
	require.NoError(t, err)

	fi, err := os.Stat(filepath.Join(dir, "bin", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), fi.Mode().Perm())
}

func TestWriteFileModeChangeIsModified(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not preserved on windows")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.sh"), []byte("#!/bin/sh\n"), 0644))
	require.NoError(t, os.Chmod(filepath.Join(dir, "run.sh"), 0644))
	mgr := New(dir)

	got, err := mgr.WriteFile(testContext(t), FileInfo{Path: "run.sh", Mode: 0755}, []byte("#!/bin/sh\n"))
	require.NoError(t, err)
	assert.Equal(t, StatusModified, got.Status)

	fi, err := os.Stat(filepath.Join(dir, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), fi.Mode().Perm())

	got, err = mgr.WriteFile(testContext(t), FileInfo{Path: "run.sh", Mode: 0755}, []byte("#!/bin/sh\n"))
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, got.Status)
}

func TestExistsAndRemoveAll(t *testing.T) {
	ctx := testContext(t)
	dir := filepath.Join(t.TempDir(), "target")
	mgr := New(dir)

	exists, err := mgr.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = mgr.WriteFile(ctx, FileInfo{Path: "a/b.txt"}, []byte("b"))
	require.NoError(t, err)

	exists, err = mgr.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mgr.RemoveAll(ctx))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, mgr.ListFiles(ctx))
}

func TestExistsOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := New(path).Exists(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestListFilesSorted(t *testing.T) {
	ctx := testContext(t)
	mgr := New(t.TempDir())

	for _, p := range []string{"z.txt", "a/b.txt", "m.txt"} {
		_, err := mgr.WriteFile(ctx, FileInfo{Path: p}, []byte(p))
		require.NoError(t, err)
	}

	var paths []string
	for _, f := range mgr.ListFiles(ctx) {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"a/b.txt", "m.txt", "z.txt"}, paths)
}

func TestProgress(t *testing.T) {
	ctx := testContext(t)
	mgr := New(t.TempDir())

	mgr.StartOperation(ctx, 2)
	mgr.UpdateProgress(ctx, 1)
	mgr.UpdateProgress(ctx, 2)
	mgr.FinishOperation(ctx)

	assert.Equal(t, 2, mgr.total)
	assert.Equal(t, 2, mgr.processed)
}
