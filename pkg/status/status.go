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
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what a write did to a target file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File didn't exist in the target
	StatusModified             // File existed and was overwritten
	StatusUnchanged            // File existed with identical content
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about a written file
type FileInfo struct {
	Path         string      // Path relative to the target directory
	Source       string      // Template path the file was produced from
	Status       FileStatus  // What the write did
	Size         int64       // File size in bytes
	Mode         fs.FileMode // File permissions
	Raw          bool        // Copied verbatim
	Replacements int         // Placeholders substituted
	Checksum     string      // Content hash
}

// 🔧 Manager writes files below a target directory and tracks what it wrote.
type Manager struct {
	baseDir   string
	formatter FileFormatter

	mu    sync.RWMutex
	files map[string]FileInfo

	total     int
	processed int
}

// 🏭 New creates a manager rooted at baseDir with the default formatter
func New(baseDir string) *Manager {
	return NewManager(baseDir, NewDefaultFileFormatter())
}

// 🏭 NewManager creates a manager rooted at baseDir
func NewManager(baseDir string, formatter FileFormatter) *Manager {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		formatter: formatter,
		files:     make(map[string]FileInfo),
	}
}

// BaseDir returns the target directory.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 🔒 absPath maps a slash-separated relative path into the target directory.
func (m *Manager) absPath(path string) (string, error) {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return "", errors.Errorf("path %q escapes target directory %s", path, m.baseDir)
	}
	return filepath.Join(m.baseDir, rel), nil
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Exists reports whether the target directory itself exists.
func (m *Manager) Exists(ctx context.Context) (bool, error) {
	fi, err := os.Stat(m.baseDir)
	if err == nil {
		if !fi.IsDir() {
			return false, errors.Errorf("target %s exists and is not a directory", m.baseDir)
		}
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking target directory: %w", err)
}

// WriteFile writes content to path, creating parent directories as needed.
// Files whose content and permissions already match are left alone.
func (m *Manager) WriteFile(ctx context.Context, info FileInfo, content []byte) (FileInfo, error) {
	abs, err := m.absPath(info.Path)
	if err != nil {
		return info, err
	}
	if info.Mode == 0 {
		info.Mode = 0644
	}
	info.Size = int64(len(content))
	info.Checksum = calculateChecksum(content)
	info.Status = StatusNew

	current, err := os.ReadFile(abs)
	switch {
	case err == nil && bytes.Equal(current, content):
		info.Status = StatusUnchanged
		fi, err := os.Stat(abs)
		if err != nil {
			return info, errors.Errorf("checking existing file: %w", err)
		}
		if fi.Mode().Perm() != info.Mode.Perm() {
			info.Status = StatusModified
		}
	case err == nil:
		info.Status = StatusModified
	case !errors.Is(err, fs.ErrNotExist):
		return info, errors.Errorf("reading existing file: %w", err)
	}

	if info.Status != StatusUnchanged {
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return info, errors.Errorf("creating parent directories: %w", err)
		}
		if err := writeFileAtomic(abs, content, info.Mode); err != nil {
			return info, err
		}
	}

	m.TrackFile(ctx, info)
	return info, nil
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it into place.
func writeFileAtomic(abs string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpPath, abs); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// RemoveAll deletes the target directory and everything below it.
func (m *Manager) RemoveAll(ctx context.Context) error {
	if err := os.RemoveAll(m.baseDir); err != nil {
		return errors.Errorf("removing directory: %w", err)
	}
	m.mu.Lock()
	m.files = make(map[string]FileInfo)
	m.mu.Unlock()
	return nil
}

// TrackFile records info and logs it through the formatter.
func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[info.Path] = info
	zerolog.Ctx(ctx).Debug().
		Str("path", info.Path).
		Str("source", info.Source).
		Str("status", info.Status.String()).
		Bool("raw", info.Raw).
		Int("replacements", info.Replacements).
		Msg(m.formatter.FormatFileOperation(info))
}

// ListFiles returns every tracked file sorted by path.
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	zerolog.Ctx(ctx).Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.processed, m.total))
}
