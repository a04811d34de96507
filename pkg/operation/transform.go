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

package operation

import (
	"bytes"
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/stamp/pkg/config"
	"github.com/walteh/stamp/pkg/log"
	"github.com/walteh/stamp/pkg/status"
	"github.com/walteh/stamp/pkg/text"
	"github.com/walteh/stamp/pkg/vars"
	"gitlab.com/tozd/go/errors"
)

// 📦 Transform copies one directory entry of a template into the target.
type Transform struct {
	Spec config.TransformSpec
	// Source is the template directory; Spec.Src is relative to it.
	Source fs.FS
	Target *status.Manager
	Vars   vars.Map
	// Ignore holds doublestar patterns matched against paths relative to Spec.Src.
	Ignore  []string
	Console *log.Logger
}

var _ Operation = (*Transform)(nil)

func (t *Transform) Name() string {
	return "transform " + t.Spec.String()
}

// 🏃 Execute runs the transform
func (t *Transform) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("src", t.Spec.Src).Logger()

	fi, err := fs.Stat(t.Source, t.Spec.Src)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Msg("source directory missing, skipping")
		return nil
	}
	if err != nil {
		return errors.Errorf("checking source directory: %w", err)
	}
	if !fi.IsDir() {
		return errors.Errorf("source %s is not a directory", t.Spec.Src)
	}

	src, err := fs.Sub(t.Source, t.Spec.Src)
	if err != nil {
		return errors.Errorf("opening source directory: %w", err)
	}

	replacer := text.NewReplacer(t.Spec.EffectiveDelims())

	candidates, err := t.candidates(ctx, src)
	if err != nil {
		return err
	}

	t.Target.StartOperation(ctx, len(candidates))
	defer t.Target.FinishOperation(ctx)

	for i, rel := range candidates {
		if err := t.processFile(ctx, src, replacer, rel); err != nil {
			return errors.Errorf("processing %s: %w", path.Join(t.Spec.Src, rel), err)
		}
		t.Target.UpdateProgress(ctx, i+1)
	}

	return nil
}

// 🔍 candidates lists the source-relative files to copy, sorted.
func (t *Transform) candidates(ctx context.Context, src fs.FS) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var files []string
	if t.Spec.Opts.Only {
		files = t.Spec.FileKeys()
	} else {
		err := doublestar.GlobWalk(src, "**", func(p string, d fs.DirEntry) error {
			if d.IsDir() {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("listing source files: %w", err)
		}

		present := make(map[string]bool, len(files))
		for _, f := range files {
			present[f] = true
		}
		for _, key := range t.Spec.FileKeys() {
			if !present[key] {
				logger.Debug().Str("file", key).Str("src", t.Spec.Src).Msg("renamed file not present in source, skipping")
			}
		}
	}

	out := files[:0]
	for _, f := range files {
		if t.shouldIgnore(ctx, f) {
			continue
		}
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

// 🔍 shouldIgnore checks if a file should be ignored
func (t *Transform) shouldIgnore(ctx context.Context, rel string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range t.Ignore {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// TargetPath computes where a source-relative file lands in the project.
// Both the entry target and the file path are placeholder-substituted, so a
// value like {{file}} can expand into nested directories.
func (t *Transform) TargetPath(replacer *text.Replacer, rel string) (string, error) {
	name := rel
	if renamed, ok := t.Spec.Files[rel]; ok {
		name = renamed
	}
	name, _ = replacer.ReplaceString(name, t.Vars)
	dir, _ := replacer.ReplaceString(t.Spec.Target, t.Vars)

	out := path.Clean(path.Join(dir, name))
	if !filepath.IsLocal(filepath.FromSlash(out)) {
		return "", errors.Errorf("rendered path %q escapes the project directory", out)
	}
	return out, nil
}

// 📄 processFile copies or renders a single file
func (t *Transform) processFile(ctx context.Context, src fs.FS, replacer *text.Replacer, rel string) error {
	logger := zerolog.Ctx(ctx)

	fi, err := fs.Stat(src, rel)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("file", rel).Str("src", t.Spec.Src).Msg("listed file not present in source, skipping")
		return nil
	}
	if err != nil {
		return errors.Errorf("checking source file: %w", err)
	}
	if fi.IsDir() {
		return errors.Errorf("expected a file, found a directory")
	}

	content, err := fs.ReadFile(src, rel)
	if err != nil {
		return errors.Errorf("reading source file: %w", err)
	}

	target, err := t.TargetPath(replacer, rel)
	if err != nil {
		return err
	}

	info := status.FileInfo{
		Path:   target,
		Source: path.Join(t.Spec.Src, rel),
		Mode:   fileMode(fi.Mode()),
		Raw:    t.Spec.Opts.Raw,
	}

	if !t.Spec.Opts.Raw {
		result, err := replacer.ReplaceText(ctx, bytes.NewReader(content), t.Vars)
		if err != nil {
			return errors.Errorf("rendering: %w", err)
		}
		content = result.ModifiedContent
		info.Replacements = result.ReplacementCount
	}

	info, err = t.Target.WriteFile(ctx, info, content)
	if err != nil {
		return errors.Errorf("writing %s: %w", target, err)
	}

	if t.Console != nil {
		t.Console.LogFileOperation(ctx, fileOperation(info))
	}
	return nil
}

// fileMode keeps the executable bit of a template file. Embedded templates
// are read-only, so the remaining bits are normalized.
func fileMode(m fs.FileMode) fs.FileMode {
	if m.Perm()&0111 != 0 {
		return 0755
	}
	return 0644
}

func fileOperation(info status.FileInfo) log.FileOperation {
	op := log.FileOperation{
		Path:         info.Path,
		Source:       info.Source,
		IsRaw:        info.Raw,
		Replacements: info.Replacements,
	}
	switch info.Status {
	case status.StatusNew:
		op.Status = "NEW"
		op.IsNew = true
	case status.StatusModified:
		op.Status = "OVERWRITTEN"
		op.IsModified = true
	default:
		op.Status = "no change"
	}
	return op
}
