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

package resolve

import (
	"context"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/stamp/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// manifestGlob matches every manifest name in config.ManifestNames.
const manifestGlob = "**/template.{yaml,yml,json,hcl}"

// 📋 Listing describes one template found by Discover.
type Listing struct {
	ID          string
	Root        string
	Description string
	// Shadowed is set when an earlier root already provides the same id.
	Shadowed bool
	// Err holds the manifest load error, if any.
	Err error
}

// Discover lists every template under roots. Broken manifests are reported
// through Listing.Err rather than failing the walk.
func Discover(ctx context.Context, roots []Root) ([]Listing, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]bool)
	var out []Listing
	for _, root := range roots {
		matches, err := doublestar.Glob(root.FS, manifestGlob)
		if err != nil {
			return nil, errors.Errorf("walking template root %s: %w", root.Name, err)
		}
		sort.Strings(matches)

		ids := make(map[string]bool)
		for _, match := range matches {
			dir := path.Dir(match)
			if dir == "." || ids[dir] {
				continue
			}
			ids[dir] = true

			l := Listing{ID: dir, Root: root.Name, Shadowed: seen[dir]}
			m, err := config.LoadFS(ctx, root.FS, match)
			if err != nil {
				logger.Debug().Err(err).Str("manifest", match).Msg("template manifest failed to load")
				l.Err = err
			} else {
				l.Description = m.Description
			}
			out = append(out, l)
		}
		for id := range ids {
			seen[id] = true
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return !out[i].Shadowed && out[j].Shadowed
	})
	return out, nil
}
