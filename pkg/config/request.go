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
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// DefaultVersion is the project version used when the request has none.
const DefaultVersion = "0.1.0-SNAPSHOT"

// Overwrite is the policy applied when the target directory already exists.
type Overwrite string

const (
	OverwriteUnset  Overwrite = ""       // behaves like OverwriteNone unless a wrapper picks another default
	OverwriteNone   Overwrite = "none"   // fail if the target exists
	OverwriteTrue   Overwrite = "true"   // write over existing files in place
	OverwriteDelete Overwrite = "delete" // remove the target, then create
)

// ParseOverwrite converts a user supplied flag value into an Overwrite.
func ParseOverwrite(s string) (Overwrite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return OverwriteUnset, nil
	case "none", "false", "no":
		return OverwriteNone, nil
	case "true", "yes":
		return OverwriteTrue, nil
	case "delete":
		return OverwriteDelete, nil
	default:
		return "", errors.Errorf("invalid overwrite policy %q: expected none, true or delete", s)
	}
}

// 📦 Request is the input of one creation run. Requests are values; hooks
// return modified copies instead of mutating them.
type Request struct {
	Template    string
	Name        string
	SrcDirs     []string
	TargetDir   string
	Overwrite   Overwrite
	Description string
	Version     string
	Developer   string
	User        string
	Now         time.Time
	Vars        map[string]string
}

// 🔍 Validate checks the fields every run needs
func (r Request) Validate() error {
	if strings.TrimSpace(r.Template) == "" {
		return errors.Errorf("template is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.Errorf("name is required")
	}
	group, artifact, qualified := ParseName(r.Name)
	if artifact == "" {
		return errors.Errorf("name %q has no artifact part", r.Name)
	}
	if qualified && group == "" {
		return errors.Errorf("name %q has an empty group part", r.Name)
	}
	if artifact == "." || !filepath.IsLocal(artifact) {
		return errors.Errorf("name %q has an artifact that is not a plain directory name", r.Name)
	}
	switch r.Overwrite {
	case OverwriteUnset, OverwriteNone, OverwriteTrue, OverwriteDelete:
	default:
		return errors.Errorf("invalid overwrite policy %q", r.Overwrite)
	}
	return nil
}

// WithDefaults returns a copy of the request with derived defaults filled in.
func (r Request) WithDefaults() Request {
	out := r.Clone()
	if out.TargetDir == "" {
		_, artifact, _ := ParseName(out.Name)
		out.TargetDir = artifact
	}
	if out.Version == "" {
		out.Version = DefaultVersion
	}
	return out
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	out := r
	out.SrcDirs = slices.Clone(r.SrcDirs)
	if r.Vars != nil {
		out.Vars = maps.Clone(r.Vars)
	}
	return out
}

// 📝 String returns a short description of the request
func (r Request) String() string {
	target := r.TargetDir
	if target == "" {
		target = "(default)"
	}
	return fmt.Sprintf("%s from %s -> %s", r.Name, r.Template, target)
}

// ParseName splits a project name into its group and artifact parts.
//
//	acme/widget  -> acme, widget
//	acme.widget  -> acme, widget
//	widget       -> widget, widget (unqualified)
//
// The last '/' separates the parts; without one, the last '.' does.
func ParseName(name string) (group, artifact string, qualified bool) {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i], name[i+1:], true
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return name, name, false
}
