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

package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/stamp/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// createFlags are the flags shared by every command that creates a project.
type createFlags struct {
	srcDirs     []string
	targetDir   string
	overwrite   string
	vars        []string
	description string
	version     string
	developer   string
}

func (f *createFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVar(&f.srcDirs, "src-dir", nil, "extra directory to search for templates (repeatable, searched first)")
	fl.StringVarP(&f.targetDir, "target-dir", "t", "", "directory to create (defaults to the artifact name)")
	fl.StringVarP(&f.overwrite, "overwrite", "o", "", "policy when the target exists: none, true or delete")
	fl.StringArrayVar(&f.vars, "var", nil, "extra substitution as key=value (repeatable)")
	fl.StringVar(&f.description, "description", "", "project description")
	fl.StringVar(&f.version, "version-string", "", "initial project version")
	fl.StringVar(&f.developer, "developer", "", "developer name used in generated files")
}

// request builds a creation request from the flags.
func (f *createFlags) request(template, name string) (config.Request, error) {
	overwrite, err := config.ParseOverwrite(f.overwrite)
	if err != nil {
		return config.Request{}, err
	}

	vars, err := parseVars(f.vars)
	if err != nil {
		return config.Request{}, err
	}

	return config.Request{
		Template:    template,
		Name:        name,
		SrcDirs:     f.srcDirs,
		TargetDir:   f.targetDir,
		Overwrite:   overwrite,
		Description: f.description,
		Version:     f.version,
		Developer:   f.developer,
		User:        os.Getenv("USER"),
		Vars:        vars,
	}, nil
}

// parseVars turns key=value pairs into a map. Later pairs win.
func parseVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.Errorf("invalid --var %q: expected key=value", pair)
		}
		out[k] = v
	}
	return out, nil
}
