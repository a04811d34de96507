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
	"context"

	"github.com/walteh/stamp/pkg/config"
	"github.com/walteh/stamp/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrTargetExists is returned when the target directory exists and the
// overwrite policy does not allow touching it.
var ErrTargetExists = errors.Base("target directory exists")

// 🚦 State is the outcome of the overwrite policy.
type State int

const (
	Absent             State = iota // target missing, proceed
	PresentNoOverwrite              // target present, fatal
	PresentOverwrite                // target present, write over existing files
	PresentDelete                   // target present, remove it first
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case PresentNoOverwrite:
		return "present-no-overwrite"
	case PresentOverwrite:
		return "present-overwrite"
	case PresentDelete:
		return "present-delete"
	default:
		return "unknown"
	}
}

// Decide maps target existence and the overwrite flag to a State. Nothing
// else influences the result. PresentNoOverwrite is returned together with
// ErrTargetExists.
func Decide(exists bool, o config.Overwrite) (State, error) {
	if !exists {
		return Absent, nil
	}
	switch o {
	case config.OverwriteUnset, config.OverwriteNone:
		return PresentNoOverwrite, ErrTargetExists
	case config.OverwriteTrue:
		return PresentOverwrite, nil
	case config.OverwriteDelete:
		return PresentDelete, nil
	default:
		return PresentNoOverwrite, errors.Errorf("invalid overwrite policy %q", o)
	}
}

// 🗑️ Remover deletes a directory tree.
type Remover interface {
	RemoveTree(ctx context.Context, path string) error
}

// RemoverFunc adapts a function to Remover.
type RemoverFunc func(ctx context.Context, path string) error

func (f RemoverFunc) RemoveTree(ctx context.Context, path string) error {
	return f(ctx, path)
}

// DefaultRemover removes the tree from the local filesystem.
var DefaultRemover Remover = RemoverFunc(func(ctx context.Context, path string) error {
	return status.New(path).RemoveAll(ctx)
})
