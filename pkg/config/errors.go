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
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrManifestUnreadable is matched by errors whose manifest source is not
	// valid syntax for its format.
	ErrManifestUnreadable = errors.Base("manifest unreadable")

	// ErrManifestInvalid is matched by errors whose manifest parsed but does
	// not conform to the manifest shape. Use errors.As with *SchemaViolation
	// to get the individual violations.
	ErrManifestInvalid = errors.Base("manifest invalid")
)

// ParseError reports a manifest that its parser could not decode.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrManifestUnreadable, e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrManifestUnreadable }

// AlternativeFailure records why one alternative of the transform entry
// grammar did not match.
type AlternativeFailure struct {
	Alternative string // e.g. "files+delims+opts"
	Index       int    // element index inside the entry where matching stopped
	Reason      string
}

// 🚨 Violation is a single place where a manifest does not conform.
type Violation struct {
	Path         string // e.g. "transform[1][2]"
	Message      string
	Alternatives []AlternativeFailure
}

func (v Violation) String() string {
	var b strings.Builder
	if v.Path == "" {
		b.WriteString("(manifest)")
	} else {
		b.WriteString(v.Path)
	}
	b.WriteString(": ")
	b.WriteString(v.Message)
	for _, alt := range v.Alternatives {
		fmt.Fprintf(&b, "\n    - %s: failed at element %d: %s", alt.Alternative, alt.Index, alt.Reason)
	}
	return b.String()
}

// SchemaViolation lists every violation found in a manifest, not only the
// first one.
type SchemaViolation struct {
	Violations []Violation
}

func (e *SchemaViolation) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d violation", ErrManifestInvalid, len(e.Violations))
	if len(e.Violations) != 1 {
		b.WriteString("s")
	}
	b.WriteString("):")
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

func (e *SchemaViolation) Is(target error) bool { return target == ErrManifestInvalid }

// Paths returns the path of each violation in report order.
func (e *SchemaViolation) Paths() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Path)
	}
	return out
}
