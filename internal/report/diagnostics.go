// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"fillmore-labs.com/castguard/internal/syntax"
)

const (
	// RuleID identifies the implicit conversion diagnostic.
	RuleID = "CG1001"

	// Category is the rule category.
	Category = "Usage"

	// Message is the diagnostic message.
	Message = "Do not use implicit cast operator, use constructor instead."

	// FixTitle is the title of the suggested fix. It doubles as equivalence key.
	FixTitle = "Replace implicit cast operator"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

//go:generate go tool stringer -type Severity -linecomment
const (
	severityUnset Severity = iota // unset
	SeverityError                 // error
	SeverityWarning               // warning
	SeverityInfo                  // info
)

// MarshalJSON serializes the severity as a JSON string.
// An unset severity is marshaled as "warning".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		s = SeverityWarning
	}

	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	for _, sev := range [...]Severity{SeverityError, SeverityWarning, SeverityInfo} {
		if sev.String() == str {
			*s = sev

			return nil
		}
	}

	return fmt.Errorf("unknown severity: %q", str)
}

// Position identifies a location in source code.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line:col format.
func (p Position) String() string {
	switch {
	case p.Line == 0:
		return p.File

	case p.Col > 0:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)

	default:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
}

// Fix is a suggested change resolving a diagnostic.
type Fix struct {
	Title          string        `json:"title"`
	EquivalenceKey string        `json:"equivalence_key"`
	Edits          []syntax.Edit `json:"edits"`
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	RuleID   string      `json:"rule"`
	Category string      `json:"category"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Pos      Position    `json:"pos"`
	Span     syntax.Span `json:"span"`
	Fixes    []Fix       `json:"fixes,omitempty"`
}

// New creates the implicit conversion diagnostic for span. The position is
// filled in by [Diagnostic.Locate].
func New(span syntax.Span) Diagnostic {
	return Diagnostic{
		RuleID:   RuleID,
		Category: Category,
		Severity: SeverityWarning,
		Message:  Message,
		Span:     span,
	}
}

// Locate fills in the source position of the diagnostic.
func (d *Diagnostic) Locate(tree *syntax.Tree) {
	pos := tree.Position(d.Span.Start)
	d.Pos = Position{File: tree.Name(), Line: pos.Line, Col: pos.Column}
}

// String returns the diagnostic in go vet style: file:line:col: message (rule).
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, d.RuleID)
}

// Sort orders diagnostics by file and position.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos.File, b.Pos.File),
			cmp.Compare(a.Span.Start, b.Span.Start),
			cmp.Compare(a.Span.End, b.Span.End),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
}
