// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

// Package match recognizes implicit conversions that invoke a user-defined operator.
package match

import (
	"fillmore-labs.com/castguard/internal/report"
	"fillmore-labs.com/castguard/internal/semantic"
)

// Evaluate reports an implicit conversion through a user-defined conversion operator.
//
// Builtin implicit conversions carry no operator method and explicit casts are
// not implicit, so neither is reported. Operations of other kinds are ignored.
// Evaluate holds no state and is safe for concurrent use.
func Evaluate(op semantic.Operation) (report.Diagnostic, bool) {
	if op == nil || op.Kind() != semantic.OpConversion {
		return report.Diagnostic{}, false
	}

	conv, ok := op.(*semantic.Conversion)
	if !ok || !conv.IsImplicit() || conv.OperatorMethod() == nil {
		return report.Diagnostic{}, false
	}

	return report.New(op.Span()), true
}

// Matcher evaluates all operations of a model.
type Matcher struct {
	model semantic.Model
}

// New creates a [Matcher] over model.
func New(model semantic.Model) Matcher {
	return Matcher{model: model}
}

// All returns the diagnostics of all matching operations, with positions filled in.
func (m Matcher) All() []report.Diagnostic {
	var diags []report.Diagnostic

	tree := m.model.Tree()
	for op := range m.model.Operations() {
		if d, ok := Evaluate(op); ok {
			d.Locate(tree)
			diags = append(diags, d)
		}
	}

	return diags
}
