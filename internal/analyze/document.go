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

package analyze

import (
	"context"
	"log/slog"

	"fillmore-labs.com/castguard/internal/astutil"
	"fillmore-labs.com/castguard/internal/config"
	"fillmore-labs.com/castguard/internal/fixall"
	"fillmore-labs.com/castguard/internal/match"
	"fillmore-labs.com/castguard/internal/report"
	"fillmore-labs.com/castguard/internal/rewrite"
	"fillmore-labs.com/castguard/internal/semantic"
	"fillmore-labs.com/castguard/internal/syntax"
)

// Document is the analysis result of a single C# document.
type Document struct {
	Tree  *syntax.Tree
	Model semantic.Model

	// Generated is set for generated code.
	Generated bool

	// Diagnostics are the reported conversions in source order.
	Diagnostics []report.Diagnostic

	// Fixes are the rewrites of diagnostics that have one.
	Fixes []*rewrite.Result
}

// Fix applies all fixes of the document. See [fixall.Apply].
func (d *Document) Fix(ctx context.Context) (*fixall.Outcome, error) {
	return fixall.Apply(ctx, d.Tree, d.Fixes)
}

// evaluate reports all matching conversions of a document.
func (o *Options) evaluate(ctx context.Context, model semantic.Model) (Document, error) {
	tree := model.Tree()
	currentFile := astutil.NewCurrentFile(tree)

	doc := Document{Tree: tree, Model: model, Generated: currentFile.Generated()}

	// Skip generated files
	if doc.Generated && !o.Behavior.Enabled(config.IncludeGenerated) {
		slog.Debug("Skipping generated document", slog.String("file", tree.Name()))

		return doc, nil
	}

	suggest := o.Behavior.Enabled(config.SuggestFixes)
	rw := rewrite.New(o.Behavior.Enabled(config.QualifyNames))

	for op := range model.Operations() {
		if op.Kind() != semantic.OpConversion {
			continue
		}

		if err := ctx.Err(); err != nil {
			return Document{}, err
		}

		d, ok := match.Evaluate(op)
		if !ok {
			continue
		}

		// Skip conversions with nolint comment
		if currentFile.NoLintComment(d.Span.Start) {
			continue
		}

		d.Locate(tree)

		if suggest {
			res, err := rw.Rewrite(ctx, model, d.Span)
			if err != nil {
				return Document{}, err
			}

			if res != nil {
				d.Fixes = append(d.Fixes, res.Fix())
				doc.Fixes = append(doc.Fixes, res)
			}
		}

		doc.Diagnostics = append(doc.Diagnostics, d)
	}

	report.Sort(doc.Diagnostics)

	return doc, nil
}
