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

// Package fixall applies independently computed rewrites of one document together.
package fixall

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"fillmore-labs.com/castguard/internal/rewrite"
	"fillmore-labs.com/castguard/internal/syntax"
)

// ErrNoFixes is returned when no fix could be applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Applied records a fix that is part of the outcome.
type Applied struct {
	Title string
	Edit  syntax.Edit
}

// Skipped records a fix that was not applied, with a reason.
type Skipped struct {
	Title  string
	Span   syntax.Span
	Reason string
}

// Outcome is the result of applying a batch of fixes.
type Outcome struct {
	// Tree is the fixed document, or the original when nothing was applied.
	Tree    *syntax.Tree
	Applied []Applied
	Skipped []Skipped
}

// Edits returns the applied edits in coordinates of the original document, ordered by position.
func (o *Outcome) Edits() []syntax.Edit {
	edits := make([]syntax.Edit, 0, len(o.Applied))
	for _, a := range o.Applied {
		edits = append(edits, a.Edit)
	}

	return edits
}

type candidate struct {
	res   *rewrite.Result
	order int
}

// Apply applies fixes computed on tree. Fixes are sorted by position, fixes
// overlapping an earlier one are skipped, and the remaining replacements are
// performed from the end of the document. The outcome does not depend on the
// order of fixes.
//
// When no fix applies, Apply returns an outcome with the original tree and [ErrNoFixes].
func Apply(ctx context.Context, tree *syntax.Tree, fixes []*rewrite.Result) (*Outcome, error) {
	out := &Outcome{Tree: tree}

	candidates := make([]candidate, 0, len(fixes))

	for i, res := range fixes {
		if res == nil {
			continue
		}

		if reason := validate(tree, res); reason != "" {
			out.Skipped = append(out.Skipped, Skipped{Title: res.Title, Span: res.Edit.Span, Reason: reason})

			continue
		}

		candidates = append(candidates, candidate{res: res, order: i})
	}

	sortCandidates(candidates)

	selected := make([]candidate, 0, len(candidates))
	end := -1

	for _, c := range candidates {
		span := c.res.Edit.Span
		if span.Start < end {
			out.Skipped = append(out.Skipped, Skipped{
				Title:  c.res.Title,
				Span:   span,
				Reason: "overlaps with a previous fix",
			})

			continue
		}

		selected = append(selected, c)
		end = span.End
	}

	if len(selected) == 0 {
		return out, ErrNoFixes
	}

	fixed := tree

	for _, c := range slices.Backward(selected) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, _, err := fixed.Replace(c.res.Target, c.res.Fragment)
		if err != nil {
			return nil, fmt.Errorf("apply fix at %s: %w", tree.Position(c.res.Edit.Span.Start), err)
		}

		fixed = next
	}

	for _, c := range selected {
		out.Applied = append(out.Applied, Applied{Title: c.res.Title, Edit: c.res.Edit})
	}

	out.Tree = fixed

	slog.Debug("Applied fixes",
		slog.String("file", tree.Name()), slog.Int("applied", len(out.Applied)), slog.Int("skipped", len(out.Skipped)))

	return out, nil
}

// validate returns a reason when res was not computed on tree.
func validate(tree *syntax.Tree, res *rewrite.Result) string {
	switch {
	case res.Fragment == nil:
		return "fix has no replacement"

	case !tree.Has(res.Target) || tree.Span(res.Target) != res.Edit.Span:
		return "fix was computed on a different document"

	default:
		return ""
	}
}

// sortCandidates orders by span start, span end and input order.
func sortCandidates(candidates []candidate) {
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		sa, sb := a.res.Edit.Span, b.res.Edit.Span

		return cmp.Or(
			cmp.Compare(sa.Start, sb.Start),
			cmp.Compare(sa.End, sb.End),
			cmp.Compare(a.order, b.order),
		)
	})
}
