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
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/castguard/internal/syntax"
)

var (
	// ErrOverlap is returned when text edits overlap.
	ErrOverlap = errors.New("overlapping edits")

	// ErrOutOfRange is returned for edits outside of the source.
	ErrOutOfRange = errors.New("edit out of range")
)

// ApplyEdits applies non-overlapping text edits to src and returns the result.
// The order of edits does not matter; src is not modified.
func ApplyEdits(src []byte, edits []syntax.Edit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b syntax.Edit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})

	size := len(src)
	for i, e := range sorted {
		if e.Span.Start < 0 || e.Span.End < e.Span.Start || e.Span.End > len(src) {
			return nil, fmt.Errorf("edit [%d,%d) of %d bytes: %w", e.Span.Start, e.Span.End, len(src), ErrOutOfRange)
		}

		if i > 0 && sorted[i-1].Span.End > e.Span.Start {
			return nil, fmt.Errorf("edits [%d,%d) and [%d,%d): %w",
				sorted[i-1].Span.Start, sorted[i-1].Span.End, e.Span.Start, e.Span.End, ErrOverlap)
		}

		size += len(e.NewText) - e.Span.Len()
	}

	out := make([]byte, 0, size)
	last := 0

	for _, e := range sorted {
		out = append(out, src[last:e.Span.Start]...)
		out = append(out, e.NewText...)
		last = e.Span.End
	}

	return append(out, src[last:]...), nil
}
