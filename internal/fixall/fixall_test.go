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

package fixall_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/castguard/internal/fixall"
	"fillmore-labs.com/castguard/internal/match"
	"fillmore-labs.com/castguard/internal/report"
	"fillmore-labs.com/castguard/internal/rewrite"
	"fillmore-labs.com/castguard/internal/semantic"
	"fillmore-labs.com/castguard/internal/syntax"
	"fillmore-labs.com/castguard/internal/testsource"
)

const body = `Target a = "A";
            Target b = ("B");
            Target c;
            c = "C";`

// rewrites computes one rewrite per diagnostic on the original document.
func rewrites(tb testing.TB, m semantic.Model) []*rewrite.Result {
	tb.Helper()

	var results []*rewrite.Result

	for _, d := range match.New(m).All() {
		res, err := rewrite.New(false).Rewrite(tb.Context(), m, d.Span)
		if err != nil {
			tb.Fatalf("Can't rewrite: %v", err)
		}

		if res == nil {
			tb.Fatalf("Rewrite at %s declined", d.Pos)
		}

		results = append(results, res)
	}

	return results
}

func TestApply(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, testsource.Target, body)

	fixes := rewrites(t, m)
	if len(fixes) != 3 {
		t.Fatalf("Got %d fixes, want 3", len(fixes))
	}

	out, err := Apply(t.Context(), m.Tree(), fixes)
	if err != nil {
		t.Fatalf("Can't apply fixes: %v", err)
	}

	if len(out.Applied) != 3 || len(out.Skipped) != 0 {
		t.Errorf("Got %d applied and %d skipped fixes, want 3 and 0", len(out.Applied), len(out.Skipped))
	}

	got := string(out.Tree.Source())
	for _, want := range []string{
		`Target a = new Target("A");`,
		`Target b = new Target("B");`,
		`c = new Target("C");`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Got source\n%s\nwant it to contain %q", got, want)
		}
	}

	again, err := semantic.Bind(t.Context(), out.Tree)
	if err != nil {
		t.Fatalf("Can't bind fixed tree: %v", err)
	}

	if diags := match.New(again).All(); len(diags) != 0 {
		t.Errorf("Got %d diagnostics after fixing, want none", len(diags))
	}
}

func TestApplyOrderIndependent(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, testsource.Target, body)
	fixes := rewrites(t, m)

	want, err := report.ApplyEdits(m.Tree().Source(), edits(fixes))
	if err != nil {
		t.Fatalf("Can't apply edits: %v", err)
	}

	base, err := Apply(t.Context(), m.Tree(), fixes)
	if err != nil {
		t.Fatalf("Can't apply fixes: %v", err)
	}

	if got := string(base.Tree.Source()); got != string(want) {
		t.Errorf("Got source\n%s\nwant\n%s", got, want)
	}

	orders := [][]int{{2, 1, 0}, {1, 0, 2}, {0, 2, 1}}
	for _, order := range orders {
		permuted := make([]*rewrite.Result, 0, len(order))
		for _, i := range order {
			permuted = append(permuted, fixes[i])
		}

		out, err := Apply(t.Context(), m.Tree(), permuted)
		if err != nil {
			t.Fatalf("Can't apply fixes in order %v: %v", order, err)
		}

		if !syntax.Equal(out.Tree, base.Tree) {
			t.Errorf("Got different tree for order %v:\n%s", order, out.Tree.Source())
		}

		if !slices.Equal(out.Edits(), base.Edits()) {
			t.Errorf("Got edits %v for order %v, want %v", out.Edits(), order, base.Edits())
		}
	}
}

func edits(fixes []*rewrite.Result) []syntax.Edit {
	var result []syntax.Edit
	for _, f := range fixes {
		result = append(result, f.Fix().Edits...)
	}

	return result
}

func TestApplyOverlap(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, testsource.Target, `Target a = "A";`)
	fixes := rewrites(t, m)

	out, err := Apply(t.Context(), m.Tree(), []*rewrite.Result{fixes[0], nil, fixes[0]})
	if err != nil {
		t.Fatalf("Can't apply fixes: %v", err)
	}

	if len(out.Applied) != 1 || len(out.Skipped) != 1 {
		t.Fatalf("Got %d applied and %d skipped fixes, want 1 and 1", len(out.Applied), len(out.Skipped))
	}

	if got, want := out.Skipped[0].Reason, "overlaps with a previous fix"; got != want {
		t.Errorf("Got reason %q, want %q", got, want)
	}
}

func TestApplyForeignTree(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, testsource.Target, `Target a = "A";`)
	other := testsource.Statements(t, testsource.Target, `Target longer = "Longer";`)

	out, err := Apply(t.Context(), m.Tree(), rewrites(t, other))
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("Got error %v, want %v", err, ErrNoFixes)
	}

	if out.Tree != m.Tree() {
		t.Error("Got modified tree")
	}

	if len(out.Skipped) != 1 {
		t.Errorf("Got %d skipped fixes, want 1", len(out.Skipped))
	}
}

func TestApplyNone(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, testsource.Target, "")

	if _, err := Apply(t.Context(), m.Tree(), nil); !errors.Is(err, ErrNoFixes) {
		t.Errorf("Got error %v, want %v", err, ErrNoFixes)
	}
}

func TestApplyCanceled(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, testsource.Target, body)
	fixes := rewrites(t, m)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := Apply(ctx, m.Tree(), fixes); !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}
}
