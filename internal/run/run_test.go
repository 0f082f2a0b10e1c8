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

package run_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/castguard/internal/config"
	. "fillmore-labs.com/castguard/internal/run"
	"fillmore-labs.com/castguard/internal/testsource"
)

const program = `namespace Test
{
` + testsource.Target + `
    class Program
    {
        Target t = "Hello";
    }
}
`

// newPass creates a pass over a Go package in dir holding the named Go files.
func newPass(tb testing.TB, dir, pkg string, names ...string) (*analysis.Pass, *[]analysis.Diagnostic) {
	tb.Helper()

	fset := token.NewFileSet()

	var files []*ast.File

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("package "+pkg+"\n"), 0o644); err != nil {
			tb.Fatal(err)
		}

		f, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			tb.Fatal(err)
		}

		files = append(files, f)
	}

	var diags []analysis.Diagnostic

	p := &analysis.Pass{
		Fset:   fset,
		Files:  files,
		Pkg:    types.NewPackage("example.com/"+pkg, pkg),
		Report: func(d analysis.Diagnostic) { diags = append(diags, d) },
	}

	return p, &diags
}

func writeSource(tb testing.TB, dir string) {
	tb.Helper()

	if err := os.WriteFile(filepath.Join(dir, "Program.cs"), []byte(program), 0o644); err != nil {
		tb.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir)

	p, diags := newPass(t, dir, "a", "a.go")

	if _, err := DefaultOptions().Run(p); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(*diags) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(*diags))
	}

	d := (*diags)[0]

	pos := p.Fset.Position(d.Pos)
	if got, want := filepath.Base(pos.Filename), "Program.cs"; got != want {
		t.Errorf("Got file %s, want %s", got, want)
	}

	if pos.Line != 12 || pos.Column != 20 {
		t.Errorf("Got position %d:%d, want 12:20", pos.Line, pos.Column)
	}

	if d.Category != "CG1001" {
		t.Errorf("Got category %q, want CG1001", d.Category)
	}

	if len(d.SuggestedFixes) != 1 || len(d.SuggestedFixes[0].TextEdits) != 1 {
		t.Fatalf("Got suggested fixes %+v", d.SuggestedFixes)
	}

	edit := d.SuggestedFixes[0].TextEdits[0]
	if got, want := string(edit.NewText), `new Test.Target("Hello")`; got != want {
		t.Errorf("Got edit %q, want %q", got, want)
	}

	if edit.Pos != d.Pos || edit.End != d.End {
		t.Errorf("Got edit range %d-%d, want %d-%d", edit.Pos, edit.End, d.Pos, d.End)
	}
}

func TestRunOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir)

	p, diags := newPass(t, dir, "a", "a.go")

	opts := DefaultOptions()
	opts.Behavior.Disable(config.SuggestFixes)

	if _, err := opts.Run(p); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(*diags) != 1 || len((*diags)[0].SuggestedFixes) != 0 {
		t.Errorf("Got diagnostics %+v, want one without fixes", *diags)
	}
}

func TestRunSkipped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pkg   string
		files []string
	}{
		{"test_package", "a_test", []string{"a_test.go"}},
		{"test_variant", "a", []string{"a.go", "a_test.go"}},
		{"no_files", "a", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeSource(t, dir)

			p, diags := newPass(t, dir, tt.pkg, tt.files...)

			if _, err := DefaultOptions().Run(p); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if len(*diags) != 0 {
				t.Errorf("Got %d diagnostics, want none", len(*diags))
			}
		})
	}
}

func TestRunNoSources(t *testing.T) {
	t.Parallel()

	p, diags := newPass(t, t.TempDir(), "a", "a.go")

	if _, err := DefaultOptions().Run(p); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(*diags) != 0 {
		t.Errorf("Got %d diagnostics, want none", len(*diags))
	}
}
