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

package analyze_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/tools/txtar"

	. "fillmore-labs.com/castguard/internal/analyze"
	"fillmore-labs.com/castguard/internal/castguardtest"
	"fillmore-labs.com/castguard/internal/config"
	"fillmore-labs.com/castguard/internal/report"
	"fillmore-labs.com/castguard/internal/semantic"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	defaults := DefaultOptions()

	unqualified := DefaultOptions()
	unqualified.Behavior.Disable(config.QualifyNames)

	generated := DefaultOptions()
	generated.Behavior.Enable(config.IncludeGenerated)

	tests := []struct {
		name    string
		archive string
		options *Options
		fixes   int
	}{
		{"Basic", "basic.txtar", defaults, 1},
		{"Unqualified", "unqualified.txtar", unqualified, 1},
		{"Contexts", "contexts.txtar", defaults, 12},
		{"Declined", "declined.txtar", defaults, 0},
		{"NoLint", "nolint.txtar", defaults, 1},
		{"Generated", "generated.txtar", defaults, 1},
		{"GeneratedIncluded", "generated_included.txtar", generated, 1},
		{"MultiFile", "multifile.txtar", defaults, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			docs := castguardtest.Run(t, filepath.Join("testdata", tt.archive), tt.options)

			var fixes int
			for _, doc := range docs {
				fixes += len(doc.Fixes)
			}

			if fixes != tt.fixes {
				t.Errorf("Got %d fixes, want %d", fixes, tt.fixes)
			}
		})
	}
}

func TestAnalyzeNoFix(t *testing.T) {
	t.Parallel()

	ar, err := txtar.ParseFile(filepath.Join("testdata", "contexts.txtar"))
	if err != nil {
		t.Fatalf("Can't read archive: %v", err)
	}

	sources, _ := castguardtest.Split(ar)

	trees, err := Parse(t.Context(), sources)
	if err != nil {
		t.Fatalf("Can't parse: %v", err)
	}

	opts := DefaultOptions()
	opts.Behavior.Disable(config.SuggestFixes)

	docs, err := opts.Run(t.Context(), trees...)
	if err != nil {
		t.Fatalf("Can't analyze: %v", err)
	}

	doc := docs[0]

	if got, want := len(doc.Diagnostics), 6; got != want {
		t.Errorf("Got %d diagnostics, want %d", got, want)
	}

	if len(doc.Fixes) != 0 {
		t.Errorf("Got %d fixes, want none", len(doc.Fixes))
	}

	for _, d := range doc.Diagnostics {
		if len(d.Fixes) != 0 {
			t.Errorf("Got suggested fixes for %s", d)
		}
	}
}

func TestGeneratedFlag(t *testing.T) {
	t.Parallel()

	docs := castguardtest.Run(t, filepath.Join("testdata", "generated.txtar"), DefaultOptions())

	var got []bool
	for _, doc := range docs {
		got = append(got, doc.Generated)
	}

	if want := []bool{true, true, false}; !slices.Equal(got, want) {
		t.Errorf("Got generated %v, want %v", got, want)
	}
}

func TestDiagnostic(t *testing.T) {
	t.Parallel()

	docs := castguardtest.Run(t, filepath.Join("testdata", "basic.txtar"), DefaultOptions())

	d := docs[0].Diagnostics[0]

	if got, want := d.String(), "Program.cs:16:25: Do not use implicit cast operator, use constructor instead. (CG1001)"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}

	if len(d.Fixes) != 1 || d.Fixes[0].Title != report.FixTitle {
		t.Fatalf("Got fixes %+v", d.Fixes)
	}

	if got, want := d.Fixes[0].Edits[0].NewText, `new ConsoleApplication1.Test("Hello")`; got != want {
		t.Errorf("Got edit %q, want %q", got, want)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"A.cs", "sub/B.CS", "sub/notes.txt", "bin/Debug/C.cs", "obj/D.cs"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte("class C { }\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	extra := filepath.Join(dir, "sub", "notes.txt")

	files, err := Collect(dir, extra)
	if err != nil {
		t.Fatalf("Can't collect files: %v", err)
	}

	want := []string{filepath.Join(dir, "A.cs"), filepath.Join(dir, "sub", "B.CS"), extra}
	if !slices.Equal(files, want) {
		t.Errorf("Got files %q, want %q", files, want)
	}

	sources, err := ReadFiles(files...)
	if err != nil {
		t.Fatalf("Can't read files: %v", err)
	}

	if len(sources) != 3 || string(sources[0].Content) != "class C { }\n" {
		t.Errorf("Got sources %+v", sources)
	}

	if _, err := Collect(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Got error %v, want %v", err, os.ErrNotExist)
	}

	if _, err := ReadFiles(filepath.Join(dir, "missing.cs")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Got error %v, want %v", err, os.ErrNotExist)
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	trees, err := Parse(t.Context(), []Source{{Name: "A.cs", Content: []byte("class A { }\n")}})
	if err != nil {
		t.Fatalf("Can't parse: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := DefaultOptions().Run(ctx, trees...); !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}

	if _, err := Parse(ctx, []Source{{Name: "A.cs"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}
}

func TestModelsOf(t *testing.T) {
	t.Parallel()

	trees, err := Parse(t.Context(), []Source{
		{Name: "A.cs", Content: []byte("class A { }\n")},
		{Name: "B.cs", Content: []byte("class B { }\n")},
	})
	if err != nil {
		t.Fatalf("Can't parse: %v", err)
	}

	comp, err := semantic.Compile(t.Context(), trees[0])
	if err != nil {
		t.Fatalf("Can't compile: %v", err)
	}

	models, err := ModelsOf(comp, trees[:1])
	if err != nil || len(models) != 1 || models[0].Tree() != trees[0] {
		t.Errorf("Got models %v, %v, want the model of %s", models, err, trees[0].Name())
	}

	if _, err := ModelsOf(comp, trees); !errors.Is(err, ErrNoModel) {
		t.Errorf("Got error %v, want %v", err, ErrNoModel)
	}
}
