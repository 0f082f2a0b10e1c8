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

package report_test

import (
	"bytes"
	"encoding/json"
	"go/token"
	"strings"
	"testing"

	"github.com/fatih/color"

	. "fillmore-labs.com/castguard/internal/report"
	"fillmore-labs.com/castguard/internal/syntax"
)

func sampleDiagnostic() Diagnostic {
	d := New(syntax.Span{Start: 4, End: 11})
	d.Pos = Position{File: "Test.cs", Line: 1, Col: 5}
	d.Fixes = []Fix{{
		Title:          FixTitle,
		EquivalenceKey: FixTitle,
		Edits:          []syntax.Edit{{Span: d.Span, NewText: `new T("Hello")`}},
	}}

	return d
}

func TestFormatText(t *testing.T) { //nolint:paralleltest
	color.NoColor = true

	var buf bytes.Buffer
	if err := FormatText(&buf, []Diagnostic{sampleDiagnostic()}); err != nil {
		t.Fatalf("Can't format: %v", err)
	}

	want := "Test.cs:1:5: warning: " + Message + " (" + RuleID + ")\n"
	if got := buf.String(); got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := FormatJSON(&buf, []Diagnostic{sampleDiagnostic()}); err != nil {
		t.Fatalf("Can't format: %v", err)
	}

	var got []Diagnostic
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Can't decode %s: %v", buf.String(), err)
	}

	if len(got) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(got))
	}

	if got[0].Severity != SeverityWarning || got[0].RuleID != RuleID || got[0].Span != sampleDiagnostic().Span {
		t.Errorf("Got %+v, want %+v", got[0], sampleDiagnostic())
	}

	if !strings.Contains(buf.String(), `"severity": "warning"`) {
		t.Errorf("Severity not encoded as string in %s", buf.String())
	}

	buf.Reset()

	if err := FormatJSON(&buf, nil); err != nil {
		t.Fatalf("Can't format: %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("Got %q for no diagnostics, want []", got)
	}
}

func TestSeverityUnmarshal(t *testing.T) {
	t.Parallel()

	var s Severity
	if err := json.Unmarshal([]byte(`"error"`), &s); err != nil || s != SeverityError {
		t.Errorf("Got %v, %v, want %v", s, err, SeverityError)
	}

	if err := json.Unmarshal([]byte(`"fatal"`), &s); err == nil {
		t.Error("Got no error for unknown severity")
	}
}

func TestAnalysis(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	file := fset.AddFile("Test.cs", -1, 20)

	ad := sampleDiagnostic().Analysis(file)

	if got, want := file.Offset(ad.Pos), 4; got != want {
		t.Errorf("Got offset %d, want %d", got, want)
	}

	if got, want := ad.Category, RuleID; got != want {
		t.Errorf("Got category %q, want %q", got, want)
	}

	if len(ad.SuggestedFixes) != 1 || len(ad.SuggestedFixes[0].TextEdits) != 1 {
		t.Fatalf("Got fixes %v, want one edit", ad.SuggestedFixes)
	}

	if got, want := string(ad.SuggestedFixes[0].TextEdits[0].NewText), `new T("Hello")`; got != want {
		t.Errorf("Got new text %q, want %q", got, want)
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	a, b, c := New(syntax.Span{Start: 9, End: 12}), New(syntax.Span{Start: 1, End: 3}), New(syntax.Span{Start: 1, End: 3})
	a.Pos.File, b.Pos.File, c.Pos.File = "A.cs", "B.cs", "A.cs"

	diags := []Diagnostic{b, a, c}
	Sort(diags)

	if diags[0].Pos.File != "A.cs" || diags[0].Span.Start != 1 || diags[1].Span.Start != 9 || diags[2].Pos.File != "B.cs" {
		t.Errorf("Got order %v", diags)
	}
}
