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

// Package castguardtest runs the castguard analysis over txtar fixtures.
//
// A fixture archive holds C# documents and, optionally, the expected result of
// applying all fixes to a document in a file named after it with a ".golden"
// suffix. Expected diagnostics are declared by comments of the form
//
//	Test test = "Hello"; // want "implicit cast operator"
//
// where each quoted string is a regular expression matching the message of one
// diagnostic reported on that line.
package castguardtest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"fillmore-labs.com/castguard/internal/analyze"
	"fillmore-labs.com/castguard/internal/fixall"
	"fillmore-labs.com/castguard/internal/syntax"
)

const goldenSuffix = ".golden"

// Run analyzes the documents of the archive at path together and checks diagnostics and fixes.
func Run(t *testing.T, path string, opts *analyze.Options) []analyze.Document {
	t.Helper()

	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("Can't read archive: %v", err)
	}

	sources, golden := Split(ar)

	trees, err := analyze.Parse(t.Context(), sources)
	if err != nil {
		t.Fatalf("Can't parse sources: %v", err)
	}

	docs, err := opts.Run(t.Context(), trees...)
	if err != nil {
		t.Fatalf("Can't analyze sources: %v", err)
	}

	for _, doc := range docs {
		checkDiagnostics(t, doc)

		if want, ok := golden[doc.Tree.Name()]; ok {
			checkFix(t, doc, want)
		}
	}

	return docs
}

// Split separates the archive into C# sources and golden files, keyed by the name of their source.
func Split(ar *txtar.Archive) ([]analyze.Source, map[string][]byte) {
	var sources []analyze.Source

	golden := make(map[string][]byte)

	for _, f := range ar.Files {
		if name, ok := strings.CutSuffix(f.Name, goldenSuffix); ok {
			golden[name] = f.Data

			continue
		}

		sources = append(sources, analyze.Source{Name: f.Name, Content: f.Data})
	}

	return sources, golden
}

func checkDiagnostics(t *testing.T, doc analyze.Document) {
	t.Helper()

	want, err := Expectations(doc.Tree)
	if err != nil {
		t.Errorf("%s: %v", doc.Tree.Name(), err)

		return
	}

	for _, d := range doc.Diagnostics {
		line := doc.Tree.Position(d.Span.Start).Line

		i := matching(want[line], d.Message)
		if i < 0 {
			t.Errorf("%s: unexpected diagnostic: %s", d.Pos, d.Message)

			continue
		}

		want[line] = append(want[line][:i], want[line][i+1:]...)
	}

	for line, patterns := range want {
		for _, re := range patterns {
			t.Errorf("%s:%d: no diagnostic was reported matching %#q", doc.Tree.Name(), line, re)
		}
	}
}

func matching(patterns []*regexp.Regexp, message string) int {
	for i, re := range patterns {
		if re.MatchString(message) {
			return i
		}
	}

	return -1
}

func checkFix(t *testing.T, doc analyze.Document, want []byte) {
	t.Helper()

	fixed := doc.Tree

	out, err := doc.Fix(t.Context())

	switch {
	case err == nil:
		fixed = out.Tree

		for _, s := range out.Skipped {
			t.Logf("%s: skipped fix at %d: %s", doc.Tree.Name(), s.Span.Start, s.Reason)
		}

	case errors.Is(err, fixall.ErrNoFixes):

	default:
		t.Errorf("%s: can't apply fixes: %v", doc.Tree.Name(), err)

		return
	}

	if got := string(fixed.Source()); got != string(want) {
		t.Errorf("%s: got fixed source\n%s\nwant\n%s", doc.Tree.Name(), got, want)
	}
}

var wantPattern = regexp.MustCompile(`//\s*want\s+(.*)$`)

// ErrInvalidExpectation is returned for malformed want comments.
var ErrInvalidExpectation = errors.New("invalid expectation")

// Expectations collects the want comments of a document by line.
func Expectations(tree *syntax.Tree) (map[int][]*regexp.Regexp, error) {
	want := make(map[int][]*regexp.Regexp)

	for _, c := range tree.Comments() {
		text := strings.TrimSpace(string(tree.Source()[c.Start:c.End]))

		m := wantPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		line := tree.Position(c.Start).Line

		for rest := strings.TrimSpace(m[1]); rest != ""; rest = strings.TrimSpace(rest) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %s", line, ErrInvalidExpectation, rest)
			}

			rest = rest[len(quoted):]

			pattern, _ := strconv.Unquote(quoted)

			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %w", line, ErrInvalidExpectation, err)
			}

			want[line] = append(want[line], re)
		}
	}

	return want, nil
}
