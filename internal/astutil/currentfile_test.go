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

package astutil_test

import (
	"strings"
	"testing"

	. "fillmore-labs.com/castguard/internal/astutil"
	"fillmore-labs.com/castguard/internal/csharp"
	"fillmore-labs.com/castguard/internal/testsource"
)

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		comment string
		want    bool
	}{
		{"// nolint:castguard", true},
		{"//nolint:castguard", true},
		{"//nolint:all", true},
		{"//nolint:other,CastGuard // reason", true},
		{"//nolint:other", false},
		{"/* nolint:castguard */", false},
		{"// castguard", false},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			t.Parallel()

			if got := CommentHasNoLint(tt.comment); got != tt.want {
				t.Errorf("Got %t, want %t", got, tt.want)
			}
		})
	}
}

func TestNoLintComment(t *testing.T) {
	t.Parallel()

	const src = `class C
{
    object a = "a"; /* note */ // nolint:castguard
    object b = "b"; // nolint:other
    object c = "c";
    // nolint:castguard
}
`

	tree := testsource.Parse(t, src)
	c := NewCurrentFile(tree)

	if !c.Valid() {
		t.Fatal("Invalid file")
	}

	for _, tt := range []struct {
		value string
		want  bool
	}{
		{`"a"`, true},
		{`"b"`, false},
		{`"c"`, false},
	} {
		offset := strings.Index(src, tt.value)
		if got := c.NoLintComment(offset); got != tt.want {
			t.Errorf("Got nolint %t for %s, want %t", got, tt.value, tt.want)
		}
	}

	if NewCurrentFile(nil).NoLintComment(0) {
		t.Error("Got nolint for invalid file")
	}
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		src  string
		want bool
	}{
		{"plain", "Plain.cs", "class C { }\n", false},
		{"suffix", "Form1.Designer.cs", "class C { }\n", true},
		{"source_generator", "C.g.cs", "class C { }\n", true},
		{"marker", "C.cs", "// <auto-generated/>\nclass C { }\n", true},
		{"late_marker", "C.cs", "class C { }\n// <auto-generated/>\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := csharp.Parse(t.Context(), tt.file, []byte(tt.src))
			if err != nil {
				t.Fatalf("Can't parse: %v", err)
			}

			if got := NewCurrentFile(tree).Generated(); got != tt.want {
				t.Errorf("Got generated %t, want %t", got, tt.want)
			}
		})
	}
}
