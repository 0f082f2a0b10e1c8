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

package report_test

import (
	"errors"
	"testing"

	. "fillmore-labs.com/castguard/internal/report"
	"fillmore-labs.com/castguard/internal/syntax"
)

func edit(start, end int, text string) syntax.Edit {
	return syntax.Edit{Span: syntax.Span{Start: start, End: end}, NewText: text}
}

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	const src = `a = "x"; b = "y";`

	tests := []struct {
		name  string
		edits []syntax.Edit
		want  string
	}{
		{
			name:  "None",
			edits: nil,
			want:  src,
		},
		{
			name:  "Single",
			edits: []syntax.Edit{edit(4, 7, `new T("x")`)},
			want:  `a = new T("x"); b = "y";`,
		},
		{
			name:  "Ordered",
			edits: []syntax.Edit{edit(4, 7, `new T("x")`), edit(13, 16, `new T("y")`)},
			want:  `a = new T("x"); b = new T("y");`,
		},
		{
			name:  "Reversed",
			edits: []syntax.Edit{edit(13, 16, `new T("y")`), edit(4, 7, `new T("x")`)},
			want:  `a = new T("x"); b = new T("y");`,
		},
		{
			name:  "Insertion",
			edits: []syntax.Edit{edit(0, 0, "// c\n")},
			want:  "// c\n" + src,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ApplyEdits([]byte(src), tt.edits)
			if err != nil {
				t.Fatalf("Can't apply edits: %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyEditsInvalid(t *testing.T) {
	t.Parallel()

	src := []byte("0123456789")

	if _, err := ApplyEdits(src, []syntax.Edit{edit(1, 5, ""), edit(4, 6, "")}); !errors.Is(err, ErrOverlap) {
		t.Errorf("Got error %v, want %v", err, ErrOverlap)
	}

	if _, err := ApplyEdits(src, []syntax.Edit{edit(8, 11, "")}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Got error %v, want %v", err, ErrOutOfRange)
	}
}
