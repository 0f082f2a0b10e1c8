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

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/castguard/analyzer"
	"fillmore-labs.com/castguard/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.Config
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.QualifyNames,
			args:    []string{"-fix"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.SuggestFixes,
			args:    []string{"-fix=false"},
			want:    false,
		},
		{
			name:    "On",
			initial: 0,
			args:    []string{"-fix=on"},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags := config.NewBitMask(tt.initial)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			const value = config.SuggestFixes
			fv := NewBehaviorValue(&flags, value)
			fs.Var(fv, "fix", "suggest fixes")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Flag get = %v, want %v", fv.Get(), tt.want)
			}

			if flags.Enabled(value) != tt.want {
				t.Errorf("SuggestFixes enabled = %v, want %v", flags.Enabled(value), tt.want)
			}

			if got, want := flags.Enabled(tt.initial), tt.initial != 0 && (tt.initial != value || tt.want); got != want {
				t.Errorf("Initial flag enabled = %v, want %v", got, want)
			}
		})
	}
}

func TestFlagValueInvalid(t *testing.T) {
	t.Parallel()

	var flags config.BitMask[config.Config]

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	fs.Var(NewBehaviorValue(&flags, config.SuggestFixes), "fix", "suggest fixes")

	if err := fs.Parse([]string{"-fix=maybe"}); err == nil {
		t.Error("Expected parse error")
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	flags := config.NewBitMask(config.SuggestFixes)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewBehaviorValue(&flags, config.SuggestFixes)
	fs.Var(fv, "fix", "suggest fixes")

	const expectedUsage = `
  -fix
    	suggest fixes (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}
