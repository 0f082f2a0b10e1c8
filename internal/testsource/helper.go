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

// Package testsource provides utilities for parsing and binding C# source code in tests.
//
// It is designed to simplify testing of the castguard components by handling common
// boilerplate code for parsing and binding C# source fragments.
package testsource

import (
	"bytes"
	"testing"

	"fillmore-labs.com/castguard/internal/csharp"
	"fillmore-labs.com/castguard/internal/semantic"
	"fillmore-labs.com/castguard/internal/syntax"
)

// Namespace is the namespace statement fragments are wrapped in.
const Namespace = "Test"

// Target declares a class with a matching constructor and an implicit conversion from string.
const Target = `    class Target
    {
        public Target(string s) { }

        public static implicit operator Target(string s) => new Target(s);
    }
`

// Parse parses a complete C# document.
func Parse(tb testing.TB, src string) *syntax.Tree {
	tb.Helper()

	const filename = "Test.cs"

	tree, err := csharp.Parse(tb.Context(), filename, []byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return tree
}

// Bind parses and binds a complete C# document.
func Bind(tb testing.TB, src string) semantic.Model {
	tb.Helper()

	tree := Parse(tb, src)

	model, err := semantic.Bind(tb.Context(), tree)
	if err != nil {
		tb.Fatalf("Failed to bind source %q: %v", src, err)
	}

	return model
}

// Statements wraps the statements body into a method of class Fixture in namespace [Namespace],
// next to the type declarations in decls, and binds the result.
//
// Use [Target] as decls for a type with an implicit conversion operator.
func Statements(tb testing.TB, decls, body string) semantic.Model {
	tb.Helper()

	return Bind(tb, wrapSource(decls, body).String())
}

func wrapSource(decls, body string) *bytes.Buffer {
	const (
		header     = "namespace " + Namespace + "\n{\n"
		fixture    = "\n    class Fixture\n    {\n        void Run()\n        {\n"
		suffix     = "\n        }\n    }\n}\n"
		wrapperLen = len(header) + len(fixture) + len(suffix)
	)

	var srcFile bytes.Buffer
	srcFile.Grow(wrapperLen + len(decls) + len(body))

	srcFile.WriteString(header)  // ignore error
	srcFile.WriteString(decls)   // ignore error
	srcFile.WriteString(fixture) // ignore error
	srcFile.WriteString(body)    // ignore error
	srcFile.WriteString(suffix)  // ignore error

	return &srcFile
}
