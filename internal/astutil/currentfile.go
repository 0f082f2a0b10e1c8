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

// Package astutil provides helpers for inspecting C# documents during analysis.
package astutil

import (
	"regexp"
	"slices"
	"strings"

	"fillmore-labs.com/castguard/internal/syntax"
)

// castguard is the name of the linter.
const castguard = "castguard"

// generatedSuffixes are file name suffixes of generated C# sources.
var generatedSuffixes = [...]string{".g.cs", ".g.i.cs", ".designer.cs", ".generated.cs"}

// CurrentFile holds document information for analysis.
type CurrentFile struct {
	tree      *syntax.Tree
	generated bool
}

// NewCurrentFile creates a new [CurrentFile] from a syntax tree.
func NewCurrentFile(tree *syntax.Tree) CurrentFile {
	if tree == nil {
		return CurrentFile{}
	}

	return CurrentFile{tree, IsGenerated(tree)}
}

// Valid returns true if the [CurrentFile] was created from a tree.
func (c CurrentFile) Valid() bool {
	return c.tree != nil
}

// Generated returns true if the document is generated code.
func (c CurrentFile) Generated() bool {
	return c.generated
}

func (c CurrentFile) line(offset int) int {
	return c.tree.Position(offset).Line
}

// NoLintComment checks if the line at offset is followed by a // nolint:castguard comment.
func (c CurrentFile) NoLintComment(offset int) bool {
	if c.tree == nil {
		return false
	}

	comments := c.tree.Comments()
	line := c.line(offset)

	// find the first comment starting after the offset
	i, _ := slices.BinarySearchFunc(comments, offset,
		func(c syntax.Span, o int) int { return c.Start - o })

	for _, comment := range comments[i:] {
		if c.line(comment.Start) != line {
			return false // not on this line
		}

		if CommentHasNoLint(string(c.tree.Source()[comment.Start:comment.End])) {
			return true
		}
	}

	return false
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks if the provided comment contains a `// nolint:castguard` directive.
func CommentHasNoLint(comment string) bool {
	matches := nolintPattern.FindStringSubmatch(comment)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == castguard || l == "all" {
			return true
		}
	}

	return false
}

// IsGenerated reports whether the document is generated code, either by its file name
// or by an <auto-generated> marker in a comment preceding the first declaration.
func IsGenerated(tree *syntax.Tree) bool {
	name := strings.ToLower(tree.Name())
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	first := len(tree.Source())
	if children := tree.Children(tree.Root()); len(children) > 0 {
		first = tree.Span(children[0]).Start
	}

	for _, comment := range tree.Comments() {
		if comment.Start >= first {
			break
		}

		if strings.Contains(string(tree.Source()[comment.Start:comment.End]), "<auto-generated") {
			return true
		}
	}

	return false
}
