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

package syntax

import (
	"go/token"
	"iter"
)

// NodeID indexes a node in a [Tree]. Ids are 1-based, the zero value is [NoNode].
type NodeID uint32

// NoNode is the invalid node id.
const NoNode NodeID = 0

// Valid reports whether id refers to a node.
func (id NodeID) Valid() bool { return id != NoNode }

// Span is a half-open byte range [Start, End) into a tree's source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether o lies completely within s.
func (s Span) Contains(o Span) bool { return s.Start <= o.Start && o.End <= s.End }

// Overlaps reports whether s and o share at least one byte.
func (s Span) Overlaps(o Span) bool { return s.Start < o.End && o.Start < s.End }

// Node is a single entry of the tree arena.
type Node struct {
	Kind     Kind
	Role     Role
	Flags    Flags
	Span     Span
	Parent   NodeID
	Children []NodeID
}

// Tree is an immutable syntax tree over a source text.
//
// Nodes live in an arena addressed by [NodeID]. Edits never mutate a tree:
// [Tree.Replace] returns a new tree that keeps the ids of all untouched nodes.
type Tree struct {
	name     string
	src      []byte
	nodes    []Node // nodes[0] is unused
	root     NodeID
	comments []Span
	file     *token.File
}

// Name returns the document name the tree was created for.
func (t *Tree) Name() string { return t.name }

// Source returns the source text. The result must not be modified.
func (t *Tree) Source() []byte { return t.src }

// Root returns the root node.
func (t *Tree) Root() NodeID { return t.root }

// Comments returns the spans of all comments, sorted by position.
func (t *Tree) Comments() []Span { return t.comments }

// Has reports whether id is a node of this tree.
func (t *Tree) Has(id NodeID) bool { return id.Valid() && int(id) < len(t.nodes) }

// Node returns the node for id. The Children slice must not be modified.
func (t *Tree) Node(id NodeID) Node {
	if !t.Has(id) {
		return Node{}
	}

	return t.nodes[id]
}

// Kind returns the kind of node id.
func (t *Tree) Kind(id NodeID) Kind { return t.Node(id).Kind }

// Span returns the source span of node id.
func (t *Tree) Span(id NodeID) Span { return t.Node(id).Span }

// Parent returns the parent of node id, or [NoNode] for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.Node(id).Parent }

// Children returns the children of node id in source order.
func (t *Tree) Children(id NodeID) []NodeID { return t.Node(id).Children }

// Child returns the first child of id with the given role.
func (t *Tree) Child(id NodeID, role Role) NodeID {
	for _, c := range t.Children(id) {
		if t.nodes[c].Role == role {
			return c
		}
	}

	return NoNode
}

// ChildrenWith yields all children of id with the given role.
func (t *Tree) ChildrenWith(id NodeID, role Role) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for _, c := range t.Children(id) {
			if t.nodes[c].Role != role {
				continue
			}

			if !yield(c) {
				return
			}
		}
	}
}

// Text returns the source text covered by node id.
func (t *Tree) Text(id NodeID) string {
	if !t.Has(id) {
		return ""
	}

	s := t.nodes[id].Span

	return string(t.src[s.Start:s.End])
}

// Position converts a byte offset into a line and column position.
func (t *Tree) Position(offset int) token.Position {
	if t.file == nil {
		return token.Position{Filename: t.name, Offset: offset}
	}

	offset = min(max(offset, 0), t.file.Size())

	return t.file.PositionFor(t.file.Pos(offset), false)
}

// FindNode returns the innermost node whose span contains span, or [NoNode]
// if span lies outside the root.
func (t *Tree) FindNode(span Span) NodeID {
	cur := t.root
	if !t.Has(cur) || !t.nodes[cur].Span.Contains(span) {
		return NoNode
	}

descend:
	for {
		for _, c := range t.nodes[cur].Children {
			if t.nodes[c].Span.Contains(span) {
				cur = c

				continue descend
			}
		}

		return cur
	}
}

// Preorder yields id and all its descendants in depth-first source order.
func (t *Tree) Preorder(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if !t.Has(id) {
			return
		}

		stack := []NodeID{id}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n) {
				return
			}

			children := t.nodes[n].Children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// Ancestors yields the parent chain of id, starting with the parent.
func (t *Tree) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for p := t.Parent(id); p.Valid(); p = t.Parent(p) {
			if !yield(p) {
				return
			}
		}
	}
}

// Enclosing returns the nearest ancestor of id (including id itself) of one of the given kinds.
func (t *Tree) Enclosing(id NodeID, kinds ...Kind) NodeID {
	for n := id; n.Valid(); n = t.Parent(n) {
		for _, k := range kinds {
			if t.nodes[n].Kind == k {
				return n
			}
		}
	}

	return NoNode
}

func newFile(name string, src []byte) *token.File {
	f := token.NewFileSet().AddFile(name, -1, len(src))
	f.SetLinesForContent(src)

	return f
}
