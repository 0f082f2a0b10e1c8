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
	"errors"
	"fmt"
	"slices"
)

// Builder assembles a [Tree] for an existing source text.
// Parsers use it to mirror their concrete syntax into the arena.
type Builder struct {
	t     *Tree
	built bool
}

// NewBuilder starts a tree for the named source.
func NewBuilder(name string, src []byte) *Builder {
	return &Builder{t: &Tree{name: name, src: src, nodes: make([]Node, 1, 64)}}
}

// Add appends a node below parent. The first node added without a parent becomes the root.
func (b *Builder) Add(parent NodeID, kind Kind, role Role, span Span) NodeID {
	id := NodeID(len(b.t.nodes))
	b.t.nodes = append(b.t.nodes, Node{Kind: kind, Role: role, Span: span, Parent: parent})

	if parent.Valid() {
		p := &b.t.nodes[parent]
		p.Children = append(p.Children, id)
	} else if !b.t.root.Valid() {
		b.t.root = id
	}

	return id
}

// SetFlags sets the modifier flags of node id.
func (b *Builder) SetFlags(id NodeID, flags Flags) {
	b.t.nodes[id].Flags |= flags
}

// SetEnd moves the end of node id, for constructs whose members follow them in the source.
func (b *Builder) SetEnd(id NodeID, end int) {
	b.t.nodes[id].Span.End = end
}

// AddComment records the span of a comment.
func (b *Builder) AddComment(span Span) {
	b.t.comments = append(b.t.comments, span)
}

// Tree finishes construction. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	if b.built {
		panic("syntax: Builder.Tree called twice")
	}

	b.built = true
	t := b.t

	slices.SortFunc(t.comments, func(a, b Span) int { return a.Start - b.Start })
	t.file = newFile(t.name, t.src)

	return t
}

// ErrUnbalanced is returned when an [Emitter] has unclosed nodes or closes too many.
var ErrUnbalanced = errors.New("unbalanced emitter")

// Emitter synthesizes new code. It writes text and nodes at the same time,
// so the resulting tree's spans always match its source.
type Emitter struct {
	b     *Builder
	buf   []byte
	stack []NodeID
	err   error
}

// NewEmitter creates an empty [Emitter].
func NewEmitter() *Emitter {
	return &Emitter{b: NewBuilder("", nil)}
}

func (e *Emitter) top() NodeID {
	if len(e.stack) == 0 {
		return NoNode
	}

	return e.stack[len(e.stack)-1]
}

// Open starts a node at the current position.
func (e *Emitter) Open(kind Kind, role Role) {
	if len(e.stack) == 0 && e.b.t.root.Valid() {
		e.err = fmt.Errorf("second root %s: %w", kind, ErrUnbalanced)

		return
	}

	id := e.b.Add(e.top(), kind, role, Span{Start: len(e.buf)})
	e.stack = append(e.stack, id)
}

// Close ends the innermost open node.
func (e *Emitter) Close() {
	if len(e.stack) == 0 {
		e.err = fmt.Errorf("close without open: %w", ErrUnbalanced)

		return
	}

	id := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	e.b.t.nodes[id].Span.End = len(e.buf)
}

// Token writes text that belongs to the innermost open node without creating a node.
func (e *Emitter) Token(text string) {
	e.buf = append(e.buf, text...)
}

// Leaf writes text as a node without children.
func (e *Emitter) Leaf(kind Kind, role Role, text string) {
	e.Open(kind, role)
	e.Token(text)
	e.Close()
}

// Graft copies the subtree rooted at id verbatim, text and structure.
func (e *Emitter) Graft(t *Tree, id NodeID, role Role) {
	if !t.Has(id) {
		e.err = fmt.Errorf("graft of unknown node %d: %w", id, ErrInvalidNode)

		return
	}

	base := t.nodes[id].Span.Start
	shift := len(e.buf) - base

	e.buf = append(e.buf, t.src[base:t.nodes[id].Span.End]...)

	var graft func(src NodeID, parent NodeID, role Role)
	graft = func(src NodeID, parent NodeID, role Role) {
		n := t.nodes[src]
		span := Span{Start: n.Span.Start + shift, End: n.Span.End + shift}
		dst := e.b.Add(parent, n.Kind, role, span)
		e.b.t.nodes[dst].Flags = n.Flags

		for _, c := range n.Children {
			graft(c, dst, t.nodes[c].Role)
		}
	}
	graft(id, e.top(), role)
}

// Tree returns the synthesized tree.
func (e *Emitter) Tree(name string) (*Tree, error) {
	if e.err != nil {
		return nil, e.err
	}

	if len(e.stack) != 0 || !e.b.t.root.Valid() {
		return nil, fmt.Errorf("%d open nodes: %w", len(e.stack), ErrUnbalanced)
	}

	e.b.t.name, e.b.t.src = name, e.buf

	return e.b.Tree(), nil
}
