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

// ErrInvalidNode is returned for node ids that do not belong to a tree.
var ErrInvalidNode = errors.New("invalid node")

// Edit is a textual replacement of Span by NewText.
type Edit struct {
	Span    Span   `json:"span"`
	NewText string `json:"new_text"`
}

// Replace returns a new tree where the subtree at old is substituted by the
// root of frag. The receiver is not modified.
//
// Ids of all nodes outside the replaced subtree stay valid in the new tree,
// so several replacements computed on the same tree can be applied one after
// another in any order. The replacement root gets the id returned as the second result.
func (t *Tree) Replace(old NodeID, frag *Tree) (*Tree, NodeID, error) {
	if !t.Has(old) || !t.reachable(old) {
		return nil, NoNode, fmt.Errorf("replace node %d in %s: %w", old, t.name, ErrInvalidNode)
	}

	if frag == nil || !frag.Has(frag.root) {
		return nil, NoNode, fmt.Errorf("replace with empty fragment: %w", ErrInvalidNode)
	}

	target := t.nodes[old]
	at := target.Span
	text := frag.src[frag.nodes[frag.root].Span.Start:frag.nodes[frag.root].Span.End]
	delta := len(text) - at.Len()

	src := make([]byte, 0, len(t.src)+delta)
	src = append(src, t.src[:at.Start]...)
	src = append(src, text...)
	src = append(src, t.src[at.End:]...)

	nt := &Tree{
		name:     t.name,
		src:      src,
		nodes:    make([]Node, len(t.nodes), len(t.nodes)+len(frag.nodes)),
		root:     t.root,
		comments: make([]Span, 0, len(t.comments)),
	}
	copy(nt.nodes, t.nodes)

	detached := make(map[NodeID]struct{})
	for n := range t.Preorder(old) {
		detached[n] = struct{}{}
	}

	for i := 1; i < len(nt.nodes); i++ {
		if _, ok := detached[NodeID(i)]; ok {
			nt.nodes[i] = Node{Kind: KindInvalid}

			continue
		}

		nt.nodes[i].Span = shiftSpan(nt.nodes[i].Span, at, delta)
	}

	for _, c := range t.comments {
		if at.Overlaps(c) {
			continue // comments inside the replaced code are gone
		}

		nt.comments = append(nt.comments, shiftSpan(c, at, delta))
	}

	// Append the fragment, relocated to the edit position.
	offset := at.Start - frag.nodes[frag.root].Span.Start
	base := NodeID(len(nt.nodes) - 1)

	for _, fn := range frag.nodes[1:] {
		node := Node{
			Kind:  fn.Kind,
			Role:  fn.Role,
			Flags: fn.Flags,
			Span:  Span{Start: fn.Span.Start + offset, End: fn.Span.End + offset},
		}

		if fn.Parent.Valid() {
			node.Parent = fn.Parent + base
		}

		if len(fn.Children) > 0 {
			node.Children = make([]NodeID, len(fn.Children))
			for i, c := range fn.Children {
				node.Children[i] = c + base
			}
		}

		nt.nodes = append(nt.nodes, node)
	}

	replacement := frag.root + base
	nt.nodes[replacement].Role = target.Role
	nt.nodes[replacement].Parent = target.Parent

	if p := target.Parent; p.Valid() {
		children := slices.Clone(nt.nodes[p].Children)
		children[slices.Index(children, old)] = replacement
		nt.nodes[p].Children = children
	} else {
		nt.root = replacement
	}

	nt.file = newFile(nt.name, nt.src)

	return nt, replacement, nil
}

// reachable reports whether id is connected to the root.
func (t *Tree) reachable(id NodeID) bool {
	for n := id; n.Valid(); n = t.nodes[n].Parent {
		if n == t.root {
			return true
		}

		p := t.nodes[n].Parent
		if p.Valid() && !slices.Contains(t.nodes[p].Children, n) {
			return false
		}
	}

	return false
}

// shiftSpan moves s to account for replacing at by a text delta bytes longer.
func shiftSpan(s, at Span, delta int) Span {
	if s.Start >= at.End && s.Start > at.Start {
		s.Start += delta
	}

	if s.End >= at.End {
		s.End += delta
	}

	return s
}

// Subtree copies the subtree at id into a standalone tree whose source is the node's text.
func (t *Tree) Subtree(id NodeID) (*Tree, error) {
	e := NewEmitter()
	e.Graft(t, id, RoleNone)

	return e.Tree(t.name)
}
