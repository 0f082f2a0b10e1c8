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
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Dump writes the subtree at id as an s-expression, one node per line.
// Leaves include their quoted text.
func (t *Tree) Dump(w io.Writer, id NodeID) error {
	var buf bytes.Buffer

	depth := map[NodeID]int{}
	for n := range t.Preorder(id) {
		d := 0
		if n != id {
			d = depth[t.nodes[n].Parent] + 1
		}

		depth[n] = d

		node := t.nodes[n]
		for range d {
			buf.WriteString("  ")
		}

		buf.WriteString(node.Kind.String())

		if node.Role != RoleNone {
			buf.WriteString(" ." + node.Role.String())
		}

		if len(node.Children) == 0 {
			buf.WriteString(" " + strconv.Quote(t.Text(n)))
		}

		fmt.Fprintf(&buf, " [%d,%d)\n", node.Span.Start, node.Span.End)
	}

	_, err := w.Write(buf.Bytes())

	return err
}

// String returns the dump of the whole tree.
func (t *Tree) String() string {
	var buf bytes.Buffer
	_ = t.Dump(&buf, t.root)

	return buf.String()
}

// Equal reports whether a and b have the same source and the same reachable structure.
// Node ids are not compared.
func Equal(a, b *Tree) bool {
	if a == b {
		return true
	}

	if a == nil || b == nil || !bytes.Equal(a.src, b.src) {
		return false
	}

	return equalNodes(a, a.root, b, b.root)
}

func equalNodes(a *Tree, x NodeID, b *Tree, y NodeID) bool {
	nx, ny := a.Node(x), b.Node(y)
	if nx.Kind != ny.Kind || nx.Role != ny.Role || nx.Flags != ny.Flags || nx.Span != ny.Span ||
		len(nx.Children) != len(ny.Children) {
		return false
	}

	for i := range nx.Children {
		if !equalNodes(a, nx.Children[i], b, ny.Children[i]) {
			return false
		}
	}

	return true
}
