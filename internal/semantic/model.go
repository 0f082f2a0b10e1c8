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

package semantic

import (
	"context"
	"iter"

	"fillmore-labs.com/castguard/internal/syntax"
)

// Model answers semantic queries about a single document.
type Model interface {
	// Tree returns the document's syntax tree.
	Tree() *syntax.Tree
	// OperationAt returns the innermost operation bound from node, or nil.
	OperationAt(ctx context.Context, node syntax.NodeID) (Operation, error)
	// Operations yields all operations of the document in preorder.
	Operations() iter.Seq[Operation]
}

type model struct {
	tree   *syntax.Tree
	roots  []Operation
	byNode map[syntax.NodeID]Operation
}

func (m *model) Tree() *syntax.Tree { return m.tree }

func (m *model) OperationAt(ctx context.Context, node syntax.NodeID) (Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return m.byNode[node], nil
}

func (m *model) Operations() iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		for _, root := range m.roots {
			if !Walk(root, yield) {
				return
			}
		}
	}
}

// record registers op for its syntax node unless an inner operation already claimed it.
func (m *model) record(op Operation) {
	op.attach(m.tree)

	if _, ok := m.byNode[op.Syntax()]; !ok {
		m.byNode[op.Syntax()] = op
	}
}
