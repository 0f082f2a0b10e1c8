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

import "fillmore-labs.com/castguard/internal/syntax"

// OperationKind classifies an [Operation].
type OperationKind uint8

//go:generate go tool stringer -type OperationKind -trimprefix Op
const (
	OpInvalid OperationKind = iota
	OpBlock
	OpVariableDeclaration
	OpVariableDeclarator
	OpExpressionStatement
	OpReturn
	OpLiteral
	OpLocalReference
	OpParameterReference
	OpFieldReference
	OpObjectCreation
	OpArgument
	OpInvocation
	OpAssignment
	OpConversion
	OpParenthesized
	OpBinary
	OpConditional
	OpAnonymousFunction
	OpPropertyReference
	OpPropertyInitializer
	OpOther
)

// Operation is a bound statement or expression.
type Operation interface {
	// Kind returns the operation's kind.
	Kind() OperationKind
	// Syntax returns the syntax node the operation was bound from.
	Syntax() syntax.NodeID
	// Span returns the source span of the syntax node.
	Span() syntax.Span
	// Type returns the result type of an expression, or nil.
	Type() *Type
	// Parent returns the enclosing operation, or nil for a member body.
	Parent() Operation
	// Children returns the nested operations in source order.
	Children() []Operation

	adopt(parent Operation)
	attach(tree *syntax.Tree)
}

type operation struct {
	tree     *syntax.Tree
	kind     OperationKind
	node     syntax.NodeID
	typ      *Type
	parent   Operation
	children []Operation
}

func (o *operation) Kind() OperationKind { return o.kind }
func (o *operation) Syntax() syntax.NodeID { return o.node }
func (o *operation) Type() *Type { return o.typ }
func (o *operation) Parent() Operation { return o.parent }
func (o *operation) Children() []Operation { return o.children }
func (o *operation) adopt(parent Operation) { o.parent = parent }
func (o *operation) attach(tree *syntax.Tree) { o.tree = tree }

func (o *operation) Span() syntax.Span {
	if o.tree == nil {
		return syntax.Span{}
	}

	return o.tree.Span(o.node)
}
func (o *operation) String() string { return o.kind.String() }

// Conversion is an implicit or explicit conversion of its operand to [Operation.Type].
//
// Implicit conversions share the syntax node of their operand.
type Conversion struct {
	operation
	implicit bool
	method   *Method
}

// IsImplicit reports whether the conversion has no cast syntax.
func (c *Conversion) IsImplicit() bool { return c.implicit }

// OperatorMethod returns the user-defined conversion operator, or nil for builtin conversions.
func (c *Conversion) OperatorMethod() *Method { return c.method }

// Operand returns the converted operation.
func (c *Conversion) Operand() Operation { return c.children[0] }

// Creation is an object creation expression.
type Creation struct {
	operation
	ctor *Method
}

// Constructor returns the bound constructor, or nil when overload resolution failed.
func (c *Creation) Constructor() *Method { return c.ctor }

// Call is a method invocation.
type Call struct {
	operation
	method *Method
}

// Method returns the invoked method, or nil when overload resolution failed.
func (c *Call) Method() *Method { return c.method }

// link makes parent the parent of all children.
func link(parent Operation, children []Operation) {
	for _, c := range children {
		c.adopt(parent)
	}
}

func newOperation(kind OperationKind, node syntax.NodeID, typ *Type, children ...Operation) *operation {
	o := &operation{kind: kind, node: node, typ: typ, children: children}
	link(o, children)

	return o
}

func newConversion(operand Operation, node syntax.NodeID, typ *Type, implicit bool, method *Method) *Conversion {
	c := &Conversion{
		operation: operation{kind: OpConversion, node: node, typ: typ, children: []Operation{operand}},
		implicit:  implicit,
		method:    method,
	}
	link(c, c.children)

	return c
}

func newCreation(node syntax.NodeID, typ *Type, ctor *Method, args []Operation) *Creation {
	c := &Creation{operation: operation{kind: OpObjectCreation, node: node, typ: typ, children: args}, ctor: ctor}
	link(c, args)

	return c
}

func newCall(node syntax.NodeID, method *Method, children []Operation) *Call {
	var typ *Type
	if method != nil {
		typ = method.Result
	}

	c := &Call{operation: operation{kind: OpInvocation, node: node, typ: typ, children: children}, method: method}
	link(c, children)

	return c
}

// Walk yields op and its descendants in preorder.
func Walk(op Operation, yield func(Operation) bool) bool {
	if !yield(op) {
		return false
	}

	for _, c := range op.Children() {
		if !Walk(c, yield) {
			return false
		}
	}

	return true
}
