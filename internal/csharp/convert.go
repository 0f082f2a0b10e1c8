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

package csharp

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"fillmore-labs.com/castguard/internal/syntax"
)

// converter mirrors the tree-sitter concrete syntax into a [syntax.Builder].
//
// Only constructs relevant to conversion analysis get dedicated kinds.
// Wrapper nodes like declaration_list or equals_value_clause are flattened.
type converter struct {
	b   *syntax.Builder
	src []byte
}

func span(n *sitter.Node) syntax.Span {
	return syntax.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

// add creates a node for n below parent.
func (c *converter) add(parent syntax.NodeID, kind syntax.Kind, role syntax.Role, n *sitter.Node) syntax.NodeID {
	id := c.b.Add(parent, kind, role, span(n))
	if n.HasError() || n.IsMissing() || n.Type() == "ERROR" {
		c.b.SetFlags(id, syntax.FlagError)
	}

	return id
}

// named returns the named children of n, skipping comments.
func named(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	children := make([]*sitter.Node, 0, count)

	for i := range count {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}

		children = append(children, child)
	}

	return children
}

// field returns the first existing field among names; grammar versions differ in field naming.
func field(n *sitter.Node, names ...string) *sitter.Node {
	for _, name := range names {
		if f := n.ChildByFieldName(name); f != nil {
			return f
		}
	}

	return nil
}

// firstOfType returns the first named child of n with one of the given types.
func firstOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, child := range named(n) {
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}

	return nil
}

// hasToken reports whether n has a direct anonymous child token with the given text.
func hasToken(n *sitter.Node, token string) bool {
	for i := range int(n.ChildCount()) {
		if child := n.Child(i); child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}

	return false
}

// modifiers converts modifier children into flags.
func (c *converter) modifiers(n *sitter.Node) syntax.Flags {
	var flags syntax.Flags

	for _, child := range named(n) {
		if child.Type() == "modifier" && strings.TrimSpace(c.text(child)) == "static" {
			flags |= syntax.FlagStatic
		}
	}

	if hasToken(n, "static") {
		flags |= syntax.FlagStatic
	}

	return flags
}

// comments records all comment nodes of the tree.
func (c *converter) comments(n *sitter.Node) {
	if n.Type() == "comment" {
		c.b.AddComment(span(n))

		return
	}

	for i := range int(n.ChildCount()) {
		if child := n.Child(i); child != nil {
			c.comments(child)
		}
	}
}

// unit converts the compilation unit. File scoped namespaces adopt all following declarations.
func (c *converter) unit(root *sitter.Node) {
	unit := c.add(syntax.NoNode, syntax.KindCompilationUnit, syntax.RoleNone, root)

	parent := unit
	for _, child := range named(root) {
		if child.Type() != "file_scoped_namespace_declaration" {
			c.node(parent, child, syntax.RoleMember)

			continue
		}

		ns := c.add(unit, syntax.KindNamespace, syntax.RoleMember, child)
		c.b.SetEnd(ns, int(root.EndByte()))

		name := field(child, "name")
		if name != nil {
			c.typeName(ns, name, syntax.RoleName)
		}

		for _, member := range named(child) {
			if name != nil && member.StartByte() == name.StartByte() {
				continue
			}

			c.node(ns, member, syntax.RoleMember)
		}

		parent = ns
	}
}

// members converts the declarations of a declaration_list or similar container.
func (c *converter) members(parent syntax.NodeID, body *sitter.Node) {
	if body == nil {
		return
	}

	for _, member := range named(body) {
		c.node(parent, member, syntax.RoleMember)
	}
}

// node converts n and its relevant descendants.
func (c *converter) node(parent syntax.NodeID, n *sitter.Node, role syntax.Role) {
	switch n.Type() {
	case "comment":
		return

	case "namespace_declaration":
		id := c.add(parent, syntax.KindNamespace, role, n)
		if name := field(n, "name"); name != nil {
			c.typeName(id, name, syntax.RoleName)
		}

		c.members(id, bodyOf(n))

	case "class_declaration", "struct_declaration", "record_declaration", "record_struct_declaration", "interface_declaration":
		id := c.add(parent, syntax.KindTypeDecl, role, n)
		if n.Type() == "struct_declaration" || n.Type() == "record_struct_declaration" || hasToken(n, "struct") {
			c.b.SetFlags(id, syntax.FlagValueType)
		}

		if n.Type() == "record_declaration" || n.Type() == "record_struct_declaration" || hasToken(n, "record") {
			c.b.SetFlags(id, syntax.FlagRecord)
		}

		c.b.SetFlags(id, c.modifiers(n))

		if name := field(n, "name"); name != nil {
			c.add(id, syntax.KindIdentifier, syntax.RoleName, name)
		}

		// Primary constructor.
		c.parameters(id, n)
		c.members(id, bodyOf(n))

	case "constructor_declaration":
		id := c.add(parent, syntax.KindConstructor, role, n)
		c.b.SetFlags(id, c.modifiers(n))

		if name := field(n, "name"); name != nil {
			c.add(id, syntax.KindIdentifier, syntax.RoleName, name)
		}

		c.parameters(id, n)
		c.body(id, n)

	case "conversion_operator_declaration":
		id := c.add(parent, syntax.KindConversionOperator, role, n)
		c.b.SetFlags(id, c.modifiers(n))

		switch {
		case hasToken(n, "implicit"):
			c.b.SetFlags(id, syntax.FlagImplicit)

		case hasToken(n, "explicit"):
			c.b.SetFlags(id, syntax.FlagExplicit)
		}

		if typ := field(n, "type"); typ != nil {
			c.typeName(id, typ, syntax.RoleType)
		}

		c.parameters(id, n)
		c.body(id, n)

	case "method_declaration":
		id := c.add(parent, syntax.KindMethod, role, n)
		c.b.SetFlags(id, c.modifiers(n))

		if typ := field(n, "returns", "type"); typ != nil {
			c.typeName(id, typ, syntax.RoleType)
		}

		if name := field(n, "name"); name != nil {
			c.add(id, syntax.KindIdentifier, syntax.RoleName, name)
		}

		c.parameters(id, n)
		c.body(id, n)

	case "field_declaration":
		id := c.add(parent, syntax.KindField, role, n)
		c.b.SetFlags(id, c.modifiers(n))
		c.variables(id, firstOfType(n, "variable_declaration"))

	case "property_declaration":
		c.property(parent, n, role)

	case "local_declaration_statement":
		id := c.add(parent, syntax.KindLocalDecl, role, n)
		c.variables(id, firstOfType(n, "variable_declaration"))

	case "block":
		id := c.add(parent, syntax.KindBlock, role, n)
		for _, stmt := range named(n) {
			c.node(id, stmt, syntax.RoleMember)
		}

	case "arrow_expression_clause":
		id := c.add(parent, syntax.KindArrowBody, role, n)
		c.value(id, n)

	case "expression_statement":
		id := c.add(parent, syntax.KindExpressionStmt, role, n)
		c.value(id, n)

	case "return_statement":
		id := c.add(parent, syntax.KindReturn, role, n)
		c.value(id, n)

	case "literal":
		if inner := named(n); len(inner) == 1 {
			c.node(parent, inner[0], role)
		} else {
			c.other(parent, n, role)
		}

	case "identifier", "implicit_type", "qualified_name", "predefined_type", "generic_name":
		c.typeName(parent, n, role)

	case "string_literal", "verbatim_string_literal", "raw_string_literal", "interpolated_string_expression":
		c.add(parent, syntax.KindStringLiteral, role, n)

	case "integer_literal":
		c.add(parent, syntax.KindIntegerLiteral, role, n)

	case "real_literal":
		c.add(parent, syntax.KindRealLiteral, role, n)

	case "boolean_literal":
		c.add(parent, syntax.KindBoolLiteral, role, n)

	case "character_literal":
		c.add(parent, syntax.KindCharLiteral, role, n)

	case "null_literal":
		c.add(parent, syntax.KindNullLiteral, role, n)

	case "object_creation_expression":
		id := c.add(parent, syntax.KindObjectCreation, role, n)
		if typ := field(n, "type"); typ != nil {
			c.typeName(id, typ, syntax.RoleType)
		}

		if args := field(n, "arguments"); args != nil {
			c.arguments(id, args)
		}

		if init := field(n, "initializer"); init != nil {
			c.other(id, init, syntax.RoleNone)
		}

	case "argument_list":
		c.arguments(parent, n)

	case "cast_expression":
		id := c.add(parent, syntax.KindCast, role, n)
		if typ := field(n, "type"); typ != nil {
			c.typeName(id, typ, syntax.RoleType)
		}

		if value := field(n, "value"); value != nil {
			c.node(id, value, syntax.RoleValue)
		}

	case "invocation_expression":
		id := c.add(parent, syntax.KindInvocation, role, n)
		if fn := field(n, "function"); fn != nil {
			c.node(id, fn, syntax.RoleFunction)
		}

		if args := field(n, "arguments"); args != nil {
			c.arguments(id, args)
		}

	case "assignment_expression":
		c.assignment(parent, n, role)

	case "member_access_expression":
		id := c.add(parent, syntax.KindMemberAccess, role, n)
		if expr := field(n, "expression"); expr != nil {
			c.node(id, expr, syntax.RoleValue)
		}

		if name := field(n, "name"); name != nil {
			c.add(id, syntax.KindIdentifier, syntax.RoleName, name)
		}

	case "parenthesized_expression":
		id := c.add(parent, syntax.KindParenthesized, role, n)
		c.value(id, n)

	case "binary_expression":
		left, right := field(n, "left"), field(n, "right")
		if left == nil || right == nil {
			c.other(parent, n, role)

			return
		}

		id := c.add(parent, syntax.KindBinary, role, n)
		c.node(id, left, syntax.RoleLeft)
		c.node(id, right, syntax.RoleRight)

	case "conditional_expression":
		cond, then, els := field(n, "condition"), field(n, "consequence"), field(n, "alternative")
		if cond == nil || then == nil || els == nil {
			c.other(parent, n, role)

			return
		}

		id := c.add(parent, syntax.KindConditional, role, n)
		c.node(id, cond, syntax.RoleCondition)
		c.node(id, then, syntax.RoleLeft)
		c.node(id, els, syntax.RoleRight)

	case "lambda_expression":
		c.lambda(parent, n, role)

	default:
		c.other(parent, n, role)
	}
}

// property converts a property declaration with its accessors, expression body or initializer.
func (c *converter) property(parent syntax.NodeID, n *sitter.Node, role syntax.Role) {
	id := c.add(parent, syntax.KindProperty, role, n)
	c.b.SetFlags(id, c.modifiers(n))

	if typ := field(n, "type"); typ != nil {
		c.typeName(id, typ, syntax.RoleType)
	}

	if name := field(n, "name"); name != nil {
		c.add(id, syntax.KindIdentifier, syntax.RoleName, name)
	}

	accessors := field(n, "accessors")
	if accessors == nil {
		accessors = firstOfType(n, "accessor_list")
	}

	if accessors != nil {
		for _, acc := range named(accessors) {
			if acc.Type() != "accessor_declaration" {
				continue
			}

			a := c.add(id, syntax.KindAccessor, syntax.RoleMember, acc)
			if name := accessorName(acc); name != nil {
				c.add(a, syntax.KindIdentifier, syntax.RoleName, name)
			}

			c.body(a, acc)
		}
	}

	value := field(n, "value")
	if value == nil {
		value = firstOfType(n, "arrow_expression_clause")
	}

	switch {
	case value == nil:

	case value.Type() == "arrow_expression_clause":
		c.node(id, value, syntax.RoleBody)

	default:
		c.node(id, value, syntax.RoleValue)
	}
}

// accessorName returns the get, set or init keyword of an accessor.
func accessorName(acc *sitter.Node) *sitter.Node {
	if name := field(acc, "name"); name != nil {
		return name
	}

	for i := range int(acc.ChildCount()) {
		switch child := acc.Child(i); {
		case child == nil:

		case child.Type() == "get", child.Type() == "set", child.Type() == "init":
			return child
		}
	}

	return nil
}

// lambda converts a lambda expression. A single untyped parameter becomes a parameter without type.
func (c *converter) lambda(parent syntax.NodeID, n *sitter.Node, role syntax.Role) {
	id := c.add(parent, syntax.KindLambda, role, n)

	switch params := field(n, "parameters"); {
	case params == nil:

	case params.Type() == "parameter_list":
		c.parameters(id, n)

	default:
		list := c.add(id, syntax.KindParameterList, syntax.RoleParams, params)
		p := c.add(list, syntax.KindParameter, syntax.RoleMember, params)
		c.add(p, syntax.KindIdentifier, syntax.RoleName, params)
	}

	body := field(n, "body")
	if body == nil {
		if inner := named(n); len(inner) > 0 {
			body = inner[len(inner)-1]
		}
	}

	if body != nil {
		c.node(id, body, syntax.RoleBody)
	}
}

// other converts an unsupported construct, keeping its children.
func (c *converter) other(parent syntax.NodeID, n *sitter.Node, role syntax.Role) {
	id := c.add(parent, syntax.KindOther, role, n)
	for _, child := range named(n) {
		c.node(id, child, syntax.RoleNone)
	}
}

// value converts the single expression child of n.
func (c *converter) value(parent syntax.NodeID, n *sitter.Node) {
	if inner := named(n); len(inner) > 0 {
		c.node(parent, inner[0], syntax.RoleValue)
	}
}

func bodyOf(n *sitter.Node) *sitter.Node {
	if body := field(n, "body"); body != nil {
		return body
	}

	return firstOfType(n, "declaration_list")
}

// parameters converts the parameter list of a member declaration.
func (c *converter) parameters(parent syntax.NodeID, n *sitter.Node) {
	list := field(n, "parameters")
	if list == nil {
		list = firstOfType(n, "parameter_list")
	}

	if list == nil {
		return
	}

	id := c.add(parent, syntax.KindParameterList, syntax.RoleParams, list)

	for _, param := range named(list) {
		if param.Type() != "parameter" {
			c.other(id, param, syntax.RoleMember)

			continue
		}

		p := c.add(id, syntax.KindParameter, syntax.RoleMember, param)
		if typ := field(param, "type"); typ != nil {
			c.typeName(p, typ, syntax.RoleType)
		}

		if name := field(param, "name"); name != nil {
			c.add(p, syntax.KindIdentifier, syntax.RoleName, name)
		}
	}
}

// body converts a block or expression body.
func (c *converter) body(parent syntax.NodeID, n *sitter.Node) {
	if body := field(n, "body"); body != nil {
		c.node(parent, body, syntax.RoleBody)

		return
	}

	if body := firstOfType(n, "block", "arrow_expression_clause"); body != nil {
		c.node(parent, body, syntax.RoleBody)
	}
}

// variables converts a variable_declaration: the declared type followed by the declarators.
func (c *converter) variables(parent syntax.NodeID, decl *sitter.Node) {
	if decl == nil {
		return
	}

	if typ := field(decl, "type"); typ != nil {
		c.typeName(parent, typ, syntax.RoleType)
	}

	for _, child := range named(decl) {
		if child.Type() == "variable_declarator" {
			c.declarator(parent, child)
		}
	}
}

func (c *converter) declarator(parent syntax.NodeID, n *sitter.Node) {
	id := c.add(parent, syntax.KindDeclarator, syntax.RoleMember, n)

	name := field(n, "name")
	if name == nil {
		name = firstOfType(n, "identifier")
	}

	if name != nil {
		c.add(id, syntax.KindIdentifier, syntax.RoleName, name)
	}

	// Older grammars wrap the initializer in an equals_value_clause.
	seenEquals := false

	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		switch {
		case child == nil:

		case child.Type() == "equals_value_clause":
			c.value(id, child)

			return

		case child.Type() == "=":
			seenEquals = true

		case seenEquals && child.IsNamed() && child.Type() != "comment":
			c.node(id, child, syntax.RoleValue)

			return
		}
	}
}

// arguments converts an argument_list.
func (c *converter) arguments(parent syntax.NodeID, list *sitter.Node) {
	id := c.add(parent, syntax.KindArgumentList, syntax.RoleArgs, list)

	for _, arg := range named(list) {
		if arg.Type() != "argument" {
			c.other(id, arg, syntax.RoleMember)

			continue
		}

		a := c.add(id, syntax.KindArgument, syntax.RoleMember, arg)

		inner := named(arg)
		if len(inner) == 0 {
			continue
		}

		if name := field(arg, "name"); name != nil && len(inner) > 1 {
			c.b.SetFlags(a, syntax.FlagNamedArgument)
			c.add(a, syntax.KindIdentifier, syntax.RoleName, name)
		}

		c.node(a, inner[len(inner)-1], syntax.RoleValue)
	}
}

// assignment converts simple assignments; compound assignments are not conversions to the left type.
func (c *converter) assignment(parent syntax.NodeID, n *sitter.Node, role syntax.Role) {
	left, right := field(n, "left"), field(n, "right")
	if left == nil || right == nil {
		c.other(parent, n, role)

		return
	}

	op := bytes.TrimSpace(c.src[left.EndByte():right.StartByte()])
	if !bytes.Equal(op, []byte("=")) {
		c.other(parent, n, role)

		return
	}

	id := c.add(parent, syntax.KindAssignment, role, n)
	c.node(id, left, syntax.RoleLeft)
	c.node(id, right, syntax.RoleRight)
}

// typeName converts names and types. Qualified names are flattened into their identifiers.
func (c *converter) typeName(parent syntax.NodeID, n *sitter.Node, role syntax.Role) {
	switch n.Type() {
	case "identifier", "implicit_type":
		c.add(parent, syntax.KindIdentifier, role, n)

	case "predefined_type":
		c.add(parent, syntax.KindPredefinedType, role, n)

	case "qualified_name":
		id := c.add(parent, syntax.KindQualifiedName, role, n)
		c.qualifiers(id, n)

	case "generic_name":
		c.genericName(parent, n, role)

	default:
		c.node(parent, n, role)
	}
}

// genericName converts a generic name: the identifier followed by the type arguments.
func (c *converter) genericName(parent syntax.NodeID, n *sitter.Node, role syntax.Role) {
	id := c.add(parent, syntax.KindGenericName, role, n)

	name := field(n, "name")
	if name == nil {
		name = firstOfType(n, "identifier")
	}

	if name != nil {
		c.add(id, syntax.KindIdentifier, syntax.RoleName, name)
	}

	args := field(n, "type_arguments")
	if args == nil {
		args = firstOfType(n, "type_argument_list")
	}

	if args == nil {
		return
	}

	for _, arg := range named(args) {
		c.typeName(id, arg, syntax.RoleMember)
	}
}

func (c *converter) qualifiers(parent syntax.NodeID, n *sitter.Node) {
	for _, part := range named(n) {
		switch part.Type() {
		case "qualified_name":
			c.qualifiers(parent, part)

		case "identifier":
			c.add(parent, syntax.KindIdentifier, syntax.RoleName, part)

		case "generic_name":
			c.genericName(parent, part, syntax.RoleName)

		default:
			c.other(parent, part, syntax.RoleName)
		}
	}
}
