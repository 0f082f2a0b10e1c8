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
	"strings"

	"fillmore-labs.com/castguard/internal/syntax"
)

type local struct {
	typ   *Type
	param bool
}

// binder binds the member bodies of one type declaration.
type binder struct {
	c    *Compilation
	ctx  context.Context //nolint:containedctx
	tree *syntax.Tree
	env  env
	m    *model

	result *Type // expected type of return statements
	scopes []map[string]local
	err    error
}

func (b *binder) bindMembers(decl syntax.NodeID) error {
	// Primary constructor parameters are in scope of all members.
	b.push()
	defer b.pop()

	b.declareParameters(b.tree.Child(decl, syntax.RoleParams), nil)

	for member := range b.tree.ChildrenWith(decl, syntax.RoleMember) {
		if err := b.ctx.Err(); err != nil {
			return err
		}

		var roots []Operation

		switch b.tree.Kind(member) {
		case syntax.KindConstructor, syntax.KindMethod, syntax.KindConversionOperator:
			roots = append(roots, b.bindFunction(member))

		case syntax.KindField:
			roots = append(roots, b.bindDeclaration(member, false))

		case syntax.KindProperty:
			roots = b.bindProperty(member)
		}

		if b.err != nil {
			return b.err
		}

		for _, root := range roots {
			if root != nil {
				b.m.roots = append(b.m.roots, root)
			}
		}
	}

	return nil
}

func (b *binder) push() { b.scopes = append(b.scopes, make(map[string]local)) }

func (b *binder) pop() { b.scopes = b.scopes[:len(b.scopes)-1] }

func (b *binder) declareLocal(name string, l local) {
	if name != "" && len(b.scopes) > 0 {
		b.scopes[len(b.scopes)-1][name] = l
	}
}

func (b *binder) lookupLocal(name string) (local, bool) {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if l, ok := b.scopes[i][name]; ok {
			return l, true
		}
	}

	return local{}, false
}

func (b *binder) record(op Operation) Operation {
	b.m.record(op)

	return op
}

// bindFunction binds the body of a constructor, method or conversion operator.
func (b *binder) bindFunction(member syntax.NodeID) Operation {
	b.push()
	defer b.pop()

	b.result = nil
	if b.tree.Kind(member) != syntax.KindConstructor {
		if t := b.c.resolve(b.tree, b.tree.Child(member, syntax.RoleType), b.env); t != Void {
			b.result = t
		}
	}

	b.declareParameters(b.tree.Child(member, syntax.RoleParams), nil)

	return b.bindBody(b.tree.Child(member, syntax.RoleBody))
}

// declareParameters declares the parameters of list as locals.
// Parameters without a type take theirs from signature, when given.
func (b *binder) declareParameters(list syntax.NodeID, signature *Method) {
	i := 0

	for p := range b.tree.ChildrenWith(list, syntax.RoleMember) {
		if b.tree.Kind(p) != syntax.KindParameter {
			continue
		}

		var typ *Type

		switch typeNode := b.tree.Child(p, syntax.RoleType); {
		case typeNode.Valid():
			typ = b.c.resolve(b.tree, typeNode, b.env)

		case signature != nil && i < len(signature.Params):
			typ = signature.Params[i]
		}

		b.declareLocal(identifier(b.tree, b.tree.Child(p, syntax.RoleName)), local{typ: typ, param: true})
		i++
	}
}

// bindBody binds a block or expression body. Expression bodies return their value when b.result is set.
func (b *binder) bindBody(body syntax.NodeID) Operation {
	switch b.tree.Kind(body) {
	case syntax.KindBlock:
		return b.bindStatement(body)

	case syntax.KindArrowBody:
		value := b.bindValue(b.tree.Child(body, syntax.RoleValue), b.result)
		if value == nil {
			return nil
		}

		if b.result == nil {
			return b.record(newOperation(OpExpressionStatement, body, nil, value))
		}

		return b.record(newOperation(OpReturn, body, nil, value))

	default:
		return nil
	}
}

// bindProperty binds the accessors, expression body and initializer of a property.
func (b *binder) bindProperty(member syntax.NodeID) []Operation {
	typ := b.c.resolve(b.tree, b.tree.Child(member, syntax.RoleType), b.env)

	var roots []Operation

	b.result = typ
	if body := b.tree.Child(member, syntax.RoleBody); body.Valid() {
		roots = append(roots, b.bindBody(body))
	}

	for acc := range b.tree.ChildrenWith(member, syntax.RoleMember) {
		if b.tree.Kind(acc) != syntax.KindAccessor {
			continue
		}

		roots = append(roots, b.bindAccessor(acc, typ))
	}

	b.result = nil
	if v := b.tree.Child(member, syntax.RoleValue); v.Valid() {
		if value := b.bindValue(v, typ); value != nil {
			roots = append(roots, b.record(newOperation(OpPropertyInitializer, member, nil, value)))
		}
	}

	return roots
}

// bindAccessor binds a get, set or init accessor of a property of type typ.
func (b *binder) bindAccessor(acc syntax.NodeID, typ *Type) Operation {
	b.push()
	defer b.pop()

	b.result = typ
	if identifier(b.tree, b.tree.Child(acc, syntax.RoleName)) != "get" {
		b.result = nil
		b.declareLocal("value", local{typ: typ, param: true})
	}

	return b.bindBody(b.tree.Child(acc, syntax.RoleBody))
}

// bindStatement binds a statement node, or returns nil for nodes that are no statements.
func (b *binder) bindStatement(id syntax.NodeID) Operation {
	if err := b.ctx.Err(); err != nil {
		b.err = err

		return nil
	}

	switch b.tree.Kind(id) {
	case syntax.KindBlock:
		b.push()
		defer b.pop()

		var stmts []Operation
		for _, s := range b.tree.Children(id) {
			if op := b.bindAny(s); op != nil {
				stmts = append(stmts, op)
			}
		}

		return b.record(newOperation(OpBlock, id, nil, stmts...))

	case syntax.KindLocalDecl:
		return b.bindDeclaration(id, true)

	case syntax.KindExpressionStmt:
		value := b.bindExpression(b.tree.Child(id, syntax.RoleValue))
		if value == nil {
			return b.record(newOperation(OpExpressionStatement, id, nil))
		}

		return b.record(newOperation(OpExpressionStatement, id, nil, value))

	case syntax.KindReturn:
		value := b.bindValue(b.tree.Child(id, syntax.RoleValue), b.result)
		if value == nil {
			return b.record(newOperation(OpReturn, id, nil))
		}

		return b.record(newOperation(OpReturn, id, nil, value))

	default:
		return nil
	}
}

// bindDeclaration binds local or field declarations: each initializer converts to the declared type.
func (b *binder) bindDeclaration(id syntax.NodeID, locals bool) Operation {
	typeNode := b.tree.Child(id, syntax.RoleType)

	var declared *Type
	if !b.isVar(typeNode) {
		declared = b.c.resolve(b.tree, typeNode, b.env)
	}

	var declarators []Operation

	for d := range b.tree.ChildrenWith(id, syntax.RoleMember) {
		if b.tree.Kind(d) != syntax.KindDeclarator {
			continue
		}

		typ := declared

		var children []Operation
		if value := b.bindValue(b.tree.Child(d, syntax.RoleValue), typ); value != nil {
			if typ == nil {
				typ = value.Type()
			}

			children = append(children, value)
		}

		if locals {
			b.declareLocal(identifier(b.tree, b.tree.Child(d, syntax.RoleName)), local{typ: typ})
		}

		declarators = append(declarators, b.record(newOperation(OpVariableDeclarator, d, typ, children...)))
	}

	return b.record(newOperation(OpVariableDeclaration, id, nil, declarators...))
}

// isVar reports whether a declaration uses an inferred type.
func (b *binder) isVar(typeNode syntax.NodeID) bool {
	if identifier(b.tree, typeNode) != "var" {
		return false
	}

	return b.c.lookupSimple("var", b.env).kind == Unresolved
}

// bindAny binds statements and expressions alike, skipping declarations and type names.
func (b *binder) bindAny(id syntax.NodeID) Operation {
	switch k := b.tree.Kind(id); {
	case k == syntax.KindBlock, k == syntax.KindLocalDecl, k == syntax.KindExpressionStmt, k == syntax.KindReturn:
		return b.bindStatement(id)

	case k == syntax.KindOther:
		return b.bindOther(id)

	case k.IsLiteral(), k == syntax.KindIdentifier, k >= syntax.KindObjectCreation && k < syntax.KindOther:
		return b.bindExpression(id)

	default:
		return nil
	}
}

// bindOther binds constructs without dedicated support, so conversions nested in them are still found.
func (b *binder) bindOther(id syntax.NodeID) Operation {
	b.push()
	defer b.pop()

	var children []Operation
	for _, c := range b.tree.Children(id) {
		if op := b.bindAny(c); op != nil {
			children = append(children, op)
		}
	}

	var typ *Type
	if strings.TrimSpace(b.tree.Text(id)) == "this" {
		typ = b.env.typ
	}

	return b.record(newOperation(OpOther, id, typ, children...))
}

// bindValue binds an expression converted to the expected type, which may be nil.
// Lambdas take their signature and conditionals without natural type their type from it.
func (b *binder) bindValue(id syntax.NodeID, expected *Type) Operation {
	switch b.tree.Kind(id) {
	case syntax.KindLambda:
		return b.bindLambda(id, expected)

	case syntax.KindConditional:
		return b.bindConditional(id, expected)
	}

	value := b.bindExpression(id)
	if value == nil {
		return nil
	}

	return b.convertImplicit(value, expected)
}

// bindExpression binds an expression node. It returns nil for an invalid node.
func (b *binder) bindExpression(id syntax.NodeID) Operation {
	if !id.Valid() {
		return nil
	}

	switch k := b.tree.Kind(id); k {
	case syntax.KindStringLiteral, syntax.KindIntegerLiteral, syntax.KindRealLiteral,
		syntax.KindBoolLiteral, syntax.KindCharLiteral, syntax.KindNullLiteral:
		return b.record(newOperation(OpLiteral, id, literalType(k, b.tree.Text(id))))

	case syntax.KindIdentifier:
		return b.bindName(id)

	case syntax.KindParenthesized:
		inner := b.bindExpression(b.tree.Child(id, syntax.RoleValue))
		if inner == nil {
			return b.record(newOperation(OpParenthesized, id, nil))
		}

		return b.record(newOperation(OpParenthesized, id, inner.Type(), inner))

	case syntax.KindCast:
		typ := b.c.resolve(b.tree, b.tree.Child(id, syntax.RoleType), b.env)

		operand := b.bindExpression(b.tree.Child(id, syntax.RoleValue))
		if operand == nil {
			return b.record(newOperation(OpOther, id, typ))
		}

		return b.record(newConversion(operand, id, typ, false, userDefined(operand.Type(), typ, false)))

	case syntax.KindObjectCreation:
		return b.bindCreation(id)

	case syntax.KindInvocation:
		return b.bindInvocation(id)

	case syntax.KindAssignment:
		left := b.bindExpression(b.tree.Child(id, syntax.RoleLeft))

		var (
			typ      *Type
			children []Operation
		)

		if left != nil {
			typ = left.Type()
			children = append(children, left)
		}

		if right := b.bindValue(b.tree.Child(id, syntax.RoleRight), typ); right != nil {
			children = append(children, right)
		}

		return b.record(newOperation(OpAssignment, id, typ, children...))

	case syntax.KindMemberAccess:
		return b.bindMemberAccess(id)

	case syntax.KindBinary:
		return b.bindBinary(id)

	case syntax.KindConditional:
		return b.bindConditional(id, nil)

	case syntax.KindLambda:
		return b.bindLambda(id, nil)

	case syntax.KindOther:
		return b.bindOther(id)

	default:
		return nil
	}
}

// bindName binds a simple name as a local, parameter or field reference.
func (b *binder) bindName(id syntax.NodeID) Operation {
	name := identifier(b.tree, id)

	if l, ok := b.lookupLocal(name); ok {
		kind := OpLocalReference
		if l.param {
			kind = OpParameterReference
		}

		return b.record(newOperation(kind, id, l.typ))
	}

	for t := b.env.typ; t != nil; t = t.outer {
		if kind, typ, ok := t.member(name); ok {
			return b.record(newOperation(kind, id, typ))
		}
	}

	return b.record(newOperation(OpOther, id, nil))
}

// staticType returns the type named by a receiver expression that is no value.
func (b *binder) staticType(id syntax.NodeID) *Type {
	switch b.tree.Kind(id) {
	case syntax.KindIdentifier:
		name := identifier(b.tree, id)
		if _, ok := b.lookupLocal(name); ok {
			return nil
		}

		if t := b.c.lookupSimple(name, b.env); t.kind == Class || t.kind == Struct {
			return t
		}

	case syntax.KindMemberAccess:
		if t := b.c.lookupQualified(strings.Join(strings.Fields(b.tree.Text(id)), ""), b.env); t.kind == Class || t.kind == Struct {
			return t
		}
	}

	return nil
}

func (b *binder) bindMemberAccess(id syntax.NodeID) Operation {
	name := identifier(b.tree, b.tree.Child(id, syntax.RoleName))
	recvNode := b.tree.Child(id, syntax.RoleValue)

	if t := b.staticType(recvNode); t != nil {
		if kind, typ, ok := t.member(name); ok {
			return b.record(newOperation(kind, id, typ))
		}

		return b.record(newOperation(OpOther, id, nil))
	}

	recv := b.bindExpression(recvNode)
	if recv == nil {
		return b.record(newOperation(OpOther, id, nil))
	}

	if t := recv.Type(); t != nil {
		if kind, typ, ok := t.member(name); ok {
			return b.record(newOperation(kind, id, typ, recv))
		}
	}

	return b.record(newOperation(OpOther, id, nil, recv))
}

type argument struct {
	node  syntax.NodeID
	name  string
	value Operation
}

func (b *binder) bindArguments(list syntax.NodeID) []argument {
	var args []argument

	for a := range b.tree.ChildrenWith(list, syntax.RoleMember) {
		if b.tree.Kind(a) != syntax.KindArgument {
			continue
		}

		arg := argument{node: a, value: b.bindExpression(b.tree.Child(a, syntax.RoleValue))}
		if b.tree.Node(a).Flags.Has(syntax.FlagNamedArgument) {
			arg.name = identifier(b.tree, b.tree.Child(a, syntax.RoleName))
		}

		args = append(args, arg)
	}

	return args
}

// convertArguments builds argument operations, converting to the selected parameter types.
func (b *binder) convertArguments(args []argument, params []*Type) []Operation {
	ops := make([]Operation, 0, len(args))

	for i, arg := range args {
		var typ *Type
		if params != nil {
			typ = params[i]
		}

		if arg.value == nil {
			ops = append(ops, b.record(newOperation(OpArgument, arg.node, typ)))

			continue
		}

		value := b.convertImplicit(arg.value, typ)
		ops = append(ops, b.record(newOperation(OpArgument, arg.node, typ, value)))
	}

	return ops
}

func (b *binder) bindCreation(id syntax.NodeID) Operation {
	typ := b.c.resolve(b.tree, b.tree.Child(id, syntax.RoleType), b.env)
	args := b.bindArguments(b.tree.Child(id, syntax.RoleArgs))

	ctor, params := overload(typ.ctors, args)
	children := b.convertArguments(args, params)

	for _, c := range b.tree.Children(id) {
		if b.tree.Kind(c) == syntax.KindOther {
			if init := b.bindOther(c); init != nil {
				children = append(children, init)
			}
		}
	}

	return b.record(newCreation(id, typ, ctor, children))
}

func (b *binder) bindInvocation(id syntax.NodeID) Operation {
	fn := b.tree.Child(id, syntax.RoleFunction)

	var (
		candidates []*Method
		name       string
		children   []Operation
	)

	switch b.tree.Kind(fn) {
	case syntax.KindIdentifier:
		name = identifier(b.tree, fn)
		if l, ok := b.lookupLocal(name); ok && l.typ != nil && l.typ.invoke != nil {
			name = l.typ.invoke.Name
			candidates = append(candidates, l.typ.invoke)
			children = append(children, b.bindName(fn))

			break
		}

		for t := b.env.typ; t != nil; t = t.outer {
			candidates = append(candidates, t.methods...)
		}

	case syntax.KindMemberAccess:
		name = identifier(b.tree, b.tree.Child(fn, syntax.RoleName))
		recvNode := b.tree.Child(fn, syntax.RoleValue)

		if t := b.staticType(recvNode); t != nil {
			candidates = t.methods
		} else if recv := b.bindExpression(recvNode); recv != nil {
			children = append(children, recv)
			if t := recv.Type(); t != nil {
				candidates = t.methods
			}
		}

	default:
		if op := b.bindExpression(fn); op != nil {
			children = append(children, op)
		}
	}

	named := make([]*Method, 0, len(candidates))
	for _, m := range candidates {
		if m.Name == name {
			named = append(named, m)
		}
	}

	args := b.bindArguments(b.tree.Child(id, syntax.RoleArgs))
	method, params := overload(named, args)
	children = append(children, b.convertArguments(args, params)...)

	return b.record(newCall(id, method, children))
}

// overload selects the applicable candidate, preferring exact matches.
// It returns the parameter type for each argument of the chosen method.
func overload(candidates []*Method, args []argument) (*Method, []*Type) {
	var (
		applicable, exact []*Method
		mappings          = make(map[*Method][]*Type)
	)

	for _, m := range candidates {
		params, ok := mapArguments(m, args)
		if !ok {
			continue
		}

		allExact, allApplicable := true, true

		for i, arg := range args {
			if arg.value == nil || arg.value.Type() == nil {
				allApplicable = false

				break
			}

			from := arg.value.Type()
			if from != params[i] {
				allExact = false
			}

			if !ImplicitlyConvertible(from, params[i]) {
				allApplicable = false

				break
			}
		}

		if !allApplicable {
			continue
		}

		mappings[m] = params
		applicable = append(applicable, m)

		if allExact {
			exact = append(exact, m)
		}
	}

	switch {
	case len(applicable) == 1:
		return applicable[0], mappings[applicable[0]]

	case len(exact) == 1:
		return exact[0], mappings[exact[0]]

	default:
		return nil, nil
	}
}

// mapArguments returns the parameter type for each argument, matching named arguments by name.
func mapArguments(m *Method, args []argument) ([]*Type, bool) {
	if len(args) != len(m.Params) {
		return nil, false
	}

	params := make([]*Type, len(args))
	used := make([]bool, len(m.Params))

	for i, arg := range args {
		pos := i
		if arg.name != "" {
			pos = -1

			for j, name := range m.ParamNames {
				if name == arg.name {
					pos = j

					break
				}
			}
		}

		if pos < 0 || used[pos] {
			return nil, false
		}

		used[pos] = true
		params[i] = m.Params[pos]
	}

	return params, true
}

// literalType returns the type of a literal from its kind and suffix.
func literalType(k syntax.Kind, text string) *Type {
	switch k {
	case syntax.KindStringLiteral:
		return String

	case syntax.KindBoolLiteral:
		return Bool

	case syntax.KindCharLiteral:
		return Char

	case syntax.KindNullLiteral:
		return Null

	case syntax.KindIntegerLiteral:
		switch strings.ToLower(strings.TrimLeft(text, "0123456789abcdefABCDEFxX_")) {
		case "l":
			return Long

		case "u":
			return UInt

		case "ul", "lu":
			return ULong

		default:
			return Int
		}

	case syntax.KindRealLiteral:
		switch strings.ToLower(text[len(text)-1:]) {
		case "f":
			return Float

		case "m":
			return Decimal

		default:
			return Double
		}

	default:
		return nil
	}
}
