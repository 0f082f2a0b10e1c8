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
	"strings"

	"fillmore-labs.com/castguard/internal/syntax"
)

func isNumeric(t *Type) bool {
	_, ok := numericWidening[t]

	return ok || t == Double || t == Decimal
}

func isSigned(t *Type) bool {
	return t == SByte || t == Short || t == Int || t == Long
}

// numericPromotion returns the operand type of a predefined arithmetic operator, or nil.
func numericPromotion(left, right *Type) *Type {
	if !isNumeric(left) || !isNumeric(right) {
		return nil
	}

	either := func(t *Type) bool { return left == t || right == t }

	switch {
	case either(Decimal):
		if either(Float) || either(Double) {
			return nil
		}

		return Decimal

	case either(Double):
		return Double

	case either(Float):
		return Float

	case either(ULong):
		if isSigned(left) || isSigned(right) {
			return nil
		}

		return ULong

	case either(Long):
		return Long

	case either(UInt):
		if isSigned(left) || isSigned(right) {
			return Long
		}

		return UInt

	default:
		return Int
	}
}

// integralPromotion is [numericPromotion] restricted to integral types.
func integralPromotion(left, right *Type) *Type {
	switch t := numericPromotion(left, right); t {
	case Float, Double, Decimal:
		return nil

	default:
		return t
	}
}

// binaryType returns the result type of a predefined binary operator, or nil.
func binaryType(op string, left, right *Type) *Type {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return Bool

	case "+":
		if left == String && right != nil || right == String && left != nil {
			return String
		}

		return numericPromotion(left, right)

	case "-", "*", "/", "%":
		return numericPromotion(left, right)

	case "&", "|", "^":
		if left == Bool && right == Bool {
			return Bool
		}

		return integralPromotion(left, right)

	case "<<", ">>", ">>>":
		return integralPromotion(left, Int)

	case "??":
		return commonType(left, right)

	default:
		return nil
	}
}

// commonType returns the type both types convert to when only one direction exists.
func commonType(a, b *Type) *Type {
	switch {
	case a == nil || b == nil:
		return nil

	case a == b:
		return a

	case ImplicitlyConvertible(a, b) && !ImplicitlyConvertible(b, a):
		return b

	case ImplicitlyConvertible(b, a) && !ImplicitlyConvertible(a, b):
		return a

	default:
		return nil
	}
}

// operatorText returns the operator token between the operands of a binary expression.
func (b *binder) operatorText(id syntax.NodeID) string {
	left := b.tree.Span(b.tree.Child(id, syntax.RoleLeft))
	right := b.tree.Span(b.tree.Child(id, syntax.RoleRight))

	if left.End > right.Start {
		return ""
	}

	return strings.TrimSpace(string(b.tree.Source()[left.End:right.Start]))
}

func (b *binder) bindBinary(id syntax.NodeID) Operation {
	left := b.bindExpression(b.tree.Child(id, syntax.RoleLeft))
	right := b.bindExpression(b.tree.Child(id, syntax.RoleRight))

	var lt, rt *Type
	if left != nil {
		lt = left.Type()
	}

	if right != nil {
		rt = right.Type()
	}

	op := b.operatorText(id)
	typ := binaryType(op, lt, rt)

	// Operands of arithmetic operators convert to the promoted type.
	var operand *Type

	switch op {
	case "??":
		operand = typ

	case "<<", ">>", ">>>":

	default:
		operand = numericPromotion(lt, rt)
	}

	var children []Operation

	for _, o := range [...]Operation{left, right} {
		if o == nil {
			continue
		}

		if operand != nil {
			o = b.convertImplicit(o, operand)
		}

		children = append(children, o)
	}

	return b.record(newOperation(OpBinary, id, typ, children...))
}

// bindConditional binds `c ? a : b`. Without a natural type, both branches convert to expected.
func (b *binder) bindConditional(id syntax.NodeID, expected *Type) Operation {
	var children []Operation

	if cond := b.bindExpression(b.tree.Child(id, syntax.RoleCondition)); cond != nil {
		children = append(children, b.convertImplicit(cond, Bool))
	}

	thenNode, elseNode := b.tree.Child(id, syntax.RoleLeft), b.tree.Child(id, syntax.RoleRight)

	then, els := b.bindExpression(thenNode), b.bindExpression(elseNode)

	var typ *Type
	if then != nil && els != nil {
		typ = commonType(then.Type(), els.Type())
	}

	if typ == nil {
		typ = expected
	}

	for _, branch := range [...]Operation{then, els} {
		if branch != nil {
			children = append(children, b.convertImplicit(branch, typ))
		}
	}

	return b.convertImplicit(b.record(newOperation(OpConditional, id, typ, children...)), expected)
}

// bindLambda binds a lambda converted to target. A delegate target supplies
// untyped parameter types and the type its body returns.
func (b *binder) bindLambda(id syntax.NodeID, target *Type) Operation {
	var signature *Method
	if target != nil {
		signature = target.invoke
	}

	b.push()
	defer b.pop()

	saved := b.result
	defer func() { b.result = saved }()

	b.result = nil
	if signature != nil {
		b.result = signature.Result
	}

	b.declareParameters(b.tree.Child(id, syntax.RoleParams), signature)

	var children []Operation

	switch body := b.tree.Child(id, syntax.RoleBody); b.tree.Kind(body) {
	case syntax.KindBlock:
		if op := b.bindStatement(body); op != nil {
			children = append(children, op)
		}

	default:
		value := b.bindValue(body, b.result)
		if value == nil {
			break
		}

		if b.result != nil {
			value = b.record(newOperation(OpReturn, body, nil, value))
		}

		children = append(children, value)
	}

	var typ *Type
	if signature != nil {
		typ = target
	}

	return b.record(newOperation(OpAnonymousFunction, id, typ, children...))
}
