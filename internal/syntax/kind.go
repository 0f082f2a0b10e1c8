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

// Kind classifies a syntax node.
type Kind uint8

//go:generate go tool stringer -type Kind -trimprefix Kind
const (
	KindInvalid Kind = iota

	// Declarations.
	KindCompilationUnit
	KindNamespace
	KindTypeDecl
	KindConstructor
	KindConversionOperator
	KindMethod
	KindField
	KindProperty
	KindAccessor
	KindParameterList
	KindParameter

	// Statements.
	KindBlock
	KindArrowBody
	KindLocalDecl
	KindDeclarator
	KindExpressionStmt
	KindReturn

	// Names and types.
	KindIdentifier
	KindQualifiedName
	KindPredefinedType

	// Literals.
	KindStringLiteral
	KindIntegerLiteral
	KindRealLiteral
	KindBoolLiteral
	KindCharLiteral
	KindNullLiteral

	// Expressions.
	KindObjectCreation
	KindArgumentList
	KindArgument
	KindCast
	KindInvocation
	KindAssignment
	KindMemberAccess
	KindParenthesized
	KindBinary
	KindConditional
	KindLambda
	KindGenericName

	// KindOther is any construct without a dedicated kind. Its children are still converted.
	KindOther
)

// IsLiteral reports whether the kind is a literal expression.
func (k Kind) IsLiteral() bool {
	return KindStringLiteral <= k && k <= KindNullLiteral
}

// IsTypeName reports whether nodes of this kind can name a type.
func (k Kind) IsTypeName() bool {
	switch k {
	case KindIdentifier, KindQualifiedName, KindPredefinedType, KindGenericName:
		return true

	default:
		return false
	}
}

// Role describes the edge between a node and its parent.
type Role uint8

//go:generate go tool stringer -type Role -trimprefix Role
const (
	RoleNone Role = iota
	RoleMember
	RoleName
	RoleType
	RoleParams
	RoleBody
	RoleValue
	RoleArgs
	RoleLeft
	RoleRight
	RoleFunction
	RoleCondition
)

// Flags carry modifiers that are not represented as nodes.
type Flags uint8

const (
	// FlagImplicit marks an implicit conversion operator declaration.
	FlagImplicit Flags = 1 << iota

	// FlagExplicit marks an explicit conversion operator declaration.
	FlagExplicit

	// FlagStatic marks a static member.
	FlagStatic

	// FlagNamedArgument marks an argument written as `name: value`.
	FlagNamedArgument

	// FlagValueType marks a struct declaration.
	FlagValueType

	// FlagRecord marks a record declaration.
	FlagRecord

	// FlagError marks a node containing a syntax error or a missing token.
	FlagError
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }
