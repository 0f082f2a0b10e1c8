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
	"slices"
	"strings"

	"fillmore-labs.com/castguard/internal/syntax"
)

// TypeKind classifies a [Type].
type TypeKind uint8

const (
	// Unresolved is a type name that could not be bound.
	Unresolved TypeKind = iota
	// Builtin is a predefined type like int or string.
	Builtin
	// Class is a reference type declared in source.
	Class
	// Struct is a value type declared in source.
	Struct
	// Delegate is a framework delegate type like System.Func<T, TResult>.
	Delegate
)

// Type is a named type. Within one [Compilation] types are compared by identity.
type Type struct {
	name      string
	namespace string
	kind      TypeKind
	reference bool

	ctors       []*Method
	conversions []*Method
	methods     []*Method
	fields      map[string]*Type
	properties  map[string]*Type
	nested      map[string]*Type
	outer       *Type

	invoke *Method // delegates only
}

// Name returns the simple name of the type.
func (t *Type) Name() string { return t.name }

// Namespace returns the enclosing namespace, empty for the global namespace and builtins.
func (t *Type) Namespace() string { return t.namespace }

// Kind returns the type's kind.
func (t *Type) Kind() TypeKind { return t.kind }

// IsReference reports whether t is a reference type.
func (t *Type) IsReference() bool { return t.reference }

// FullName returns the namespace-qualified name, including enclosing types.
func (t *Type) FullName() string {
	name := t.name
	for o := t.outer; o != nil; o = o.outer {
		name = o.name + "." + name
	}

	if t.namespace == "" {
		return name
	}

	return t.namespace + "." + name
}

// DisplayName returns the name used when writing the type into code.
func (t *Type) DisplayName(qualified bool) string {
	if !qualified || t.kind == Builtin {
		return t.name
	}

	return t.FullName()
}

// Constructors returns the declared instance constructors.
func (t *Type) Constructors() []*Method { return slices.Clone(t.ctors) }

// Conversions returns the declared user-defined conversion operators.
func (t *Type) Conversions() []*Method { return slices.Clone(t.conversions) }

// Methods returns the declared ordinary methods.
func (t *Type) Methods() []*Method { return slices.Clone(t.methods) }

// Field returns the type of the named field.
func (t *Type) Field(name string) (*Type, bool) {
	typ, ok := t.fields[name]

	return typ, ok
}

// Property returns the type of the named property.
func (t *Type) Property(name string) (*Type, bool) {
	typ, ok := t.properties[name]

	return typ, ok
}

// Invoke returns the signature of a delegate type, or nil.
func (t *Type) Invoke() *Method { return t.invoke }

// member returns the reference kind and type of the named field or property.
func (t *Type) member(name string) (OperationKind, *Type, bool) {
	if typ, ok := t.fields[name]; ok {
		return OpFieldReference, typ, true
	}

	if typ, ok := t.properties[name]; ok {
		return OpPropertyReference, typ, true
	}

	return OpInvalid, nil, false
}

func (t *Type) String() string { return t.FullName() }

// MethodKind classifies a [Method].
type MethodKind uint8

const (
	// MethodOrdinary is a named method.
	MethodOrdinary MethodKind = iota
	// MethodConstructor is an instance constructor.
	MethodConstructor
	// MethodConversion is a user-defined conversion operator.
	MethodConversion
	// MethodDelegateInvoke is the signature of a delegate type.
	MethodDelegateInvoke
)

// Method describes a constructor, conversion operator or ordinary method.
type Method struct {
	Kind          MethodKind
	Name          string
	DeclaringType *Type
	Params        []*Type
	ParamNames    []string
	Result        *Type // nil for constructors and void methods
	Implicit      bool  // conversion operators only
	Static        bool

	Tree *syntax.Tree
	Decl syntax.NodeID
}

// SameParams reports whether m and o have pairwise identical parameter types.
func (m *Method) SameParams(o *Method) bool {
	return slices.Equal(m.Params, o.Params)
}

func (m *Method) String() string {
	s := m.DeclaringType.FullName() + "."
	switch m.Kind {
	case MethodConstructor:
		s += m.DeclaringType.name

	case MethodConversion:
		if m.Implicit {
			s += "implicit operator "
		} else {
			s += "explicit operator "
		}

		s += m.Result.name

	default:
		s += m.Name
	}

	s += "("
	for i, p := range m.Params {
		if i > 0 {
			s += ", "
		}

		s += p.name
	}

	return s + ")"
}

// Builtin types. They carry no members and are shared by all compilations.
var (
	Object  = &Type{name: "object", kind: Builtin, reference: true}
	String  = &Type{name: "string", kind: Builtin, reference: true}
	Bool    = &Type{name: "bool", kind: Builtin}
	Char    = &Type{name: "char", kind: Builtin}
	SByte   = &Type{name: "sbyte", kind: Builtin}
	Byte    = &Type{name: "byte", kind: Builtin}
	Short   = &Type{name: "short", kind: Builtin}
	UShort  = &Type{name: "ushort", kind: Builtin}
	Int     = &Type{name: "int", kind: Builtin}
	UInt    = &Type{name: "uint", kind: Builtin}
	Long    = &Type{name: "long", kind: Builtin}
	ULong   = &Type{name: "ulong", kind: Builtin}
	Float   = &Type{name: "float", kind: Builtin}
	Double  = &Type{name: "double", kind: Builtin}
	Decimal = &Type{name: "decimal", kind: Builtin}
	Void    = &Type{name: "void", kind: Builtin}

	// Null is the type of the null literal.
	Null = &Type{name: "null", kind: Builtin, reference: true}
)

var builtins = map[string]*Type{
	"object": Object, "string": String, "bool": Bool, "char": Char,
	"sbyte": SByte, "byte": Byte, "short": Short, "ushort": UShort,
	"int": Int, "uint": UInt, "long": Long, "ulong": ULong,
	"float": Float, "double": Double, "decimal": Decimal, "void": Void,
}

// runtimeNames maps the framework names of builtin types.
var runtimeNames = map[string]*Type{
	"Object": Object, "String": String, "Boolean": Bool, "Char": Char,
	"SByte": SByte, "Byte": Byte, "Int16": Short, "UInt16": UShort,
	"Int32": Int, "UInt32": UInt, "Int64": Long, "UInt64": ULong,
	"Single": Float, "Double": Double, "Decimal": Decimal, "Void": Void,
}

// LookupBuiltin returns the builtin type for a keyword like "int" or a framework name like "System.Int32".
func LookupBuiltin(name string) (*Type, bool) {
	if t, ok := builtins[name]; ok {
		return t, true
	}

	t, ok := runtimeNames[strings.TrimPrefix(name, "System.")]

	return t, ok
}
