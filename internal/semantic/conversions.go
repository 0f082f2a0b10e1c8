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

import "slices"

// numericWidening lists the implicit numeric conversions.
var numericWidening = map[*Type][]*Type{
	SByte:  {Short, Int, Long, Float, Double, Decimal},
	Byte:   {Short, UShort, Int, UInt, Long, ULong, Float, Double, Decimal},
	Short:  {Int, Long, Float, Double, Decimal},
	UShort: {Int, UInt, Long, ULong, Float, Double, Decimal},
	Int:    {Long, Float, Double, Decimal},
	UInt:   {Long, ULong, Float, Double, Decimal},
	Long:   {Float, Double, Decimal},
	ULong:  {Float, Double, Decimal},
	Char:   {UShort, Int, UInt, Long, ULong, Float, Double, Decimal},
	Float:  {Double},
}

// BuiltinImplicit reports whether a conversion from one type to another exists without a user-defined operator.
func BuiltinImplicit(from, to *Type) bool {
	switch {
	case from == nil || to == nil || from == Void || to == Void:
		return false

	case from == to:
		return true

	case to == Object:
		return true

	case from == Null:
		return to.reference

	default:
		return slices.Contains(numericWidening[from], to)
	}
}

// userDefined selects the user-defined conversion operator from one type to another.
//
// Exact parameter matches are preferred. Several equally good candidates are
// ambiguous and select nothing.
func userDefined(from, to *Type, implicitOnly bool) *Method {
	if from == nil || to == nil || from == to {
		return nil
	}

	var candidates, exact []*Method

	for _, decls := range [...][]*Method{from.conversions, to.conversions} {
		for _, m := range decls {
			if implicitOnly && !m.Implicit || m.Result != to || len(m.Params) != 1 {
				continue
			}

			switch p := m.Params[0]; {
			case p == from:
				exact = append(exact, m)
				candidates = append(candidates, m)

			case BuiltinImplicit(from, p):
				candidates = append(candidates, m)
			}
		}
	}

	switch {
	case len(exact) == 1:
		return exact[0]

	case len(exact) == 0 && len(candidates) == 1:
		return candidates[0]

	default:
		return nil
	}
}

// ImplicitlyConvertible reports whether a value of one type can be used where the other is expected.
func ImplicitlyConvertible(from, to *Type) bool {
	return BuiltinImplicit(from, to) || userDefined(from, to, true) != nil
}

// convertImplicit wraps op into an implicit conversion to typ when needed.
func (b *binder) convertImplicit(op Operation, typ *Type) Operation {
	from := op.Type()
	if from == nil || typ == nil || from == typ {
		return op
	}

	var conv *Conversion

	switch {
	case BuiltinImplicit(from, typ):
		conv = newConversion(op, op.Syntax(), typ, true, nil)

	default:
		method := userDefined(from, typ, true)
		if method == nil {
			return op
		}

		conv = newConversion(op, op.Syntax(), typ, true, method)
	}

	b.m.record(conv)

	return conv
}
