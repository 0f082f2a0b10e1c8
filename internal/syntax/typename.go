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
	"strings"
	"unicode"
)

// ErrTypeName is returned by [ParseTypeName] for malformed names.
var ErrTypeName = errors.New("malformed type name")

// predefined are the C# keywords that name builtin types.
var predefined = map[string]struct{}{
	"bool": {}, "byte": {}, "sbyte": {}, "short": {}, "ushort": {},
	"int": {}, "uint": {}, "long": {}, "ulong": {}, "char": {},
	"float": {}, "double": {}, "decimal": {}, "string": {}, "object": {},
}

// IsPredefinedType reports whether name is a builtin type keyword.
func IsPredefinedType(name string) bool {
	_, ok := predefined[name]

	return ok
}

// ParseTypeName parses a possibly qualified type name like "A.B.C" into a
// standalone tree rooted at a [KindIdentifier], [KindQualifiedName] or [KindPredefinedType] node.
func ParseTypeName(name string) (*Tree, error) {
	parts := strings.Split(name, ".")
	for _, p := range parts {
		if !isIdentifier(p) {
			return nil, fmt.Errorf("%q: %w", name, ErrTypeName)
		}
	}

	e := NewEmitter()

	switch {
	case len(parts) == 1 && IsPredefinedType(name):
		e.Leaf(KindPredefinedType, RoleNone, name)

	case len(parts) == 1:
		e.Leaf(KindIdentifier, RoleNone, name)

	default:
		e.Open(KindQualifiedName, RoleNone)

		for i, p := range parts {
			if i > 0 {
				e.Token(".")
			}

			e.Leaf(KindIdentifier, RoleName, p)
		}

		e.Close()
	}

	return e.Tree(name)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	s = strings.TrimPrefix(s, "@") // verbatim identifier

	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return s != ""
}
