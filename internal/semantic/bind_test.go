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

package semantic_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	. "fillmore-labs.com/castguard/internal/semantic"
	"fillmore-labs.com/castguard/internal/testsource"
)

const sample = `namespace ConsoleApplication1
{
    class Test
    {
        public Test(string _)
        {
        }

        public static implicit operator Test(string _) => null;
    }

    class Actual
    {
        public Actual()
        {
            Test test = "Hello";
            Test test2 = new Test("Hello");
        }
    }
}
`

// conversions returns all conversion operations of the model.
func conversions(m Model) []*Conversion {
	var result []*Conversion

	for op := range m.Operations() {
		if c, ok := op.(*Conversion); ok {
			result = append(result, c)
		}
	}

	return result
}

// userDefined returns the operand texts of implicit user-defined conversions.
func userDefined(m Model) []string {
	var result []string

	for _, c := range conversions(m) {
		if c.IsImplicit() && c.OperatorMethod() != nil {
			result = append(result, m.Tree().Text(c.Operand().Syntax()))
		}
	}

	return result
}

func TestUserDefinedConversion(t *testing.T) {
	t.Parallel()

	m := testsource.Bind(t, sample)

	var found []*Conversion
	for _, c := range conversions(m) {
		if c.OperatorMethod() != nil {
			found = append(found, c)
		}
	}

	if len(found) != 1 {
		t.Fatalf("Got %d user-defined conversions, want 1", len(found))
	}

	c := found[0]

	if !c.IsImplicit() {
		t.Error("Got explicit conversion, want implicit")
	}

	if got, want := c.Type().FullName(), "ConsoleApplication1.Test"; got != want {
		t.Errorf("Got type %q, want %q", got, want)
	}

	if got, want := m.Tree().Text(c.Syntax()), `"Hello"`; got != want {
		t.Errorf("Got syntax %q, want %q", got, want)
	}

	if c.Syntax() != c.Operand().Syntax() {
		t.Error("Implicit conversion does not share the operand's syntax node")
	}

	method := c.OperatorMethod()
	if method.Kind != MethodConversion || !method.Implicit {
		t.Errorf("Got operator %v, want implicit conversion", method)
	}

	if !slices.Equal(method.Params, []*Type{String}) {
		t.Errorf("Got parameters %v, want [string]", method.Params)
	}

	if ctors := method.Result.Constructors(); len(ctors) != 1 || !ctors[0].SameParams(method) {
		t.Errorf("Got constructors %v, want one taking string", ctors)
	}
}

func TestOperationAt(t *testing.T) {
	t.Parallel()

	m := testsource.Bind(t, sample)

	var conv *Conversion
	for _, c := range conversions(m) {
		if c.OperatorMethod() != nil {
			conv = c
		}
	}

	if conv == nil {
		t.Fatal("No user-defined conversion")
	}

	op, err := m.OperationAt(t.Context(), conv.Syntax())
	if err != nil {
		t.Fatalf("Can't get operation: %v", err)
	}

	if op.Kind() != OpLiteral {
		t.Errorf("Got innermost operation %s, want %s", op.Kind(), OpLiteral)
	}

	if op.Parent() != Operation(conv) {
		t.Errorf("Got parent %v, want the conversion", op.Parent())
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := m.OperationAt(ctx, conv.Syntax()); !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}
}

func TestConversionContexts(t *testing.T) {
	t.Parallel()

	const decls = testsource.Target + `
    class User
    {
        Target field = "a";

        Target Expression() => "b";

        Target Return()
        {
            return "c";
        }

        void Take(Target t) { }

        void Call()
        {
            Take("d");
        }

        void Assign()
        {
            Target t;
            t = "e";
        }

        User(Target t) { }

        static User Make() => new User("f");

        void Named(int n, Target t) { }

        void CallNamed()
        {
            Named(t: ("g"), n: 1);
        }

        void Nested()
        {
            if (true)
            {
                Target t = "h";
            }
        }

        Target Property { get; set; }

        Target Computed => "i";

        Target Initialized { get; } = "j";

        Target Accessor
        {
            get { return "k"; }
            set { Property = value; }
        }

        void Expressions(bool b, User other)
        {
            Target sum = "l" + "m";
            Target choice = b ? "n" : "o";
            System.Func<Target> make = () => "p";
            other.Property = "q";
            Property = "r";
            System.Func<string, Target> wrap = x => x;
            System.Func<Target> block = () => { return "s"; };
            System.Action<Target> take = x => { };
            take("t");
        }
    }
`

	m := testsource.Statements(t, decls, "")

	got := userDefined(m)
	want := []string{
		`"a"`, `"b"`, `"c"`, `"d"`, `"e"`, `"f"`, `("g")`, `"h"`,
		`"i"`, `"j"`, `"k"`, `"l" + "m"`, `b ? "n" : "o"`, `"p"`, `"q"`, `"r"`, "x", `"s"`, `"t"`,
	}

	if !slices.Equal(got, want) {
		t.Errorf("Got conversions of %q, want %q", got, want)
	}
}

func TestExpressionTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want *Type
	}{
		{"int", `1 + 2`, Int},
		{"long", `1 + 2L`, Long},
		{"double", `1 * 2.0`, Double},
		{"uint_int", `1u - 2`, Long},
		{"decimal_double", `1m + 2.0`, nil},
		{"concat", `"a" + 1`, String},
		{"compare", `1 < 2`, Bool},
		{"logical", `true && false`, Bool},
		{"bitwise_bool", `true & false`, Bool},
		{"shift", `1L << 2`, Long},
		{"coalesce", `"a" ?? null`, String},
		{"conditional", `true ? 1 : 2L`, Long},
		{"conditional_null", `true ? "a" : null`, String},
		{"conditional_none", `true ? "a" : 1`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := testsource.Statements(t, "", "var v = "+tt.expr+";")

			var got *Type

			found := false
			for op := range m.Operations() {
				if op.Kind() == OpVariableDeclarator {
					got, found = op.Type(), true
				}
			}

			if !found {
				t.Fatal("No variable declarator")
			}

			if got != tt.want {
				t.Errorf("Got type %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrimaryConstructor(t *testing.T) {
	t.Parallel()

	const decls = `    record Target(string Name)
    {
        public static implicit operator Target(string s) => new Target(s);
    }
`

	m := testsource.Statements(t, decls, `Target t = "x"; string n = t.Name;`)

	if got, want := userDefined(m), []string{`"x"`}; !slices.Equal(got, want) {
		t.Fatalf("Got conversions of %q, want %q", got, want)
	}

	method := conversions(m)[0].OperatorMethod()

	ctors := method.Result.Constructors()
	if len(ctors) != 2 {
		t.Fatalf("Got constructors %v, want primary and copy constructor", ctors)
	}

	if !ctors[0].SameParams(method) || !slices.Equal(ctors[0].ParamNames, []string{"Name"}) {
		t.Errorf("Got primary constructor %v, want one taking string", ctors[0])
	}

	if !slices.Equal(ctors[1].Params, []*Type{method.Result}) {
		t.Errorf("Got copy constructor %v, want one taking %s", ctors[1], method.Result)
	}

	if typ, ok := method.Result.Property("Name"); !ok || typ != String {
		t.Errorf("Got property type %v, want %v", typ, String)
	}

	for op := range m.Operations() {
		if op.Kind() == OpPropertyReference && op.Type() != String {
			t.Errorf("Got property reference of type %v, want %v", op.Type(), String)
		}
	}
}

func TestNoUserDefinedConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"widening", `long x = 5;`},
		{"explicit_cast", `Target t = (Target)"Hello";`},
		{"constructor", `Target t = new Target("Hello");`},
		{"same_type", `string s = "Hello"; Target t = new Target(s);`},
		{"var", `var t = new Target("Hello");`},
		{"null", `Target t = null;`},
		{"object", `object o = "Hello";`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := testsource.Statements(t, testsource.Target, tt.body)

			for _, c := range conversions(m) {
				if c.IsImplicit() && c.OperatorMethod() != nil {
					t.Errorf("Got implicit user-defined conversion of %q", m.Tree().Text(c.Syntax()))
				}
			}
		})
	}
}

func TestExplicitCast(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, testsource.Target, `Target t = (Target)"Hello";`)

	cs := conversions(m)
	if len(cs) != 1 {
		t.Fatalf("Got %d conversions, want 1", len(cs))
	}

	if cs[0].IsImplicit() {
		t.Error("Got implicit cast, want explicit")
	}

	if cs[0].OperatorMethod() == nil {
		t.Error("Got no operator method for a cast using a user-defined operator")
	}

	if got, want := m.Tree().Text(cs[0].Syntax()), `(Target)"Hello"`; got != want {
		t.Errorf("Got syntax %q, want %q", got, want)
	}
}

func TestBuiltinConversion(t *testing.T) {
	t.Parallel()

	m := testsource.Statements(t, "", `long x = 5;`)

	cs := conversions(m)
	if len(cs) != 1 {
		t.Fatalf("Got %d conversions, want 1", len(cs))
	}

	if c := cs[0]; !c.IsImplicit() || c.OperatorMethod() != nil || c.Type() != Long {
		t.Errorf("Got conversion to %v with operator %v, want builtin implicit conversion to long", c.Type(), c.OperatorMethod())
	}
}

func TestAmbiguousOperator(t *testing.T) {
	t.Parallel()

	const decls = `    class Amount
    {
        public static implicit operator Amount(long l) => null;

        public static implicit operator Amount(double d) => null;
    }
`

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"ambiguous", `Amount a = 5;`, nil},
		{"exact", `Amount a = 5L;`, []string{"5L"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := testsource.Statements(t, decls, tt.body)

			if got := userDefined(m); !slices.Equal(got, tt.want) {
				t.Errorf("Got conversions of %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuiltinImplicit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to *Type
		want     bool
	}{
		{Int, Long, true},
		{Long, Int, false},
		{Char, Int, true},
		{Float, Double, true},
		{Double, Float, false},
		{String, Object, true},
		{Null, String, true},
		{Null, Int, false},
		{Int, Object, true},
		{Void, Object, false},
		{Int, String, false},
	}

	for _, tt := range tests {
		if got := BuiltinImplicit(tt.from, tt.to); got != tt.want {
			t.Errorf("Got %t for %s to %s, want %t", got, tt.from, tt.to, tt.want)
		}
	}
}

func TestLookupBuiltin(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]*Type{"int": Int, "System.Int32": Int, "String": String, "decimal": Decimal} {
		if got, ok := LookupBuiltin(name); !ok || got != want {
			t.Errorf("Got %v for %q, want %v", got, name, want)
		}
	}

	if _, ok := LookupBuiltin("Target"); ok {
		t.Error("Found builtin Target")
	}
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	tree := testsource.Parse(t, sample)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := Compile(ctx, tree); !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}
}

func TestCompilationAcrossDocuments(t *testing.T) {
	t.Parallel()

	decl := testsource.Parse(t, "namespace Lib\n{\n"+testsource.Target+"}\n")
	use := testsource.Parse(t, "namespace App\n{\n    class C\n    {\n        Lib.Target t = \"x\";\n    }\n}\n")

	c, err := Compile(t.Context(), decl, use)
	if err != nil {
		t.Fatalf("Can't compile: %v", err)
	}

	if _, ok := c.Lookup("Lib.Target"); !ok {
		t.Error("Type Lib.Target not declared")
	}

	m, ok := c.Model(use)
	if !ok {
		t.Fatal("No model for document")
	}

	if got, want := userDefined(m), []string{`"x"`}; !slices.Equal(got, want) {
		t.Errorf("Got conversions of %q, want %q", got, want)
	}

	var names []string
	for typ := range c.Types() {
		names = append(names, typ.FullName())
	}

	if want := []string{"Lib.Target", "App.C"}; !slices.Equal(names, want) {
		t.Errorf("Got types %q, want %q", names, want)
	}
}
