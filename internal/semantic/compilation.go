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
	"log/slog"
	"strings"

	"fillmore-labs.com/castguard/internal/syntax"
)

// Compilation binds a set of documents together, so types declared in one
// document resolve in all others.
type Compilation struct {
	trees      []*syntax.Tree
	types      map[string]*Type // by full name
	bySimple   map[string][]*Type
	unresolved map[string]*Type
	delegates  map[string]*Type
	order      []*Type
	decls      []*typeDecl
	models     map[*syntax.Tree]*model
}

// env is the lexical context of a declaration.
type env struct {
	namespaces []string // innermost first, ending with the global namespace ""
	typ        *Type
}

type typeDecl struct {
	tree *syntax.Tree
	node syntax.NodeID
	typ  *Type
	env  env
}

// Compile declares and binds all trees.
func Compile(ctx context.Context, trees ...*syntax.Tree) (*Compilation, error) {
	c := &Compilation{
		trees:      trees,
		types:      make(map[string]*Type),
		bySimple:   make(map[string][]*Type),
		unresolved: make(map[string]*Type),
		delegates:  make(map[string]*Type),
		models:     make(map[*syntax.Tree]*model, len(trees)),
	}

	for _, tree := range trees {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.declare(tree, tree.Root(), []string{""}, nil)
	}

	for _, d := range c.decls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.declareMembers(d)
	}

	for _, tree := range trees {
		c.models[tree] = &model{tree: tree, byNode: make(map[syntax.NodeID]Operation)}
	}

	for _, d := range c.decls {
		b := binder{c: c, ctx: ctx, tree: d.tree, env: d.env, m: c.models[d.tree]}
		if err := b.bindMembers(d.node); err != nil {
			return nil, err
		}
	}

	slog.Debug("Compiled C# documents", slog.Int("documents", len(trees)), slog.Int("types", len(c.types)))

	return c, nil
}

// Bind compiles a single document and returns its model.
func Bind(ctx context.Context, tree *syntax.Tree) (Model, error) {
	c, err := Compile(ctx, tree)
	if err != nil {
		return nil, err
	}

	return c.models[tree], nil
}

// Model returns the semantic model of tree, which must be part of the compilation.
func (c *Compilation) Model(tree *syntax.Tree) (Model, bool) {
	m, ok := c.models[tree]

	return m, ok
}

// Trees returns the compiled documents.
func (c *Compilation) Trees() []*syntax.Tree { return c.trees }

// Lookup returns the source type with the given full name.
func (c *Compilation) Lookup(fullName string) (*Type, bool) {
	t, ok := c.types[fullName]

	return t, ok
}

// Types yields all source types in declaration order.
func (c *Compilation) Types() iter.Seq[*Type] {
	return func(yield func(*Type) bool) {
		for _, t := range c.order {
			if !yield(t) {
				return
			}
		}
	}
}

// declare registers the types declared below id.
func (c *Compilation) declare(tree *syntax.Tree, id syntax.NodeID, namespaces []string, outer *Type) {
	for _, child := range tree.Children(id) {
		switch tree.Kind(child) {
		case syntax.KindNamespace:
			name := dottedName(tree, tree.Child(child, syntax.RoleName))
			if name == "" {
				continue
			}

			// namespace A.B { } also opens A.
			parts := strings.Split(name, ".")
			inner := make([]string, 0, len(parts)+len(namespaces))
			for i := len(parts); i >= 1; i-- {
				inner = append(inner, join(namespaces[0], strings.Join(parts[:i], ".")))
			}

			c.declare(tree, child, append(inner, namespaces...), outer)

		case syntax.KindTypeDecl:
			c.declareType(tree, child, namespaces, outer)

		case syntax.KindOther:
			if outer == nil {
				c.declare(tree, child, namespaces, nil)
			}
		}
	}
}

func (c *Compilation) declareType(tree *syntax.Tree, id syntax.NodeID, namespaces []string, outer *Type) {
	name := identifier(tree, tree.Child(id, syntax.RoleName))
	if name == "" {
		return
	}

	typ := &Type{name: name, namespace: namespaces[0], outer: outer, kind: Class, reference: true}
	if tree.Node(id).Flags.Has(syntax.FlagValueType) {
		typ.kind, typ.reference = Struct, false
	}

	if existing, ok := c.types[typ.FullName()]; ok {
		typ = existing // partial declaration
	} else {
		c.types[typ.FullName()] = typ
		c.order = append(c.order, typ)
		c.bySimple[name] = append(c.bySimple[name], typ)

		if outer != nil {
			if outer.nested == nil {
				outer.nested = make(map[string]*Type)
			}

			outer.nested[name] = typ
		}
	}

	c.decls = append(c.decls, &typeDecl{tree: tree, node: id, typ: typ, env: env{namespaces: namespaces, typ: typ}})

	for m := range tree.ChildrenWith(id, syntax.RoleMember) {
		if tree.Kind(m) == syntax.KindTypeDecl {
			c.declareType(tree, m, namespaces, typ)
		}
	}
}

// declareMembers records constructors, conversion operators, methods and fields.
func (c *Compilation) declareMembers(d *typeDecl) {
	tree, typ := d.tree, d.typ

	if tree.Child(d.node, syntax.RoleParams).Valid() {
		c.primaryConstructor(d)
	}

	for m := range tree.ChildrenWith(d.node, syntax.RoleMember) {
		n := tree.Node(m)
		switch n.Kind {
		case syntax.KindConstructor:
			if n.Flags.Has(syntax.FlagStatic) {
				continue
			}

			method := &Method{Kind: MethodConstructor, Name: typ.name, DeclaringType: typ, Tree: tree, Decl: m}
			c.parameters(d, m, method)
			typ.ctors = append(typ.ctors, method)

		case syntax.KindConversionOperator:
			method := &Method{
				Kind:          MethodConversion,
				DeclaringType: typ,
				Result:        c.resolve(tree, tree.Child(m, syntax.RoleType), d.env),
				Implicit:      n.Flags.Has(syntax.FlagImplicit),
				Static:        true,
				Tree:          tree,
				Decl:          m,
			}
			method.Name = "op_Explicit"
			if method.Implicit {
				method.Name = "op_Implicit"
			}

			c.parameters(d, m, method)
			typ.conversions = append(typ.conversions, method)

		case syntax.KindMethod:
			method := &Method{
				Kind:          MethodOrdinary,
				Name:          identifier(tree, tree.Child(m, syntax.RoleName)),
				DeclaringType: typ,
				Result:        c.resolve(tree, tree.Child(m, syntax.RoleType), d.env),
				Static:        n.Flags.Has(syntax.FlagStatic),
				Tree:          tree,
				Decl:          m,
			}
			if method.Result == Void {
				method.Result = nil
			}

			c.parameters(d, m, method)
			typ.methods = append(typ.methods, method)

		case syntax.KindField:
			ftyp := c.resolve(tree, tree.Child(m, syntax.RoleType), d.env)
			for v := range tree.ChildrenWith(m, syntax.RoleMember) {
				if tree.Kind(v) != syntax.KindDeclarator {
					continue
				}

				if typ.fields == nil {
					typ.fields = make(map[string]*Type)
				}

				typ.fields[identifier(tree, tree.Child(v, syntax.RoleName))] = ftyp
			}

		case syntax.KindProperty:
			typ.declareProperty(identifier(tree, tree.Child(m, syntax.RoleName)), c.resolve(tree, tree.Child(m, syntax.RoleType), d.env))
		}
	}
}

// primaryConstructor records the constructor declared by a parameter list on the type.
// Records also get a property per parameter and, for classes, a copy constructor.
func (c *Compilation) primaryConstructor(d *typeDecl) {
	tree, typ := d.tree, d.typ

	ctor := &Method{Kind: MethodConstructor, Name: typ.name, DeclaringType: typ, Tree: tree, Decl: d.node}
	c.parameters(d, d.node, ctor)
	typ.ctors = append(typ.ctors, ctor)

	if !tree.Node(d.node).Flags.Has(syntax.FlagRecord) {
		return
	}

	for i, name := range ctor.ParamNames {
		typ.declareProperty(name, ctor.Params[i])
	}

	if typ.kind == Class {
		copyCtor := &Method{
			Kind:          MethodConstructor,
			Name:          typ.name,
			DeclaringType: typ,
			Params:        []*Type{typ},
			ParamNames:    []string{"original"},
			Tree:          tree,
			Decl:          d.node,
		}
		typ.ctors = append(typ.ctors, copyCtor)
	}
}

func (t *Type) declareProperty(name string, typ *Type) {
	if name == "" {
		return
	}

	if t.properties == nil {
		t.properties = make(map[string]*Type)
	}

	t.properties[name] = typ
}

func (c *Compilation) parameters(d *typeDecl, member syntax.NodeID, method *Method) {
	list := d.tree.Child(member, syntax.RoleParams)
	for p := range d.tree.ChildrenWith(list, syntax.RoleMember) {
		if d.tree.Kind(p) != syntax.KindParameter {
			method.Params = append(method.Params, c.unresolvedType(d.tree.Text(p)))
			method.ParamNames = append(method.ParamNames, "")

			continue
		}

		method.Params = append(method.Params, c.resolve(d.tree, d.tree.Child(p, syntax.RoleType), d.env))
		method.ParamNames = append(method.ParamNames, identifier(d.tree, d.tree.Child(p, syntax.RoleName)))
	}
}

// resolve binds a type name node.
func (c *Compilation) resolve(tree *syntax.Tree, id syntax.NodeID, e env) *Type {
	switch tree.Kind(id) {
	case syntax.KindPredefinedType:
		if t, ok := builtins[tree.Text(id)]; ok {
			return t
		}

	case syntax.KindIdentifier:
		return c.lookupSimple(identifier(tree, id), e)

	case syntax.KindQualifiedName:
		if last := lastName(tree, id); tree.Kind(last) == syntax.KindGenericName {
			return c.generic(tree, dottedName(tree, id), last, e)
		}

		return c.lookupQualified(dottedName(tree, id), e)

	case syntax.KindGenericName:
		return c.generic(tree, dottedName(tree, id), id, e)
	}

	return c.unresolvedType(strings.TrimSpace(tree.Text(id)))
}

// generic binds a generic type name. Only the framework delegates Func and Action are known.
func (c *Compilation) generic(tree *syntax.Tree, name string, id syntax.NodeID, e env) *Type {
	var args []*Type
	for arg := range tree.ChildrenWith(id, syntax.RoleMember) {
		args = append(args, c.resolve(tree, arg, e))
	}

	name = strings.TrimPrefix(strings.TrimPrefix(name, "global::"), "System.")
	_, declared := c.bySimple[name]

	switch {
	case declared:
		return c.unresolvedType(strings.Join(strings.Fields(tree.Text(id)), ""))

	case name == "Func" && len(args) > 0:
		return c.delegate(name, args[:len(args)-1], args[len(args)-1])

	case name == "Action":
		return c.delegate(name, args, nil)

	default:
		return c.unresolvedType(strings.Join(strings.Fields(tree.Text(id)), ""))
	}
}

// delegate returns the delegate type with the given signature. Equal signatures share one type.
func (c *Compilation) delegate(name string, params []*Type, result *Type) *Type {
	args := make([]string, 0, len(params)+1)
	for _, p := range params {
		args = append(args, p.FullName())
	}

	if result != nil {
		args = append(args, result.FullName())
	}

	key := name
	if len(args) > 0 {
		key += "<" + strings.Join(args, ", ") + ">"
	}

	if t, ok := c.delegates[key]; ok {
		return t
	}

	t := &Type{name: key, namespace: "System", kind: Delegate, reference: true}
	t.invoke = &Method{Kind: MethodDelegateInvoke, Name: "Invoke", DeclaringType: t, Params: params, Result: result}
	t.invoke.ParamNames = make([]string, len(params))
	c.delegates[key] = t

	return t
}

// lastName returns the last part of a qualified name.
func lastName(tree *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	last := syntax.NoNode
	for part := range tree.ChildrenWith(id, syntax.RoleName) {
		last = part
	}

	return last
}

func (c *Compilation) lookupSimple(name string, e env) *Type {
	for t := e.typ; t != nil; t = t.outer {
		if n, ok := t.nested[name]; ok {
			return n
		}

		if t.name == name {
			return t
		}
	}

	for _, ns := range e.namespaces {
		if t, ok := c.types[join(ns, name)]; ok {
			return t
		}
	}

	if t, ok := LookupBuiltin(name); ok {
		return t
	}

	// Without using directives, a unique simple name is taken as imported.
	if candidates := c.bySimple[name]; len(candidates) == 1 {
		return candidates[0]
	}

	return c.unresolvedType(name)
}

func (c *Compilation) lookupQualified(name string, e env) *Type {
	for _, ns := range e.namespaces {
		if t, ok := c.types[join(ns, name)]; ok {
			return t
		}
	}

	if t, ok := LookupBuiltin(name); ok {
		return t
	}

	if rest, ok := strings.CutPrefix(name, "global::"); ok {
		if t, ok := c.types[rest]; ok {
			return t
		}
	}

	return c.unresolvedType(name)
}

func (c *Compilation) unresolvedType(name string) *Type {
	if t, ok := c.unresolved[name]; ok {
		return t
	}

	t := &Type{name: name, kind: Unresolved}
	c.unresolved[name] = t

	return t
}

// identifier returns the name of an identifier node without a verbatim prefix.
func identifier(tree *syntax.Tree, id syntax.NodeID) string {
	if tree.Kind(id) != syntax.KindIdentifier {
		return ""
	}

	return strings.TrimPrefix(tree.Text(id), "@")
}

// dottedName returns an identifier or qualified name without whitespace or comments.
func dottedName(tree *syntax.Tree, id syntax.NodeID) string {
	switch tree.Kind(id) {
	case syntax.KindIdentifier:
		return identifier(tree, id)

	case syntax.KindQualifiedName:
		var parts []string
		for part := range tree.ChildrenWith(id, syntax.RoleName) {
			parts = append(parts, dottedName(tree, part))
		}

		return strings.Join(parts, ".")

	case syntax.KindGenericName:
		return identifier(tree, tree.Child(id, syntax.RoleName))

	default:
		return ""
	}
}

func join(ns, name string) string {
	if ns == "" {
		return name
	}

	return ns + "." + name
}
