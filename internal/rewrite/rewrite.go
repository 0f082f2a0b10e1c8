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

// Package rewrite replaces implicit conversions through user-defined operators
// with explicit constructor calls.
package rewrite

import (
	"context"
	"fmt"
	"log/slog"

	"fillmore-labs.com/castguard/internal/report"
	"fillmore-labs.com/castguard/internal/semantic"
	"fillmore-labs.com/castguard/internal/syntax"
)

// Result is a computed rewrite. The original tree is not modified.
type Result struct {
	// Tree is the rewritten document.
	Tree *syntax.Tree
	// Target is the replaced node in the original tree.
	Target syntax.NodeID
	// Replacement is the id of the inserted construction in Tree.
	Replacement syntax.NodeID
	// Fragment is the synthesized construction.
	Fragment *syntax.Tree
	// Edit is the textual change to the original source.
	Edit syntax.Edit
	// Constructor is the constructor the conversion was replaced with.
	Constructor *semantic.Method

	Title          string
	EquivalenceKey string
}

// Fix returns the result as a suggested fix.
func (r *Result) Fix() report.Fix {
	return report.Fix{Title: r.Title, EquivalenceKey: r.EquivalenceKey, Edits: []syntax.Edit{r.Edit}}
}

// Rewriter computes rewrites. The zero value writes simple type names.
type Rewriter struct {
	qualify bool
}

// New creates a [Rewriter]. When qualify is set, constructed types are written with their namespace.
func New(qualify bool) Rewriter {
	return Rewriter{qualify: qualify}
}

// Rewrite is a shortcut for a namespace-qualifying [Rewriter].
func Rewrite(ctx context.Context, model semantic.Model, span syntax.Span) (*Result, error) {
	return New(true).Rewrite(ctx, model, span)
}

// Rewrite replaces the conversion enclosing span by an explicit construction of its target type.
//
// It returns nil without error when the rewrite does not apply: there is no
// enclosing conversion, the conversion uses no operator, or the target type does
// not have exactly one constructor with the operator's parameter types.
func (r Rewriter) Rewrite(ctx context.Context, model semantic.Model, span syntax.Span) (*Result, error) {
	tree := model.Tree()

	node := tree.FindNode(span)
	if !node.Valid() {
		return nil, nil
	}

	conv, err := enclosingConversion(ctx, model, node)
	if conv == nil || err != nil {
		return nil, err
	}

	method := conv.OperatorMethod()
	if method == nil || method.Result == nil {
		slog.Debug("Conversion uses no operator", slog.String("file", tree.Name()), slog.Int("offset", span.Start))

		return nil, nil
	}

	ctor, ok := Constructor(method)
	if !ok {
		slog.Debug("No unique matching constructor",
			slog.String("file", tree.Name()), slog.Int("offset", span.Start), slog.String("operator", method.String()))

		return nil, nil
	}

	target := conv.Syntax()
	if hasError(tree, target) {
		slog.Debug("Conversion contains syntax errors", slog.String("file", tree.Name()), slog.Int("offset", span.Start))

		return nil, nil
	}

	frag, err := construct(tree, method.Result.DisplayName(r.qualify), unparen(tree, conv.Operand().Syntax()))
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", method.Result, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rewritten, replacement, err := tree.Replace(target, frag)
	if err != nil {
		return nil, err
	}

	return &Result{
		Tree:           rewritten,
		Target:         target,
		Replacement:    replacement,
		Fragment:       frag,
		Edit:           syntax.Edit{Span: tree.Span(target), NewText: string(frag.Source())},
		Constructor:    ctor,
		Title:          report.FixTitle,
		EquivalenceKey: report.FixTitle,
	}, nil
}

// enclosingConversion walks from the operation at node to the nearest conversion.
func enclosingConversion(ctx context.Context, model semantic.Model, node syntax.NodeID) (*semantic.Conversion, error) {
	op, err := model.OperationAt(ctx, node)
	if err != nil {
		return nil, err
	}

	for ; op != nil; op = op.Parent() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if op.Kind() != semantic.OpConversion {
			continue
		}

		if conv, ok := op.(*semantic.Conversion); ok {
			return conv, nil
		}
	}

	return nil, nil
}

// hasError reports whether the subtree at id or its enclosing statement contains a syntax error.
func hasError(tree *syntax.Tree, id syntax.NodeID) bool {
	for n := range tree.Preorder(id) {
		if tree.Node(n).Flags.Has(syntax.FlagError) {
			return true
		}
	}

	stmt := tree.Enclosing(id, syntax.KindLocalDecl, syntax.KindExpressionStmt, syntax.KindReturn,
		syntax.KindArrowBody, syntax.KindField, syntax.KindProperty)

	return stmt.Valid() && tree.Node(stmt).Flags.Has(syntax.FlagError)
}

// unparen returns the expression inside any enclosing parentheses.
func unparen(tree *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	for tree.Kind(id) == syntax.KindParenthesized {
		inner := tree.Child(id, syntax.RoleValue)
		if !inner.Valid() {
			break
		}

		id = inner
	}

	return id
}

// Constructor returns the single constructor of the operator's result type whose
// parameter types are identical, in order, to the operator's.
func Constructor(operator *semantic.Method) (*semantic.Method, bool) {
	if operator == nil || operator.Result == nil {
		return nil, false
	}

	var found *semantic.Method

	for _, ctor := range operator.Result.Constructors() {
		if len(ctor.Params) != len(operator.Params) || !ctor.SameParams(operator) {
			continue
		}

		if found != nil {
			return nil, false // ambiguous
		}

		found = ctor
	}

	return found, found != nil
}

// construct synthesizes `new T(operand)`, copying the operand verbatim.
func construct(tree *syntax.Tree, typeName string, operand syntax.NodeID) (*syntax.Tree, error) {
	typ, err := syntax.ParseTypeName(typeName)
	if err != nil {
		return nil, err
	}

	e := syntax.NewEmitter()

	e.Open(syntax.KindObjectCreation, syntax.RoleNone)
	e.Token("new ")
	e.Graft(typ, typ.Root(), syntax.RoleType)
	e.Open(syntax.KindArgumentList, syntax.RoleArgs)
	e.Token("(")
	e.Open(syntax.KindArgument, syntax.RoleMember)
	e.Graft(tree, operand, syntax.RoleValue)
	e.Close()
	e.Token(")")
	e.Close()
	e.Close()

	return e.Tree(tree.Name())
}
