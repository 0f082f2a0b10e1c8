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

// Package csharp parses C# source code into castguard's [syntax.Tree] using tree-sitter.
package csharp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"fillmore-labs.com/castguard/internal/syntax"
)

// ErrNoTree is returned when tree-sitter produces no syntax tree.
var ErrNoTree = errors.New("no syntax tree")

// Parser wraps a tree-sitter parser for C#.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new C# parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())

	return &Parser{parser: p}
}

// Close releases the tree-sitter resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// Parse parses src and mirrors it into a [syntax.Tree].
//
// Tree-sitter recovers from syntax errors; erroneous regions become
// [syntax.KindOther] nodes and bind to nothing.
func (p *Parser) Parse(ctx context.Context, name string, src []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ts, err := p.parser.ParseCtx(ctx, nil, src)
	if ts != nil {
		defer ts.Close()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	if ts == nil {
		return nil, fmt.Errorf("parse %s: %w", name, ErrNoTree)
	}

	root := ts.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: %w", name, ErrNoTree)
	}

	if root.HasError() {
		slog.Debug("Syntax errors in C# source", slog.String("file", name))
	}

	c := converter{b: syntax.NewBuilder(name, src), src: src}
	c.unit(root)
	c.comments(root)

	return c.b.Tree(), nil
}

// Parse is a convenience function parsing a single source with a fresh [Parser].
func Parse(ctx context.Context, name string, src []byte) (*syntax.Tree, error) {
	p := NewParser()
	defer p.Close()

	return p.Parse(ctx, name, src)
}
