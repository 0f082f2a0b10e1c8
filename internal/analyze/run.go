// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/trace"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/castguard/internal/semantic"
	"fillmore-labs.com/castguard/internal/syntax"
)

// ErrNoModel is returned when a document was not bound by the compilation.
var ErrNoModel = errors.New("no semantic model")

// Run executes the castguard pipeline over documents compiled together.
// The result has one [Document] per tree, in the order given.
func (o *Options) Run(ctx context.Context, trees ...*syntax.Tree) ([]Document, error) {
	ctx, task := trace.NewTask(ctx, "CastGuard")
	defer task.End()

	slog.Debug("Analyzing C# documents", slog.Int("documents", len(trees)), slog.Any("options", o))

	// Stage 1: Declare all types and bind member bodies
	var (
		comp *semantic.Compilation
		err  error
	)

	trace.WithRegion(ctx, "compile", func() {
		comp, err = semantic.Compile(ctx, trees...)
	})

	if err != nil {
		return nil, err
	}

	models, err := modelsOf(comp, trees)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(trees))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, model := range models {
		g.Go(func() error {
			defer trace.StartRegion(ctx, "evaluate").End()

			trace.Log(ctx, "document", model.Tree().Name())

			// Stages 2 and 3: Report conversions and compute rewrites
			doc, err := o.evaluate(ctx, model)
			if err != nil {
				return err
			}

			docs[i] = doc

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

// modelsOf returns the semantic model of each tree.
func modelsOf(comp *semantic.Compilation, trees []*syntax.Tree) ([]semantic.Model, error) {
	models := make([]semantic.Model, 0, len(trees))

	for _, tree := range trees {
		model, ok := comp.Model(tree)
		if !ok {
			return nil, fmt.Errorf("%s: %w", tree.Name(), ErrNoModel)
		}

		models = append(models, model)
	}

	return models, nil
}
