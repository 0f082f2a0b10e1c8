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

// Package run adapts the castguard analysis to [analysis.Pass].
package run

import (
	"context"
	"go/token"
	"path/filepath"
	"runtime/trace"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/castguard/internal/analyze"
	"fillmore-labs.com/castguard/internal/astutil"
)

// Run executes the castguard pipeline over the C# sources in the package directory.
//
// The sources are added to the pass' file set, so diagnostics and suggested
// fixes refer to them like to Go files. Test variants of a package are skipped
// to report every document once.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	dir, ok := packageDir(p)
	if !ok {
		return nil, nil
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "CastGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	names, err := filepath.Glob(filepath.Join(dir, "*.cs"))
	if err != nil || len(names) == 0 {
		return nil, err
	}

	sources, err := analyze.ReadFiles(names...)
	if err != nil {
		return nil, err
	}

	files := make(map[string]*token.File, len(sources))
	for _, src := range sources {
		file := p.Fset.AddFile(src.Name, -1, len(src.Content))
		file.SetLinesForContent(src.Content)
		files[src.Name] = file
	}

	trees, err := analyze.Parse(ctx, sources)
	if err != nil {
		return nil, err
	}

	opts := analyze.Options{Behavior: r.Behavior}

	docs, err := opts.Run(ctx, trees...)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		file, ok := files[doc.Tree.Name()]
		if !ok || file.Size() != len(doc.Tree.Source()) {
			astutil.InternalError(p, file, "Document %s without file info", doc.Tree.Name())

			continue
		}

		for _, d := range doc.Diagnostics {
			p.Report(d.Analysis(file))
		}
	}

	return nil, nil
}

// packageDir returns the directory of a non-test package.
func packageDir(p *analysis.Pass) (string, bool) {
	if strings.HasSuffix(p.Pkg.Name(), "_test") || len(p.Files) == 0 {
		return "", false
	}

	var dir string

	for _, f := range p.Files {
		name := p.Fset.File(f.Pos()).Name()
		if strings.HasSuffix(name, "_test.go") {
			return "", false // test variant
		}

		dir = filepath.Dir(name)
	}

	return dir, true
}
