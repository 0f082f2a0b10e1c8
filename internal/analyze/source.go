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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/castguard/internal/csharp"
	"fillmore-labs.com/castguard/internal/syntax"
)

// Source is the content of a C# document.
type Source struct {
	Name    string
	Content []byte
}

// skipDirs are build output and tool directories not searched for sources.
var skipDirs = [...]string{"bin", "obj", ".git", ".vs", "node_modules"}

// Collect expands paths into C# source file names. Directories are searched recursively.
func Collect(paths ...string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, path)

			continue
		}

		err = filepath.WalkDir(path, func(name string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return err

			case d.IsDir():
				if name != path && slices.Contains(skipDirs[:], d.Name()) {
					return filepath.SkipDir
				}

			case strings.EqualFold(filepath.Ext(name), ".cs"):
				files = append(files, name)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", path, err)
		}
	}

	return files, nil
}

// ReadFiles reads the named files.
func ReadFiles(names ...string) ([]Source, error) {
	sources := make([]Source, 0, len(names))

	for _, name := range names {
		content, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read C# source: %w", err)
		}

		sources = append(sources, Source{Name: name, Content: content})
	}

	return sources, nil
}

// Parse parses sources in parallel, keeping their order.
func Parse(ctx context.Context, sources []Source) ([]*syntax.Tree, error) {
	trees := make([]*syntax.Tree, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, src := range sources {
		g.Go(func() error {
			p := csharp.NewParser()
			defer p.Close()

			tree, err := p.Parse(ctx, src.Name, src.Content)
			if err != nil {
				return err
			}

			trees[i] = tree

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return trees, nil
}
