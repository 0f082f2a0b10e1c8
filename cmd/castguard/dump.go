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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fillmore-labs.com/castguard/internal/analyze"
	"fillmore-labs.com/castguard/internal/semantic"
)

func newDumpCommand() *cobra.Command {
	var operations bool

	cmd := &cobra.Command{
		Use:   "dump [flags] file",
		Short: "Print the syntax tree or bound operations of a C# file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := analyze.ReadFiles(args[0])
			if err != nil {
				return err
			}

			trees, err := analyze.Parse(cmd.Context(), sources)
			if err != nil {
				return err
			}

			tree, out := trees[0], cmd.OutOrStdout()

			if !operations {
				return tree.Dump(out, tree.Root())
			}

			model, err := semantic.Bind(cmd.Context(), tree)
			if err != nil {
				return err
			}

			for op := range model.Operations() {
				if op.Parent() != nil {
					continue
				}

				if err := dumpOperation(out, op, 0); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&operations, "operations", "o", false, "print bound operations instead of syntax")

	return cmd
}

func dumpOperation(w io.Writer, op semantic.Operation, depth int) error {
	typ := "-"
	if t := op.Type(); t != nil {
		typ = t.String()
	}

	suffix := ""
	if conv, ok := op.(*semantic.Conversion); ok {
		switch m := conv.OperatorMethod(); {
		case m != nil && conv.IsImplicit():
			suffix = " implicit " + m.String()

		case m != nil:
			suffix = " explicit " + m.String()

		case conv.IsImplicit():
			suffix = " implicit builtin"
		}
	}

	span := op.Span()
	if _, err := fmt.Fprintf(w, "%s%s [%d,%d) %s%s\n",
		strings.Repeat("  ", depth), op.Kind(), span.Start, span.End, typ, suffix); err != nil {
		return err
	}

	for _, child := range op.Children() {
		if err := dumpOperation(w, child, depth+1); err != nil {
			return err
		}
	}

	return nil
}
