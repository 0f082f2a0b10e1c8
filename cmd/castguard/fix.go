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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fillmore-labs.com/castguard/internal/analyze"
	"fillmore-labs.com/castguard/internal/fixall"
)

func newFixCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] [paths...]",
		Short: "Rewrite implicit conversion operators into constructor calls",
		Long: `Rewrite implicit conversions through user-defined operators into explicit
constructor calls.

Without --write, the fixed sources are printed to standard output. Conversions
whose target type has no constructor with exactly the operator's parameter
types are left unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := load(cmd, analyzeOptions(v, true), args)
			if err != nil {
				return err
			}

			// Command-local flags are not read from configuration files or the environment.
			write, err := cmd.Flags().GetBool(keyWrite)
			if err != nil {
				return err
			}

			var applied, files int

			for i := range docs {
				n, err := fixDocument(cmd, &docs[i], write)
				if err != nil {
					return err
				}

				if n > 0 {
					applied += n
					files++
				}
			}

			slog.Info("Applied fixes", slog.Int("fixes", applied), slog.Int("files", files))

			return nil
		},
	}

	cmd.Flags().BoolP(keyWrite, "w", false, "write fixed sources back to their files")

	return cmd
}

// fixDocument applies the fixes of doc and returns the number of applied fixes.
func fixDocument(cmd *cobra.Command, doc *analyze.Document, write bool) (int, error) {
	name := doc.Tree.Name()

	out, err := doc.Fix(cmd.Context())

	switch {
	case errors.Is(err, fixall.ErrNoFixes):
		return 0, nil

	case err != nil:
		return 0, err
	}

	for _, s := range out.Skipped {
		slog.Debug("Skipped fix", slog.String("file", name), slog.Int("offset", s.Span.Start), slog.String("reason", s.Reason))
	}

	src := out.Tree.Source()

	if !write {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", name, src); err != nil {
			return 0, err
		}

		return len(out.Applied), nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode()
	}

	if err := os.WriteFile(name, src, mode); err != nil {
		return 0, fmt.Errorf("write %s: %w", name, err)
	}

	return len(out.Applied), nil
}
