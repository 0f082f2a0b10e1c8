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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fillmore-labs.com/castguard/internal/report"
)

func newCheckCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [paths...]",
		Short: "Report implicit conversion operators",
		Long: `Report implicit conversions through user-defined operators in C# sources.

Paths may be files or directories, which are searched recursively for *.cs
files, skipping bin and obj. Without paths, the current directory is checked.

Exit codes:
  0  No problems found
  1  One or more conversions were reported
  2  Bad invocation (invalid flags, unreadable files)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := cmd.Flags().GetBool(keyJSON)
			if err != nil {
				return err
			}

			docs, err := load(cmd, analyzeOptions(v, true), args)
			if err != nil {
				return err
			}

			var diags []report.Diagnostic
			for _, doc := range docs {
				diags = append(diags, doc.Diagnostics...)
			}

			report.Sort(diags)

			out := cmd.OutOrStdout()
			if asJSON {
				err = report.FormatJSON(out, diags)
			} else {
				err = report.FormatText(out, diags)
			}

			if err != nil {
				return err
			}

			if len(diags) > 0 {
				return ErrFindings
			}

			return nil
		},
	}

	cmd.Flags().Bool(keyJSON, false, "output diagnostics as JSON")

	return cmd
}
