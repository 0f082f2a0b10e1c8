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

package report

import (
	"encoding/json"
	"fmt"
	"go/token"
	"io"

	"github.com/fatih/color"
	"golang.org/x/tools/go/analysis"
)

var (
	positionColor = color.New(color.Bold)
	severityColor = map[Severity]*color.Color{
		SeverityError:   color.New(color.FgRed, color.Bold),
		SeverityWarning: color.New(color.FgYellow, color.Bold),
		SeverityInfo:    color.New(color.FgBlue),
	}
	ruleColor = color.New(color.Faint)
)

// FormatText writes diagnostics in go vet text format, colored when the terminal supports it.
func FormatText(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		sev := d.Severity
		if sev == severityUnset {
			sev = SeverityWarning
		}

		c, ok := severityColor[sev]
		if !ok {
			c = color.New()
		}

		if _, err := fmt.Fprintf(w, "%s: %s: %s %s\n",
			positionColor.Sprint(d.Pos), c.Sprint(sev), d.Message, ruleColor.Sprintf("(%s)", d.RuleID)); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(diags)
}

// Analysis converts the diagnostic for reporting through [analysis.Pass.Report].
// file must be the [token.File] the diagnostic's source was added as.
func (d Diagnostic) Analysis(file *token.File) analysis.Diagnostic {
	ad := analysis.Diagnostic{
		Pos:      file.Pos(d.Span.Start),
		End:      file.Pos(d.Span.End),
		Category: d.RuleID,
		Message:  fmt.Sprintf("%s (%s)", d.Message, d.RuleID),
	}

	for _, fix := range d.Fixes {
		edits := make([]analysis.TextEdit, 0, len(fix.Edits))
		for _, e := range fix.Edits {
			edits = append(edits, analysis.TextEdit{
				Pos:     file.Pos(e.Span.Start),
				End:     file.Pos(e.Span.End),
				NewText: []byte(e.NewText),
			})
		}

		ad.SuggestedFixes = append(ad.SuggestedFixes, analysis.SuggestedFix{Message: fix.Title, TextEdits: edits})
	}

	return ad
}
