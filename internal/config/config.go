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

// Package config holds the configuration flags shared by the analyzer, the plugin and the command line.
package config

import (
	"fmt"
	"strings"
)

// Config represents configuration options for the analysis.
type Config uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Config = 1 << iota

	// SuggestFixes determines whether diagnostics carry a constructor rewrite.
	SuggestFixes

	// QualifyNames writes constructed types with their namespace.
	QualifyNames
)

// names are the names of single flags, in bit order.
var names = [...]string{"generated", "fix", "qualify"}

// String returns the names of the set flags, joined by "|".
func (c Config) String() string {
	var s []string

	for i, name := range names {
		if c&(1<<i) != 0 {
			s = append(s, name)
		}
	}

	if rest := c &^ (1<<len(names) - 1); rest != 0 {
		s = append(s, fmt.Sprintf("0x%x", uint8(rest)))
	}

	if len(s) == 0 {
		return "none"
	}

	return strings.Join(s, "|")
}

// Default is the configuration used when no options are given.
func Default() BitMask[Config] {
	return NewBitMask(SuggestFixes, QualifyNames)
}
