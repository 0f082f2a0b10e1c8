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
	"log/slog"

	"fillmore-labs.com/castguard/internal/config"
)

// Options represent configuration options for the castguard analysis.
type Options struct {
	// Behavior holds the enabled [config.Config] flags.
	Behavior config.BitMask[config.Config]
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{Behavior: config.Default()}
}

// LogValue implements [slog.LogValuer].
func (o *Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("generated", o.Behavior.Enabled(config.IncludeGenerated)),
		slog.Bool("fix", o.Behavior.Enabled(config.SuggestFixes)),
		slog.Bool("qualify", o.Behavior.Enabled(config.QualifyNames)),
	)
}
