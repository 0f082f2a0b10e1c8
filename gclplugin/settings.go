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

package gclplugin

import castguard "fillmore-labs.com/castguard/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Generated enables checks of generated C# files.
	Generated *bool `json:"generated,omitzero"`
	// Fix enables suggested constructor rewrites.
	Fix *bool `json:"fix,omitzero"`
	// Qualify writes constructed types with their namespace.
	Qualify *bool `json:"qualify,omitzero"`
}

// Options converts [Settings] into a list of [castguard.Option] for the castguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []castguard.Option {
	var opts []castguard.Option

	opts = appendOption(opts, s.Generated, castguard.WithGenerated)
	opts = appendOption(opts, s.Fix, castguard.WithFix)
	opts = appendOption(opts, s.Qualify, castguard.WithQualify)

	return opts
}

// appendOption appends a non-nil setting to a [castguard.Option] list.
func appendOption[T any](opts []castguard.Option, value *T, constructor func(T) castguard.Option) []castguard.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
