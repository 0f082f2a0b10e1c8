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

// Package syntax is the tree model castguard analyzes and rewrites.
//
// A [Tree] is an arena of [Node] values addressed by [NodeID], covering a
// source text with byte [Span]s. Trees are immutable: [Tree.Replace] produces
// a new tree and keeps the ids of untouched nodes, which lets independent
// edits computed on one tree be composed in any order.
//
// Parsers mirror their concrete syntax with a [Builder]; new code is
// synthesized with an [Emitter], which writes text and nodes together.
package syntax
