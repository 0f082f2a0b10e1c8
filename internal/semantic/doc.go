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

// Package semantic binds C# syntax trees to a tree of typed operations.
//
// A [Compilation] declares the types of all documents first and then binds the
// member bodies of each document into a [Model]. Implicit conversions are made
// explicit as [Conversion] operations that share the syntax node of their operand,
// so the innermost operation at a node is the operand and its parent the conversion.
//
// Only the subset of the language needed to locate conversions is modeled:
// classes and structs with constructors, methods, fields and conversion operators,
// local declarations, assignments, invocations, object creation and returns.
package semantic
