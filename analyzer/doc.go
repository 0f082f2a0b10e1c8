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

// Package analyzer implements the castguard static analysis pass.
//
// # Overview
//
// CastGuard detects C# implicit conversions that invoke a user-defined
// conversion operator and suggests an explicit constructor call instead.
// The analyzer checks the C# sources (*.cs) in the directory of each analyzed Go package.
//
// # Example
//
// Before:
//
//	Test test = "Hello";
//
// After applying castguard's suggested fix:
//
//	Test test = new ConsoleApplication1.Test("Hello");
//
// A fix is only suggested when the target type has exactly one constructor
// whose parameter types are identical to the operator's.
//
// # Flags
//
//   - -generated: check generated files
//   - -fix: suggest constructor rewrites
//   - -qualify: write constructed types with their namespace
package analyzer
