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

// Package analyze implements the castguard analysis of C# documents.
//
// # Overview
//
// CastGuard detects implicit conversions through user-defined conversion
// operators and suggests an explicit constructor call instead.
//
// # Example
//
// Given
//
//	class Test
//	{
//	    public Test(string s) { }
//
//	    public static implicit operator Test(string s) => new Test(s);
//	}
//
// the declaration
//
//	Test test = "Hello";
//
// is reported and rewritten to
//
//	Test test = new ConsoleApplication1.Test("Hello");
//
// # Architecture
//
// The analysis uses a three-stage pipeline:
//
//  1. Parse: Parse all documents in parallel and compile them together, so types resolve across files
//  2. Match: Evaluate every operation of each document and filter suppressed and generated code
//  3. Rewrite: Compute a constructor rewrite for each diagnostic where exactly one constructor matches
//
// Fixes of one document are combined by [Document.Fix].
package analyze
