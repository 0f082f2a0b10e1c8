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

// Castguard reports implicit user-defined conversion operators in C# sources
// and rewrites them into explicit constructor calls.
//
// Usage:
//
//	castguard check [flags] [paths...]
//	castguard fix [flags] [paths...]
//	castguard dump [flags] file
//	castguard version
//
// Exit codes are 0 when no problems were found, 1 when conversions were
// reported, and 2 for invalid invocations or unreadable sources.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

// ErrFindings is returned by commands that reported conversions.
var ErrFindings = errors.New("implicit conversions found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	switch err := cmd.ExecuteContext(ctx); {
	case err == nil:
		return exitOK

	case errors.Is(err, ErrFindings):
		return exitFindings

	default:
		_, _ = fmt.Fprintln(stderr, "castguard:", err)

		return exitError
	}
}
