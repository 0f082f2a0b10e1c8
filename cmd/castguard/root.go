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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fillmore-labs.com/castguard/internal/analyze"
	"fillmore-labs.com/castguard/internal/config"
)

// Configuration keys, shared by flags, the configuration file and the environment.
const (
	keyConfig    = "config"
	keyGenerated = "generated"
	keyQualify   = "qualify"
	keyVerbose   = "verbose"
	keyColor     = "color"
	keyJSON      = "json"
	keyWrite     = "write"

	envPrefix  = "CASTGUARD"
	configName = ".castguard"
)

// ErrInvalidColor is returned for unknown --color values.
var ErrInvalidColor = errors.New(`invalid color mode, want "auto", "always" or "never"`)

// newRootCommand creates the command tree with its own configuration.
func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "castguard",
		Short: "Report implicit C# conversion operators",
		Long: `castguard reports C# implicit conversions that invoke a user-defined conversion
operator and rewrites them into explicit constructor calls.

	Test test = "Hello";

becomes

	Test test = new ConsoleApplication1.Test("Hello");

when Test has exactly one constructor with the operator's parameter types.

Settings are read from flags, CASTGUARD_* environment variables and a
.castguard.yaml file in the current or home directory.

To suppress a diagnostic, add a comment on the same line:
  Test test = "Hello"; // nolint:castguard`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v)
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (default is ./.castguard.yaml or $HOME/.castguard.yaml)")
	flags.Bool(keyGenerated, false, "check generated files")
	flags.Bool(keyQualify, true, "write constructed types with their namespace")
	flags.BoolP(keyVerbose, "v", false, "log debug information to stderr")
	flags.String(keyColor, "auto", `control colored output: "auto", "always", or "never"`)

	for _, key := range []string{keyGenerated, keyQualify, keyVerbose, keyColor} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(
		newCheckCommand(v),
		newFixCommand(v),
		newDumpCommand(),
		newVersionCommand(),
	)

	return root
}

// initConfig reads the configuration file and environment, then sets up logging and colors.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file, _ := cmd.Flags().GetString(keyConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level := slog.LevelWarn
	if v.GetBool(keyVerbose) {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if used := v.ConfigFileUsed(); used != "" {
		slog.Debug("Using config file", slog.String("file", used))
	}

	switch mode := v.GetString(keyColor); mode {
	case "auto":

	case "always":
		color.NoColor = false

	case "never":
		color.NoColor = true

	default:
		return fmt.Errorf("%w: %q", ErrInvalidColor, mode)
	}

	return nil
}

// analyzeOptions derives the analysis options from the configuration.
func analyzeOptions(v *viper.Viper, fix bool) *analyze.Options {
	opts := analyze.DefaultOptions()
	opts.Behavior.Set(config.IncludeGenerated, v.GetBool(keyGenerated))
	opts.Behavior.Set(config.QualifyNames, v.GetBool(keyQualify))
	opts.Behavior.Set(config.SuggestFixes, fix)

	return opts
}

// load analyzes the C# sources under paths, defaulting to the current directory.
func load(cmd *cobra.Command, opts *analyze.Options, paths []string) ([]analyze.Document, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	names, err := analyze.Collect(paths...)
	if err != nil {
		return nil, err
	}

	sources, err := analyze.ReadFiles(names...)
	if err != nil {
		return nil, err
	}

	trees, err := analyze.Parse(cmd.Context(), sources)
	if err != nil {
		return nil, err
	}

	return opts.Run(cmd.Context(), trees...)
}
