// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the bmcfleet CLI.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function receiving a context and a scoped
// logger. Commands are assembled into a tree in
// cmd/bmcfleet/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help
// output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3). This is
// implemented in suggest.go.
//
// Fleet operations end in one of a small set of exit codes: 0 for
// full success, 1 for validation failures or partial operation
// failure, 2 for an operator declining a confirmation prompt, and
// 130 for interrupt. Commands signal these via [ExitError], which
// main checks for before printing a generic error line.
package cli
