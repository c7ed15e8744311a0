// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// Fleet-run exit codes. Scripts driving bmcfleet branch on these, so
// they are part of the CLI contract.
const (
	// ExitFailure covers validation errors and runs where at least
	// one target failed.
	ExitFailure = 1

	// ExitCancelled means the operator declined a confirmation
	// prompt. No device calls were made.
	ExitCancelled = 2

	// ExitInterrupted means the run stopped on SIGINT/SIGTERM after
	// finishing the in-flight target.
	ExitInterrupted = 130
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, main
// exits with the specified code without printing the error string —
// the command is expected to have already written its own output
// (progress lines and a run summary).
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. Main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
