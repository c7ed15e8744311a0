// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner executes one fleet operation against each canonical
// target, strictly one at a time. Sequential execution is a
// correctness property, not a simplification: the targets are
// embedded management controllers whose network stacks fall over
// under concurrent load, so the runner never parallelizes and paces
// consecutive device calls with a fixed delay.
//
// A run is gated by a confirmation function before the first
// side-effecting call. Per-target failures are recorded and never
// abort the run; every target is attempted unless the user cancels at
// the prompt or the process is interrupted. The aggregate Report
// drives the process exit status.
package runner
