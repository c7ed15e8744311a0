// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ops is the shared pipeline behind every fleet command:
// resolve target files into a canonical fleet (load, reconcile,
// dedupe, cross-domain conflict check), then execute one operation
// across it and map the run report to an exit code.
//
// Commands differ only in which executor they wire in and which
// pacing default they carry; the resolve and execute halves here keep
// the validation order and exit-code contract identical across all of
// them.
package ops
