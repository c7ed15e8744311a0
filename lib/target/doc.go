// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package target resolves and validates fleet target descriptions.
//
// A target file is a YAML document with a top-level Targets list, one
// record per manageable BMC endpoint. [Load] reads and validates one
// file, [Reconcile] merges several related files after proving they
// describe the same address population, [Dedupe] collapses duplicate
// addresses into a canonical order-stable list, and [CheckDisjoint]
// verifies that two administratively distinct populations (compute vs
// switch) do not share addresses.
//
// The pipeline is always load → reconcile → dedupe: validation runs on
// the raw records before duplicates are dropped, so a malformed record
// is reported even when another record with the same address is fine.
package target
