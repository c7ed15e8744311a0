// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"fmt"
	"strings"
)

// ParseError reports a target file whose content is not well-formed
// YAML.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a structurally invalid target file: the Targets
// key is absent, not a list, or empty.
type SchemaError struct {
	File   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// MissingFieldError reports a record lacking a required field. Index
// is 1-based to match the record's position in the file.
type MissingFieldError struct {
	File  string
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("target %d in %s missing required field: %s", e.Index, e.File, e.Field)
}

// CredentialMismatchError reports a record whose credentials disagree
// with the first record in the same file. Index is 1-based.
type CredentialMismatchError struct {
	File  string
	Index int
}

func (e *CredentialMismatchError) Error() string {
	return fmt.Sprintf("target %d in %s has credentials inconsistent with the rest of the file", e.Index, e.File)
}

// AddressMismatchError reports a file whose address set differs from
// the reference file during reconciliation. Missing lists addresses
// the reference has but File lacks; Extra lists addresses File has
// but the reference lacks. Both are sorted.
type AddressMismatchError struct {
	Reference string
	File      string
	Missing   []string
	Extra     []string
}

func (e *AddressMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "address mismatch between %s and %s:", e.Reference, e.File)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, " missing in %s: %s;", e.File, strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, " extra in %s: %s;", e.File, strings.Join(e.Extra, ", "))
	}
	return strings.TrimSuffix(b.String(), ";")
}

// ConflictError reports addresses shared between two populations that
// must be disjoint. Shared is sorted.
type ConflictError struct {
	LabelA string
	LabelB string
	Shared []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("address conflict between %s and %s targets: %s",
		e.LabelA, e.LabelB, strings.Join(e.Shared, ", "))
}
