// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package firmware validates firmware package references before an
// update run touches any target. Update operations are all-or-nothing
// per fleet: every canonical target must name the same readable
// package, and the package is fingerprinted so the run log records
// exactly which bytes were pushed.
package firmware

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Package describes a validated firmware artifact.
type Package struct {
	// Path is the filesystem path every target record agreed on.
	Path string

	// Size is the package size in bytes.
	Size int64

	// Digest is the lowercase hex BLAKE3 digest of the package
	// contents, recorded in run logs for auditability.
	Digest string
}

// MismatchError reports target records that disagree on which package
// to push. A mixed-package update run is never safe to start.
type MismatchError struct {
	Reference string
	Address   string
	Path      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("target %s names package %q but the run resolved %q; all targets must agree",
		e.Address, e.Path, e.Reference)
}

// Validate checks that every record names the same firmware package,
// that the package exists as a regular non-empty file, and returns
// its fingerprint. The record list must be non-empty.
func Validate(records []target.Record) (Package, error) {
	if len(records) == 0 {
		return Package{}, fmt.Errorf("no targets to validate a package for")
	}

	reference := records[0].PackagePath
	for _, record := range records[1:] {
		if record.PackagePath != reference {
			return Package{}, &MismatchError{
				Reference: reference,
				Address:   record.Address,
				Path:      record.PackagePath,
			}
		}
	}

	info, err := os.Stat(reference)
	if err != nil {
		return Package{}, fmt.Errorf("firmware package: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Package{}, fmt.Errorf("firmware package %s is not a regular file", reference)
	}
	if info.Size() == 0 {
		return Package{}, fmt.Errorf("firmware package %s is empty", reference)
	}

	digest, err := digestFile(reference)
	if err != nil {
		return Package{}, err
	}
	return Package{Path: reference, Size: info.Size(), Digest: digest}, nil
}

// digestFile streams the package through BLAKE3 so large images never
// load fully into memory.
func digestFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening firmware package: %w", err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hashing firmware package %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
