// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"fmt"
	"sort"
)

// Merged is the result of reconciling several related target files.
type Merged struct {
	// Records is the concatenation of every file's records, in the
	// order the files were reconciled.
	Records []Record

	// Addresses is the canonical address set, taken from the
	// reference file (identical across all files by construction).
	Addresses Set

	// files, in the reconciled (lexicographic) order. Diagnostic.
	Files []string

	// credentials observed across all files, one entry per distinct
	// pair, in first-seen order. Diagnostic only: credential equality
	// is enforced per file at load time, not across files.
	credentials []Credentials
}

// ObservedCredentials returns the distinct credential pairs seen
// across the reconciled files, in first-seen order.
func (m *Merged) ObservedCredentials() []Credentials {
	return m.credentials
}

// Reconcile loads every file with load and verifies that all files
// describe the same address population. Files are processed in
// lexicographic order; the first file is the reference. Load failures
// propagate immediately with no partial aggregation, and an address
// set differing from the reference's produces an
// *AddressMismatchError naming both files and the exact missing and
// extra addresses.
func Reconcile(paths []string, load LoadFunc) (*Merged, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no target files given")
	}

	ordered := make([]string, len(paths))
	copy(ordered, paths)
	sort.Strings(ordered)

	merged := &Merged{Files: ordered}
	sets := make([]Set, len(ordered))
	for i, path := range ordered {
		records, err := load(path)
		if err != nil {
			return nil, err
		}
		sets[i] = Addresses(records)
		merged.Records = append(merged.Records, records...)
	}

	reference := ordered[0]
	merged.Addresses = sets[0]
	for i, path := range ordered[1:] {
		if err := compareSets(reference, path, merged.Addresses, sets[i+1]); err != nil {
			return nil, err
		}
	}

	for _, record := range merged.Records {
		pair := record.Credentials()
		seen := false
		for _, existing := range merged.credentials {
			if existing == pair {
				seen = true
				break
			}
		}
		if !seen {
			merged.credentials = append(merged.credentials, pair)
		}
	}

	return merged, nil
}

// compareSets checks current against the reference address set and
// builds the mismatch error when they differ.
func compareSets(referenceFile, currentFile string, reference, current Set) error {
	var missing, extra []string
	for address := range reference {
		if _, ok := current[address]; !ok {
			missing = append(missing, address)
		}
	}
	for address := range current {
		if _, ok := reference[address]; !ok {
			extra = append(extra, address)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return &AddressMismatchError{
		Reference: referenceFile,
		File:      currentFile,
		Missing:   missing,
		Extra:     extra,
	}
}
