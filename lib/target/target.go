// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import "sort"

// Record describes one manageable BMC endpoint as declared in a target
// file. The YAML keys are the nvfwupd-compatible names used by the
// fleet's generated target files.
type Record struct {
	// Address is the BMC network address (IP or hostname). It is the
	// natural key for deduplication and cross-file reconciliation.
	Address string `yaml:"BMC_IP"`

	// Name is the human-readable system label. Not required to be
	// unique across records.
	Name string `yaml:"SYSTEM_NAME"`

	// Username and Password authenticate Redfish requests. Every
	// record in one file must carry the same pair.
	Username string `yaml:"RF_USERNAME"`
	Password string `yaml:"RF_PASSWORD"`

	// PackagePath points at the firmware artifact for update
	// operations. Required only when loading with LoadForUpdate.
	PackagePath string `yaml:"PACKAGE"`

	// Platform is an opaque target-platform discriminator (e.g.
	// "GB300switch") passed through to the executor when present.
	Platform string `yaml:"TARGET_PLATFORM"`

	// Extra holds any additional keys from the record, passed through
	// unmodified.
	Extra map[string]any `yaml:",inline"`
}

// Credentials is a username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Credentials returns the record's credential pair.
func (r Record) Credentials() Credentials {
	return Credentials{Username: r.Username, Password: r.Password}
}

// Set is a set of target addresses.
type Set map[string]struct{}

// Addresses returns the address set of a record list.
func Addresses(records []Record) Set {
	set := make(Set, len(records))
	for _, record := range records {
		set[record.Address] = struct{}{}
	}
	return set
}

// Sorted returns the set's addresses in lexicographic order, for
// stable error messages and summaries.
func (s Set) Sorted() []string {
	addresses := make([]string, 0, len(s))
	for address := range s {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}
