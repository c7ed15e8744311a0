// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

// Dedupe collapses records sharing an address into one canonical
// record per address. The first record observed for an address wins;
// later duplicates are dropped. Output order equals the order of
// first occurrence in the input, so execution order is stable.
func Dedupe(records []Record) []Record {
	seen := make(Set, len(records))
	canonical := make([]Record, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.Address]; ok {
			continue
		}
		seen[record.Address] = struct{}{}
		canonical = append(canonical, record)
	}
	return canonical
}
