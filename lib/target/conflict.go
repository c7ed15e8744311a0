// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import "sort"

// Intersection returns the sorted addresses present in both sets.
func Intersection(a, b Set) []string {
	var shared []string
	for address := range a {
		if _, ok := b[address]; ok {
			shared = append(shared, address)
		}
	}
	sort.Strings(shared)
	return shared
}

// CheckDisjoint verifies that two administratively distinct
// populations have no address in common. It returns nil when the sets
// are disjoint, or a *ConflictError carrying the sorted shared
// addresses and both labels. The checker only reports; whether the
// conflict is fatal or downgraded to a warning after an explicit
// override is the caller's policy.
func CheckDisjoint(a, b Set, labelA, labelB string) error {
	shared := Intersection(a, b)
	if len(shared) == 0 {
		return nil
	}
	return &ConflictError{LabelA: labelA, LabelB: labelB, Shared: shared}
}
