// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"reflect"
	"testing"
)

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	records := []Record{
		{Address: "10.0.0.1", Name: "a"},
		{Address: "10.0.0.2", Name: "b"},
		{Address: "10.0.0.1", Name: "a-duplicate"},
		{Address: "10.0.0.3", Name: "c"},
	}

	canonical := Dedupe(records)

	wantAddresses := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
	gotAddresses := make([]string, len(canonical))
	for i, record := range canonical {
		gotAddresses[i] = record.Address
	}
	if !reflect.DeepEqual(gotAddresses, wantAddresses) {
		t.Errorf("got %v, want %v", gotAddresses, wantAddresses)
	}
	// The first record for 10.0.0.1 wins; the duplicate's details are
	// dropped.
	if canonical[0].Name != "a" {
		t.Errorf("got name %q, want a", canonical[0].Name)
	}
}

func TestDedupe_Empty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestDedupe_NoDuplicates(t *testing.T) {
	records := []Record{
		{Address: "10.0.0.2"},
		{Address: "10.0.0.1"},
	}
	canonical := Dedupe(records)
	if !reflect.DeepEqual(canonical, records) {
		t.Errorf("got %v, want input unchanged", canonical)
	}
}
