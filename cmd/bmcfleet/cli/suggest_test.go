// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"power", "power", 0},
		{"pwoer", "power", 2},
		{"frimware", "firmware", 2},
		{"cycle", "", 5},
		{"aux", "task", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
		if got := levenshtein(test.b, test.a); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d (symmetry)", test.b, test.a, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "power"},
		{Name: "firmware"},
		{Name: "targets"},
	}

	if got := suggestCommand("frimware", commands); got != "firmware" {
		t.Errorf("suggestCommand(frimware) = %q", got)
	}
	if got := suggestCommand("completely-unrelated", commands); got != "" {
		t.Errorf("suggestCommand(unrelated) = %q, want no suggestion", got)
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.Bool("yes", false, "")
	flagSet.String("pacing", "", "")

	if got := suggestFlag([]string{"--pacng", "3s"}, flagSet); got != "--pacing" {
		t.Errorf("suggestFlag(--pacng) = %q", got)
	}
	if got := suggestFlag([]string{"--pacing", "3s"}, flagSet); got != "" {
		t.Errorf("suggestFlag(defined flag) = %q, want none", got)
	}
}
