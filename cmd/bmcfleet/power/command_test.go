// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package power

import "testing"

func TestPacingFlagDefaults(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"cycle", "1s"},
		{"aux", "3s"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			var found bool
			for _, sub := range Command().Subcommands {
				if sub.Name != tt.command {
					continue
				}
				found = true
				flag := sub.Flags().Lookup("pacing")
				if flag == nil {
					t.Fatalf("power %s: no --pacing flag", tt.command)
				}
				if flag.DefValue != tt.want {
					t.Errorf("power %s --pacing default = %s, want %s", tt.command, flag.DefValue, tt.want)
				}
			}
			if !found {
				t.Fatalf("power %s: subcommand missing", tt.command)
			}
		})
	}
}
