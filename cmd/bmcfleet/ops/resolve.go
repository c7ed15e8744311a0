// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ops

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/lib/console"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// ResolveParams are the flags shared by every command that resolves
// target files. Commands embed this struct in their params so the
// flags bind uniformly.
type ResolveParams struct {
	// SwitchFiles name the opposite-domain target files for the
	// cross-domain conflict check. When empty, switch_*.yaml files
	// next to the first target file are discovered automatically.
	SwitchFiles []string `flag:"switch-file" desc:"opposite-domain target file for the conflict check"`

	// OverrideConflicts downgrades a cross-domain address overlap
	// from fatal to a separately confirmed warning.
	OverrideConflicts bool `flag:"override-conflicts" desc:"proceed past cross-domain address overlap after confirmation"`

	// Yes skips all confirmation prompts, for scripted use.
	Yes bool `flag:"yes,y" desc:"skip confirmation prompts"`
}

// Resolution is the validated, canonical fleet a command operates on.
type Resolution struct {
	// Records is the deduplicated target list, in first-file order.
	Records []target.Record

	// Files are the resolved input paths, lexicographically sorted.
	Files []string
}

// Resolve runs the full validation pipeline: load every file, verify
// cross-file consistency, deduplicate, and check the compute address
// space against the switch domain (or vice versa). All validation
// errors surface before any confirmation prompt and before any device
// is touched.
//
// A fatal conflict or validation failure returns an error for main to
// print; a declined override confirmation returns ExitError directly
// since the console already explained the situation.
func Resolve(files []string, params *ResolveParams, load target.LoadFunc, cons *console.Console, logger *slog.Logger) (*Resolution, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("at least one target file is required")
	}

	merged, err := target.Reconcile(files, load)
	if err != nil {
		return nil, err
	}
	records := target.Dedupe(merged.Records)
	logger.Info("targets resolved",
		"files", len(merged.Files),
		"records", len(merged.Records),
		"unique", len(records))

	if err := checkConflicts(merged, params, cons, logger); err != nil {
		return nil, err
	}

	return &Resolution{Records: records, Files: merged.Files}, nil
}

// checkConflicts loads the opposite-domain files and verifies the two
// address spaces are disjoint.
func checkConflicts(merged *target.Merged, params *ResolveParams, cons *console.Console, logger *slog.Logger) error {
	switchFiles := params.SwitchFiles
	if len(switchFiles) == 0 {
		switchFiles = discoverSwitchFiles(merged.Files)
	}
	if len(switchFiles) == 0 {
		return nil
	}

	other := make(target.Set)
	for _, file := range switchFiles {
		records, err := target.Load(file)
		if err != nil {
			return fmt.Errorf("loading conflict-check file: %w", err)
		}
		for address := range target.Addresses(records) {
			other[address] = struct{}{}
		}
	}

	err := target.CheckDisjoint(merged.Addresses, other, "compute", "switch")
	if err == nil {
		return nil
	}
	if !params.OverrideConflicts {
		return err
	}

	logger.Warn("cross-domain address overlap", "error", err)
	if params.Yes {
		cons.Warn("%v (overridden)", err)
		return nil
	}
	if !cons.ConfirmOverride(err) {
		cons.Warn("Run cancelled.")
		return &cli.ExitError{Code: cli.ExitCancelled}
	}
	return nil
}

// discoverSwitchFiles finds switch-domain target files next to the
// input files. Compute runs check against switch_*.yaml siblings;
// switch runs (inputs already named switch_*) check against
// compute_*.yaml instead.
func discoverSwitchFiles(files []string) []string {
	pattern := "switch_*.yaml"
	if strings.HasPrefix(filepath.Base(files[0]), "switch_") {
		pattern = "compute_*.yaml"
	}

	seen := make(map[string]struct{})
	var discovered []string
	for _, file := range files {
		matches, err := filepath.Glob(filepath.Join(filepath.Dir(file), pattern))
		if err != nil {
			continue
		}
		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			discovered = append(discovered, match)
		}
	}
	sort.Strings(discovered)
	return discovered
}
