// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete bmcfleet CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	bmccmd "github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/bmc"
	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	firmwarecmd "github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/firmware"
	powercmd "github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/power"
	targetcmd "github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/target"
	taskcmd "github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/task"
	"github.com/bureau-foundation/bmcfleet/lib/version"
)

// Root builds and returns the complete bmcfleet CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "bmcfleet",
		Description: `bmcfleet: out-of-band fleet operations for BMC-managed hardware.

Load YAML target files, validate them against each other, and drive
power, firmware, and status operations across the fleet one target
at a time.`,
		Subcommands: []*cli.Command{
			powercmd.Command(),
			bmccmd.Command(),
			firmwarecmd.Command(),
			taskcmd.Command(),
			targetcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("bmcfleet %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Check every target is reachable",
				Command:     "bmcfleet target check compute_bmc.yaml",
			},
			{
				Description: "Power cycle the compute fleet",
				Command:     "bmcfleet power cycle compute_bmc.yaml compute_bios.yaml",
			},
			{
				Description: "Flash switch BMC firmware and watch progress",
				Command:     "bmcfleet firmware update --package bmc switch_bmc.yaml",
			},
			{
				Description: "Query update-task progress as JSON",
				Command:     "bmcfleet task status --json switch_bmc.yaml",
			},
		},
	}
}
