// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package power implements the host power command group: the
// force-off / settle / power-cycle sequence and the auxiliary power
// cycle.
package power

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/ops"
	"github.com/bureau-foundation/bmcfleet/lib/clock"
	"github.com/bureau-foundation/bmcfleet/lib/redfish"
	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Command returns the "bmcfleet power" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "power",
		Summary: "Host power operations",
		Subcommands: []*cli.Command{
			cycleCommand(),
			auxCommand(),
		},
	}
}

type cycleParams struct {
	ops.ResolveParams
	Pacing time.Duration `flag:"pacing" default:"1s" desc:"delay between targets within each phase"`
}

func cycleCommand() *cli.Command {
	var params cycleParams

	return &cli.Command{
		Name:    "cycle",
		Summary: "Force off, settle, then power cycle every target",
		Description: `Run the two-phase power cycle across the fleet: force every host
off in order, wait 15 seconds for supplies to drain, then power
cycle every host in order. The phases are independent — a host that
failed to force off is still power cycled in phase two.`,
		Usage: "bmcfleet power cycle [flags] <target-file>...",
		Examples: []cli.Example{
			{
				Description: "Cycle the compute fleet described by two reconciled files",
				Command:     "bmcfleet power cycle compute_bmc.yaml compute_bios.yaml",
			},
			{
				Description: "Scripted use, skipping the confirmation prompt",
				Command:     "bmcfleet power cycle --yes compute_bmc.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("cycle", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cons, closeLog := ops.NewConsole("power-cycle", logger)
			defer closeLog()

			resolution, err := ops.Resolve(args, &params.ResolveParams, target.Load, cons, logger)
			if err != nil {
				return err
			}
			executor := &redfish.Executor{Client: redfish.NewClient()}
			return ops.ExecuteSequence(ctx, resolution, executor, params.Pacing, clock.Real(), params.Yes, cons, logger)
		},
	}
}

type auxParams struct {
	ops.ResolveParams
	Pacing time.Duration `flag:"pacing" default:"3s" desc:"delay between targets"`
}

func auxCommand() *cli.Command {
	var params auxParams

	return &cli.Command{
		Name:    "aux",
		Summary: "Force an auxiliary power cycle on every target",
		Description: `Trigger the chassis OEM auxiliary power reset per target, cutting
standby power to the tray. This is the heavier hammer used when a
regular power cycle does not recover the system.`,
		Usage: "bmcfleet power aux [flags] <target-file>...",
		Examples: []cli.Example{
			{
				Description: "Aux-cycle a switch fleet",
				Command:     "bmcfleet power aux switch_bmc.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("aux", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cons, closeLog := ops.NewConsole("power-aux", logger)
			defer closeLog()

			resolution, err := ops.Resolve(args, &params.ResolveParams, target.Load, cons, logger)
			if err != nil {
				return err
			}
			executor := &redfish.Executor{Client: redfish.NewClient()}
			op := runner.Operation{Kind: runner.AuxPowerCycle, Verb: "aux power cycle"}
			return ops.Execute(ctx, resolution, executor, op, params.Pacing, true, params.Yes, cons, logger)
		},
	}
}
