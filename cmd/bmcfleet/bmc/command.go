// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bmc implements management-controller operations. These act
// on the BMC itself; the host system keeps running.
package bmc

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/ops"
	"github.com/bureau-foundation/bmcfleet/lib/redfish"
	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Command returns the "bmcfleet bmc" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "bmc",
		Summary: "Management controller operations",
		Subcommands: []*cli.Command{
			resetCommand(),
		},
	}
}

type resetParams struct {
	ops.ResolveParams
	Pacing time.Duration `flag:"pacing" default:"1s" desc:"delay between targets"`
}

func resetCommand() *cli.Command {
	var params resetParams

	return &cli.Command{
		Name:    "reset",
		Summary: "Force-restart the BMC on every target",
		Description: `Restart each target's management controller via Manager.Reset. Host
systems keep running; Redfish on each BMC is briefly unavailable
while the controller reboots.`,
		Usage: "bmcfleet bmc reset [flags] <target-file>...",
		Examples: []cli.Example{
			{
				Description: "Reset the BMCs of the compute fleet",
				Command:     "bmcfleet bmc reset compute_bmc.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("reset", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cons, closeLog := ops.NewConsole("bmc-reset", logger)
			defer closeLog()

			resolution, err := ops.Resolve(args, &params.ResolveParams, target.Load, cons, logger)
			if err != nil {
				return err
			}
			executor := &redfish.Executor{Client: redfish.NewClient()}
			op := runner.Operation{Kind: runner.ManagerReset, Verb: "BMC reset"}
			return ops.Execute(ctx, resolution, executor, op, params.Pacing, true, params.Yes, cons, logger)
		},
	}
}
