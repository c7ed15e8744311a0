// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package target implements target-file utilities: the reachability
// check and the switch target-file generator.
package target

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/ops"
	"github.com/bureau-foundation/bmcfleet/lib/probe"
	"github.com/bureau-foundation/bmcfleet/lib/runner"
	libtarget "github.com/bureau-foundation/bmcfleet/lib/target"
)

// Command returns the "bmcfleet target" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "target",
		Summary: "Target file utilities",
		Subcommands: []*cli.Command{
			checkCommand(),
			generateCommand(),
		},
	}
}

type checkParams struct {
	cli.JSONOutput
	ops.ResolveParams
	Timeout time.Duration `flag:"timeout" default:"5s" desc:"per-probe timeout"`
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Probe every target's management address",
		Description: `Verify each BMC answers ICMP echo and accepts a TCP connection on
the Redfish HTTPS port. Read-only: no confirmation prompt. Run this
before a fleet operation to find dead addresses up front.`,
		Usage: "bmcfleet target check [flags] <target-file>...",
		Examples: []cli.Example{
			{
				Description: "Check the compute fleet before a power cycle",
				Command:     "bmcfleet target check compute_bmc.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cons, closeLog := ops.NewConsole("target-check", logger)
			defer closeLog()

			resolution, err := ops.Resolve(args, &params.ResolveParams, libtarget.Load, cons, logger)
			if err != nil {
				return err
			}

			run := &runner.Runner{
				Executor: &probe.Prober{Timeout: params.Timeout},
				Sink:     cons,
			}
			op := runner.Operation{Kind: runner.Reachability, Verb: "reachability check"}
			report := run.Run(ctx, resolution.Records, op)

			if done, err := params.EmitJSON(report); done {
				if err != nil {
					return err
				}
				if !report.FullSuccess() {
					return &cli.ExitError{Code: cli.ExitFailure}
				}
				return nil
			}
			return ops.Summarize(report, cons, logger)
		},
	}
}
