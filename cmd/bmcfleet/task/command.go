// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package task implements the read-only task status query across a
// fleet.
package task

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/ops"
	"github.com/bureau-foundation/bmcfleet/lib/redfish"
	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Command returns the "bmcfleet task" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Summary: "BMC task service queries",
		Subcommands: []*cli.Command{
			statusCommand(),
		},
	}
}

type statusParams struct {
	cli.JSONOutput
	ops.ResolveParams
}

func statusCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Report each target's latest update-task progress",
		Description: `Query every target's task service for its highest-numbered task and
report the completion percentage. Read-only: no confirmation prompt,
no pacing delay.`,
		Usage: "bmcfleet task status [flags] <target-file>...",
		Examples: []cli.Example{
			{
				Description: "Watch firmware staging progress",
				Command:     "bmcfleet task status switch_bmc.yaml",
			},
			{
				Description: "Machine-readable output",
				Command:     "bmcfleet task status --json switch_bmc.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("status", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cons, closeLog := ops.NewConsole("task-status", logger)
			defer closeLog()

			resolution, err := ops.Resolve(args, &params.ResolveParams, target.Load, cons, logger)
			if err != nil {
				return err
			}

			run := &runner.Runner{
				Executor: &redfish.Executor{Client: redfish.NewClient()},
				Sink:     cons,
			}
			op := runner.Operation{Kind: runner.TaskStatus, Verb: "task status"}
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
