// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ops

import (
	"context"
	"log/slog"
	"time"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/lib/clock"
	"github.com/bureau-foundation/bmcfleet/lib/console"
	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Execute runs one operation across the resolved fleet and maps the
// report to the CLI exit contract: nil for full success, ExitError
// otherwise. Confirmation is skipped when yes is set or when the
// operation is read-only (confirm false).
func Execute(ctx context.Context, resolution *Resolution, executor runner.Executor, op runner.Operation, pacing time.Duration, confirm, yes bool, cons *console.Console, logger *slog.Logger) error {
	run := &runner.Runner{
		Executor:        executor,
		Sink:            cons,
		Pacing:          pacing,
		RenderCountdown: cons.Countdown,
	}
	if confirm && !yes {
		run.Confirm = func(targets []target.Record) bool {
			return cons.Confirm(op.Verb, targets)
		}
	}

	report := run.Run(ctx, resolution.Records, op)
	return Summarize(report, cons, logger)
}

// ExecuteSequence runs the composite force-off / settle / power-cycle
// sequence and maps the combined report to an exit code. Pacing
// applies within each phase. The clock is injectable so the settle
// wait is testable; commands pass clock.Real().
func ExecuteSequence(ctx context.Context, resolution *Resolution, executor runner.Executor, pacing time.Duration, clk clock.Clock, yes bool, cons *console.Console, logger *slog.Logger) error {
	run := &runner.Runner{
		Executor:        executor,
		Sink:            cons,
		Pacing:          pacing,
		Clock:           clk,
		RenderCountdown: cons.Countdown,
	}
	if !yes {
		run.Confirm = func(targets []target.Record) bool {
			return cons.Confirm("power cycle sequence", targets)
		}
	}

	report := run.RunSequence(ctx, resolution.Records)
	if report.Cancelled {
		cons.Warn("Run cancelled; no operations performed.")
		return &cli.ExitError{Code: cli.ExitCancelled}
	}
	if err := Summarize(report.ForceOff, cons, logger); err != nil {
		// The power-cycle phase report decides the final exit code,
		// but a force-off phase failure already makes the run partial.
		Summarize(report.PowerCycle, cons, logger)
		return err
	}
	return Summarize(report.PowerCycle, cons, logger)
}

// Summarize prints the closing line and converts the report to the
// exit-code contract.
func Summarize(report *runner.Report, cons *console.Console, logger *slog.Logger) error {
	if report.Cancelled {
		cons.Warn("Run cancelled; no operations performed.")
		return &cli.ExitError{Code: cli.ExitCancelled}
	}

	successes := report.Successes()
	failures := report.Failures()
	logger.Info("run complete",
		"operation", report.Operation,
		"total", report.Total,
		"succeeded", successes,
		"failed", len(failures),
		"interrupted", report.Interrupted)

	if report.Interrupted {
		cons.Failure("%s interrupted: %d/%d targets attempted.", report.Operation, len(report.Results), report.Total)
		return &cli.ExitError{Code: cli.ExitInterrupted}
	}
	if len(failures) > 0 {
		cons.Failure("%s: %d/%d succeeded.", report.Operation, successes, report.Total)
		for _, failure := range failures {
			cons.Warn("  %s (%s): %s", failure.Name, failure.Address, failure.Detail)
		}
		return &cli.ExitError{Code: cli.ExitFailure}
	}

	cons.Success("%s: %d/%d succeeded.", report.Operation, successes, report.Total)
	return nil
}
