// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"time"

	"github.com/bureau-foundation/bmcfleet/lib/clock"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Runner drives one operation across a canonical target list,
// strictly in input order, one target at a time.
type Runner struct {
	// Executor performs the per-target remote call.
	Executor Executor

	// Confirm gates the run. When nil, the run proceeds without a
	// prompt (read-only operations).
	Confirm ConfirmFunc

	// Sink receives progress lines. When nil, output is discarded.
	Sink Sink

	// Pacing is the delay between consecutive targets. Zero disables
	// pacing. The delay is a deliberate rate limit for embedded
	// controllers, never applied after the last target.
	Pacing time.Duration

	// Clock is the time source. When nil, the real clock is used.
	Clock clock.Clock

	// RenderCountdown, when set, is called once per second of the
	// power-cycle settle wait with the remaining and total durations,
	// and a final time with zero remaining. Purely cosmetic.
	RenderCountdown func(remaining, total time.Duration)
}

func (r *Runner) clock() clock.Clock {
	if r.Clock == nil {
		return clock.Real()
	}
	return r.Clock
}

func (r *Runner) sink() Sink {
	if r.Sink == nil {
		return discardSink{}
	}
	return r.Sink
}

// Run executes op against every target in order. The confirmation
// function, when set, is consulted before the first call; declining
// yields a cancelled report with zero operations performed.
// Per-target failures are recorded and do not stop the run. An
// interrupt (ctx cancellation) stops the loop before the next target;
// already-issued device calls are unaffected.
func (r *Runner) Run(ctx context.Context, targets []target.Record, op Operation) *Report {
	if r.Confirm != nil && !r.Confirm(targets) {
		return &Report{Operation: op.Verb, Total: len(targets), Cancelled: true}
	}
	return r.phase(ctx, targets, op)
}

// phase is the shared sequential loop used by Run and RunSequence.
func (r *Runner) phase(ctx context.Context, targets []target.Record, op Operation) *Report {
	report := &Report{Operation: op.Verb, Total: len(targets)}
	sink := r.sink()

	for i, record := range targets {
		if i > 0 && r.Pacing > 0 {
			if !r.pause(ctx, r.Pacing) {
				report.Interrupted = true
				break
			}
		}
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		detail, err := r.Executor.Execute(ctx, record, op)
		result := Result{Address: record.Address, Name: record.Name}
		if err != nil {
			result.Detail = err.Error()
		} else {
			result.OK = true
			result.Detail = detail
		}
		report.Results = append(report.Results, result)

		sink.Printf("[%d/%d] %s (%s) → %s", i+1, len(targets), record.Name, record.Address, outcomeString(result))
	}

	if report.Interrupted {
		sink.Printf("interrupted: %d of %d targets attempted", len(report.Results), len(targets))
	}
	return report
}

func outcomeString(result Result) string {
	if result.OK {
		if result.Detail != "" {
			return "SUCCESS (" + result.Detail + ")"
		}
		return "SUCCESS"
	}
	return "FAILED: " + result.Detail
}

// pause waits for d or until ctx is cancelled. Returns false on
// cancellation. An already-cancelled context wins unconditionally so
// an interrupt delivered during the preceding call is honored before
// any further waiting.
func (r *Runner) pause(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case <-r.clock().After(d):
		return true
	}
}
