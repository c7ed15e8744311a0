// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"time"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// SettleDelay is the fixed wait between the force-off and power-cycle
// phases of a sequence, giving supplies and rails time to drain. It
// is shared once per run, not per target.
const SettleDelay = 15 * time.Second

// RunSequence executes the composite power-cycle sequence: force off
// every target in order, wait SettleDelay once, then power-cycle
// every target in order. The phases are independent attempts: the
// power-cycle phase runs against all targets even when the force-off
// phase failed for some of them. Confirmation is requested once, up
// front.
func (r *Runner) RunSequence(ctx context.Context, targets []target.Record) *SequenceReport {
	if r.Confirm != nil && !r.Confirm(targets) {
		return &SequenceReport{Cancelled: true}
	}
	sink := r.sink()

	sink.Printf("phase 1: powering off %d systems", len(targets))
	forceOff := r.phase(ctx, targets, Operation{Kind: SystemForceOff, Verb: "force off"})
	sink.Printf("force off completed: %d/%d successful", forceOff.Successes(), forceOff.Total)

	if forceOff.Interrupted {
		return &SequenceReport{ForceOff: forceOff, PowerCycle: &Report{Operation: "power cycle", Total: len(targets), Interrupted: true}}
	}

	sink.Printf("waiting %s before power cycle", SettleDelay)
	if !r.settle(ctx, SettleDelay) {
		return &SequenceReport{ForceOff: forceOff, PowerCycle: &Report{Operation: "power cycle", Total: len(targets), Interrupted: true}}
	}

	sink.Printf("phase 2: power cycling %d systems", len(targets))
	powerCycle := r.phase(ctx, targets, Operation{Kind: SystemPowerCycle, Verb: "power cycle"})
	sink.Printf("power cycle completed: %d/%d successful", powerCycle.Successes(), powerCycle.Total)

	return &SequenceReport{ForceOff: forceOff, PowerCycle: powerCycle}
}

// settle waits for the full duration in one-second steps so the
// countdown can be rendered, bailing out early on interrupt. The
// total wait always sums to d when uninterrupted.
func (r *Runner) settle(ctx context.Context, d time.Duration) bool {
	for remaining := d; remaining > 0; remaining -= time.Second {
		if r.RenderCountdown != nil {
			r.RenderCountdown(remaining, d)
		}
		step := time.Second
		if remaining < step {
			step = remaining
		}
		if !r.pause(ctx, step) {
			return false
		}
	}
	if r.RenderCountdown != nil {
		r.RenderCountdown(0, d)
	}
	return true
}
