// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/bmcfleet/lib/clock"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// lineSink collects progress lines for assertion.
type lineSink struct {
	lines []string
}

func (s *lineSink) Printf(format string, args ...any) {
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

// scriptedExecutor fails for the addresses in failing and records
// every call in order.
type scriptedExecutor struct {
	failing map[string]string
	calls   []string
}

func (e *scriptedExecutor) Execute(_ context.Context, record target.Record, op Operation) (string, error) {
	e.calls = append(e.calls, fmt.Sprintf("%s:%s", op.Verb, record.Address))
	if reason, ok := e.failing[record.Address]; ok {
		return "", errors.New(reason)
	}
	return "", nil
}

func threeTargets() []target.Record {
	return []target.Record{
		{Address: "10.0.0.1", Name: "node-01"},
		{Address: "10.0.0.2", Name: "node-02"},
		{Address: "10.0.0.3", Name: "node-03"},
	}
}

func TestRun_SecondTargetFails(t *testing.T) {
	executor := &scriptedExecutor{failing: map[string]string{"10.0.0.2": "connection refused"}}
	sink := &lineSink{}
	r := &Runner{
		Executor: executor,
		Sink:     sink,
		Clock:    clock.Manual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	report := r.Run(context.Background(), threeTargets(), Operation{Kind: ManagerReset, Verb: "BMC reset"})

	if report.Cancelled || report.Interrupted {
		t.Fatalf("unexpected cancellation/interruption: %+v", report)
	}
	// All three targets attempted despite the middle failure.
	if len(executor.calls) != 3 {
		t.Fatalf("got %d executor calls, want 3", len(executor.calls))
	}
	failures := report.Failures()
	if report.Successes() != 2 || len(failures) != 1 {
		t.Errorf("got %d/%d success/failure, want 2/1", report.Successes(), len(failures))
	}
	if failures[0].Name != "node-02" || failures[0].Address != "10.0.0.2" || failures[0].Detail != "connection refused" {
		t.Errorf("failure slice missing diagnostics: %+v", failures[0])
	}
	if report.FullSuccess() {
		t.Error("FullSuccess true despite a failed target")
	}
	if report.Results[1].OK || report.Results[1].Detail != "connection refused" {
		t.Errorf("failure diagnostic not recorded: %+v", report.Results[1])
	}
}

func TestRun_ProgressLines(t *testing.T) {
	executor := &scriptedExecutor{failing: map[string]string{"10.0.0.2": "timeout"}}
	sink := &lineSink{}
	r := &Runner{Executor: executor, Sink: sink, Clock: clock.Manual(time.Time{})}

	r.Run(context.Background(), threeTargets(), Operation{Kind: ManagerReset, Verb: "BMC reset"})

	if len(sink.lines) != 3 {
		t.Fatalf("got %d lines, want 3: %v", len(sink.lines), sink.lines)
	}
	if sink.lines[0] != "[1/3] node-01 (10.0.0.1) → SUCCESS" {
		t.Errorf("unexpected first line: %q", sink.lines[0])
	}
	if sink.lines[1] != "[2/3] node-02 (10.0.0.2) → FAILED: timeout" {
		t.Errorf("unexpected failure line: %q", sink.lines[1])
	}
}

func TestRun_SuccessDetailShown(t *testing.T) {
	executor := ExecutorFunc(func(context.Context, target.Record, Operation) (string, error) {
		return "PercentComplete: 42%", nil
	})
	sink := &lineSink{}
	r := &Runner{Executor: executor, Sink: sink, Clock: clock.Manual(time.Time{})}

	r.Run(context.Background(), threeTargets()[:1], Operation{Kind: TaskStatus, Verb: "task status"})

	if !strings.Contains(sink.lines[0], "SUCCESS (PercentComplete: 42%)") {
		t.Errorf("detail missing from line: %q", sink.lines[0])
	}
}

func TestRun_CancelledBeforeAnyCall(t *testing.T) {
	executor := &scriptedExecutor{}
	declined := 0
	r := &Runner{
		Executor: executor,
		Confirm: func(targets []target.Record) bool {
			declined = len(targets)
			return false
		},
		Clock: clock.Manual(time.Time{}),
	}

	report := r.Run(context.Background(), threeTargets(), Operation{Kind: ManagerReset, Verb: "BMC reset"})

	if !report.Cancelled {
		t.Fatal("report not marked cancelled")
	}
	if len(executor.calls) != 0 {
		t.Errorf("executor called %d times after declined confirmation", len(executor.calls))
	}
	if declined != 3 {
		t.Errorf("confirm saw %d targets, want 3", declined)
	}
	if report.FullSuccess() {
		t.Error("cancelled run reported as full success")
	}
}

func TestRun_PacingBetweenTargetsOnly(t *testing.T) {
	manual := clock.Manual(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	r := &Runner{
		Executor: &scriptedExecutor{},
		Clock:    manual,
		Pacing:   5 * time.Second,
	}

	r.Run(context.Background(), threeTargets(), Operation{Kind: FirmwareUpdate, Verb: "firmware update"})

	// Three targets, two gaps, no pause after the last.
	sleeps := manual.Sleeps()
	if len(sleeps) != 2 {
		t.Fatalf("got %d pauses, want 2: %v", len(sleeps), sleeps)
	}
	if manual.Slept() != 10*time.Second {
		t.Errorf("got total pause %v, want 10s", manual.Slept())
	}
}

func TestRun_NoConfirmProceeds(t *testing.T) {
	executor := &scriptedExecutor{}
	r := &Runner{Executor: executor, Clock: clock.Manual(time.Time{})}

	report := r.Run(context.Background(), threeTargets(), Operation{Kind: TaskStatus, Verb: "task status"})

	if report.Cancelled || len(executor.calls) != 3 {
		t.Errorf("read-only run without confirm did not execute: %+v", report)
	}
}

func TestRun_InterruptStopsBeforeNextTarget(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	executor := ExecutorFunc(func(_ context.Context, record target.Record, _ Operation) (string, error) {
		if record.Address == "10.0.0.1" {
			cancel() // interrupt arrives while the first target runs
		}
		return "", nil
	})
	r := &Runner{Executor: executor, Clock: clock.Manual(time.Time{})}

	report := r.Run(ctx, threeTargets(), Operation{Kind: ManagerReset, Verb: "BMC reset"})

	if !report.Interrupted {
		t.Fatal("report not marked interrupted")
	}
	// The first target's outcome is kept; later targets were never
	// attempted.
	if len(report.Results) != 1 {
		t.Errorf("got %d results, want 1", len(report.Results))
	}
	if report.FullSuccess() {
		t.Error("interrupted run reported as full success")
	}
}
