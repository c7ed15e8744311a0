// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Kind identifies the remote call an executor performs for one
// target. The power-cycle sequence is not a Kind of its own: it is
// the composite RunSequence, which issues SystemForceOff and
// SystemPowerCycle phases.
type Kind int

const (
	// SystemForceOff forces host power off via ComputerSystem.Reset.
	SystemForceOff Kind = iota
	// SystemPowerCycle power-cycles the host via ComputerSystem.Reset.
	SystemPowerCycle
	// ManagerReset restarts the BMC itself via Manager.Reset.
	ManagerReset
	// AuxPowerCycle forces an auxiliary power cycle via the chassis
	// OEM action.
	AuxPowerCycle
	// FirmwareUpdate pushes a firmware package to the target.
	FirmwareUpdate
	// TaskStatus queries the latest update task's progress.
	TaskStatus
	// Reachability probes the management address (ping + TCP).
	Reachability
)

func (k Kind) String() string {
	switch k {
	case SystemForceOff:
		return "system force-off"
	case SystemPowerCycle:
		return "system power-cycle"
	case ManagerReset:
		return "manager reset"
	case AuxPowerCycle:
		return "aux power-cycle"
	case FirmwareUpdate:
		return "firmware update"
	case TaskStatus:
		return "task status"
	case Reachability:
		return "reachability"
	default:
		return "unknown"
	}
}

// Operation describes what the executor should do to each target.
type Operation struct {
	// Kind selects the remote call.
	Kind Kind

	// Verb is the human-readable name used in progress lines and
	// summaries, e.g. "BMC reset" or "firmware update".
	Verb string
}

// Executor performs one remote call (network request or external
// process invocation) against one target. A nil error means success;
// detail optionally carries success information worth showing (e.g.
// task progress). The error string is the per-target diagnostic. The
// runner knows nothing about wire protocols — executors own timeouts
// and transport details.
type Executor interface {
	Execute(ctx context.Context, record target.Record, op Operation) (detail string, err error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, record target.Record, op Operation) (string, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, record target.Record, op Operation) (string, error) {
	return f(ctx, record, op)
}

// ConfirmFunc decides whether a run may proceed. It is invoked once,
// with the canonical target list, before any side-effecting call.
type ConfirmFunc func(targets []target.Record) bool

// Sink receives human-readable progress lines from the runner.
type Sink interface {
	Printf(format string, args ...any)
}

// discardSink drops all output. Used when no sink is configured.
type discardSink struct{}

func (discardSink) Printf(string, ...any) {}
