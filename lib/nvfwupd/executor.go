// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nvfwupd

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Executor adapts the Updater to the operation runner for HMC
// firmware updates.
type Executor struct {
	Updater *Updater

	// PackagePath is the validated firmware bundle pushed to every
	// target in the run.
	PackagePath string
}

// Execute runs the HMC update for one target.
func (e *Executor) Execute(ctx context.Context, record target.Record, op runner.Operation) (string, error) {
	if op.Kind != runner.FirmwareUpdate {
		return "", fmt.Errorf("operation %s is not an nvfwupd action", op.Kind)
	}
	return "", e.Updater.UpdateHMC(ctx, record, e.PackagePath)
}
