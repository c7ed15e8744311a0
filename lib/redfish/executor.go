// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package redfish

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Executor adapts the Redfish client to the operation runner. One
// executor serves every Redfish-backed operation kind; the runner
// passes the kind with each call.
type Executor struct {
	Client *Client
}

// Execute dispatches a single target operation to the matching
// Redfish action.
func (e *Executor) Execute(ctx context.Context, record target.Record, op runner.Operation) (string, error) {
	switch op.Kind {
	case runner.SystemForceOff:
		return "", e.Client.SystemForceOff(ctx, record)
	case runner.SystemPowerCycle:
		return "", e.Client.SystemPowerCycle(ctx, record)
	case runner.ManagerReset:
		return "", e.Client.ManagerReset(ctx, record)
	case runner.AuxPowerCycle:
		return "", e.Client.AuxPowerCycle(ctx, record)
	case runner.FirmwareUpdate:
		return "", e.Client.UploadFirmware(ctx, record, record.PackagePath)
	case runner.TaskStatus:
		progress, err := e.Client.LatestTaskPercent(ctx, record)
		if err != nil {
			return "", err
		}
		detail := fmt.Sprintf("Task %d: %d%%", progress.ID, progress.Percent)
		if progress.State != "" {
			detail = fmt.Sprintf("%s (%s)", detail, progress.State)
		}
		return detail, nil
	default:
		return "", fmt.Errorf("operation %s is not a Redfish action", op.Kind)
	}
}
