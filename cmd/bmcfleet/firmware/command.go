// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package firmware implements the firmware command group: Redfish
// update-service uploads per component type and nvfwupd-driven HMC
// bundle updates.
package firmware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/ops"
	"github.com/bureau-foundation/bmcfleet/lib/firmware"
	"github.com/bureau-foundation/bmcfleet/lib/nvfwupd"
	"github.com/bureau-foundation/bmcfleet/lib/redfish"
	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// Command returns the "bmcfleet firmware" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "firmware",
		Summary: "Firmware update operations",
		Subcommands: []*cli.Command{
			updateCommand(),
			hmcCommand(),
		},
	}
}

// packageTypes are the component types the update command accepts.
// The type names the component being flashed; the actual image path
// comes from each target file's PACKAGE field.
var packageTypes = map[string]bool{"bmc": true, "bios": true, "cpld": true}

type updateParams struct {
	ops.ResolveParams
	Package string        `flag:"package,p" desc:"component type to flash (bmc, bios, cpld)"`
	Pacing  time.Duration `flag:"pacing" default:"5s" desc:"delay between targets"`
}

func updateCommand() *cli.Command {
	var params updateParams

	return &cli.Command{
		Name:    "update",
		Summary: "Upload a firmware package to every target's update service",
		Description: `Stream each target's firmware package (the PACKAGE path in the
target file) to its Redfish update service. All targets in a run
must name the same package file; the package is fingerprinted and
recorded in the session log before any upload starts. Track staging
progress afterwards with "bmcfleet task status".`,
		Usage: "bmcfleet firmware update --package <type> [flags] <target-file>...",
		Examples: []cli.Example{
			{
				Description: "Flash the BMC image named by the target file",
				Command:     "bmcfleet firmware update --package bmc switch_bmc.yaml",
			},
			{
				Description: "Flash CPLD with a slower pace between targets",
				Command:     "bmcfleet firmware update --package cpld --pacing 10s switch_cpld.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("update", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if !packageTypes[params.Package] {
				return fmt.Errorf("--package must be one of bmc, bios, cpld (got %q)", params.Package)
			}

			cons, closeLog := ops.NewConsole("firmware-"+params.Package, logger)
			defer closeLog()

			resolution, err := ops.Resolve(args, &params.ResolveParams, target.LoadForUpdate, cons, logger)
			if err != nil {
				return err
			}
			pkg, err := firmware.Validate(resolution.Records)
			if err != nil {
				return err
			}
			cons.Banner(fmt.Sprintf("Package: %s (%d bytes, blake3 %s)", pkg.Path, pkg.Size, pkg.Digest))
			logger.Info("package validated", "path", pkg.Path, "size", pkg.Size, "digest", pkg.Digest)

			executor := &redfish.Executor{Client: redfish.NewClient()}
			op := runner.Operation{Kind: runner.FirmwareUpdate, Verb: params.Package + " firmware update"}
			return ops.Execute(ctx, resolution, executor, op, params.Pacing, true, params.Yes, cons, logger)
		},
	}
}

type hmcParams struct {
	ops.ResolveParams
	Pacing  time.Duration `flag:"pacing" default:"3s" desc:"delay between targets"`
	Timeout time.Duration `flag:"timeout" default:"30m" desc:"per-target nvfwupd timeout"`
}

func hmcCommand() *cli.Command {
	var params hmcParams

	return &cli.Command{
		Name:    "hmc",
		Summary: "Update HMC firmware via nvfwupd",
		Description: `Run a scoped HMC bundle update on each target through the vendor
nvfwupd tool. The tool receives the target's address and credentials
through a private config file, never on its command line. Each
target can take many minutes; the default per-target timeout is 30
minutes.`,
		Usage: "bmcfleet firmware hmc [flags] <target-file>...",
		Examples: []cli.Example{
			{
				Description: "Update the HMC bundle across the compute fleet",
				Command:     "bmcfleet firmware hmc compute_hmc.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("hmc", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cons, closeLog := ops.NewConsole("firmware-hmc", logger)
			defer closeLog()

			resolution, err := ops.Resolve(args, &params.ResolveParams, target.LoadForUpdate, cons, logger)
			if err != nil {
				return err
			}
			pkg, err := firmware.Validate(resolution.Records)
			if err != nil {
				return err
			}
			cons.Banner(fmt.Sprintf("Package: %s (%d bytes, blake3 %s)", pkg.Path, pkg.Size, pkg.Digest))
			logger.Info("package validated", "path", pkg.Path, "size", pkg.Size, "digest", pkg.Digest)

			executor := &nvfwupd.Executor{
				Updater:     &nvfwupd.Updater{Timeout: params.Timeout},
				PackagePath: pkg.Path,
			}
			op := runner.Operation{Kind: runner.FirmwareUpdate, Verb: "HMC firmware update"}
			return ops.Execute(ctx, resolution, executor, op, params.Pacing, true, params.Yes, cons, logger)
		},
	}
}
