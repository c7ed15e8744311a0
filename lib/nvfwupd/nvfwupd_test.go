// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nvfwupd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/bmcfleet/lib/runner"
	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// fakeTool writes a shell script standing in for the nvfwupd binary.
// The script records its argv and snapshots the -c and -s files
// (which the updater deletes after the run) into the capture dir.
func fakeTool(t *testing.T, script string) (binary, captureDir string) {
	t.Helper()
	dir := t.TempDir()
	binary = filepath.Join(dir, "nvfwupd")
	full := "#!/bin/sh\ncapture=\"" + dir + "\"\n" + script
	if err := os.WriteFile(binary, []byte(full), 0o755); err != nil {
		t.Fatal(err)
	}
	return binary, dir
}

var testRecord = target.Record{
	Address:  "10.0.0.5",
	Name:     "tray-05",
	Username: "admin",
	Password: "s3cret",
	Platform: "GB300",
}

func TestUpdateHMCInvocation(t *testing.T) {
	binary, captureDir := fakeTool(t, `
echo "$@" > "$capture/argv"
cp "$2" "$capture/config.yaml"
cp "$5" "$capture/scope.json"
exit 0
`)
	updater := &Updater{Binary: binary}

	if err := updater.UpdateHMC(context.Background(), testRecord, "/tmp/bundle.fwpkg"); err != nil {
		t.Fatalf("UpdateHMC: %v", err)
	}

	argv, err := os.ReadFile(filepath.Join(captureDir, "argv"))
	if err != nil {
		t.Fatal(err)
	}
	args := string(argv)
	if !strings.Contains(args, "update_fw") {
		t.Errorf("argv missing update_fw: %s", args)
	}
	if !strings.Contains(args, "-p /tmp/bundle.fwpkg") {
		t.Errorf("argv missing package flag: %s", args)
	}
	if strings.Contains(args, "s3cret") || strings.Contains(args, "admin") {
		t.Errorf("credentials leaked into argv: %s", args)
	}

	config, err := os.ReadFile(filepath.Join(captureDir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"BMC_IP: 10.0.0.5", "RF_USERNAME: admin", "RF_PASSWORD: s3cret", "TARGET_PLATFORM: GB300"} {
		if !strings.Contains(string(config), want) {
			t.Errorf("config missing %q:\n%s", want, config)
		}
	}

	scope, err := os.ReadFile(filepath.Join(captureDir, "scope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(scope), "/redfish/v1/Chassis/HGX_Chassis_0") {
		t.Errorf("scope missing HMC chassis path: %s", scope)
	}
}

func TestUpdateHMCWorkFilesRemoved(t *testing.T) {
	binary, captureDir := fakeTool(t, `
dirname "$2" > "$capture/workdir"
exit 0
`)
	updater := &Updater{Binary: binary}
	if err := updater.UpdateHMC(context.Background(), testRecord, "/tmp/bundle.fwpkg"); err != nil {
		t.Fatal(err)
	}
	workdir, err := os.ReadFile(filepath.Join(captureDir, "workdir"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(strings.TrimSpace(string(workdir))); !os.IsNotExist(err) {
		t.Errorf("work dir still present after run: %v", err)
	}
}

func TestUpdateHMCNonzeroExit(t *testing.T) {
	binary, _ := fakeTool(t, `
echo "connection refused" >&2
exit 3
`)
	updater := &Updater{Binary: binary}
	err := updater.UpdateHMC(context.Background(), testRecord, "/tmp/bundle.fwpkg")
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error missing stderr: %v", err)
	}
}

func TestUpdateHMCReportedFailure(t *testing.T) {
	binary, _ := fakeTool(t, `
echo "Firmware update failed: component CPLD rejected image"
exit 0
`)
	updater := &Updater{Binary: binary}
	err := updater.UpdateHMC(context.Background(), testRecord, "/tmp/bundle.fwpkg")
	if err == nil {
		t.Fatal("expected error when output reports failure")
	}
	if !strings.Contains(err.Error(), "rejected image") {
		t.Errorf("error missing diagnostic line: %v", err)
	}
}

func TestExecutorRejectsOtherKinds(t *testing.T) {
	executor := &Executor{Updater: &Updater{}, PackagePath: "/tmp/bundle.fwpkg"}
	if _, err := executor.Execute(context.Background(), testRecord, runner.Operation{Kind: runner.ManagerReset}); err == nil {
		t.Error("expected error for non-firmware operation kind")
	}
}
