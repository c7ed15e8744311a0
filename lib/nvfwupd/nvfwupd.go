// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nvfwupd drives the vendor nvfwupd CLI for HMC firmware
// updates that the plain Redfish update service cannot perform. The
// tool reads the target's address and credentials from a config file
// rather than argv, so credentials never appear in process listings.
package nvfwupd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

// UpdateTimeout bounds a single nvfwupd invocation. HMC updates
// stage, transfer, and activate a full bundle; they routinely run
// for many minutes.
const UpdateTimeout = 30 * time.Minute

// hmcScope is the Redfish chassis path nvfwupd updates when scoped to
// the HMC tray.
const hmcScope = "/redfish/v1/Chassis/HGX_Chassis_0"

// Updater invokes nvfwupd. The zero value uses the binary from PATH.
type Updater struct {
	// Binary overrides the nvfwupd executable path. Empty means
	// "nvfwupd" resolved from PATH.
	Binary string

	// Timeout overrides UpdateTimeout when positive.
	Timeout time.Duration
}

func (u *Updater) binary() string {
	if u.Binary != "" {
		return u.Binary
	}
	return "nvfwupd"
}

func (u *Updater) timeout() time.Duration {
	if u.Timeout > 0 {
		return u.Timeout
	}
	return UpdateTimeout
}

// config is the per-target nvfwupd config document. The keys match
// the target-file schema, which is what nvfwupd itself consumes.
type config struct {
	Address  string `yaml:"BMC_IP"`
	Username string `yaml:"RF_USERNAME"`
	Password string `yaml:"RF_PASSWORD"`
	Platform string `yaml:"TARGET_PLATFORM"`
}

// UpdateHMC runs a scoped HMC firmware update on one target. The
// scope and config files live in a private temp directory removed
// when the invocation finishes.
func (u *Updater) UpdateHMC(ctx context.Context, record target.Record, packagePath string) error {
	dir, err := os.MkdirTemp("", "nvfwupd-")
	if err != nil {
		return fmt.Errorf("creating nvfwupd work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	scopePath := filepath.Join(dir, "scope.json")
	if err := writeScope(scopePath); err != nil {
		return err
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := writeConfig(configPath, record); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout())
	defer cancel()

	args := []string{"-c", configPath, "update_fw", "-s", scopePath, "-p", packagePath}
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, u.binary(), args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return fmt.Errorf("nvfwupd update_fw on %s: %w (stderr: %s)",
			record.Address, err, strings.TrimSpace(stderr.String()))
	}

	// nvfwupd exits zero even for some reported failures; scan its
	// output for an explicit failure marker.
	output := stdout.String()
	if strings.Contains(strings.ToLower(output), "update failed") {
		return fmt.Errorf("nvfwupd reported failure on %s: %s",
			record.Address, strings.TrimSpace(lastLine(output)))
	}
	return nil
}

func writeScope(path string) error {
	scope, err := json.Marshal(map[string][]string{"Targets": {hmcScope}})
	if err != nil {
		return fmt.Errorf("encoding update scope: %w", err)
	}
	if err := os.WriteFile(path, scope, 0o600); err != nil {
		return fmt.Errorf("writing update scope: %w", err)
	}
	return nil
}

func writeConfig(path string, record target.Record) error {
	data, err := yaml.Marshal(config{
		Address:  record.Address,
		Username: record.Username,
		Password: record.Password,
		Platform: record.Platform,
	})
	if err != nil {
		return fmt.Errorf("encoding nvfwupd config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing nvfwupd config: %w", err)
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
