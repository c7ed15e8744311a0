// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/cli"
	"github.com/bureau-foundation/bmcfleet/cmd/bmcfleet/ops"
	libtarget "github.com/bureau-foundation/bmcfleet/lib/target"
)

type generateParams struct {
	Addresses string `flag:"addresses,a" desc:"BMC address or range (e.g. 10.0.0.70-87)"`
	Names     string `flag:"names,n" desc:"system name or range (e.g. SW-[01-18])"`
	Username  string `flag:"username,u" default:"admin" desc:"Redfish username"`
	Platform  string `flag:"platform" default:"GB300switch" desc:"TARGET_PLATFORM value"`

	BMCPackage  string `flag:"bmc-package" desc:"firmware path written to switch_bmc.yaml"`
	BIOSPackage string `flag:"bios-package" desc:"firmware path written to switch_bios.yaml"`
	CPLDPackage string `flag:"cpld-package" desc:"firmware path written to switch_cpld.yaml"`

	OutputDir         string `flag:"output-dir,o" default:"." desc:"directory the files are written to"`
	OverrideConflicts bool   `flag:"override-conflicts" desc:"proceed past cross-domain address overlap after confirmation"`
	Yes               bool   `flag:"yes,y" desc:"skip confirmation prompts"`
}

func generateCommand() *cli.Command {
	var params generateParams

	return &cli.Command{
		Name:    "generate",
		Summary: "Write switch target files from an address range",
		Description: `Generate the switch_bmc.yaml / switch_bios.yaml / switch_cpld.yaml
triple from an address range and a matching name range. The Redfish
password is prompted for interactively and written only into the
target files, never accepted as a flag or environment variable.

The generated address set is checked against any compute_*.yaml
files in the output directory before anything is written.`,
		Usage: "bmcfleet target generate [flags]",
		Examples: []cli.Example{
			{
				Description: "Generate files for eighteen switches",
				Command:     "bmcfleet target generate -a 10.0.0.70-87 -n 'SW-[01-18]' --bmc-package fw/bmc.fwpkg",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("generate", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cons, closeLog := ops.NewConsole("target-generate", logger)
			defer closeLog()

			password, err := readPassword()
			if err != nil {
				return err
			}

			spec := generateSpec{
				params:   params,
				password: password,
			}
			files, err := generate(spec, cons)
			if err != nil {
				return err
			}
			for _, file := range files {
				cons.Success("wrote %s", file)
			}
			logger.Info("target files generated", "files", len(files), "dir", params.OutputDir)
			return nil
		},
	}
}

// readPassword prompts for the Redfish password without echo. A
// second prompt guards against typos since the password is fanned out
// into every generated file.
func readPassword() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("password prompt requires an interactive terminal")
	}
	fmt.Fprint(os.Stderr, "Redfish password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(first), nil
}

// generateSpec carries everything generate needs, with the password
// separated from the flag-bound params so it can never arrive via
// argv.
type generateSpec struct {
	params   generateParams
	password string
}

// generatedRecord is the document shape written to the files. The
// PACKAGE key is omitted from files whose component has no package
// path configured.
type generatedRecord struct {
	Address  string `yaml:"BMC_IP"`
	Name     string `yaml:"SYSTEM_NAME"`
	Username string `yaml:"RF_USERNAME"`
	Password string `yaml:"RF_PASSWORD"`
	Package  string `yaml:"PACKAGE,omitempty"`
	Platform string `yaml:"TARGET_PLATFORM,omitempty"`
}

type generatedFile struct {
	Targets []generatedRecord `yaml:"Targets"`
}

// generate expands the ranges, checks the new address set against
// compute files, and writes the three switch files.
func generate(spec generateSpec, cons confirmer) ([]string, error) {
	params := spec.params
	addresses, err := libtarget.ExpandAddresses(params.Addresses)
	if err != nil {
		return nil, err
	}
	names, err := libtarget.ExpandNames(params.Names)
	if err != nil {
		return nil, err
	}
	if len(addresses) != len(names) {
		return nil, fmt.Errorf("%d addresses but %d names; ranges must pair up", len(addresses), len(names))
	}

	if err := checkComputeOverlap(params, addresses, cons); err != nil {
		return nil, err
	}

	components := []struct {
		file        string
		packagePath string
	}{
		{"switch_bmc.yaml", params.BMCPackage},
		{"switch_bios.yaml", params.BIOSPackage},
		{"switch_cpld.yaml", params.CPLDPackage},
	}

	var written []string
	for _, component := range components {
		document := generatedFile{Targets: make([]generatedRecord, len(addresses))}
		for i := range addresses {
			document.Targets[i] = generatedRecord{
				Address:  addresses[i],
				Name:     names[i],
				Username: params.Username,
				Password: spec.password,
				Package:  component.packagePath,
				Platform: params.Platform,
			}
		}
		path := filepath.Join(params.OutputDir, component.file)
		if err := writeTargetFile(path, document); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// confirmer is the slice of the console the generator needs, kept
// narrow so tests can drive it with a stub.
type confirmer interface {
	Warn(format string, args ...any)
	ConfirmOverride(conflict error) bool
}

// checkComputeOverlap verifies the generated switch addresses do not
// collide with any compute_*.yaml file already in the output
// directory.
func checkComputeOverlap(params generateParams, addresses []string, cons confirmer) error {
	matches, err := filepath.Glob(filepath.Join(params.OutputDir, "compute_*.yaml"))
	if err != nil || len(matches) == 0 {
		return nil
	}

	compute := make(libtarget.Set)
	for _, match := range matches {
		records, err := libtarget.Load(match)
		if err != nil {
			return fmt.Errorf("loading conflict-check file: %w", err)
		}
		for address := range libtarget.Addresses(records) {
			compute[address] = struct{}{}
		}
	}

	generated := make(libtarget.Set, len(addresses))
	for _, address := range addresses {
		generated[address] = struct{}{}
	}

	err = libtarget.CheckDisjoint(generated, compute, "switch", "compute")
	if err == nil {
		return nil
	}
	if !params.OverrideConflicts {
		return err
	}
	if params.Yes {
		cons.Warn("%v (overridden)", err)
		return nil
	}
	if !cons.ConfirmOverride(err) {
		cons.Warn("Generation cancelled.")
		return &cli.ExitError{Code: cli.ExitCancelled}
	}
	return nil
}

// writeTargetFile writes the document with owner-only permissions:
// the file carries credentials.
func writeTargetFile(path string, document generatedFile) error {
	data, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
