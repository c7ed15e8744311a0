// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// writeFile writes a target file fixture and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const validFile = `
Targets:
  - BMC_IP: "10.0.0.1"
    SYSTEM_NAME: "node-01"
    RF_USERNAME: "admin"
    RF_PASSWORD: "hunter2"
  - BMC_IP: "10.0.0.2"
    SYSTEM_NAME: "node-02"
    RF_USERNAME: "admin"
    RF_PASSWORD: "hunter2"
    TARGET_PLATFORM: "GB300switch"
`

func TestLoad_ValidFile(t *testing.T) {
	path := writeFile(t, "compute_bmc.yaml", validFile)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Input order is preserved.
	if records[0].Address != "10.0.0.1" || records[1].Address != "10.0.0.2" {
		t.Errorf("records out of order: %q, %q", records[0].Address, records[1].Address)
	}
	if records[0].Name != "node-01" {
		t.Errorf("got name %q, want node-01", records[0].Name)
	}
	if got := records[0].Credentials(); got != (Credentials{Username: "admin", Password: "hunter2"}) {
		t.Errorf("unexpected credentials: %+v", got)
	}
	if records[1].Platform != "GB300switch" {
		t.Errorf("got platform %q, want GB300switch", records[1].Platform)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("got %v, want fs.ErrNotExist", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := writeFile(t, "bad.yaml", "Targets: [\n  - :::")

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v, want *ParseError", err)
	}
	if parseErr.File != path {
		t.Errorf("error names %q, want %q", parseErr.File, path)
	}
}

func TestLoad_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{"missing key", "OtherKey: 1\n", "no 'Targets' section found"},
		{"not a list", "Targets: notalist\n", "'Targets' section is not a list"},
		{"empty list", "Targets: []\n", "'Targets' section is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "schema.yaml", tt.content)
			_, err := Load(path)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("got %v, want *SchemaError", err)
			}
			if schemaErr.Reason != tt.reason {
				t.Errorf("got reason %q, want %q", schemaErr.Reason, tt.reason)
			}
		})
	}
}

func TestLoad_MissingField(t *testing.T) {
	// The second record lacks a password; the first missing field in
	// check order must be reported with the 1-based record index.
	content := `
Targets:
  - BMC_IP: "10.0.0.1"
    SYSTEM_NAME: "node-01"
    RF_USERNAME: "admin"
    RF_PASSWORD: "hunter2"
  - BMC_IP: "10.0.0.2"
    SYSTEM_NAME: "node-02"
    RF_USERNAME: "admin"
`
	path := writeFile(t, "missing.yaml", content)

	_, err := Load(path)
	var missingErr *MissingFieldError
	if !errors.As(err, &missingErr) {
		t.Fatalf("got %v, want *MissingFieldError", err)
	}
	if missingErr.Index != 2 {
		t.Errorf("got index %d, want 2", missingErr.Index)
	}
	if missingErr.Field != "RF_PASSWORD" {
		t.Errorf("got field %q, want RF_PASSWORD", missingErr.Field)
	}
	if missingErr.File != path {
		t.Errorf("error names %q, want %q", missingErr.File, path)
	}
}

func TestLoad_MissingFieldOrder(t *testing.T) {
	// A record missing everything reports BMC_IP first.
	path := writeFile(t, "empty-record.yaml", "Targets:\n  - {}\n")

	_, err := Load(path)
	var missingErr *MissingFieldError
	if !errors.As(err, &missingErr) {
		t.Fatalf("got %v, want *MissingFieldError", err)
	}
	if missingErr.Field != "BMC_IP" {
		t.Errorf("got field %q, want BMC_IP", missingErr.Field)
	}
}

func TestLoadForUpdate_RequiresPackage(t *testing.T) {
	path := writeFile(t, "update.yaml", validFile)

	if _, err := Load(path); err != nil {
		t.Fatalf("Load without package requirement: %v", err)
	}

	_, err := LoadForUpdate(path)
	var missingErr *MissingFieldError
	if !errors.As(err, &missingErr) {
		t.Fatalf("got %v, want *MissingFieldError", err)
	}
	if missingErr.Field != "PACKAGE" || missingErr.Index != 1 {
		t.Errorf("got %s at index %d, want PACKAGE at index 1", missingErr.Field, missingErr.Index)
	}
}

func TestLoad_InconsistentCredentials(t *testing.T) {
	content := `
Targets:
  - BMC_IP: "10.0.0.1"
    SYSTEM_NAME: "node-01"
    RF_USERNAME: "admin"
    RF_PASSWORD: "hunter2"
  - BMC_IP: "10.0.0.2"
    SYSTEM_NAME: "node-02"
    RF_USERNAME: "admin"
    RF_PASSWORD: "different"
`
	path := writeFile(t, "creds.yaml", content)

	_, err := Load(path)
	var mismatchErr *CredentialMismatchError
	if !errors.As(err, &mismatchErr) {
		t.Fatalf("got %v, want *CredentialMismatchError", err)
	}
	if mismatchErr.Index != 2 {
		t.Errorf("got index %d, want 2", mismatchErr.Index)
	}
}

func TestLoad_ExtraParametersPassThrough(t *testing.T) {
	content := `
Targets:
  - BMC_IP: "10.0.0.1"
    SYSTEM_NAME: "node-01"
    RF_USERNAME: "admin"
    RF_PASSWORD: "hunter2"
    SERVER_TYPE: "GB300"
`
	path := writeFile(t, "extra.yaml", content)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := records[0].Extra["SERVER_TYPE"]; got != "GB300" {
		t.Errorf("got SERVER_TYPE %v, want GB300", got)
	}
}
