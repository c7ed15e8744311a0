// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// targetFile is the YAML document shape of a target file.
type targetFile struct {
	Targets []Record `yaml:"Targets"`
}

// LoadFunc loads one target file. Load and LoadForUpdate both satisfy
// it; Reconcile takes one so callers choose the field requirements.
type LoadFunc func(path string) ([]Record, error)

// Load reads one target file and validates every record. It returns
// the records in file order, never mutating it.
//
// Errors: a wrapped os.PathError when the file does not exist, a
// *ParseError for malformed YAML, a *SchemaError for a missing,
// non-list, or empty Targets key, a *MissingFieldError for the first
// record lacking a required field (checked in order: BMC_IP,
// RF_USERNAME, RF_PASSWORD, SYSTEM_NAME), and a
// *CredentialMismatchError for a record whose credentials disagree
// with the first record in the file.
func Load(path string) ([]Record, error) {
	return load(path, false)
}

// LoadForUpdate is Load with PACKAGE added to the required fields, for
// firmware-update operations.
func LoadForUpdate(path string) ([]Record, error) {
	return load(path, true)
}

func load(path string, requirePackage bool) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading target file: %w", err)
	}

	// Probe the document shape before the typed unmarshal so a
	// missing or non-list Targets key is reported as a schema error,
	// not a decode error.
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	raw, ok := probe["Targets"]
	if !ok {
		return nil, &SchemaError{File: path, Reason: "no 'Targets' section found"}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &SchemaError{File: path, Reason: "'Targets' section is not a list"}
	}
	if len(list) == 0 {
		return nil, &SchemaError{File: path, Reason: "'Targets' section is empty"}
	}

	var file targetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	for i, record := range file.Targets {
		if err := checkRequired(path, i+1, record, requirePackage); err != nil {
			return nil, err
		}
	}

	// Per-file credential consistency: every record must match the
	// first one.
	reference := file.Targets[0].Credentials()
	for i, record := range file.Targets[1:] {
		if record.Credentials() != reference {
			return nil, &CredentialMismatchError{File: path, Index: i + 2}
		}
	}

	return file.Targets, nil
}

// checkRequired validates one record's required fields, reporting the
// first missing field in a fixed order so errors are deterministic.
func checkRequired(path string, index int, record Record, requirePackage bool) error {
	required := []struct {
		field string
		value string
	}{
		{"BMC_IP", record.Address},
		{"RF_USERNAME", record.Username},
		{"RF_PASSWORD", record.Password},
		{"SYSTEM_NAME", record.Name},
	}
	if requirePackage {
		required = append(required, struct {
			field string
			value string
		}{"PACKAGE", record.PackagePath})
	}

	for _, r := range required {
		if r.value == "" {
			return &MissingFieldError{File: path, Index: index, Field: r.field}
		}
	}
	return nil
}
