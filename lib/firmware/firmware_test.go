// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package firmware

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/bmcfleet/lib/target"
)

func writePackage(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateHappyPath(t *testing.T) {
	path := writePackage(t, "bmc.fwpkg", []byte("image-bytes"))
	records := []target.Record{
		{Address: "10.0.0.1", PackagePath: path},
		{Address: "10.0.0.2", PackagePath: path},
	}

	pkg, err := Validate(records)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if pkg.Path != path {
		t.Errorf("Path = %s, want %s", pkg.Path, path)
	}
	if pkg.Size != int64(len("image-bytes")) {
		t.Errorf("Size = %d", pkg.Size)
	}
	if len(pkg.Digest) != 64 {
		t.Errorf("Digest = %q, want 64 hex characters", pkg.Digest)
	}
}

func TestValidateDigestIsStable(t *testing.T) {
	path := writePackage(t, "bmc.fwpkg", []byte("image-bytes"))
	records := []target.Record{{Address: "10.0.0.1", PackagePath: path}}

	first, err := Validate(records)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Validate(records)
	if err != nil {
		t.Fatal(err)
	}
	if first.Digest != second.Digest {
		t.Errorf("digest changed across runs: %s vs %s", first.Digest, second.Digest)
	}
}

func TestValidatePackageMismatch(t *testing.T) {
	pathA := writePackage(t, "a.fwpkg", []byte("a"))
	pathB := writePackage(t, "b.fwpkg", []byte("b"))
	records := []target.Record{
		{Address: "10.0.0.1", PackagePath: pathA},
		{Address: "10.0.0.2", PackagePath: pathB},
	}

	_, err := Validate(records)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want MismatchError", err)
	}
	if mismatch.Address != "10.0.0.2" {
		t.Errorf("Address = %s", mismatch.Address)
	}
}

func TestValidateMissingPackage(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.fwpkg")
	_, err := Validate([]target.Record{{Address: "10.0.0.1", PackagePath: missing}})
	if err == nil {
		t.Fatal("expected error for missing package")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestValidateEmptyPackage(t *testing.T) {
	path := writePackage(t, "empty.fwpkg", nil)
	if _, err := Validate([]target.Record{{Address: "10.0.0.1", PackagePath: path}}); err == nil {
		t.Fatal("expected error for empty package")
	}
}

func TestValidateDirectoryPackage(t *testing.T) {
	dir := t.TempDir()
	if _, err := Validate([]target.Record{{Address: "10.0.0.1", PackagePath: dir}}); err == nil {
		t.Fatal("expected error for directory package")
	}
}

func TestValidateNoRecords(t *testing.T) {
	if _, err := Validate(nil); err == nil {
		t.Fatal("expected error for empty record list")
	}
}
