// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateWritesOutput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outPath, err := Generate(root, alphaBetaRegistry(), Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if outPath != filepath.Join(root, "Makefile.am") {
		t.Errorf("output path = %q, want Makefile.am under root", outPath)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "### GENERATED BY makemake") {
		t.Error("output file does not start with the preamble")
	}

	// No backup on the first run.
	if _, err := os.Stat(outPath + "~"); !os.IsNotExist(err) {
		t.Error("backup file created on first generation")
	}
}

func TestGeneratePreservesPreviousOutputAsBackup(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outPath := filepath.Join(root, "Makefile.am")
	if err := os.WriteFile(outPath, []byte("old contents\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A stale backup from an earlier run must be replaced, not kept.
	if err := os.WriteFile(outPath+"~", []byte("stale backup\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(root, alphaBetaRegistry(), Options{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	backup, err := os.ReadFile(outPath + "~")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(backup) != "old contents\n" {
		t.Errorf("backup = %q, want the previous output", backup)
	}

	current, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(current) == "old contents\n" {
		t.Error("output file was not regenerated")
	}
}

func TestGenerateAppendsProjectInclude(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	include := "# hand-written extras\ninstall-data-hook:\n\techo done\n"
	if err := os.WriteFile(filepath.Join(root, "project.mk"), []byte(include), 0o644); err != nil {
		t.Fatal(err)
	}

	outPath, err := Generate(root, alphaBetaRegistry(), Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), include) {
		t.Error("project.mk contents not appended verbatim")
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	reg := alphaBetaRegistry()

	outPath, err := Generate(root, reg, Options{})
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	first, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(root, reg, Options{}); err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	second, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("regenerating with unchanged input produced different output")
	}
	// And the backup is the identical previous output.
	backup, err := os.ReadFile(outPath + "~")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(backup) != string(first) {
		t.Error("backup does not match the previous output")
	}
}

func TestGenerateHonorsConfiguredNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opts := Options{
		OutputFile:   "GNUmakefile.am",
		IncludeFile:  "extra.mk",
		BackupSuffix: ".bak",
	}
	if err := os.WriteFile(filepath.Join(root, "extra.mk"), []byte("x:\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outPath, err := Generate(root, alphaBetaRegistry(), opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if filepath.Base(outPath) != "GNUmakefile.am" {
		t.Errorf("output = %q, want configured name", outPath)
	}

	if _, err := Generate(root, alphaBetaRegistry(), opts); err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if _, err := os.Stat(outPath + ".bak"); err != nil {
		t.Errorf("configured backup suffix not used: %v", err)
	}
}
