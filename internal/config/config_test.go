// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Redirect the user config dir so a developer's real config can't leak in.
	SetConfigDirOverride(t.TempDir())
	defer SetConfigDirOverride("")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SrcDir != "src" {
		t.Errorf("SrcDir = %q, want src", cfg.SrcDir)
	}
	if cfg.TestsDir != "tests" {
		t.Errorf("TestsDir = %q, want tests", cfg.TestsDir)
	}
	if cfg.OutputFile != "Makefile.am" {
		t.Errorf("OutputFile = %q, want Makefile.am", cfg.OutputFile)
	}
	if cfg.IncludeFile != "project.mk" {
		t.Errorf("IncludeFile = %q, want project.mk", cfg.IncludeFile)
	}
	if cfg.BackupSuffix != "~" {
		t.Errorf("BackupSuffix = %q, want ~", cfg.BackupSuffix)
	}
	if cfg.UI.Verbose {
		t.Error("UI.Verbose should default to false")
	}
}

func TestLoadProjectConfigOverridesDefaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer SetConfigDirOverride("")

	root := t.TempDir()
	project := `output_file = "GNUmakefile.am"

[ui]
verbose = true
`
	if err := os.WriteFile(filepath.Join(root, ProjectConfigFileName), []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputFile != "GNUmakefile.am" {
		t.Errorf("OutputFile = %q, want project override", cfg.OutputFile)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose not taken from project config")
	}
	// Untouched settings keep their defaults.
	if cfg.SrcDir != "src" {
		t.Errorf("SrcDir = %q, want default src", cfg.SrcDir)
	}
}

func TestLoadProjectConfigWinsOverUserConfig(t *testing.T) {
	userDir := t.TempDir()
	SetConfigDirOverride(userDir)
	defer SetConfigDirOverride("")

	user := `src_dir = "sources"
tests_dir = "checks"
`
	if err := os.WriteFile(filepath.Join(userDir, ConfigFileName+"."+ConfigFileExt), []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	project := `tests_dir = "unittests"`
	if err := os.WriteFile(filepath.Join(root, ProjectConfigFileName), []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SrcDir != "sources" {
		t.Errorf("SrcDir = %q, want user config value", cfg.SrcDir)
	}
	if cfg.TestsDir != "unittests" {
		t.Errorf("TestsDir = %q, want project config to win", cfg.TestsDir)
	}
}

func TestLoadRejectsMalformedProjectConfig(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer SetConfigDirOverride("")

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ProjectConfigFileName), []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(root); err == nil {
		t.Fatal("expected an error for malformed project config")
	}
}
