// SPDX-License-Identifier: MPL-2.0

package modcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      CreateOptions
		expectErr bool
		validate  func(t *testing.T, root string, created []string)
	}{
		{
			name: "create library module",
			opts: CreateOptions{Name: "executor"},
			validate: func(t *testing.T, root string, created []string) {
				t.Helper()
				wantFiles := []string{
					"src/executor/executor.c",
					"src/executor/executor.h",
					"src/executor/module.cfg",
					"tests/executor/test_executor.c",
				}
				if len(created) != len(wantFiles) {
					t.Fatalf("created %d files, want %d: %v", len(created), len(wantFiles), created)
				}
				for _, rel := range wantFiles {
					if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
						t.Errorf("%s not created: %v", rel, err)
					}
				}

				// The declaration must parse back as a library.
				decl, err := ParseDeclaration(filepath.Join(root, "src", "executor", ConfigFileName))
				if err != nil {
					t.Fatalf("created module.cfg is not valid: %v", err)
				}
				if decl.Library != "executor" {
					t.Errorf("Library = %q, want executor", decl.Library)
				}

				header, err := os.ReadFile(filepath.Join(root, "src", "executor", "executor.h"))
				if err != nil {
					t.Fatalf("failed to read header: %v", err)
				}
				if !strings.Contains(string(header), "#ifndef EXECUTOR_H_") {
					t.Error("header is missing the include guard")
				}

				test, err := os.ReadFile(filepath.Join(root, "tests", "executor", "test_executor.c"))
				if err != nil {
					t.Fatalf("failed to read test skeleton: %v", err)
				}
				if !strings.Contains(string(test), `#include "executor/executor.h"`) {
					t.Error("test skeleton does not include the module header")
				}
				if !strings.Contains(string(test), "test_ExecutorDoSomething_Returns3x") {
					t.Error("test skeleton is missing the sample test case")
				}
			},
		},
		{
			name: "create program module",
			opts: CreateOptions{Name: "myapp", Program: true},
			validate: func(t *testing.T, root string, created []string) {
				t.Helper()
				if len(created) != 2 {
					t.Fatalf("created %d files, want 2: %v", len(created), created)
				}
				src, err := os.ReadFile(filepath.Join(root, "src", "myapp", "myapp.c"))
				if err != nil {
					t.Fatalf("failed to read source: %v", err)
				}
				if !strings.Contains(string(src), "int main(") {
					t.Error("program source is missing main")
				}
				decl, err := ParseDeclaration(filepath.Join(root, "src", "myapp", ConfigFileName))
				if err != nil {
					t.Fatalf("created module.cfg is not valid: %v", err)
				}
				if decl.Program != "myapp" {
					t.Errorf("Program = %q, want myapp", decl.Program)
				}
				// No header and no test skeleton for programs.
				if _, err := os.Stat(filepath.Join(root, "tests", "myapp")); !os.IsNotExist(err) {
					t.Error("program module should not get a test directory")
				}
			},
		},
		{
			name:      "invalid name",
			opts:      CreateOptions{Name: "3sum"},
			expectErr: true,
		},
		{
			name:      "empty name",
			opts:      CreateOptions{Name: ""},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			tt.opts.RootDir = root

			created, err := Create(tt.opts)
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			tt.validate(t, root, created)
		})
	}
}

func TestCreateRefusesExistingModule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := Create(CreateOptions{Name: "dupe", RootDir: root}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := Create(CreateOptions{Name: "dupe", RootDir: root})
	if err == nil {
		t.Fatal("expected an error creating an existing module")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %q, want it to mention the module already exists", err)
	}
}

func TestCreatedModuleLoadsInRegistry(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := Create(CreateOptions{Name: "cfgfile", RootDir: root}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := Create(CreateOptions{Name: "myapp", RootDir: root, Program: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reg, err := LoadRegistry(root, "src", "tests")
	if err != nil {
		t.Fatalf("LoadRegistry on scaffolded tree: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}
	lib, _ := reg.Get("cfgfile")
	if got, want := lib.Tests, []string{"test_cfgfile.c"}; len(got) != 1 || got[0] != want[0] {
		t.Errorf("Tests = %v, want %v", got, want)
	}
}
