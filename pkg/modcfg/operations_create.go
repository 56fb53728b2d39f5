// SPDX-License-Identifier: MPL-2.0

package modcfg

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/dansanderson/makemake/internal/issue"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// moduleNameRegex matches valid module names: a letter followed by
// alphanumerics or underscores. The name becomes a C identifier prefix and a
// Makefile variable stem, so anything else would produce broken output.
var moduleNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

type (
	// CreateOptions configures module scaffolding.
	CreateOptions struct {
		// Name is the module name (required).
		Name string

		// RootDir is the project root (default: current directory).
		RootDir string

		// Program scaffolds an executable module instead of a library.
		Program bool

		// SrcDir and TestsDir are the source and test tree paths relative
		// to RootDir (defaults: "src" and "tests").
		SrcDir   string
		TestsDir string
	}

	// templateContext is the data passed to every scaffolding template.
	templateContext struct {
		Name      string
		NameUpper string
		NameTitle string
	}
)

// ValidateName checks that a module name is usable as a C identifier prefix.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("module name cannot be empty")
	}
	if !moduleNameRegex.MatchString(name) {
		return fmt.Errorf("module name '%s' is invalid: must start with a letter and contain only letters, digits, and underscores", name)
	}
	return nil
}

// Create scaffolds a new module: source file, module.cfg, and for libraries a
// public header plus a Unity test skeleton. Returns the paths of the files it
// wrote, in creation order.
func Create(opts CreateOptions) ([]string, error) {
	if err := ValidateName(opts.Name); err != nil {
		return nil, err
	}

	rootDir := opts.RootDir
	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	srcDir := opts.SrcDir
	if srcDir == "" {
		srcDir = "src"
	}
	testsDir := opts.TestsDir
	if testsDir == "" {
		testsDir = "tests"
	}

	moduleDir := filepath.Join(rootDir, filepath.FromSlash(srcDir), opts.Name)
	if _, err := os.Stat(moduleDir); err == nil {
		return nil, issue.NewErrorContext().
			WithOperation("create module").
			WithResource(moduleDir).
			WithSuggestion("Pick a different module name").
			WithIssue(issue.ModuleExistsId).
			Wrap(errors.New("module already exists")).
			BuildError()
	}

	files := scaffoldFiles(opts.Name, srcDir, testsDir, opts.Program)

	ctx := templateContext{
		Name:      opts.Name,
		NameUpper: strings.ToUpper(opts.Name),
		NameTitle: strings.ToUpper(opts.Name[:1]) + opts.Name[1:],
	}

	var created []string
	for _, f := range files {
		content, err := renderTemplate(f.template, ctx)
		if err != nil {
			return nil, err
		}
		target := filepath.Join(rootDir, filepath.FromSlash(f.relPath))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create module directory: %w", err)
		}
		if err := os.WriteFile(target, content, 0o644); err != nil {
			// Best-effort cleanup on error path
			_ = os.RemoveAll(moduleDir)
			return nil, fmt.Errorf("failed to create %s: %w", f.relPath, err)
		}
		created = append(created, target)
	}

	return created, nil
}

type scaffoldFile struct {
	relPath  string
	template string
}

// scaffoldFiles lists the files to create for a module, in creation order.
func scaffoldFiles(name, srcDir, testsDir string, program bool) []scaffoldFile {
	modSrc := srcDir + "/" + name
	if program {
		return []scaffoldFile{
			{modSrc + "/" + name + ".c", "program_source.c.tmpl"},
			{modSrc + "/" + ConfigFileName, "program_module.cfg.tmpl"},
		}
	}
	return []scaffoldFile{
		{modSrc + "/" + name + ".c", "library_source.c.tmpl"},
		{modSrc + "/" + name + ".h", "library_header.h.tmpl"},
		{modSrc + "/" + ConfigFileName, "library_module.cfg.tmpl"},
		{testsDir + "/" + name + "/test_" + name + ".c", "library_test.c.tmpl"},
	}
}

func renderTemplate(name string, ctx templateContext) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
