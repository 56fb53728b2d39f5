// SPDX-License-Identifier: MPL-2.0

package modcfg

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dansanderson/makemake/internal/issue"

	"gopkg.in/ini.v1"
)

const (
	// ConfigFileName is the fixed name of the per-module declaration file.
	ConfigFileName = "module.cfg"

	// SectionName is the required section inside a module.cfg.
	SectionName = "module"

	// SourceSuffix and HeaderSuffix select which files inside a module's
	// source directory count as sources of that module.
	SourceSuffix = ".c"
	HeaderSuffix = ".h"

	// TestPrefix marks test-suite files inside a module's test directory.
	TestPrefix = "test_"
)

type (
	// Declaration is the parsed content of one module.cfg. Exactly one of
	// Program or Library is set. Immutable once parsed.
	Declaration struct {
		// Path is the location of the module.cfg this was parsed from.
		Path string

		// Program is the executable name, or empty for library modules.
		Program string

		// Library is the linkable-unit name, or empty for program modules.
		Library string

		// Deps are the declared dependency module names, in declaration order.
		Deps []string
	}

	// Module is the derived record for one declared module: its identity
	// plus the source and test files discovered on disk. Built once per
	// generation run and never mutated afterwards.
	Module struct {
		// Name is the module's directory name, the unique registry key.
		Name string

		// ConfigPath is the location of the module.cfg that declared it.
		ConfigPath string

		// Program and Library mirror the declaration; exactly one is set.
		Program string
		Library string

		// Deps are the declared dependency module names, in declaration order.
		Deps []string

		// SourceDir is the module's source directory relative to the project
		// root, always slash-separated (it is emitted into the Makefile).
		SourceDir string

		// Sources are the .c and .h files directly inside SourceDir,
		// in discovery order.
		Sources []string

		// TestsDir is the module's test directory relative to the project
		// root, slash-separated. The directory need not exist.
		TestsDir string

		// Tests are the test_*.c files inside TestsDir, in discovery order.
		// Always empty for program modules.
		Tests []string
	}

	// Registry maps module names to their Modules. Iteration for output must
	// use Names, which is sorted for deterministic generation.
	Registry struct {
		modules map[string]*Module
	}
)

// IsProgram reports whether the module builds an executable.
func (m *Module) IsProgram() bool {
	return m.Program != ""
}

// LibArtifact returns the libtool archive name for a library module,
// e.g. "libexecutor.la". It must not be called on program modules.
func (m *Module) LibArtifact() string {
	return "lib" + m.Library + ".la"
}

// MockArtifact returns the generated mock library name for a library module,
// e.g. "libexecutor_mock.la".
func (m *Module) MockArtifact() string {
	return "lib" + m.Library + "_mock.la"
}

// NewRegistry builds a registry from already-constructed modules, keyed by
// module name. No dependency validation is performed; callers assembling
// modules by hand are responsible for their consistency.
func NewRegistry(mods ...*Module) *Registry {
	reg := &Registry{modules: make(map[string]*Module, len(mods))}
	for _, m := range mods {
		reg.modules[m.Name] = m
	}
	return reg
}

// Get returns the module with the given name.
func (r *Registry) Get(name string) (*Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Names returns all module names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of modules in the registry.
func (r *Registry) Len() int {
	return len(r.modules)
}

// ParseDeclaration reads and parses one module.cfg.
func ParseDeclaration(cfgPath string) (*Declaration, error) {
	f, err := ini.Load(cfgPath)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse module declaration").
			WithResource(cfgPath).
			WithSuggestion("Check the file for INI syntax errors").
			WithIssue(issue.MalformedDeclarationId).
			Wrap(err).
			BuildError()
	}

	sec, err := f.GetSection(SectionName)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse module declaration").
			WithResource(cfgPath).
			WithSuggestion("Add a [module] section declaring 'program' or 'library'").
			WithIssue(issue.MalformedDeclarationId).
			Wrap(fmt.Errorf("must have [%s] section", SectionName)).
			BuildError()
	}

	decl := &Declaration{Path: cfgPath}
	if sec.HasKey("program") {
		decl.Program = sec.Key("program").String()
	}
	if sec.HasKey("library") {
		decl.Library = sec.Key("library").String()
	}

	switch {
	case decl.Program == "" && decl.Library == "":
		return nil, issue.NewErrorContext().
			WithOperation("parse module declaration").
			WithResource(cfgPath).
			WithSuggestion("Declare 'program = <name>' for an executable module").
			WithSuggestion("Declare 'library = <name>' for a library module").
			WithIssue(issue.MissingIdentityId).
			Wrap(errors.New("must specify either program or library")).
			BuildError()
	case decl.Program != "" && decl.Library != "":
		return nil, issue.NewErrorContext().
			WithOperation("parse module declaration").
			WithResource(cfgPath).
			WithSuggestion("Remove one of the two keys; a module is either a program or a library").
			WithIssue(issue.MissingIdentityId).
			Wrap(errors.New("program and library are mutually exclusive")).
			BuildError()
	}

	if sec.HasKey("deps") {
		decl.Deps = strings.Fields(sec.Key("deps").String())
	}

	return decl, nil
}

// LoadDeclarations scans the immediate subdirectories of srcDir and parses
// every module.cfg it finds. The returned map is keyed by module (directory)
// name. Directories without a module.cfg are skipped.
func LoadDeclarations(srcDir string) (map[string]*Declaration, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("scan source directory").
			WithResource(srcDir).
			WithSuggestion("Run from the project root, or pass --root-dir").
			Wrap(err).
			BuildError()
	}

	decls := make(map[string]*Declaration)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		cfgPath := filepath.Join(srcDir, entry.Name(), ConfigFileName)
		if _, err := os.Stat(cfgPath); err != nil {
			continue
		}
		decl, err := ParseDeclaration(cfgPath)
		if err != nil {
			return nil, err
		}
		decls[entry.Name()] = decl
	}
	return decls, nil
}

// BuildRegistry turns parsed declarations into the full module registry,
// discovering each module's source and test files, then validates every
// declared dependency. rootDir is the project root on disk; srcRel and
// testsRel are the source and test tree paths relative to it (slash form).
func BuildRegistry(decls map[string]*Declaration, rootDir, srcRel, testsRel string) (*Registry, error) {
	reg := &Registry{modules: make(map[string]*Module, len(decls))}

	for name, decl := range decls {
		sourceDir := path.Join(srcRel, name)
		testsDir := path.Join(testsRel, name)

		sources, err := collectSources(filepath.Join(rootDir, filepath.FromSlash(sourceDir)))
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("list module sources").
				WithResource(sourceDir).
				Wrap(err).
				BuildError()
		}

		var tests []string
		if decl.Library != "" {
			tests, err = collectTests(filepath.Join(rootDir, filepath.FromSlash(testsDir)))
			if err != nil {
				return nil, issue.NewErrorContext().
					WithOperation("list module tests").
					WithResource(testsDir).
					Wrap(err).
					BuildError()
			}
		}

		reg.modules[name] = &Module{
			Name:       name,
			ConfigPath: decl.Path,
			Program:    decl.Program,
			Library:    decl.Library,
			Deps:       decl.Deps,
			SourceDir:  sourceDir,
			Sources:    sources,
			TestsDir:   testsDir,
			Tests:      tests,
		}
	}

	if err := reg.validateDeps(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadRegistry is the one-call loader: scan, parse, discover, validate.
func LoadRegistry(rootDir, srcRel, testsRel string) (*Registry, error) {
	decls, err := LoadDeclarations(filepath.Join(rootDir, filepath.FromSlash(srcRel)))
	if err != nil {
		return nil, err
	}
	return BuildRegistry(decls, rootDir, srcRel, testsRel)
}

// validateDeps checks that every declared dependency names an existing
// library module. Diagnostics name the declaring module's own module.cfg.
func (r *Registry) validateDeps() error {
	for _, name := range r.Names() {
		mod := r.modules[name]
		for _, dep := range mod.Deps {
			target, ok := r.modules[dep]
			if !ok {
				return issue.NewErrorContext().
					WithOperation("validate module dependencies").
					WithResource(mod.ConfigPath).
					WithSuggestion("Check the deps list for typos").
					WithSuggestion(fmt.Sprintf("Create the module with 'makemake module create %s'", dep)).
					WithIssue(issue.UnresolvedDependencyId).
					Wrap(fmt.Errorf("dep is not a module: %s", dep)).
					BuildError()
			}
			if target.Library == "" {
				return issue.NewErrorContext().
					WithOperation("validate module dependencies").
					WithResource(mod.ConfigPath).
					WithSuggestion("Only library modules can be depended on; programs cannot").
					WithIssue(issue.InvalidDependencyKindId).
					Wrap(fmt.Errorf("dep is not a library: %s", dep)).
					BuildError()
			}
		}
	}
	return nil
}

// collectSources returns the .c and .h files directly inside dir.
func collectSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, SourceSuffix) || strings.HasSuffix(name, HeaderSuffix) {
			sources = append(sources, name)
		}
	}
	return sources, nil
}

// collectTests returns the test_*.c files inside dir. A missing test
// directory is not an error; the module simply has no tests.
func collectTests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var tests []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, TestPrefix) && strings.HasSuffix(name, SourceSuffix) {
			tests = append(tests, name)
		}
	}
	return tests, nil
}
