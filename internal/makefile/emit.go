// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"strings"

	"github.com/dansanderson/makemake/pkg/modcfg"
)

const preamble = `### GENERATED BY makemake - DO NOT EDIT

ACLOCAL_AMFLAGS = -I m4

AM_CPPFLAGS = \
    -I$(top_srcdir) \
    -I$(top_srcdir)/src

if BUILD_LINUX
AM_CPPFLAGS += -DLINUX
endif
if BUILD_WINDOWS
AM_CPPFLAGS += -DWINDOWS
endif
if BUILD_APPLE
AM_CPPFLAGS += -DAPPLE
endif

AM_LDFLAGS = -pthread

CMOCK_CPPFLAGS = \
    -I$(top_srcdir)/third-party/CMock/vendor/unity/src \
    -I$(top_srcdir)/third-party/CMock/src \
    -Itests/mocks

bin_PROGRAMS =
noinst_LTLIBRARIES =
check_PROGRAMS =
check_LTLIBRARIES =
CLEANFILES =
BUILT_SOURCES =

check_LTLIBRARIES += libcmock.la
libcmock_la_SOURCES = \
    third-party/CMock/src/cmock.c \
    third-party/CMock/src/cmock.h \
    third-party/CMock/src/cmock_internals.h \
    third-party/CMock/vendor/unity/src/unity.c \
    third-party/CMock/vendor/unity/src/unity.h \
    third-party/CMock/vendor/unity/src/unity_internals.h
libcmock_la_CPPFLAGS = $(CMOCK_CPPFLAGS)

CLEANFILES += tests/runners/runner_test_*.c

`

const runnerGenerationCmds = `	@test -n "$(RUBY)" || { echo "\nPlease install Ruby to run tests.\n"; exit 1; }
	$(RUBY) $(top_srcdir)/third-party/CMock/vendor/unity/auto/generate_test_runner.rb $< $@
`

const mockGenerationCmds = `	@test -n "$(RUBY)" || { echo "\nPlease install Ruby to run tests.\n"; exit 1; }
	mkdir -p tests/mocks
	CMOCK_DIR=$(top_srcdir)/third-party/CMock \
	MOCK_OUT=tests/mocks \
	$(RUBY) $(top_srcdir)/third-party/CMock/scripts/create_mock.rb $<
`

// postamble: the third-party/CMock file list in EXTRA_DIST is selected to
// avoid accidentally including previous build output in a source
// distribution, which can break the dist build.
const postamble = `TESTS = $(check_PROGRAMS)

EXTRA_DIST = \
    README.md \
    third-party/CMock/LICENSE.txt \
    third-party/CMock/README.md \
    third-party/CMock/config \
    third-party/CMock/lib \
    third-party/CMock/scripts \
    third-party/CMock/src/cmock.c \
    third-party/CMock/src/cmock.h \
    third-party/CMock/src/cmock_internals.h \
    third-party/CMock/test \
    third-party/CMock/vendor/unity/LICENSE.txt \
    third-party/CMock/vendor/unity/README.md \
    third-party/CMock/vendor/unity/auto \
    third-party/CMock/vendor/unity/src/unity.c \
    third-party/CMock/vendor/unity/src/unity.h \
    third-party/CMock/vendor/unity/src/unity_internals.h
`

// renderListVar renders an automake list variable assignment. Empty lists
// render nothing, single values stay on one line, longer lists use
// backslash-continued four-space-indented lines. concat selects += over =.
func renderListVar(name string, vals []string, concat bool) string {
	if len(vals) == 0 {
		return ""
	}
	op := "="
	if concat {
		op = "+="
	}
	if len(vals) == 1 {
		return name + " " + op + " " + vals[0] + "\n"
	}
	return name + " " + op + " \\\n    " + strings.Join(vals, " \\\n    ") + "\n"
}

// targetStem returns the automake variable stem for a module's target:
// the program name, or lib<name>_la for libraries.
func targetStem(mod *modcfg.Module) string {
	if mod.IsProgram() {
		return mod.Program
	}
	return "lib" + mod.Library + "_la"
}

func renderModuleSources(mod *modcfg.Module) string {
	srcPaths := make([]string, 0, len(mod.Sources))
	for _, src := range mod.Sources {
		srcPaths = append(srcPaths, mod.SourceDir+"/"+src)
	}
	return renderListVar(targetStem(mod)+"_SOURCES", srcPaths, false)
}

// renderModuleDeps emits the link line for a module's declared dependencies,
// resolving each dependency name to its library artifact through the
// registry. Programs use LDADD, libraries LIBADD.
func renderModuleDeps(mod *modcfg.Module, reg *modcfg.Registry) string {
	depPaths := make([]string, 0, len(mod.Deps))
	for _, dep := range mod.Deps {
		target, _ := reg.Get(dep)
		depPaths = append(depPaths, target.LibArtifact())
	}
	if mod.IsProgram() {
		return renderListVar(mod.Program+"_LDADD", depPaths, false)
	}
	return renderListVar("lib"+mod.Library+"_la_LIBADD", depPaths, false)
}

// renderMock emits the CMock mock library for a library module: a rule
// generating the mock source from the module's public header, a check-only
// libtool archive built from it, and CLEANFILES/BUILT_SOURCES registration
// of the generated files.
func renderMock(mod *modcfg.Module) string {
	if mod.IsProgram() {
		return ""
	}

	mockC := "tests/mocks/mock_" + mod.Name + ".c"
	mockH := "tests/mocks/mock_" + mod.Name + ".h"

	parts := []string{
		mockC + " " + mockH + ": " + mod.SourceDir + "/" + mod.Name + ".h\n" + mockGenerationCmds,
		renderListVar("check_LTLIBRARIES", []string{mod.MockArtifact()}, true),
		renderListVar("lib"+mod.Library+"_mock_la_SOURCES", []string{mockC}, false),
		renderListVar("lib"+mod.Library+"_mock_la_CPPFLAGS",
			[]string{"$(CMOCK_CPPFLAGS)", "$(AM_CPPFLAGS)", "-I$(top_srcdir)/" + mod.SourceDir}, false),
		renderListVar("lib"+mod.Library+"_mock_la_LIBADD", []string{"libcmock.la"}, false),
		renderListVar("CLEANFILES", []string{mockC, mockH}, true),
		renderListVar("BUILT_SOURCES", []string{mockC, mockH}, true),
	}

	return joinParts(parts)
}

// renderTests emits one test-runner program per discovered test file: the
// runner generation rule, the test program's sources (runner, test file,
// module header), the generated mock sources of every dependency as nodist
// inputs with an explicit object-ordering rule, the link line, and the
// include flags covering CMock and every dependency's source directory.
func renderTests(mod *modcfg.Module, reg *modcfg.Registry) string {
	if mod.IsProgram() {
		return ""
	}

	var parts []string

	for _, testSrc := range mod.Tests {
		testBase := strings.TrimSuffix(testSrc, modcfg.SourceSuffix)
		stem := "tests_runners_" + testBase

		parts = append(parts, renderListVar(
			"check_PROGRAMS", []string{"tests/runners/" + testBase}, true))

		parts = append(parts,
			"tests/runners/runner_"+testBase+".c: "+
				mod.TestsDir+"/"+testBase+".c\n"+runnerGenerationCmds)

		testSrcs := []string{
			"tests/runners/runner_" + testBase + ".c",
			mod.TestsDir + "/" + testBase + ".c",
			mod.SourceDir + "/" + mod.Library + ".h",
		}
		parts = append(parts, renderListVar(stem+"_SOURCES", testSrcs, false))

		var builtSources []string
		for _, dep := range mod.Deps {
			builtSources = append(builtSources, "tests/mocks/mock_"+dep+".c")
		}
		for _, dep := range mod.Deps {
			builtSources = append(builtSources, "tests/mocks/mock_"+dep+".h")
		}
		if len(builtSources) > 0 {
			parts = append(parts, renderListVar("nodist_"+stem+"_SOURCES", builtSources, false))
			// The runner object must not compile before the mock headers
			// exist; automake has no implicit rule for that.
			parts = append(parts,
				"tests/runners/"+testBase+"-runner_"+testBase+
					".$(OBJEXT): \\\n    "+
					strings.Join(builtSources, " \\\n    ")+
					"\n")
		}

		depLibs := []string{"libcmock.la " + mod.LibArtifact()}
		for _, dep := range mod.Deps {
			target, _ := reg.Get(dep)
			depLibs = append(depLibs, target.MockArtifact())
		}
		parts = append(parts, renderListVar(stem+"_LDADD", depLibs, false))

		depCppflags := []string{"$(CMOCK_CPPFLAGS)", "$(AM_CPPFLAGS)"}
		for _, dep := range mod.Deps {
			target, _ := reg.Get(dep)
			depCppflags = append(depCppflags, "-I$(top_srcdir)/"+target.SourceDir)
		}
		parts = append(parts, renderListVar(stem+"_CPPFLAGS", depCppflags, false))
	}

	return joinParts(parts)
}

// renderModule renders one module's complete section.
func renderModule(mod *modcfg.Module, reg *modcfg.Registry) string {
	parts := []string{"### " + mod.Name + "\n"}
	if mod.IsProgram() {
		parts = append(parts, renderListVar("bin_PROGRAMS", []string{mod.Program}, true))
	} else {
		parts = append(parts, renderListVar("noinst_LTLIBRARIES", []string{mod.LibArtifact()}, true))
	}
	parts = append(parts, renderModuleSources(mod))
	parts = append(parts, renderModuleDeps(mod, reg))
	parts = append(parts, renderMock(mod))
	parts = append(parts, renderTests(mod, reg))

	return joinParts(parts) + "\n"
}

// Render produces the full Makefile.am text for a registry. includeContents,
// if non-empty, is the verbatim contents of the project include file and is
// appended after the postamble.
func Render(reg *modcfg.Registry, includeContents string) string {
	parts := []string{preamble}
	for _, name := range reg.Names() {
		mod, _ := reg.Get(name)
		parts = append(parts, renderModule(mod, reg))
	}
	parts = append(parts, postamble)
	if includeContents != "" {
		parts = append(parts, includeContents)
	}
	return joinParts(parts)
}

// joinParts joins non-empty parts with single blank-line separation.
// Each part already ends in a newline of its own.
func joinParts(parts []string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
