// SPDX-License-Identifier: MPL-2.0

// Package makefile renders a Makefile.am from a validated module registry.
//
// The output is a single automake document: a fixed preamble (global flags,
// CMock/Unity build rules, housekeeping variable initializations), one section
// per module in sorted name order, a fixed postamble (test list, packaging
// list), and the verbatim contents of an optional project.mk. Rendering is
// deterministic: the same registry always produces byte-identical output.
package makefile
