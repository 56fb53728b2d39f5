// SPDX-License-Identifier: MPL-2.0

// Package modcfg loads and validates the per-module declaration files that
// describe a C Autotools project. Each immediate subdirectory of the source
// root that contains a module.cfg file is a module; the file declares the
// module as either a program or a library and lists the library modules it
// depends on.
//
// A module.cfg for a program:
//
//	[module]
//	program = myapp
//	deps = executor reporter
//
// A module.cfg for a library:
//
//	[module]
//	library = executor
//	deps = cfgfile
//
// The file format is INI (Python configparser compatible).
package modcfg
