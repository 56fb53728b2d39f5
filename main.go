// SPDX-License-Identifier: MPL-2.0

// makemake maintains C Autotools projects described by per-module module.cfg
// files: it generates Makefile.am, scaffolds new modules, and cleans build
// artifacts.
package main

import cmd "github.com/dansanderson/makemake/cmd/makemake"

func main() {
	cmd.Execute()
}
