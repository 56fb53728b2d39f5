// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dansanderson/makemake/internal/config"
	"github.com/dansanderson/makemake/pkg/modcfg"

	"github.com/spf13/cobra"
)

// newModuleCreateCommand creates the `makemake module create` command.
func newModuleCreateCommand() *cobra.Command {
	var createProgram bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new module",
		Long: `Create the boilerplate files for a new module.

A library module gets a source file, a public header, a module.cfg, and a
Unity test skeleton under tests/<name>/. A program module gets a source file
with a main function and a module.cfg.

The module name must start with a letter and contain only letters, digits,
and underscores (it becomes a C identifier prefix).

Examples:
  makemake module create executor
  makemake module create myapp --program`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModuleCreate(args[0], createProgram)
		},
	}

	cmd.Flags().BoolVar(&createProgram, "program", false, "create this module as a program")

	return cmd
}

func runModuleCreate(moduleName string, program bool) error {
	if err := modcfg.ValidateName(moduleName); err != nil {
		return err
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return reportFatal(err)
	}

	fmt.Println(moduleTitleStyle.Render("Create Module"))

	created, err := modcfg.Create(modcfg.CreateOptions{
		Name:     moduleName,
		RootDir:  rootDir,
		Program:  program,
		SrcDir:   cfg.SrcDir,
		TestsDir: cfg.TestsDir,
	})
	if err != nil {
		return reportFatal(err)
	}

	fmt.Printf("%s Module created successfully\n", moduleSuccessIcon)
	fmt.Println()
	for _, path := range created {
		fmt.Printf("%s %s\n", moduleInfoIcon, PathStyle.Render(path))
	}

	fmt.Println()
	fmt.Printf("%s Next steps:\n", moduleInfoIcon)
	cfgPath := filepath.Join(rootDir, cfg.SrcDir, moduleName, modcfg.ConfigFileName)
	fmt.Printf("   1. Declare dependencies in %s if needed\n", PathStyle.Render(cfgPath))
	fmt.Printf("   2. Run %s to update the build description\n", CmdStyle.Render("makemake gen"))

	return nil
}
