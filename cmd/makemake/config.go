// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dansanderson/makemake/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the parent command for configuration operations.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect makemake configuration",
}

// configShowCmd prints the effective configuration after all layers merge.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration for the project: built-in defaults,
overridden by the user config file, overridden by the project makemake.toml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow() error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return reportFatal(err)
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Println()
	fmt.Printf("  src_dir       = %s\n", cfg.SrcDir)
	fmt.Printf("  tests_dir     = %s\n", cfg.TestsDir)
	fmt.Printf("  output_file   = %s\n", cfg.OutputFile)
	fmt.Printf("  include_file  = %s\n", cfg.IncludeFile)
	fmt.Printf("  backup_suffix = %s\n", cfg.BackupSuffix)
	fmt.Printf("  ui.verbose    = %t\n", cfg.UI.Verbose)
	fmt.Println()

	if cfgDir, err := config.ConfigDir(); err == nil {
		userPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		fmt.Println(SubtitleStyle.Render("User config: " + userPath))
	}
	projectPath := filepath.Join(rootDir, config.ProjectConfigFileName)
	fmt.Println(SubtitleStyle.Render("Project config: " + projectPath))

	return nil
}
