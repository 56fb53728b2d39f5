// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Module command styles and icons.
var (
	moduleTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				MarginBottom(1)

	moduleSuccessIcon = SuccessStyle.Render("✓")
	moduleInfoIcon    = SubtitleStyle.Render("•")
)

// moduleCmd is the parent command for module operations.
var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Manage C modules",
	Long: `Manage the C modules of the project.

A module is a subdirectory of src/ containing a module.cfg declaration file.
Use 'module create' to scaffold a new one; run 'makemake gen' afterwards to
pick it up in the build description.`,
}

func init() {
	moduleCmd.AddCommand(newModuleCreateCommand())
}
