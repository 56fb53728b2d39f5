// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dansanderson/makemake/internal/config"
	"github.com/dansanderson/makemake/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// rootDir is the project root directory for all subcommands
	rootDir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "makemake",
		Short: "Build-description tooling for C Autotools projects",
		Long: TitleStyle.Render("makemake") + SubtitleStyle.Render(" - Build-description tooling for C Autotools projects") + `

makemake maintains an Autotools project whose C modules are described by
per-directory module.cfg files. It generates the project Makefile.am
(including CMock mock libraries and Unity test runners), scaffolds new
modules, and cleans build artifacts down to the committed tree.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a module: makemake module create mylib
  2. Regenerate the build description: makemake gen
  3. Build as usual with autoreconf / configure / make

` + SubtitleStyle.Render("Examples:") + `
  makemake gen                      Regenerate Makefile.am
  makemake module create mylib      Scaffold a new library module
  makemake module create app --program
  makemake clean --dry-run          Show what clean would delete
  makemake config show              Show effective configuration`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root-dir", ".", "the project root directory")

	// Add subcommands
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(moduleCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
}

// initLogging raises the log level when --verbose is set.
func initLogging() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// applyUIConfig applies config-file UI settings not overridden by flags.
func applyUIConfig(cfg *config.Config) {
	if cfg.UI.Verbose && !verbose {
		verbose = true
		log.SetLevel(log.DebugLevel)
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
