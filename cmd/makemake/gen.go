// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dansanderson/makemake/internal/config"
	"github.com/dansanderson/makemake/internal/issue"
	"github.com/dansanderson/makemake/internal/makefile"
	"github.com/dansanderson/makemake/pkg/modcfg"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// genCmd regenerates the build description from the module tree.
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate Makefile.am from module.cfg files",
	Long: `Generate the project Makefile.am from the module.cfg declarations
found in the source tree.

Every subdirectory of src/ containing a module.cfg is a module. The generated
output declares each module's program or library target, its sources, its
link dependencies, a CMock mock library for each library module, and a Unity
test runner for each test_*.c found under tests/<module>/.

The previous Makefile.am, if any, is kept as Makefile.am~. Validation errors
abort the run before the old output is touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGen()
	},
}

func runGen() error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return reportFatal(err)
	}
	applyUIConfig(cfg)

	log.Debug("loading module registry", "root", rootDir, "src", cfg.SrcDir)
	reg, err := modcfg.LoadRegistry(rootDir, cfg.SrcDir, cfg.TestsDir)
	if err != nil {
		return reportFatal(err)
	}
	log.Debug("registry loaded", "modules", reg.Len())

	outPath, err := makefile.Generate(rootDir, reg, makefile.Options{
		OutputFile:   cfg.OutputFile,
		IncludeFile:  cfg.IncludeFile,
		BackupSuffix: cfg.BackupSuffix,
	})
	if err != nil {
		return reportFatal(err)
	}

	fmt.Printf("%s Generated %s (%d modules)\n",
		SuccessStyle.Render("✓"), PathStyle.Render(outPath), reg.Len())
	return nil
}

// reportFatal prints the rich diagnostic in verbose mode, renders any linked
// issue catalog entry, and passes the error up for display.
func reportFatal(err error) error {
	if verbose {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, true))
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueID != 0 {
		if entry := issue.Get(ae.IssueID); entry != nil {
			if rendered, renderErr := entry.Render("dark"); renderErr == nil {
				fmt.Fprint(os.Stderr, rendered)
			} else {
				log.Debug("failed to render issue catalog entry", "issueID", ae.IssueID, "error", renderErr)
			}
		}
	}
	return err
}
