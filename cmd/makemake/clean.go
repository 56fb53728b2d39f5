// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/dansanderson/makemake/internal/clean"
	"github.com/dansanderson/makemake/internal/issue"

	"github.com/spf13/cobra"
)

var cleanDryRun bool

// cleanCmd deletes build artifacts down to the committed tree.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete all build artifacts from the project",
	Long: `Delete all files ignored by git from the main project, then all
untracked files in submodules, recursively, then the empty directories left
behind. Do not use this if you intend to make changes to submodules!

Unlike the Autotools clean targets (clean, distclean, maintainer-clean), this
reduces the source tree to just the files that are, or would be, committed to
git. Returning to a buildable state requires the full Autotools setup:

  autoreconf --install
  ./configure
  make distcheck

Use --dry-run to see what would be deleted without deleting anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean()
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false,
		"do not delete anything, only report what would be deleted")
}

func runClean() error {
	if rootDir == "." {
		if _, err := os.Stat(filepath.Join(rootDir, ".git")); err != nil {
			return errors.New("please run this from the project root directory, or specify --root-dir")
		}
	}

	if !clean.GitAvailable() {
		return reportFatal(issue.NewErrorContext().
			WithOperation("clean project").
			WithSuggestion("Install git and make sure it is on the command path").
			WithIssue(issue.GitNotFoundId).
			Wrap(errors.New("cannot find git")).
			BuildError())
	}

	plan, err := clean.BuildPlan(rootDir)
	if err != nil {
		err = reportFatal(err)
		// A failing git run surfaces its own exit code.
		var gitErr *exec.ExitError
		if errors.As(err, &gitErr) && gitErr.ExitCode() > 0 {
			return &ExitError{Code: gitErr.ExitCode(), Err: err}
		}
		return err
	}

	if cleanDryRun {
		fmt.Println(WarningStyle.Render("Dry run:") +
			" the following would be deleted without --dry-run:")
		fmt.Println()
	}

	if cleanDryRun || verbose {
		for _, fpath := range plan.Files {
			fmt.Println(fpath)
		}
		for _, dpath := range plan.Dirs {
			fmt.Println(dpath)
		}
		fmt.Println()
	}

	if err := clean.Execute(plan, clean.Options{RootDir: rootDir, DryRun: cleanDryRun}); err != nil {
		return reportFatal(err)
	}

	verb := "deleted"
	if cleanDryRun {
		verb = "to delete"
	}
	fmt.Printf("%s Files %s: %d, directories %s: %d\n",
		moduleSuccessIcon, verb, len(plan.Files), verb, len(plan.Dirs))
	return nil
}
