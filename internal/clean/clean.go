// SPDX-License-Identifier: MPL-2.0

package clean

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dansanderson/makemake/internal/issue"

	"github.com/charmbracelet/log"
)

// Options configures a clean run.
type Options struct {
	// RootDir is the project root (required, must be a git repository).
	RootDir string

	// DryRun reports what would be deleted without deleting anything.
	DryRun bool
}

// Plan is the computed set of deletions for one run.
type Plan struct {
	// Files are the absolute paths of files to delete.
	Files []string

	// Dirs are the absolute paths of empty directories to delete,
	// in reverse-sorted order so nested directories go first.
	Dirs []string
}

var submodulePathRe = regexp.MustCompile(`^\s*path = (.*)`)

// GitAvailable reports whether a git binary is on the command path.
func GitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// BuildPlan computes the deletion plan for rootDir: git-ignored files from
// the top-level repository, all untracked files from submodules, and the
// directories that would be empty afterwards.
func BuildPlan(rootDir string) (*Plan, error) {
	files, err := untrackedFiles(rootDir, true)
	if err != nil {
		return nil, err
	}
	dirs, err := emptyDirectories(rootDir, files)
	if err != nil {
		return nil, err
	}
	return &Plan{Files: files, Dirs: dirs}, nil
}

// Execute deletes everything in the plan. With DryRun set it only logs.
func Execute(plan *Plan, opts Options) error {
	for _, fpath := range plan.Files {
		log.Debug("removing file", "path", fpath)
		if opts.DryRun {
			continue
		}
		if err := os.Remove(fpath); err != nil {
			return issue.WrapWithContext(err, "remove file", fpath)
		}
	}
	for _, dpath := range plan.Dirs {
		log.Debug("removing directory", "path", dpath)
		if opts.DryRun {
			continue
		}
		if err := os.Remove(dpath); err != nil {
			return issue.WrapWithContext(err, "remove directory", dpath)
		}
	}
	return nil
}

// untrackedFiles asks git for the files to delete under rootDir, recursing
// into submodules listed in .gitmodules. The top-level repository reports
// only ignored files when onlyIgnored is set; submodules always report all
// untracked files, on the assumption that the project does not intend to
// create files inside them.
//
// git does not support --recurse-submodules together with --others, so the
// submodule recursion is done here.
func untrackedFiles(rootDir string, onlyIgnored bool) ([]string, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, issue.WrapWithContext(err, "resolve project root", rootDir)
	}

	args := []string{"ls-files", "--others", "--exclude-standard"}
	if onlyIgnored {
		args = []string{"ls-files", "--ignored", "--others", "--exclude-standard"}
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = absRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("list untracked files").
			WithResource(absRoot).
			WithSuggestion("Run from the project root directory, or pass --root-dir").
			WithSuggestion("Check that the directory is a git repository").
			Wrap(fmt.Errorf("git ls-files: %w", err)).
			BuildError()
	}

	var files []string
	for _, p := range submodulePaths(absRoot) {
		sub, err := untrackedFiles(filepath.Join(absRoot, p), false)
		if err != nil {
			return nil, err
		}
		files = append(files, sub...)
	}

	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(absRoot, filepath.FromSlash(line)))
	}

	return files, nil
}

// submodulePaths parses submodule paths out of .gitmodules, if present.
func submodulePaths(rootDir string) []string {
	fh, err := os.Open(filepath.Join(rootDir, ".gitmodules"))
	if err != nil {
		return nil
	}
	defer fh.Close()

	var paths []string
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		if m := submodulePathRe.FindStringSubmatch(scanner.Text()); m != nil {
			paths = append(paths, strings.TrimSpace(m[1]))
		}
	}
	return paths
}

// emptyDirectories locates every subdirectory of rootDir that contains zero
// files, treating the paths in assumeDeleted as already gone. File counts
// propagate to all ancestor directories, so a directory whose subtree holds
// only soon-to-be-deleted files is reported too. Results come back in
// reverse-sorted order, which is the order to delete nested directories.
// .git trees are never touched.
func emptyDirectories(rootDir string, assumeDeleted []string) ([]string, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, issue.WrapWithContext(err, "resolve project root", rootDir)
	}

	counts := make(map[string]int)
	err = filepath.WalkDir(absRoot, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if rel, _ := filepath.Rel(absRoot, p); rel != "." {
				counts[rel] += 0
			}
			return nil
		}
		rel, err := filepath.Rel(absRoot, filepath.Dir(p))
		if err != nil || rel == "." {
			return err
		}
		addToAncestors(counts, rel, 1)
		return nil
	})
	if err != nil {
		return nil, issue.WrapWithContext(err, "walk project tree", absRoot)
	}

	for _, p := range assumeDeleted {
		rel, err := filepath.Rel(absRoot, filepath.Dir(p))
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		addToAncestors(counts, rel, -1)
	}

	var empty []string
	for rel, n := range counts {
		if n == 0 {
			empty = append(empty, rel)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(empty)))

	full := make([]string, 0, len(empty))
	for _, rel := range empty {
		full = append(full, filepath.Join(absRoot, rel))
	}
	return full, nil
}

// addToAncestors adds delta to rel and every ancestor directory of rel.
func addToAncestors(counts map[string]int, rel string, delta int) {
	for dir := rel; dir != "." && dir != ""; dir = filepath.Dir(dir) {
		counts[dir] += delta
	}
}
