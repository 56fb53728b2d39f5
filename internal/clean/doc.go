// SPDX-License-Identifier: MPL-2.0

// Package clean removes build artifacts from a project: every git-ignored
// file in the top-level repository, every untracked file in submodules
// (recursively), and the empty directories left behind.
//
// Unlike the Autotools clean targets, this reduces the tree to just the
// files that are, or would be, committed to git. Returning to a buildable
// state afterwards requires re-running the full Autotools setup.
package clean
