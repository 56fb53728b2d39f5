// SPDX-License-Identifier: MPL-2.0

package makefile

import (
	"os"
	"path/filepath"

	"github.com/dansanderson/makemake/internal/issue"
	"github.com/dansanderson/makemake/pkg/modcfg"
)

// Options configures a generation run.
type Options struct {
	// OutputFile is the generated file name relative to the project root
	// (default "Makefile.am").
	OutputFile string

	// IncludeFile is the optional project include file name relative to the
	// project root; if it exists its contents are appended verbatim
	// (default "project.mk").
	IncludeFile string

	// BackupSuffix is appended to the previous output file's name before the
	// new one is written (default "~").
	BackupSuffix string
}

func (o Options) withDefaults() Options {
	if o.OutputFile == "" {
		o.OutputFile = "Makefile.am"
	}
	if o.IncludeFile == "" {
		o.IncludeFile = "project.mk"
	}
	if o.BackupSuffix == "" {
		o.BackupSuffix = "~"
	}
	return o
}

// Generate renders the registry and writes the output file under rootDir,
// preserving any previous output as a backup. The document is rendered in
// full before the filesystem is touched, so a failing run never disturbs the
// previous output. Returns the path of the written file.
func Generate(rootDir string, reg *modcfg.Registry, opts Options) (string, error) {
	opts = opts.withDefaults()

	includeContents, err := readIncludeFile(filepath.Join(rootDir, opts.IncludeFile))
	if err != nil {
		return "", err
	}

	text := Render(reg, includeContents)

	outPath := filepath.Join(rootDir, opts.OutputFile)
	if _, err := os.Stat(outPath); err == nil {
		backupPath := outPath + opts.BackupSuffix
		if _, err := os.Stat(backupPath); err == nil {
			if err := os.Remove(backupPath); err != nil {
				return "", issue.WrapWithContext(err, "remove stale backup", backupPath)
			}
		}
		if err := os.Rename(outPath, backupPath); err != nil {
			return "", issue.WrapWithContext(err, "back up previous output", outPath)
		}
	}

	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return "", issue.WrapWithContext(err, "write generated output", outPath)
	}
	return outPath, nil
}

// readIncludeFile returns the include file's contents, or empty when the
// file does not exist.
func readIncludeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", issue.WrapWithContext(err, "read project include file", path)
	}
	return string(data), nil
}
