// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dansanderson/makemake/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the user config directory.
	AppName = "makemake"

	// ConfigFileName is the user config file name (without extension).
	ConfigFileName = "config"

	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"

	// ProjectConfigFileName is the per-project config file at the project root.
	ProjectConfigFileName = "makemake.toml"
)

// Config holds all tool settings.
type Config struct {
	// SrcDir is the source tree path relative to the project root.
	SrcDir string `mapstructure:"src_dir"`

	// TestsDir is the test tree path relative to the project root.
	TestsDir string `mapstructure:"tests_dir"`

	// OutputFile is the generated build-description file name.
	OutputFile string `mapstructure:"output_file"`

	// IncludeFile is the optional project include file appended to output.
	IncludeFile string `mapstructure:"include_file"`

	// BackupSuffix is appended to the previous output file before writing.
	BackupSuffix string `mapstructure:"backup_suffix"`

	// UI groups presentation settings.
	UI UIConfig `mapstructure:"ui"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Verbose enables verbose output without passing --verbose.
	Verbose bool `mapstructure:"verbose"`
}

// configDirOverride lets tests redirect the user config directory.
var configDirOverride string

// SetConfigDirOverride overrides the user config directory (for tests).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// DefaultConfig returns the built-in defaults: the directory layout of the
// C Autotools template this tool grew up in.
func DefaultConfig() *Config {
	return &Config{
		SrcDir:       "src",
		TestsDir:     "tests",
		OutputFile:   "Makefile.am",
		IncludeFile:  "project.mk",
		BackupSuffix: "~",
	}
}

// ConfigDir returns the makemake user configuration directory using
// platform conventions: %APPDATA% on Windows, ~/Library/Application Support
// on macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load builds the effective configuration for a project rooted at rootDir.
func Load(rootDir string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("src_dir", defaults.SrcDir)
	v.SetDefault("tests_dir", defaults.TestsDir)
	v.SetDefault("output_file", defaults.OutputFile)
	v.SetDefault("include_file", defaults.IncludeFile)
	v.SetDefault("backup_suffix", defaults.BackupSuffix)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	// User config file, if present.
	cfgDir, err := ConfigDir()
	if err == nil {
		userPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(userPath) {
			v.SetConfigFile(userPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(userPath).
					WithSuggestion("Check the file for TOML syntax errors").
					WithSuggestion("Remove the file to use defaults").
					Wrap(err).
					BuildError()
			}
		}
	}

	// Project config file wins over the user config.
	projectPath := filepath.Join(rootDir, ProjectConfigFileName)
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(projectPath).
				WithSuggestion("Check the file for TOML syntax errors").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, issue.WrapWithContext(err, "decode configuration", projectPath)
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
