// SPDX-License-Identifier: MPL-2.0

// Package config loads makemake's tool configuration.
//
// Settings layer in this order, later sources winning: built-in defaults,
// the user config file (config.toml in the platform config directory), and
// the project config file (makemake.toml at the project root). All settings
// have working defaults; no config file is required.
package config
