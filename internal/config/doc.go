// Package config loads, validates, and defaults mediasort's TOML
// configuration.
//
// Configuration sections by subsystem:
//   - Paths: state and log directories
//   - Sorter: output tree structure (duplicates/no-date buckets, scan
//     exclusions)
//   - Extensions: supported media types and which of them carry EXIF
//   - Logging: log format and level
//
// Load resolves an explicit path, the user config
// (~/.config/mediasort/config.toml), or a project-local mediasort.toml,
// in that order, and falls back to defaults when no file exists. All path
// fields come back expanded and absolute.
package config
