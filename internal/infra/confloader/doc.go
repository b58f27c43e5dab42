// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags)
//  2. Environment variables (CONNECTUS_*)
//  3. The YAML configuration file
//  4. Defaults
//
// A Watcher reports writes to the configuration file so long-running
// sessions can pick up changes such as the log level.
package confloader
