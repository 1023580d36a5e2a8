// Package config loads pkgdrop's TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pkgdrop/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	host = "192.168.1.50"          # target device, empty means "ask in the UI"
//	port = 12801                   # remote installer port
//	scan_host = "192.168.1.50"     # address the simulated scan reports
//	scan_delay = "1.5s"
//	request_timeout = "0s"         # zero disables the timeout
//	catalog = "~/pkgdrop/catalog.yaml"
//	log_file = "~/.local/state/pkgdrop/pkgdrop.log"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is applied to catalog and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, invalid
// TOML, out of range ports and unparsable or negative durations. A missing
// file is not an error.
package config
