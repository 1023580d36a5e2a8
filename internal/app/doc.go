// Package app is the composition root for pkgdrop.
//
// # Overview
//
// Prepare wires configuration, logging, the package catalog, the installer
// client and the install session. Run adds preferences and the TUI on top and
// blocks until the user quits or the context is cancelled. The CLI
// subcommands call Prepare directly with Console set so their logs go to
// stderr.
//
// # Startup
//
//  1. Load ~/.config/pkgdrop/config.toml (missing file means defaults)
//  2. Apply flag overrides for host and catalog path
//  3. Build the zap logger (JSON file for the TUI, console for subcommands)
//  4. Load the catalog file if one is configured, else the built-in list
//  5. Build the resty installer client and the session around a state.Store
//  6. Start the TUI
//
// # Error Handling
//
// Fatal errors only happen here, before the UI starts: an invalid config,
// an unreadable or invalid catalog, or a log file that cannot be created.
// They are returned wrapped to main. Install and scan failures never reach
// this package; the session turns them into status and error strings.
//
// Preferences never fail startup. A missing or broken prefs file means the
// default theme.
package app
