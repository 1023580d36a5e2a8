// Package ui provides the Bubble Tea TUI for pkgdrop.
//
// # Package Structure
//
//   - app.go: Model, Update/View, messages and the commands that run installs and scans
//   - input.go: key routing, focus changes between the list and the two inputs
//   - packages.go: filtered package list, selection and the detail pane
//   - header.go: header, command bar, input boxes, status and error lines
//   - activity.go: recent install attempts
//   - help.go: help overlay built from the key map
//   - theme.go, style_helpers.go, layout.go: colors and layout constants
//
// # Data Flow
//
// The model never talks to the network. Installs and scans run as tea.Cmds
// that call into session.Session, which writes to a state.Store. The model
// reads store snapshots on a refresh tick and whenever a command finishes, so
// several installs can be in flight and the status line shows whichever
// finished last.
//
// # Keys
//
// In the package list: j/k and g/G move, enter or i installs, s scans, /
// focuses search, H focuses the device address, T cycles the theme, h or ?
// shows help, e quits. In an input, enter or esc returns to the list and tab
// cycles fields. esc in the list clears the search. ctrl+c always quits.
package ui
