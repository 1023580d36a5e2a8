// Package session implements the two user actions pkgdrop offers: sending an
// install command to a device and the simulated device scan.
//
// Both actions write their results into a state.Store as plain strings. Install
// clears the error when a request is about to be sent, sets the status when it
// starts and when the device accepts it, and sets a fixed error message when
// the host is blank, the request fails, or the device answers with a
// non-success status. Nothing is retried and nothing waits for the install to
// complete on the device.
package session
