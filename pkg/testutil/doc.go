// Package testutil provides test fixtures for stapler commands.
//
// Environment isolates a test from the user's configuration, state and
// desktop: XDG and stapler directories point into a temp dir and the
// opener commands are replaced with a no-op, so launch and reveal can run
// for real.
package testutil
