// Package session owns open documents. A Session is the single owner of one
// document: every mutation goes through its lock, while slow work such as
// resolving, launching or writing runs on a snapshot and is applied back
// through the same locked path.
//
// Observers call Subscribe to receive a Change after each mutation.
package session
