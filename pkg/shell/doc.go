// Package shell hands resolved paths to the host: opening them with their
// default application and showing them in the file browser.
//
// The platform opener is used unless the configuration names a command. A
// configured command is split on whitespace; a literal {path} argument is
// replaced by the target, otherwise the target is appended.
package shell
