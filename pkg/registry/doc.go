// Package registry provides a generic, thread-safe registry of named items.
// Stapler keeps its open sessions and its command handlers in registries.
package registry
