// Package types defines the small interfaces shared across stapler's
// packages, chiefly the filesystem abstraction used by the document store.
package types
