// Package filesystem provides the types.FS implementations: the host
// filesystem and an in-memory one, both through afero.
package filesystem
