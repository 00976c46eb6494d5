// Package bookmark provides secure references: opaque, persistable tokens
// that resolve back to a live path even after the target was renamed or
// moved, plus the scoped access grants handed out for resolved paths.
//
// The Provider interface is the whole contract the rest of stapler relies
// on. References are never inspected outside this package and are not
// portable between hosts.
//
// FileProvider records the target's path together with its file identity
// (device and inode). When the recorded path no longer holds the same file,
// the provider searches the original directory, a few of its ancestors and
// the configured roots for that identity and reports the hit as stale so the
// caller can refresh the stored reference.
//
// Every Grant returned by Access must be released exactly once; the
// provider keeps a count of outstanding grants so leaks show up in tests.
package bookmark
