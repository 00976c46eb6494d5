// Package document holds the stapler document model and its persistence.
//
// A Document is an ordered list of aliases, each an immutable id plus an
// opaque bookmark reference. Order is presentation only; two documents are
// equal when they hold the same (id, reference) pairs.
//
// Load and Save convert between a Document and its on-disk JSON form:
//
//	{"aliases":[{"id":"E621E1F8-C36C-495A-93FC-0C247A3E6E5F","bookmarkData":"<base64>"}]}
//
// Store reads and writes documents through a types.FS, writing atomically so
// a failed save never clobbers the previous bytes.
//
// Document is not safe for concurrent use; the session package serializes
// every mutation of an open document.
package document
