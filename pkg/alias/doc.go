// Package alias implements the operations on the aliases of a document:
// creating them from paths, resolving them back (refreshing stale
// references on the way), keeping the document sorted by display name and
// running batch actions such as launch and reveal.
//
// A Registry holds no document state of its own. Every operation takes the
// *document.Document it works on; callers serialize access to a document
// (see package session).
//
// Resolution follows one protocol everywhere:
//
//  1. a clean resolution opens a scoped access grant, which the caller
//     releases once done with the path
//  2. a stale resolution makes a fresh reference for the new location,
//     replaces the old one wholesale (same id) and resolves again, once
//  3. anything else is a resolution failure; the alias shows as "Unknown"
//     and stays in the document
package alias
