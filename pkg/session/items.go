package session

import (
	"context"

	"github.com/arthur-debert/stapler/pkg/alias"
)

// Item is an alias as presented to a user
type Item struct {
	Index int
	ID    string
	Name  string
	// Path is empty when the alias does not resolve
	Path string
	Err  error
}

// Resolved reports whether the alias resolved
func (i Item) Resolved() bool {
	return i.Err == nil
}

// Items resolves the aliases of a snapshot for display. Resolution happens
// outside the session lock and is read-only: a moved item shows at its new
// path, but its refreshed reference is not kept. Launch and Reveal are what
// write refreshed references back to the document.
func (s *Session) Items(ctx context.Context) []Item {
	snap := s.Snapshot()
	items := make([]Item, len(snap.Entries))
	for i, e := range snap.Entries {
		item := Item{Index: i, ID: e.ID.String(), Name: alias.UnknownName}
		path, err := s.registry.ResolvedPath(ctx, e)
		if err != nil {
			item.Err = err
		} else {
			item.Path = path
			item.Name = s.registry.DisplayName(ctx, e)
		}
		items[i] = item
	}
	return items
}
