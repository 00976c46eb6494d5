package document

import (
	"encoding/json"
	"strings"

	"github.com/arthur-debert/stapler/pkg/bookmark"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/google/uuid"
)

type wireAlias struct {
	ID           *string `json:"id"`
	BookmarkData *[]byte `json:"bookmarkData"`
}

type savedAlias struct {
	ID           string `json:"id"`
	BookmarkData []byte `json:"bookmarkData"`
}

type savedDocument struct {
	Aliases []savedAlias `json:"aliases"`
}

// Load decodes a persisted document. Nothing is resolved: aliases are
// checked for shape only.
func Load(data []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.Wrap(err, errors.ErrCorruptDocument, "document is not a JSON object")
	}

	raw, ok := top["aliases"]
	if !ok {
		return nil, errors.New(errors.ErrCorruptDocument, "document has no aliases")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, errors.New(errors.ErrCorruptDocument, "aliases is not an array")
	}

	doc := New()
	for i, item := range items {
		var w wireAlias
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, errors.Wrapf(err, errors.ErrCorruptDocument, "alias %d is malformed", i).
				WithDetail("index", i)
		}
		if w.ID == nil || w.BookmarkData == nil {
			return nil, errors.Newf(errors.ErrCorruptDocument, "alias %d is missing id or bookmarkData", i).
				WithDetail("index", i)
		}
		id, err := uuid.Parse(*w.ID)
		if err != nil || id == uuid.Nil {
			return nil, errors.Newf(errors.ErrCorruptDocument, "alias %d has an invalid id %q", i, *w.ID).
				WithDetail("index", i)
		}
		if len(*w.BookmarkData) == 0 {
			return nil, errors.Newf(errors.ErrCorruptDocument, "alias %d has empty bookmarkData", i).
				WithDetail("index", i)
		}
		if doc.IndexOf(id) >= 0 {
			return nil, errors.Newf(errors.ErrCorruptDocument, "alias id %s appears twice", id).
				WithDetail("index", i)
		}
		doc.entries = append(doc.entries, Alias{ID: id, Reference: bookmark.Reference(*w.BookmarkData)})
	}

	return doc, nil
}

// Save encodes only the id and reference of each alias, in display order.
// The output is deterministic for a given document.
func Save(doc *Document) ([]byte, error) {
	out := savedDocument{Aliases: make([]savedAlias, 0, len(doc.entries))}
	for _, a := range doc.entries {
		out.Aliases = append(out.Aliases, savedAlias{
			// upper case matches documents written by the desktop app
			ID:           strings.ToUpper(a.ID.String()),
			BookmarkData: a.Reference,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEncoding, "failed to encode document")
	}
	return data, nil
}

// Reconcile replaces the in-memory aliases of current with those of incoming
// and clears the dirty flag. The on-disk version always wins; local unsaved
// changes are discarded.
func Reconcile(current, incoming *Document) *Document {
	current.entries = incoming.Entries()
	current.dirty = false
	if current.sourcePath == "" {
		current.sourcePath = incoming.sourcePath
	}
	return current
}
