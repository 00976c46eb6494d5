package document

import (
	"bytes"

	"github.com/arthur-debert/stapler/pkg/bookmark"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/google/uuid"
)

// Alias is a stored pointer to a file or folder outside the document
type Alias struct {
	ID        uuid.UUID
	Reference bookmark.Reference
}

// Clone returns a copy that shares no memory with a
func (a Alias) Clone() Alias {
	return Alias{ID: a.ID, Reference: a.Reference.Clone()}
}

// Document is an ordered set of aliases plus its file location and dirty state
type Document struct {
	entries    []Alias
	sourcePath string
	dirty      bool
}

// New returns an empty, clean, unsaved document
func New() *Document {
	return &Document{}
}

// Len returns the number of aliases
func (d *Document) Len() int {
	return len(d.entries)
}

// At returns a copy of the alias at index i
func (d *Document) At(i int) Alias {
	return d.entries[i].Clone()
}

// Entries returns a copy of the aliases in display order
func (d *Document) Entries() []Alias {
	out := make([]Alias, len(d.entries))
	for i, a := range d.entries {
		out[i] = a.Clone()
	}
	return out
}

// IndexOf returns the position of the alias with the given id, or -1
func (d *Document) IndexOf(id uuid.UUID) int {
	for i, a := range d.entries {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// SourcePath returns where the document is persisted, empty when unsaved
func (d *Document) SourcePath() string {
	return d.sourcePath
}

// SetSourcePath records where the document is persisted
func (d *Document) SetSourcePath(path string) {
	d.sourcePath = path
}

// Dirty reports whether the document has unsaved changes
func (d *Document) Dirty() bool {
	return d.dirty
}

// MarkDirty flags the document as changed
func (d *Document) MarkDirty() {
	d.dirty = true
}

// MarkClean clears the dirty flag, after a successful write
func (d *Document) MarkClean() {
	d.dirty = false
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	return &Document{
		entries:    d.Entries(),
		sourcePath: d.sourcePath,
		dirty:      d.dirty,
	}
}

// Append adds an alias at the end and marks the document dirty. Ids must be
// unique within a document.
func (d *Document) Append(a Alias) error {
	if a.ID == uuid.Nil {
		return errors.New(errors.ErrInvalidInput, "alias has no id")
	}
	if d.IndexOf(a.ID) >= 0 {
		return errors.Newf(errors.ErrAlreadyExists, "alias %s already in document", a.ID)
	}
	d.entries = append(d.entries, a.Clone())
	d.dirty = true
	return nil
}

// RemoveAt removes every alias at the given positions in one step. An empty
// set leaves the document untouched, dirty flag included. Out of range
// positions fail before anything is removed.
func (d *Document) RemoveAt(indices []int) error {
	if len(indices) == 0 {
		return nil
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(d.entries) {
			return errors.Newf(errors.ErrInvalidInput, "index %d out of range [0,%d)", i, len(d.entries))
		}
		drop[i] = true
	}

	kept := make([]Alias, 0, len(d.entries)-len(drop))
	for i, a := range d.entries {
		if !drop[i] {
			kept = append(kept, a)
		}
	}
	d.entries = kept
	d.dirty = true
	return nil
}

// Reorder applies a permutation computed elsewhere: order[k] is the current
// index of the alias that moves to position k.
func (d *Document) Reorder(order []int) error {
	if len(order) != len(d.entries) {
		return errors.Newf(errors.ErrInvalidInput, "permutation of %d for %d entries", len(order), len(d.entries))
	}
	seen := make([]bool, len(order))
	next := make([]Alias, len(order))
	for k, i := range order {
		if i < 0 || i >= len(order) || seen[i] {
			return errors.New(errors.ErrInvalidInput, "invalid permutation")
		}
		seen[i] = true
		next[k] = d.entries[i]
	}
	d.entries = next
	return nil
}

// ReplaceReference swaps the reference of alias id for fresh, but only if
// the alias still holds old. The reference is replaced wholesale and the
// document becomes dirty so the refreshed reference gets persisted.
func (d *Document) ReplaceReference(id uuid.UUID, old, fresh bookmark.Reference) bool {
	i := d.IndexOf(id)
	if i < 0 || !bytes.Equal(d.entries[i].Reference, old) {
		return false
	}
	d.entries[i] = Alias{ID: id, Reference: fresh.Clone()}
	d.dirty = true
	return true
}

// Equal compares the (id, reference) sets of two documents, ignoring order
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.entries) != len(other.entries) {
		return false
	}
	refs := make(map[uuid.UUID]bookmark.Reference, len(d.entries))
	for _, a := range d.entries {
		refs[a.ID] = a.Reference
	}
	for _, a := range other.entries {
		ref, ok := refs[a.ID]
		if !ok || !bytes.Equal(ref, a.Reference) {
			return false
		}
	}
	return true
}
