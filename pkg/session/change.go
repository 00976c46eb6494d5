package session

import (
	"github.com/arthur-debert/stapler/pkg/document"
)

// ChangeKind tells what happened to a document
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeRemoved   ChangeKind = "removed"
	ChangeRefreshed ChangeKind = "refreshed"
	ChangeReloaded  ChangeKind = "reloaded"
	ChangeSaved     ChangeKind = "saved"
	ChangeClosed    ChangeKind = "closed"
)

// Snapshot is a copy of a document's state at a point in time
type Snapshot struct {
	Entries    []document.Alias
	SourcePath string
	Dirty      bool
}

// Len returns the number of aliases in the snapshot
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Change is published after each mutation
type Change struct {
	Kind     ChangeKind
	Snapshot Snapshot
}

func snapshotOf(doc *document.Document) Snapshot {
	return Snapshot{
		Entries:    doc.Entries(),
		SourcePath: doc.SourcePath(),
		Dirty:      doc.Dirty(),
	}
}
