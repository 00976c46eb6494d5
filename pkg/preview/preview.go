// Package preview serves resolved paths to a preview surface one item at a
// time. Nothing is resolved until an item is asked for.
package preview

import (
	"context"

	"github.com/arthur-debert/stapler/pkg/alias"
	"github.com/arthur-debert/stapler/pkg/document"
	"github.com/arthur-debert/stapler/pkg/errors"
)

// List previews a fixed selection of a document
type List struct {
	registry *alias.Registry
	doc      *document.Document
	indices  []int
}

// NewList previews the aliases of doc at indices; with no indices, every
// alias. doc should be a snapshot the caller does not mutate meanwhile.
func NewList(registry *alias.Registry, doc *document.Document, indices []int) *List {
	if len(indices) == 0 {
		indices = alias.All(doc)
	}
	return &List{registry: registry, doc: doc, indices: indices}
}

// Len returns the number of preview items
func (l *List) Len() int {
	return len(l.indices)
}

// Path resolves item i. Access is released once the path is handed out.
func (l *List) Path(ctx context.Context, i int) (string, error) {
	if i < 0 || i >= len(l.indices) {
		return "", errors.Newf(errors.ErrInvalidInput, "preview item %d out of range [0,%d)", i, len(l.indices))
	}
	grant, err := l.registry.ResolveAt(ctx, l.doc, l.indices[i])
	if err != nil {
		return "", err
	}
	defer grant.Release()
	return grant.Path(), nil
}

// Paths resolves every item, skipping those that fail
func (l *List) Paths(ctx context.Context) []string {
	var paths []string
	for i := range l.indices {
		if p, err := l.Path(ctx, i); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}
