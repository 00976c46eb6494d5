package alias

import (
	"context"

	"github.com/arthur-debert/stapler/pkg/document"
)

// Insert adds e to doc and re-sorts it. The document becomes dirty.
func (r *Registry) Insert(ctx context.Context, doc *document.Document, e Entry) error {
	if err := doc.Append(e); err != nil {
		return err
	}
	r.Sort(ctx, doc)
	return nil
}

// RemoveAt removes the aliases at indices in one step and re-sorts. An empty
// set changes nothing, the dirty flag included.
func (r *Registry) RemoveAt(ctx context.Context, doc *document.Document, indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	if err := doc.RemoveAt(indices); err != nil {
		return err
	}
	r.Sort(ctx, doc)
	return nil
}
