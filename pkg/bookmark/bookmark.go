package bookmark

import (
	"context"
	"sync"
	"sync/atomic"
)

// Reference is an opaque token produced by a Provider
type Reference []byte

// Clone returns an independent copy of the reference
func (r Reference) Clone() Reference {
	if r == nil {
		return nil
	}
	out := make(Reference, len(r))
	copy(out, r)
	return out
}

// Resolution is the outcome of resolving a reference
type Resolution struct {
	Path string
	// Stale is set when the reference still identifies its target but the
	// target moved; callers should replace the reference with a fresh one.
	Stale bool
}

// Provider creates and resolves references and grants scoped access to
// resolved paths.
type Provider interface {
	// Create returns a read-only reference for an existing absolute path.
	Create(path string) (Reference, error)
	// Resolve turns a reference back into a path.
	Resolve(ctx context.Context, ref Reference) (Resolution, error)
	// Access begins a scoped access session for a resolved path.
	Access(path string) (*Grant, error)
}

// Grant is a scoped access session. Release must be called exactly once;
// further calls are no-ops.
type Grant struct {
	path   string
	once   sync.Once
	ledger *Ledger
}

// Path returns the path the grant covers
func (g *Grant) Path() string {
	return g.path
}

// Release ends the access session
func (g *Grant) Release() {
	g.once.Do(func() {
		if g.ledger != nil {
			g.ledger.outstanding.Add(-1)
		}
	})
}

// Ledger counts outstanding grants
type Ledger struct {
	outstanding atomic.Int64
	issued      atomic.Int64
}

// Issue returns a new grant for path tracked by the ledger
func (l *Ledger) Issue(path string) *Grant {
	l.outstanding.Add(1)
	l.issued.Add(1)
	return &Grant{path: path, ledger: l}
}

// Outstanding returns the number of grants issued and not yet released
func (l *Ledger) Outstanding() int64 {
	return l.outstanding.Load()
}

// Issued returns the total number of grants ever issued
func (l *Ledger) Issued() int64 {
	return l.issued.Load()
}
