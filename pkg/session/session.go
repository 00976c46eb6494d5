package session

import (
	"context"
	"sync"

	"github.com/arthur-debert/stapler/pkg/alias"
	"github.com/arthur-debert/stapler/pkg/document"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/arthur-debert/stapler/pkg/preview"
	"github.com/rs/zerolog"
)

const subscriberBuffer = 16

// Session serializes access to one document
type Session struct {
	mu       sync.Mutex
	doc      *document.Document
	registry *alias.Registry
	store    *document.Store
	closed   bool

	subsMu sync.Mutex
	subs   map[chan Change]struct{}
	// ended is set under subsMu once Close has closed every subscriber
	ended bool

	logger zerolog.Logger
}

// New wraps doc in a session. The session takes ownership of doc.
func New(registry *alias.Registry, store *document.Store, doc *document.Document) *Session {
	return &Session{
		doc:      doc,
		registry: registry,
		store:    store,
		subs:     make(map[chan Change]struct{}),
		logger:   logging.GetLogger("session").With().Str("document", doc.SourcePath()).Logger(),
	}
}

// Open reads the document at path and wraps it in a session
func Open(ctx context.Context, registry *alias.Registry, store *document.Store, path string) (*Session, error) {
	doc, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	registry.Sort(ctx, doc)
	return New(registry, store, doc), nil
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.doc)
}

// Registry returns the alias registry the session works with
func (s *Session) Registry() *alias.Registry {
	return s.registry
}

// Subscribe returns a channel receiving every change until the session is
// closed or cancel is called. Slow subscribers miss changes rather than
// block the session.
func (s *Session) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)

	s.subsMu.Lock()
	if s.ended {
		s.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (s *Session) publish(kind ChangeKind, snap Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	change := Change{Kind: kind, Snapshot: snap}
	for ch := range s.subs {
		select {
		case ch <- change:
		default:
			s.logger.Warn().Str("change", string(kind)).Msg("Subscriber is behind, change dropped")
		}
	}
}

// mutate runs fn under the session lock and publishes kind when fn reports
// a change.
func (s *Session) mutate(kind ChangeKind, fn func(doc *document.Document) (bool, error)) (Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, errors.New(errors.ErrInvalidInput, "session is closed")
	}
	changed, err := fn(s.doc)
	snap := snapshotOf(s.doc)
	s.mu.Unlock()

	if changed {
		s.publish(kind, snap)
	}
	return snap, err
}

// clone returns a private copy of the document for work done outside the lock
func (s *Session) clone() (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.New(errors.ErrInvalidInput, "session is closed")
	}
	return s.doc.Clone(), nil
}

// Add creates an alias for each path and inserts them. Paths that cannot be
// referenced are skipped; their errors are joined in the returned error.
func (s *Session) Add(ctx context.Context, paths []string) (Snapshot, error) {
	var created []alias.Entry
	var failures []error
	for _, p := range paths {
		e, err := s.registry.Create(p)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		created = append(created, e)
	}

	snap, err := s.mutate(ChangeAdded, func(doc *document.Document) (bool, error) {
		for _, e := range created {
			if err := s.registry.Insert(ctx, doc, e); err != nil {
				return true, err
			}
		}
		return len(created) > 0, nil
	})
	if err != nil {
		return snap, err
	}
	s.logger.Info().Int("added", len(created)).Int("failed", len(failures)).Msg("Aliases added")
	return snap, errors.Join(failures...)
}

// Remove removes the aliases at indices in one step. Indices refer to the
// current order, as seen in the latest snapshot.
func (s *Session) Remove(ctx context.Context, indices []int) (Snapshot, error) {
	return s.mutate(ChangeRemoved, func(doc *document.Document) (bool, error) {
		if err := s.registry.RemoveAt(ctx, doc, indices); err != nil {
			return false, err
		}
		return len(indices) > 0, nil
	})
}

// Launch opens the aliases at indices. References refreshed on the way are
// applied back to the document.
func (s *Session) Launch(ctx context.Context, indices []int) (alias.BatchResult, error) {
	return s.batch(ctx, indices, s.registry.Launch)
}

// Reveal shows the aliases at indices in the file browser
func (s *Session) Reveal(ctx context.Context, indices []int) (alias.BatchResult, error) {
	return s.batch(ctx, indices, s.registry.Reveal)
}

func (s *Session) batch(ctx context.Context, indices []int,
	run func(context.Context, *document.Document, []int) alias.BatchResult) (alias.BatchResult, error) {
	work, err := s.clone()
	if err != nil {
		return alias.BatchResult{}, err
	}
	result := run(ctx, work, indices)

	if len(result.Refreshed) > 0 {
		_, err = s.mutate(ChangeRefreshed, func(doc *document.Document) (bool, error) {
			applied := false
			for _, r := range result.Refreshed {
				if doc.ReplaceReference(r.ID, r.Old, r.New) {
					applied = true
				}
			}
			return applied, nil
		})
	}
	return result, err
}

// Preview returns a lazily resolved list over a snapshot of the aliases at
// indices, or of every alias.
func (s *Session) Preview(indices []int) (*preview.List, error) {
	work, err := s.clone()
	if err != nil {
		return nil, err
	}
	return preview.NewList(s.registry, work, indices), nil
}

// Save writes the document to its source path
func (s *Session) Save(ctx context.Context) (Snapshot, error) {
	return s.mutate(ChangeSaved, func(doc *document.Document) (bool, error) {
		if err := s.store.Write(doc); err != nil {
			return false, err
		}
		return true, nil
	})
}

// SaveAs writes the document to path and makes it the source path
func (s *Session) SaveAs(ctx context.Context, path string) (Snapshot, error) {
	return s.mutate(ChangeSaved, func(doc *document.Document) (bool, error) {
		if err := s.store.WriteAs(doc, path); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Reload replaces the in-memory aliases with the document on disk. Unsaved
// changes are discarded. On error the document is left as it was.
func (s *Session) Reload(ctx context.Context) (Snapshot, error) {
	return s.mutate(ChangeReloaded, func(doc *document.Document) (bool, error) {
		if err := s.store.Reload(doc); err != nil {
			return false, err
		}
		s.registry.Sort(ctx, doc)
		return true, nil
	})
}

// Close ends the session. A dirty document is only closed when force is
// set; otherwise ErrUnsavedChanges is returned and the session stays open.
func (s *Session) Close(force bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.doc.Dirty() && !force {
		s.mu.Unlock()
		return errors.New(errors.ErrUnsavedChanges, "document has unsaved changes").
			WithDetail("path", s.doc.SourcePath())
	}
	s.closed = true
	snap := snapshotOf(s.doc)
	s.mu.Unlock()

	s.publish(ChangeClosed, snap)

	s.subsMu.Lock()
	for ch := range s.subs {
		close(ch)
	}
	s.subs = make(map[chan Change]struct{})
	s.ended = true
	s.subsMu.Unlock()

	s.logger.Debug().Bool("forced", force).Msg("Session closed")
	return nil
}

// Closed reports whether Close succeeded
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
