package session

import (
	"context"

	"github.com/arthur-debert/stapler/pkg/alias"
	"github.com/arthur-debert/stapler/pkg/document"
	"github.com/arthur-debert/stapler/pkg/paths"
	"github.com/arthur-debert/stapler/pkg/registry"
)

// Manager keeps at most one session per document path
type Manager struct {
	registry *alias.Registry
	store    *document.Store
	sessions registry.Registry[*Session]
}

// NewManager creates a Manager
func NewManager(aliases *alias.Registry, store *document.Store) *Manager {
	return &Manager{
		registry: aliases,
		store:    store,
		sessions: registry.New[*Session]("session"),
	}
}

// Open returns the session of the document at path, opening it when needed
func (m *Manager) Open(ctx context.Context, path string) (*Session, error) {
	path, err := paths.Normalize(path)
	if err != nil {
		return nil, err
	}
	return m.sessions.GetOrCreate(path, func() (*Session, error) {
		return Open(ctx, m.registry, m.store, path)
	})
}

// Create starts a session on a new, empty document that will be saved at path
func (m *Manager) Create(path string) (*Session, error) {
	path, err := paths.Normalize(path)
	if err != nil {
		return nil, err
	}
	doc := document.New()
	doc.SetSourcePath(path)
	s := New(m.registry, m.store, doc)
	if err := m.sessions.Register(path, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the open session for path
func (m *Manager) Get(path string) (*Session, error) {
	path, err := paths.Normalize(path)
	if err != nil {
		return nil, err
	}
	return m.sessions.Get(path)
}

// Close closes the session for path and forgets it. See Session.Close.
func (m *Manager) Close(path string, force bool) error {
	s, err := m.Get(path)
	if err != nil {
		return err
	}
	if err := s.Close(force); err != nil {
		return err
	}
	normalized, _ := paths.Normalize(path)
	return m.sessions.Remove(normalized)
}

// Paths lists the documents with an open session
func (m *Manager) Paths() []string {
	return m.sessions.List()
}
