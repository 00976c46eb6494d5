package alias

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/stapler/pkg/bookmark"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/stretchr/testify/mock"
)

// fakeProvider encodes the target path in the reference. Targets can be
// moved, deleted or made unreadable.
type fakeProvider struct {
	mu     sync.Mutex
	moved  map[string]string
	gone   map[string]bool
	denied map[string]bool
	refuse map[string]bool
	ledger bookmark.Ledger
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		moved:  map[string]string{},
		gone:   map[string]bool{},
		denied: map[string]bool{},
		refuse: map[string]bool{},
	}
}

func (p *fakeProvider) Create(path string) (bookmark.Reference, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refuse[path] || p.gone[path] {
		return nil, errors.Newf(errors.ErrReferenceCreation, "refused %s", path)
	}
	return bookmark.Reference("ref:" + path), nil
}

func (p *fakeProvider) Resolve(ctx context.Context, ref bookmark.Reference) (bookmark.Resolution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	path, ok := strings.CutPrefix(string(ref), "ref:")
	if !ok {
		return bookmark.Resolution{}, errors.New(errors.ErrResolution, "not a reference")
	}
	if p.gone[path] {
		return bookmark.Resolution{}, errors.Newf(errors.ErrResolution, "%s is gone", path)
	}
	if to, ok := p.moved[path]; ok {
		return bookmark.Resolution{Path: to, Stale: true}, nil
	}
	return bookmark.Resolution{Path: path}, nil
}

func (p *fakeProvider) Access(path string) (*bookmark.Grant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.denied[path] {
		return nil, errors.Newf(errors.ErrAccessDenied, "no access to %s", path)
	}
	return p.ledger.Issue(path), nil
}

// MockHost records launch and reveal calls
type MockHost struct {
	mock.Mock
}

func (m *MockHost) Launch(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockHost) Reveal(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
