//go:build unix

package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/stapler/pkg/alias"
	"github.com/arthur-debert/stapler/pkg/bookmark"
	"github.com/arthur-debert/stapler/pkg/document"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/filesystem"
	"github.com/arthur-debert/stapler/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type MockHost struct {
	mock.Mock
}

func (m *MockHost) Launch(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockHost) Reveal(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type fixture struct {
	dir      string
	fs       types.FS
	host     *MockHost
	provider *bookmark.FileProvider
	registry *alias.Registry
	store    *document.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		dir:      t.TempDir(),
		fs:       filesystem.NewMemory(),
		host:     &MockHost{},
		provider: bookmark.NewFileProvider(bookmark.Options{Depth: 2, Ancestors: 1}),
	}
	f.registry = alias.NewRegistry(f.provider, f.host, language.English)
	f.store = document.NewStore(f.fs)
	return f
}

func (f *fixture) file(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	return path
}

func (f *fixture) session(t *testing.T, names ...string) *Session {
	t.Helper()
	doc := document.New()
	doc.SetSourcePath("/docs/test.stapled")
	s := New(f.registry, f.store, doc)
	var targets []string
	for _, n := range names {
		targets = append(targets, f.file(t, n))
	}
	if len(targets) > 0 {
		_, err := s.Add(context.Background(), targets)
		require.NoError(t, err)
	}
	return s
}

func names(t *testing.T, s *Session) []string {
	t.Helper()
	var out []string
	for _, e := range s.Snapshot().Entries {
		out = append(out, s.Registry().DisplayName(context.Background(), e))
	}
	return out
}

func TestAdd_SortsAndDirties(t *testing.T) {
	f := newFixture(t)
	s := f.session(t)

	snap, err := s.Add(context.Background(), []string{f.file(t, "b.txt"), f.file(t, "A.txt")})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())
	assert.True(t, snap.Dirty)
	assert.Equal(t, []string{"A.txt", "b.txt"}, names(t, s))
}

func TestAdd_PartialFailure(t *testing.T) {
	f := newFixture(t)
	s := f.session(t)

	snap, err := s.Add(context.Background(), []string{f.file(t, "ok.txt"), filepath.Join(f.dir, "missing")})
	assert.True(t, errors.IsErrorCode(err, errors.ErrReferenceCreation))
	assert.Equal(t, 1, snap.Len())
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a", "b", "c")

	snap, err := s.Remove(context.Background(), []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, []string{"b"}, names(t, s))

	_, err = s.Remove(context.Background(), []int{9})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSaveAndReload(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a", "b")

	snap, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Dirty)

	// another writer replaces the file
	other := document.New()
	e, err := f.registry.Create(f.file(t, "z"))
	require.NoError(t, err)
	require.NoError(t, other.Append(e))
	require.NoError(t, f.store.WriteAs(other, "/docs/test.stapled"))

	_, err = s.Add(context.Background(), []string{f.file(t, "local")})
	require.NoError(t, err)

	snap, err = s.Reload(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Dirty)
	assert.Equal(t, []string{"z"}, names(t, s))
}

func TestReload_CorruptLeavesDocument(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a")
	_, err := s.Save(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.fs.WriteFile("/docs/test.stapled", []byte("{}"), 0644))
	_, err = s.Reload(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCorruptDocument))
	assert.Equal(t, []string{"a"}, names(t, s))
}

func TestLaunch_AppliesRefreshedReferences(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "old.txt")
	_, err := s.Save(context.Background())
	require.NoError(t, err)
	before := s.Snapshot().Entries[0]

	moved := filepath.Join(f.dir, "new.txt")
	require.NoError(t, os.Rename(filepath.Join(f.dir, "old.txt"), moved))
	f.host.On("Launch", mock.Anything, moved).Return(nil)

	changes, cancel := s.Subscribe()
	defer cancel()

	result, err := s.Launch(context.Background(), []int{0})
	require.NoError(t, err)
	require.NoError(t, result.Err())
	require.Len(t, result.Refreshed, 1)

	after := s.Snapshot()
	assert.Equal(t, before.ID, after.Entries[0].ID)
	assert.NotEqual(t, before.Reference, after.Entries[0].Reference)
	assert.True(t, after.Dirty)

	change := <-changes
	assert.Equal(t, ChangeRefreshed, change.Kind)
	assert.Zero(t, f.provider.Ledger().Outstanding())
	f.host.AssertExpectations(t)
}

func TestReveal(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a")
	target := filepath.Join(f.dir, "a")
	f.host.On("Reveal", mock.Anything, target).Return(nil)

	result, err := s.Reveal(context.Background(), []int{0})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, result.Succeeded)
}

func TestPreview(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a", "b")

	list, err := s.Preview(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Len())

	path, err := list.Path(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "a"), path)
}

func TestClose_UnsavedChanges(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a")

	err := s.Close(false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsavedChanges))
	assert.False(t, s.Closed())

	_, err = s.Save(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Close(false))
	assert.True(t, s.Closed())

	_, err = s.Add(context.Background(), []string{f.file(t, "b")})
	assert.Error(t, err)
}

func TestClose_Forced(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a")

	changes, _ := s.Subscribe()
	require.NoError(t, s.Close(true))

	var kinds []ChangeKind
	for c := range changes {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []ChangeKind{ChangeClosed}, kinds)
}

func TestSubscribe_Cancel(t *testing.T) {
	f := newFixture(t)
	s := f.session(t)

	changes, cancel := s.Subscribe()
	cancel()
	cancel()

	_, ok := <-changes
	assert.False(t, ok)

	_, err := s.Add(context.Background(), []string{f.file(t, "x")})
	require.NoError(t, err)
}

func TestSubscribe_RacingCloseStillEnds(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 100; i++ {
		s := f.session(t)
		var changes <-chan Change
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			changes, _ = s.Subscribe()
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Close(true))
		}()
		wg.Wait()

		timeout := time.After(2 * time.Second)
	drain:
		for {
			select {
			case _, ok := <-changes:
				if !ok {
					break drain
				}
			case <-timeout:
				t.Fatalf("round %d: subscription outlived the session", i)
			}
		}
	}

	s := f.session(t)
	require.NoError(t, s.Close(true))
	changes, cancel := s.Subscribe()
	defer cancel()
	_, ok := <-changes
	assert.False(t, ok, "subscribing to a closed session ends at once")
}

func TestConcurrentMutations(t *testing.T) {
	f := newFixture(t)
	s := f.session(t)

	var targets []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		targets = append(targets, f.file(t, n))
	}

	var wg sync.WaitGroup
	for _, p := range targets {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			_, err := s.Add(context.Background(), []string{p})
			assert.NoError(t, err)
		}(p)
	}
	wg.Wait()

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, names(t, s))
}

func TestManager(t *testing.T) {
	f := newFixture(t)
	m := NewManager(f.registry, f.store)

	created, err := m.Create("/docs/new.stapled")
	require.NoError(t, err)
	_, err = created.Add(context.Background(), []string{f.file(t, "a")})
	require.NoError(t, err)

	err = m.Close("/docs/new.stapled", false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsavedChanges))

	_, err = created.Save(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.Close("/docs/new.stapled", false))
	assert.Empty(t, m.Paths())

	first, err := m.Open(context.Background(), "/docs/new.stapled")
	require.NoError(t, err)
	second, err := m.Open(context.Background(), "/docs/../docs/new.stapled")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, first.Snapshot().Len())
	assert.Equal(t, []string{"/docs/new.stapled"}, m.Paths())

	_, err = m.Open(context.Background(), "/docs/missing.stapled")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestItems(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "a.txt", "b.txt")
	require.NoError(t, os.Remove(filepath.Join(f.dir, "b.txt")))

	items := s.Items(context.Background())
	require.Len(t, items, 2)

	assert.Equal(t, "a.txt", items[0].Name)
	assert.Equal(t, filepath.Join(f.dir, "a.txt"), items[0].Path)
	assert.True(t, items[0].Resolved())

	assert.Equal(t, alias.UnknownName, items[1].Name)
	assert.Empty(t, items[1].Path)
	assert.False(t, items[1].Resolved())
	assert.Zero(t, f.provider.Ledger().Outstanding())
}

func TestItems_MovedItemIsNotRefreshed(t *testing.T) {
	f := newFixture(t)
	s := f.session(t, "draft.txt")
	_, err := s.Save(context.Background())
	require.NoError(t, err)
	before := s.Snapshot()

	moved := filepath.Join(f.dir, "final.txt")
	require.NoError(t, os.Rename(filepath.Join(f.dir, "draft.txt"), moved))

	items := s.Items(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, moved, items[0].Path)
	assert.Equal(t, "final.txt", items[0].Name)

	after := s.Snapshot()
	assert.False(t, after.Dirty)
	assert.Equal(t, before.Entries[0].Reference, after.Entries[0].Reference)
}
