//go:build unix

package bookmark

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) (*FileProvider, string) {
	t.Helper()
	root := t.TempDir()
	return NewFileProvider(Options{Depth: 3, Roots: []string{root}}), root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCreateResolve_RoundTrip(t *testing.T) {
	p, root := newTestProvider(t)
	target := filepath.Join(root, "notes.txt")
	writeFile(t, target, "hello")

	ref, err := p.Create(target)
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	res, err := p.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, target, res.Path)
	assert.False(t, res.Stale)
}

func TestCreate_Directory(t *testing.T) {
	p, root := newTestProvider(t)
	dir := filepath.Join(root, "projects")
	require.NoError(t, os.Mkdir(dir, 0755))

	ref, err := p.Create(dir)
	require.NoError(t, err)

	res, err := p.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, dir, res.Path)
}

func TestCreate_Failures(t *testing.T) {
	p, root := newTestProvider(t)
	p.opts.Denied = []string{filepath.Join(root, "private")}
	writeFile(t, filepath.Join(root, "private", "key"), "secret")

	tests := []struct {
		name string
		path string
	}{
		{"relative path", "notes.txt"},
		{"missing file", filepath.Join(root, "missing.txt")},
		{"denied location", filepath.Join(root, "private", "key")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := p.Create(tt.path)
			assert.Nil(t, ref)
			assert.True(t, errors.IsErrorCode(err, errors.ErrReferenceCreation), "got %v", err)
		})
	}
}

func TestResolve_RenamedTargetIsStale(t *testing.T) {
	p, root := newTestProvider(t)
	original := filepath.Join(root, "draft.md")
	writeFile(t, original, "text")

	ref, err := p.Create(original)
	require.NoError(t, err)

	renamed := filepath.Join(root, "final.md")
	require.NoError(t, os.Rename(original, renamed))

	res, err := p.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, renamed, res.Path)
	assert.True(t, res.Stale)

	fresh, err := p.Create(res.Path)
	require.NoError(t, err)
	res, err = p.Resolve(context.Background(), fresh)
	require.NoError(t, err)
	assert.Equal(t, renamed, res.Path)
	assert.False(t, res.Stale)
}

func TestResolve_MovedIntoSubdirectory(t *testing.T) {
	p, root := newTestProvider(t)
	original := filepath.Join(root, "inbox", "report.pdf")
	writeFile(t, original, "pdf")

	ref, err := p.Create(original)
	require.NoError(t, err)

	moved := filepath.Join(root, "archive", "2024", "report.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(moved), 0755))
	require.NoError(t, os.Rename(original, moved))

	res, err := p.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, moved, res.Path)
	assert.True(t, res.Stale)
}

func TestResolve_ReplacedInPlace(t *testing.T) {
	p, root := newTestProvider(t)
	target := filepath.Join(root, "config.yaml")
	writeFile(t, target, "a: 1")

	ref, err := p.Create(target)
	require.NoError(t, err)

	// simulate an editor saving through a temp file and rename
	tmp := filepath.Join(root, ".config.yaml.swp")
	writeFile(t, tmp, "a: 2")
	require.NoError(t, os.Rename(tmp, target))

	res, err := p.Resolve(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, target, res.Path)
	assert.True(t, res.Stale)
}

func TestResolve_DeletedTarget(t *testing.T) {
	p, root := newTestProvider(t)
	target := filepath.Join(root, "gone.txt")
	writeFile(t, target, "bye")

	ref, err := p.Create(target)
	require.NoError(t, err)
	require.NoError(t, os.Remove(target))

	_, err = p.Resolve(context.Background(), ref)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolution))
}

func TestResolve_DeletedTargetIgnoresNewFiles(t *testing.T) {
	p, root := newTestProvider(t)
	target := filepath.Join(root, "report.txt")
	writeFile(t, target, "q3")

	ref, err := p.Create(target)
	require.NoError(t, err)
	require.NoError(t, os.Remove(target))
	writeFile(t, filepath.Join(root, "unrelated.txt"), "other")

	res, err := p.Resolve(context.Background(), ref)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolution), "resolved to %+v", res)
	assert.Empty(t, res.Path)
}

func TestResolve_ReusedInodeIsNotTheTarget(t *testing.T) {
	p, root := newTestProvider(t)
	newcomer := filepath.Join(root, "unrelated.txt")
	writeFile(t, newcomer, "other")

	id, err := statIdentity(newcomer)
	require.NoError(t, err)
	if id.Birth == 0 {
		t.Skip("filesystem does not record birth times")
	}

	// a reference to a deleted file whose inode now belongs to newcomer
	ref, err := encodePayload(payload{
		Version:  payloadVersion,
		Scope:    scopeReadOnly,
		Path:     filepath.Join(root, "report.txt"),
		Identity: identity{Device: id.Device, Inode: id.Inode, Dir: id.Dir, Birth: id.Birth - 1, Size: id.Size},
	})
	require.NoError(t, err)

	_, err = p.Resolve(context.Background(), ref)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolution), "got %v", err)
}

func TestIdentitySameFile(t *testing.T) {
	base := identity{Device: 1, Inode: 42, Birth: 1000, Size: 10}

	tests := []struct {
		name  string
		other identity
		want  bool
	}{
		{"identical", base, true},
		{"edited since", identity{Device: 1, Inode: 42, Birth: 1000, Size: 99}, true},
		{"other inode", identity{Device: 1, Inode: 43, Birth: 1000, Size: 10}, false},
		{"other device", identity{Device: 2, Inode: 42, Birth: 1000, Size: 10}, false},
		{"other kind", identity{Device: 1, Inode: 42, Dir: true, Birth: 1000}, false},
		{"reused inode", identity{Device: 1, Inode: 42, Birth: 2000, Size: 10}, false},
		{"birth unknown, same size", identity{Device: 1, Inode: 42, Size: 10}, true},
		{"birth unknown, other size", identity{Device: 1, Inode: 42, Size: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.sameFile(tt.other))
		})
	}

	assert.False(t, identity{}.sameFile(identity{}), "unknown identity matches nothing")
}

func TestResolve_CorruptReference(t *testing.T) {
	p, _ := newTestProvider(t)

	for _, ref := range []Reference{nil, Reference("not = [toml"), Reference("version = 9\npath = '/x'")} {
		_, err := p.Resolve(context.Background(), ref)
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolution), "ref %q", string(ref))
	}
}

func TestResolve_CancelledSearch(t *testing.T) {
	p, root := newTestProvider(t)
	target := filepath.Join(root, "a.txt")
	writeFile(t, target, "a")
	ref, err := p.Create(target)
	require.NoError(t, err)
	require.NoError(t, os.Remove(target))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Resolve(ctx, ref)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResolution))
}

func TestAccess_GrantsAreCounted(t *testing.T) {
	p, root := newTestProvider(t)
	target := filepath.Join(root, "a.txt")
	writeFile(t, target, "a")

	g1, err := p.Access(target)
	require.NoError(t, err)
	g2, err := p.Access(target)
	require.NoError(t, err)
	assert.Equal(t, target, g1.Path())
	assert.EqualValues(t, 2, p.Ledger().Outstanding())

	g1.Release()
	g1.Release()
	assert.EqualValues(t, 1, p.Ledger().Outstanding())

	g2.Release()
	assert.EqualValues(t, 0, p.Ledger().Outstanding())
	assert.EqualValues(t, 2, p.Ledger().Issued())
}

func TestAccess_Denied(t *testing.T) {
	p, root := newTestProvider(t)

	_, err := p.Access(filepath.Join(root, "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrAccessDenied))
	assert.EqualValues(t, 0, p.Ledger().Outstanding())
}

func TestSearchRoots(t *testing.T) {
	p := NewFileProvider(Options{
		Ancestors: 2,
		Roots:     []string{"/srv/share", "/a/b"},
		Denied:    []string{"/a"},
	})

	assert.Equal(t, []string{"/x/y/z", "/x/y", "/x", "/srv/share"}, p.searchRoots("/x/y/z/file"))
}

func TestReferenceClone(t *testing.T) {
	ref := Reference("abc")
	clone := ref.Clone()
	clone[0] = 'z'
	assert.Equal(t, "abc", string(ref))
	assert.Nil(t, Reference(nil).Clone())
}
