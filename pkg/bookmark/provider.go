package bookmark

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/stapler/pkg/config"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/arthur-debert/stapler/pkg/paths"
)

// Options configures a FileProvider
type Options struct {
	// Denied lists roots below which no reference may be created
	Denied []string
	// Roots are searched, in addition to the original location, when a
	// target moved
	Roots []string
	// Depth bounds how far below each search root the search descends
	Depth int
	// Ancestors is how many parents of the original directory are searched
	Ancestors int
}

// OptionsFromConfig maps the [bookmarks] configuration section
func OptionsFromConfig(cfg config.Bookmarks) Options {
	return Options{
		Denied:    cfg.Denied,
		Roots:     cfg.Roots,
		Depth:     cfg.Depth,
		Ancestors: cfg.Ancestors,
	}
}

// FileProvider implements Provider on top of the local filesystem
type FileProvider struct {
	opts   Options
	ledger *Ledger
	now    func() time.Time
}

// NewFileProvider creates a FileProvider
func NewFileProvider(opts Options) *FileProvider {
	return &FileProvider{
		opts:   opts,
		ledger: &Ledger{},
		now:    time.Now,
	}
}

// Ledger exposes the grant ledger
func (p *FileProvider) Ledger() *Ledger {
	return p.ledger
}

// Create implements Provider
func (p *FileProvider) Create(path string) (Reference, error) {
	if !filepath.IsAbs(path) {
		return nil, errors.Newf(errors.ErrReferenceCreation, "path must be absolute: %s", path).
			WithDetail("path", path)
	}
	path = filepath.Clean(path)

	if p.denied(path) {
		return nil, errors.Newf(errors.ErrReferenceCreation, "no permission to reference %s", path).
			WithDetail("path", path)
	}

	id, err := statIdentity(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrReferenceCreation, "cannot reference %s", path).
			WithDetail("path", path)
	}

	ref, err := encodePayload(payload{
		Version:  payloadVersion,
		Scope:    scopeReadOnly,
		Path:     path,
		Identity: id,
		Created:  p.now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrReferenceCreation, "cannot encode reference for %s", path)
	}
	return ref, nil
}

// Resolve implements Provider
func (p *FileProvider) Resolve(ctx context.Context, ref Reference) (Resolution, error) {
	logger := logging.GetLogger("bookmark")

	pl, err := decodePayload(ref)
	if err != nil {
		return Resolution{}, errors.Wrap(err, errors.ErrResolution, "corrupt reference")
	}
	if pl.Version != payloadVersion || pl.Path == "" {
		return Resolution{}, errors.Newf(errors.ErrResolution, "unsupported reference (version %d)", pl.Version)
	}

	current, statErr := statIdentity(pl.Path)
	if statErr == nil && (!pl.Identity.known() || pl.Identity.sameFile(current)) {
		return Resolution{Path: pl.Path}, nil
	}

	if pl.Identity.known() {
		found, err := p.search(ctx, pl)
		if err != nil {
			return Resolution{}, err
		}
		if found != "" {
			logger.Debug().Str("from", pl.Path).Str("to", found).Msg("Relocated moved target")
			return Resolution{Path: found, Stale: true}, nil
		}
	}

	// The original file is gone but something of the same kind took its
	// place, which is what editors saving through a rename leave behind.
	if statErr == nil && current.Dir == pl.Identity.Dir {
		logger.Debug().Str("path", pl.Path).Msg("Target replaced in place")
		return Resolution{Path: pl.Path, Stale: true}, nil
	}

	return Resolution{}, errors.Newf(errors.ErrResolution, "target of %s no longer exists", pl.Path).
		WithDetail("path", pl.Path)
}

// Access implements Provider
func (p *FileProvider) Access(path string) (*Grant, error) {
	if err := checkReadable(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrAccessDenied, "access to %s denied", path).
			WithDetail("path", path)
	}
	return p.ledger.Issue(path), nil
}

func (p *FileProvider) denied(path string) bool {
	for _, root := range p.opts.Denied {
		if root == "" {
			continue
		}
		if paths.IsWithin(path, filepath.Clean(paths.ExpandHome(root))) {
			return true
		}
	}
	return false
}

// searchRoots returns the directories to search for a moved target, closest
// first, skipping duplicates and denied locations.
func (p *FileProvider) searchRoots(original string) []string {
	var roots []string
	seen := make(map[string]bool)
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if seen[dir] || p.denied(dir) {
			return
		}
		seen[dir] = true
		roots = append(roots, dir)
	}

	dir := filepath.Dir(original)
	add(dir)
	for i := 0; i < p.opts.Ancestors; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
		add(dir)
	}
	for _, root := range p.opts.Roots {
		if root != "" {
			add(paths.ExpandHome(root))
		}
	}
	return roots
}

func (p *FileProvider) search(ctx context.Context, pl payload) (string, error) {
	for _, root := range p.searchRoots(pl.Path) {
		if _, err := os.Stat(root); err != nil {
			continue
		}

		var found string
		baseDepth := strings.Count(root, string(filepath.Separator))
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				// unreadable subtree, keep looking elsewhere
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			if d.IsDir() && path != root {
				if p.denied(path) || strings.Count(path, string(filepath.Separator))-baseDepth > p.opts.Depth {
					return fs.SkipDir
				}
			}
			if path == pl.Path {
				return nil
			}
			id, err := statIdentity(path)
			if err == nil && pl.Identity.sameFile(id) {
				found = path
				return fs.SkipAll
			}
			return nil
		})

		if found != "" {
			return found, nil
		}
		if walkErr != nil && ctx.Err() != nil {
			return "", errors.Wrap(ctx.Err(), errors.ErrResolution, "resolution cancelled")
		}
	}
	return "", nil
}
