package alias

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/stapler/pkg/bookmark"
	"github.com/arthur-debert/stapler/pkg/document"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/arthur-debert/stapler/pkg/shell"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// UnknownName is shown for aliases that do not resolve
const UnknownName = "Unknown"

// Entry is a single alias of a document
type Entry = document.Alias

// Host performs the user visible actions on resolved paths
type Host interface {
	shell.Launcher
	shell.Revealer
}

// Registry runs alias operations against a reference provider and a host
type Registry struct {
	provider bookmark.Provider
	host     Host
	locale   language.Tag
}

// NewRegistry creates a Registry. Display names are collated for locale.
func NewRegistry(provider bookmark.Provider, host Host, locale language.Tag) *Registry {
	return &Registry{provider: provider, host: host, locale: locale}
}

// Create makes a new alias for path. It has no side effects on any document.
func (r *Registry) Create(path string) (Entry, error) {
	ref, err := r.provider.Create(path)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrReferenceCreation) {
			return Entry{}, err
		}
		return Entry{}, errors.Wrapf(err, errors.ErrReferenceCreation, "cannot create a reference to %s", path).
			WithDetail("path", path)
	}

	entry := Entry{ID: uuid.New(), Reference: ref}
	logger := logging.GetLogger("alias")
	logger.Debug().
		Str("id", entry.ID.String()).
		Str("path", path).
		Msg("Alias created")
	return entry, nil
}

// Resolve resolves e and opens an access grant on its target. A stale
// reference is replaced in e by a fresh one before the grant is opened.
// The caller must release the returned grant.
func (r *Registry) Resolve(ctx context.Context, e *Entry) (*bookmark.Grant, error) {
	logger := logging.GetLogger("alias").With().Str("id", e.ID.String()).Logger()

	res, err := r.provider.Resolve(ctx, e.Reference)
	if err != nil {
		return nil, resolutionFailure(e, err)
	}

	if res.Stale {
		fresh, err := r.provider.Create(res.Path)
		if err != nil {
			return nil, resolutionFailure(e, err)
		}
		e.Reference = fresh
		logger.Info().Str("path", res.Path).Msg("Refreshed stale reference")

		res, err = r.provider.Resolve(ctx, fresh)
		if err != nil {
			return nil, resolutionFailure(e, err)
		}
		if res.Stale {
			return nil, resolutionFailure(e, errors.New(errors.ErrResolution, "reference still stale after refresh"))
		}
	}

	grant, err := r.provider.Access(res.Path)
	if err != nil {
		return nil, resolutionFailure(e, err)
	}
	return grant, nil
}

// ResolveAt resolves the alias at index i of doc. A refreshed reference is
// written back into doc.
func (r *Registry) ResolveAt(ctx context.Context, doc *document.Document, i int) (*bookmark.Grant, error) {
	if i < 0 || i >= doc.Len() {
		return nil, errors.Newf(errors.ErrInvalidInput, "index %d out of range [0,%d)", i, doc.Len())
	}
	e := doc.At(i)
	old := e.Reference
	grant, err := r.Resolve(ctx, &e)
	if !sameReference(old, e.Reference) {
		doc.ReplaceReference(e.ID, old, e.Reference)
	}
	return grant, err
}

// DisplayName returns the base name of the alias target, or UnknownName
// when it does not resolve. The reference is not refreshed.
func (r *Registry) DisplayName(ctx context.Context, e Entry) string {
	path, err := r.ResolvedPath(ctx, e)
	if err != nil {
		return UnknownName
	}
	return filepath.Base(path)
}

// ResolvedPath returns where e currently points without refreshing it.
// Access is checked and released right away.
func (r *Registry) ResolvedPath(ctx context.Context, e Entry) (string, error) {
	res, err := r.provider.Resolve(ctx, e.Reference)
	if err != nil {
		return "", resolutionFailure(&e, err)
	}
	grant, err := r.provider.Access(res.Path)
	if err != nil {
		return "", resolutionFailure(&e, err)
	}
	grant.Release()
	return res.Path, nil
}

func resolutionFailure(e *Entry, err error) error {
	reason := "unresolvable"
	if errors.IsErrorCode(err, errors.ErrAccessDenied) {
		reason = "access denied"
	}
	return errors.Wrapf(err, errors.ErrResolution, "cannot resolve alias %s", e.ID).
		WithDetail("id", e.ID.String()).
		WithDetail("reason", reason)
}

func sameReference(a, b bookmark.Reference) bool {
	return string(a) == string(b)
}
