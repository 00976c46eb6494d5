package alias

import (
	"context"

	"github.com/arthur-debert/stapler/pkg/bookmark"
	"github.com/arthur-debert/stapler/pkg/document"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/google/uuid"
)

// Action is what a batch does with each resolved path
type Action string

const (
	ActionLaunch Action = "launch"
	ActionReveal Action = "reveal"
)

// Failure records an alias a batch could not act on
type Failure struct {
	Index int
	ID    uuid.UUID
	Err   error
}

// Refresh records a stale reference replaced during a batch
type Refresh struct {
	ID  uuid.UUID
	Old bookmark.Reference
	New bookmark.Reference
}

// BatchResult collects the per alias outcome of a batch. Batches are not
// atomic: actions that ran stay done whatever happens to the rest.
type BatchResult struct {
	Action    Action
	Succeeded []int
	Failures  []Failure
	Refreshed []Refresh
	// Cancelled is set when the context ended before every alias was tried
	Cancelled bool
}

// Err joins the failures, or returns nil when there are none
func (b BatchResult) Err() error {
	if len(b.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(b.Failures))
	for i, f := range b.Failures {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

// Launch opens the targets of the aliases at indices with their default
// handler.
func (r *Registry) Launch(ctx context.Context, doc *document.Document, indices []int) BatchResult {
	return r.run(ctx, doc, indices, ActionLaunch, r.host.Launch)
}

// Reveal shows the targets of the aliases at indices in the file browser.
func (r *Registry) Reveal(ctx context.Context, doc *document.Document, indices []int) BatchResult {
	return r.run(ctx, doc, indices, ActionReveal, r.host.Reveal)
}

// All returns every index of doc
func All(doc *document.Document) []int {
	indices := make([]int, doc.Len())
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func (r *Registry) run(ctx context.Context, doc *document.Document, indices []int, action Action,
	do func(context.Context, string) error) BatchResult {
	logger := logging.GetLogger("alias").With().Str("action", string(action)).Logger()
	result := BatchResult{Action: action}

	// snapshot ids first so refreshes and failures refer to stable aliases
	entries := doc.Entries()

	for _, i := range indices {
		if ctx.Err() != nil {
			result.Cancelled = true
			logger.Debug().Msg("Batch cancelled")
			break
		}
		if i < 0 || i >= len(entries) {
			result.Failures = append(result.Failures, Failure{
				Index: i,
				Err:   errors.Newf(errors.ErrInvalidInput, "index %d out of range [0,%d)", i, len(entries)),
			})
			continue
		}

		e := entries[i]
		old := e.Reference
		grant, err := r.Resolve(ctx, &e)
		if !sameReference(old, e.Reference) {
			if doc.ReplaceReference(e.ID, old, e.Reference) {
				result.Refreshed = append(result.Refreshed, Refresh{ID: e.ID, Old: old, New: e.Reference})
			}
			entries[i] = e
		}
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("Alias did not resolve")
			result.Failures = append(result.Failures, Failure{Index: i, ID: e.ID, Err: err})
			continue
		}

		err = withGrant(grant, func(path string) error {
			return do(ctx, path)
		})
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Str("path", grant.Path()).Msg("Action failed")
			result.Failures = append(result.Failures, Failure{Index: i, ID: e.ID, Err: err})
			continue
		}
		logger.Debug().Int("index", i).Str("path", grant.Path()).Msg("Action done")
		result.Succeeded = append(result.Succeeded, i)
	}

	return result
}

// withGrant runs fn on the granted path and releases the grant on every path
// out of it, panics included.
func withGrant(grant *bookmark.Grant, fn func(path string) error) error {
	defer grant.Release()
	return fn(grant.Path())
}
