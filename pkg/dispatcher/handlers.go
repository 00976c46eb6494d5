package dispatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/stapler/pkg/alias"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/paths"
	"github.com/arthur-debert/stapler/pkg/session"
)

func (d *Dispatcher) open(ctx context.Context, opts Options) (*session.Session, error) {
	if opts.Document == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no document given")
	}
	return d.sessions.Open(ctx, opts.Document)
}

// commit saves s when it has unsaved changes
func commit(ctx context.Context, s *session.Session) error {
	if !s.Snapshot().Dirty {
		return nil
	}
	_, err := s.Save(ctx)
	return err
}

func indicesOr(indices []int, s *session.Session) []int {
	if len(indices) > 0 {
		return indices
	}
	all := make([]int, s.Snapshot().Len())
	for i := range all {
		all[i] = i
	}
	return all
}

// untitledPath returns name in the current directory, or "name 2",
// "name 3" and so on when a document of that name already exists.
func (d *Dispatcher) untitledPath(name string) (string, error) {
	path, err := paths.DocumentFile(name)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(path)
	entries, err := d.fs.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir)
	}
	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[strings.ToLower(e.Name())] = true
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	candidate := stem + ext
	for n := 2; taken[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s %d%s", stem, n, ext)
	}
	return filepath.Join(dir, candidate), nil
}

func handleNew(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	var path string
	var err error
	switch {
	case opts.Document != "":
		path, err = paths.DocumentFile(opts.Document)
	case opts.Untitled != "":
		path, err = d.untitledPath(opts.Untitled)
	default:
		err = errors.New(errors.ErrInvalidInput, "no document given")
	}
	if err != nil {
		return nil, err
	}
	if _, err := d.fs.Stat(path); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists", path).
			WithDetail("path", path)
	}

	s, err := d.sessions.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := s.Save(ctx); err != nil {
		return nil, err
	}
	return &Result{Document: path, Message: fmt.Sprintf("Created %s", path)}, nil
}

func handleAdd(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	s, err := d.open(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	added := 0
	for _, p := range opts.Paths {
		target, err := paths.Normalize(p)
		if err != nil {
			result.Skipped = append(result.Skipped, Skip{Path: p, Err: err})
			continue
		}
		if opts.FilesOnly {
			if info, err := d.fs.Stat(target); err == nil && info.IsDir() {
				result.Skipped = append(result.Skipped, Skip{
					Path: p,
					Err:  errors.Newf(errors.ErrInvalidInput, "%s is a directory", target),
				})
				continue
			}
		}
		if _, err := s.Add(ctx, []string{target}); err != nil {
			result.Skipped = append(result.Skipped, Skip{Path: p, Err: err})
			continue
		}
		added++
	}

	if err := commit(ctx, s); err != nil {
		return nil, err
	}
	result.Items = s.Items(ctx)
	result.Message = fmt.Sprintf("Added %s", plural(added, "alias", "aliases"))
	return result, nil
}

func handleRemove(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	s, err := d.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	if _, err := s.Remove(ctx, opts.Indices); err != nil {
		return nil, err
	}
	if err := commit(ctx, s); err != nil {
		return nil, err
	}
	return &Result{
		Items:   s.Items(ctx),
		Message: fmt.Sprintf("Removed %s", plural(len(unique(opts.Indices)), "alias", "aliases")),
	}, nil
}

func handleList(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	s, err := d.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Items: s.Items(ctx)}, nil
}

func handleLaunch(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	return batch(ctx, d, opts, (*session.Session).Launch, "Opened")
}

func handleReveal(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	return batch(ctx, d, opts, (*session.Session).Reveal, "Revealed")
}

func batch(ctx context.Context, d *Dispatcher, opts Options,
	run func(*session.Session, context.Context, []int) (alias.BatchResult, error), verb string) (*Result, error) {
	s, err := d.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	br, err := run(s, ctx, indicesOr(opts.Indices, s))
	if err != nil {
		return nil, err
	}
	if err := commit(ctx, s); err != nil {
		return nil, err
	}
	return &Result{
		Batch:   &br,
		Message: fmt.Sprintf("%s %s", verb, plural(len(br.Succeeded), "item", "items")),
	}, nil
}

func handlePreview(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	s, err := d.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	list, err := s.Preview(opts.Indices)
	if err != nil {
		return nil, err
	}
	return &Result{Previews: list.Paths(ctx)}, nil
}

// handleOpen launches every alias after the configured delay, then closes
// the document. With Edit set it only lists.
func handleOpen(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	if opts.Edit {
		return handleList(ctx, d, opts)
	}

	s, err := d.open(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.Delay > 0 {
		timer := time.NewTimer(opts.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), errors.ErrLaunch, "open interrupted before launching")
		case <-timer.C:
		}
	}

	result, err := batch(ctx, d, opts, (*session.Session).Launch, "Opened")
	if err != nil {
		return nil, err
	}
	if err := d.sessions.Close(s.Snapshot().SourcePath, false); err != nil {
		return result, err
	}
	return result, nil
}

func handleReload(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	s, err := d.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return &Result{Items: s.Items(ctx), Message: "Reloaded"}, nil
}

func handleClose(ctx context.Context, d *Dispatcher, opts Options) (*Result, error) {
	if err := d.sessions.Close(opts.Document, opts.Force); err != nil {
		return nil, err
	}
	return &Result{Message: "Closed"}, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func unique(indices []int) map[int]struct{} {
	set := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		set[i] = struct{}{}
	}
	return set
}
