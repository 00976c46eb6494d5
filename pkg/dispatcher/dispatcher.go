// Package dispatcher routes commands from the CLI to document sessions. Each
// command type has a handler registered by name; callers build an Options
// value and get back a Result describing what happened.
package dispatcher

import (
	"context"
	"time"

	"github.com/arthur-debert/stapler/pkg/alias"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/arthur-debert/stapler/pkg/registry"
	"github.com/arthur-debert/stapler/pkg/session"
	"github.com/arthur-debert/stapler/pkg/types"
)

// CommandType names a command
type CommandType string

const (
	CommandNew     CommandType = "new"
	CommandAdd     CommandType = "add"
	CommandRemove  CommandType = "remove"
	CommandList    CommandType = "list"
	CommandLaunch  CommandType = "launch"
	CommandReveal  CommandType = "reveal"
	CommandPreview CommandType = "preview"
	CommandOpen    CommandType = "open"
	CommandReload  CommandType = "reload"
	CommandClose   CommandType = "close"
)

// Options carries the arguments of every command. Each command uses only
// the fields it needs.
type Options struct {
	// Document is the path of the .stapled file
	Document string

	// For new without a Document: the name proposed in the current
	// directory, numbered when taken
	Untitled string

	// For add
	Paths     []string
	FilesOnly bool

	// For remove, launch, reveal and preview; empty means every alias
	// except for remove, where it means none
	Indices []int

	// For open: Edit lists instead of launching; Delay is waited first
	Edit  bool
	Delay time.Duration

	// For close
	Force bool
}

// Result is what a command reports back
type Result struct {
	Command  CommandType
	Document string
	Message  string
	Items    []session.Item
	Batch    *alias.BatchResult
	Previews []string
	// Skipped holds paths add did not take, with the reason
	Skipped []Skip
}

// Skip is a path add did not take
type Skip struct {
	Path string
	Err  error
}

// Handler runs one command type
type Handler func(ctx context.Context, d *Dispatcher, opts Options) (*Result, error)

// Dispatcher owns the open sessions and the command handlers
type Dispatcher struct {
	sessions *session.Manager
	handlers registry.Registry[Handler]
	fs       types.FS
}

// New creates a Dispatcher with the built-in handlers registered. fs is used
// to inspect paths given to add.
func New(sessions *session.Manager, fs types.FS) *Dispatcher {
	d := &Dispatcher{
		sessions: sessions,
		handlers: registry.New[Handler]("command"),
		fs:       fs,
	}
	registry.MustRegister(d.handlers, string(CommandNew), handleNew)
	registry.MustRegister(d.handlers, string(CommandAdd), handleAdd)
	registry.MustRegister(d.handlers, string(CommandRemove), handleRemove)
	registry.MustRegister(d.handlers, string(CommandList), handleList)
	registry.MustRegister(d.handlers, string(CommandLaunch), handleLaunch)
	registry.MustRegister(d.handlers, string(CommandReveal), handleReveal)
	registry.MustRegister(d.handlers, string(CommandPreview), handlePreview)
	registry.MustRegister(d.handlers, string(CommandOpen), handleOpen)
	registry.MustRegister(d.handlers, string(CommandReload), handleReload)
	registry.MustRegister(d.handlers, string(CommandClose), handleClose)
	return d
}

// Register adds a handler for a new command type
func (d *Dispatcher) Register(cmd CommandType, h Handler) error {
	return d.handlers.Register(string(cmd), h)
}

// Commands lists the command types with a handler
func (d *Dispatcher) Commands() []string {
	return d.handlers.List()
}

// Sessions returns the session manager
func (d *Dispatcher) Sessions() *session.Manager {
	return d.sessions
}

// Dispatch runs cmd
func (d *Dispatcher) Dispatch(ctx context.Context, cmd CommandType, opts Options) (*Result, error) {
	logger := logging.GetLogger("dispatcher")
	logger.Debug().
		Str("command", string(cmd)).
		Str("document", opts.Document).
		Strs("paths", opts.Paths).
		Ints("indices", opts.Indices).
		Msg("Dispatching command")

	h, err := d.handlers.Get(string(cmd))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "unknown command type: %s", cmd)
	}

	done := logging.LogOperationStart(logger, string(cmd))
	defer done()

	result, err := h(ctx, d, opts)
	if result != nil {
		result.Command = cmd
		if result.Document == "" {
			result.Document = opts.Document
		}
	}
	return result, err
}

// Shutdown closes every open session. Dirty sessions are only closed when
// force is set; the others are reported in the returned error.
func (d *Dispatcher) Shutdown(force bool) error {
	var errs []error
	for _, path := range d.sessions.Paths() {
		if err := d.sessions.Close(path, force); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
