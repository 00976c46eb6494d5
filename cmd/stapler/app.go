package stapler

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/stapler/pkg/alias"
	"github.com/arthur-debert/stapler/pkg/bookmark"
	"github.com/arthur-debert/stapler/pkg/config"
	"github.com/arthur-debert/stapler/pkg/dispatcher"
	"github.com/arthur-debert/stapler/pkg/document"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/filesystem"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/arthur-debert/stapler/pkg/paths"
	"github.com/arthur-debert/stapler/pkg/session"
	"github.com/arthur-debert/stapler/pkg/shell"
	"github.com/arthur-debert/stapler/pkg/types"
	"github.com/arthur-debert/stapler/pkg/ui"
	"github.com/spf13/cobra"
)

// app holds what the commands share. It is filled on first use so that
// help and completion work with a broken configuration.
type app struct {
	verbosity  int
	format     string
	configPath string
	overrides  map[string]string

	fs         types.FS
	cfg        *config.Config
	dispatcher *dispatcher.Dispatcher
}

func (a *app) configFile() (string, error) {
	if a.configPath != "" {
		return paths.Normalize(a.configPath)
	}
	p, err := paths.New()
	if err != nil {
		return "", err
	}
	return p.ConfigFilePath(), nil
}

func (a *app) load() error {
	if a.dispatcher != nil {
		return nil
	}

	path, err := a.configFile()
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithOverrides(path, a.overrides)
	if err != nil {
		return err
	}

	a.fs = filesystem.NewOS()
	provider := bookmark.NewFileProvider(bookmark.OptionsFromConfig(cfg.Bookmarks))
	registry := alias.NewRegistry(provider, shell.New(cfg.Shell), alias.LocaleFromEnv(cfg.Display.Locale))
	sessions := session.NewManager(registry, document.NewStore(a.fs))

	a.cfg = cfg
	a.dispatcher = dispatcher.New(sessions, a.fs)
	return nil
}

func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// run dispatches one command, renders its result and closes the sessions
// it opened. A batch with failures is reported as an error after its
// result is printed.
func (a *app) run(cmd *cobra.Command, ct dispatcher.CommandType, opts dispatcher.Options) error {
	if err := a.load(); err != nil {
		return err
	}
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	defer a.shutdown()

	result, err := a.dispatcher.Dispatch(cmd.Context(), ct, opts)
	if err != nil {
		return err
	}
	if err := r.RenderResult(ui.NewView(result)); err != nil {
		return err
	}
	if result.Batch != nil {
		return result.Batch.Err()
	}
	return nil
}

func (a *app) shutdown() {
	if a.dispatcher == nil {
		return
	}
	if err := a.dispatcher.Shutdown(false); err != nil {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Msg("Closing documents")
	}
}

// maxPosition is the largest position accepted, ranges included
const maxPosition = 100000

// parsePositions turns 1-based positions and ranges such as 2-4 into
// document indices.
func parsePositions(args []string) ([]int, error) {
	var indices []int
	for _, arg := range args {
		lo, hi, isRange := strings.Cut(arg, "-")
		if !isRange {
			hi = lo
		}
		first, err := strconv.Atoi(lo)
		if err != nil || first < 1 {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrPosition, arg)
		}
		last, err := strconv.Atoi(hi)
		if err != nil || last < first {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrPosition, arg)
		}
		if last > maxPosition {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrPositionMax, arg, maxPosition)
		}
		for p := first; p <= last; p++ {
			indices = append(indices, p-1)
		}
	}
	return indices, nil
}
