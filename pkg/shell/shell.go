package shell

import (
	"context"
	stderrors "errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/stapler/pkg/config"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/kballard/go-shellquote"
)

// PathPlaceholder marks where the target goes in a configured command
const PathPlaceholder = "{path}"

// Launcher opens a path with its default handler
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// Revealer shows a path in the host file browser
type Revealer interface {
	Reveal(ctx context.Context, path string) error
}

// Runner executes a command line and waits for it to exit. Platform
// openers hand the item to its application and return, so waiting only
// covers the opener itself and lets its failures be reported per item.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Exec runs commands through os/exec
func Exec(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// exitCoder is implemented by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// benignExit reports whether err is explorer's exit status 1, which it
// returns even after opening the item.
func benignExit(name string, err error) bool {
	var ec exitCoder
	if !stderrors.As(err, &ec) || ec.ExitCode() != 1 {
		return false
	}
	base := strings.ToLower(name)
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".exe") == "explorer"
}

// Shell is a Launcher and Revealer backed by external commands
type Shell struct {
	open   []string
	reveal []string
	// revealDir is set when the reveal command takes the parent directory
	revealDir bool
	run       Runner
}

// New builds a Shell from configuration for the current platform
func New(cfg config.Shell) *Shell {
	return NewFor(runtime.GOOS, cfg, Exec)
}

// NewFor builds a Shell for goos using run to execute commands
func NewFor(goos string, cfg config.Shell, run Runner) *Shell {
	s := &Shell{run: run}

	switch goos {
	case "darwin":
		s.open = []string{"open"}
		s.reveal = []string{"open", "-R"}
	case "windows":
		s.open = []string{"explorer"}
		s.reveal = []string{"explorer", "/select," + PathPlaceholder}
	default:
		s.open = []string{"xdg-open"}
		s.reveal = []string{"xdg-open"}
		s.revealDir = true
	}

	if fields := splitCommand(cfg.Open); len(fields) > 0 {
		s.open = fields
	}
	if fields := splitCommand(cfg.Reveal); len(fields) > 0 {
		s.reveal = fields
		s.revealDir = false
	}
	return s
}

// splitCommand splits a configured command line with shell quoting rules.
// Unparseable commands are ignored in favor of the platform default.
func splitCommand(command string) []string {
	fields, err := shellquote.Split(command)
	if err != nil {
		logger := logging.GetLogger("shell")
		logger.Warn().Err(err).Str("command", command).Msg("Ignoring malformed command")
		return nil
	}
	return fields
}

// Launch opens path with the configured opener
func (s *Shell) Launch(ctx context.Context, path string) error {
	if err := s.exec(ctx, s.open, path); err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "cannot open %s", path).
			WithDetail("path", path)
	}
	return nil
}

// Reveal shows path in the file browser. Openers that cannot select an
// item get the containing directory.
func (s *Shell) Reveal(ctx context.Context, path string) error {
	target := path
	if s.revealDir {
		target = filepath.Dir(path)
	}
	if err := s.exec(ctx, s.reveal, target); err != nil {
		return errors.Wrapf(err, errors.ErrReveal, "cannot reveal %s", path).
			WithDetail("path", path)
	}
	return nil
}

func (s *Shell) exec(ctx context.Context, command []string, path string) error {
	name, args := expand(command, path)
	logger := logging.GetLogger("shell")
	logger.Debug().Str("command", name).Strs("args", args).Msg("Running")

	out, err := s.run(ctx, name, args...)
	if err != nil && benignExit(name, err) {
		logger.Debug().Err(err).Msg("Ignoring explorer exit status")
		return nil
	}
	if err != nil {
		if len(out) > 0 {
			return errors.Newf(errors.ErrInternal, "%s: %v: %s", name, err, strings.TrimSpace(string(out)))
		}
		return err
	}
	return nil
}

func expand(command []string, path string) (string, []string) {
	args := make([]string, 0, len(command))
	substituted := false
	for _, arg := range command[1:] {
		if strings.Contains(arg, PathPlaceholder) {
			arg = strings.ReplaceAll(arg, PathPlaceholder, path)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, path)
	}
	return command[0], args
}
