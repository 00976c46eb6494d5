// Package topics adds free-form help topics to a cobra command tree.
//
// Topics are text or markdown files read from an fs.FS (usually an
// embed.FS compiled into the binary). `<app> help <topic>` prints one,
// `<app> help topics` lists them, and anything else falls through to
// cobra's own help. Files named option-<flag> are also reachable as
// `help --<flag>`.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

const optionPrefix = "option-"

// Topic is one help file.
type Topic struct {
	Name string
	Ext  string
	Body string
}

// Options configures a Manager.
type Options struct {
	// Extensions accepted as topics; defaults to .md and .txt.
	Extensions []string
	// Renderer defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics loaded from one directory of an fs.FS.
type Manager struct {
	fsys       fs.FS
	dir        string
	extensions []string
	renderer   Renderer
	topics     map[string]*Topic
}

func New(fsys fs.FS, dir string, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		dir:        dir,
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
		topics:     make(map[string]*Topic),
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}
	return m
}

// Load reads every topic file below dir. A missing dir yields no topics.
func (m *Manager) Load() error {
	if _, err := fs.Stat(m.fsys, m.dir); err != nil {
		return nil
	}
	return fs.WalkDir(m.fsys, m.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !slices.Contains(m.extensions, ext) {
			return nil
		}
		data, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Ext: ext, Body: string(data)}
		return nil
	})
}

// Lookup finds a topic by name. Flag spellings (--name, -name) resolve to
// option-name.
func (m *Manager) Lookup(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[optionPrefix+name]
	return t, ok
}

// Names returns every topic name, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for n := range m.topics {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Render returns the rendered body of t.
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Body, t.Ext)
}

// WriteIndex prints the topic listing for app.
func (m *Manager) WriteIndex(w io.Writer, app string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, n := range names {
		if opt, ok := strings.CutPrefix(n, optionPrefix); ok {
			options = append(options, opt)
			continue
		}
		general = append(general, n)
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, n := range general {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, n := range options {
			fmt.Fprintf(w, "  --%s\n", n)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", app)
}

// Install loads the topics and replaces root's help command and help
// function with topic-aware versions.
func Install(root *cobra.Command, fsys fs.FS, dir string, opts Options) (*Manager, error) {
	m := New(fsys, dir, opts)
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}

	fallback := root.HelpFunc()
	app := root.Name()

	help := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: "Help provides help for any command or topic in the application.\n" +
			"Type " + app + " help [command or topic] for full details.\n\n" +
			"To see all available help topics:\n  " + app + " help topics",
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			return append(completions, m.Names()...), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			switch {
			case len(args) == 0:
				fallback(root, nil)
			case args[0] == "topics":
				m.WriteIndex(cmd.OutOrStdout(), app)
			default:
				if t, ok := m.Lookup(args[0]); ok {
					fmt.Fprint(cmd.OutOrStdout(), m.Render(t))
					return
				}
				if target, _, err := root.Find(args); err == nil && target != nil {
					fallback(target, args)
					return
				}
				fallback(root, args)
			}
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
		}
	}
	root.AddCommand(help)
	root.SetHelpCommand(help)

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if t, ok := m.Lookup(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(t))
				return
			}
		}
		fallback(cmd, args)
	})

	return m, nil
}
