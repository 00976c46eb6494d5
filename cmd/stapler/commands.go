package stapler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/stapler/internal/version"
	"github.com/arthur-debert/stapler/pkg/config"
	"github.com/arthur-debert/stapler/pkg/dispatcher"
	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/paths"
	"github.com/arthur-debert/stapler/pkg/session"
	"github.com/arthur-debert/stapler/pkg/ui"
	"github.com/arthur-debert/stapler/pkg/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "new [document]",
		Short:   MsgNewShort,
		Long:    MsgNewLong,
		GroupID: "document",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			opts := dispatcher.Options{Untitled: a.cfg.Document.Untitled}
			if len(args) == 1 {
				opts.Document = args[0]
			}
			return a.run(cmd, dispatcher.CommandNew, opts)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list <document>",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, dispatcher.CommandList, dispatcher.Options{Document: args[0]})
		},
	}
}

func newOpenCmd(a *app) *cobra.Command {
	var edit bool
	cmd := &cobra.Command{
		Use:     "open <document>",
		Short:   MsgOpenShort,
		Long:    MsgOpenLong,
		GroupID: "document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return a.run(cmd, dispatcher.CommandOpen, dispatcher.Options{
				Document: args[0],
				Edit:     edit,
				Delay:    a.cfg.Launch.Delay,
			})
		},
	}
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, MsgFlagEdit)
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "watch <document>",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.shutdown()
			return watch(cmd.Context(), a, cmd, args[0])
		},
	}
}

// watch lists doc, then reloads it on every external change. Reloads run on
// the watcher goroutine; printing happens here, driven by the session's
// change events.
func watch(ctx context.Context, a *app, cmd *cobra.Command, path string) error {
	doc, err := paths.Normalize(path)
	if err != nil {
		return err
	}
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}

	opts := dispatcher.Options{Document: doc}
	result, err := a.dispatcher.Dispatch(ctx, dispatcher.CommandList, opts)
	if err != nil {
		return err
	}
	if err := r.RenderResult(ui.NewView(result)); err != nil {
		return err
	}

	s, err := a.dispatcher.Sessions().Get(doc)
	if err != nil {
		return err
	}
	changes, unsubscribe := s.Subscribe()
	defer unsubscribe()

	w, err := watcher.New(doc, a.cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	_ = r.RenderMessage(fmt.Sprintf(MsgWatching, doc))

	failures := make(chan error, 1)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, w,
			func(ctx context.Context) error {
				_, err := a.dispatcher.Dispatch(ctx, dispatcher.CommandReload, opts)
				return err
			},
			func(err error) {
				select {
				case failures <- err:
				default:
				}
			})
	}()

	for {
		select {
		case err := <-done:
			return err
		case err := <-failures:
			_ = r.RenderError(err)
		case change, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			if change.Kind != session.ChangeReloaded {
				continue
			}
			view := ui.NewView(&dispatcher.Result{
				Command:  dispatcher.CommandReload,
				Document: doc,
				Items:    s.Items(ctx),
			})
			if err := r.RenderResult(view); err != nil {
				return err
			}
		}
	}
}

func newAddCmd(a *app) *cobra.Command {
	var filesOnly bool
	cmd := &cobra.Command{
		Use:     "add <document> <path>...",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "items",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, dispatcher.CommandAdd, dispatcher.Options{
				Document:  args[0],
				Paths:     args[1:],
				FilesOnly: filesOnly,
			})
		},
	}
	cmd.Flags().BoolVar(&filesOnly, "files-only", false, MsgFlagFilesOnly)
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <document> <position>...",
		Aliases: []string{"rm"},
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		GroupID: "items",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := parsePositions(args[1:])
			if err != nil {
				return err
			}
			return a.run(cmd, dispatcher.CommandRemove, dispatcher.Options{Document: args[0], Indices: indices})
		},
	}
}

// newItemsCmd builds the commands taking a document and optional positions
func newItemsCmd(a *app, use, short, long string, ct dispatcher.CommandType) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <document> [position...]",
		Short:   short,
		Long:    long,
		GroupID: "items",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := parsePositions(args[1:])
			if err != nil {
				return err
			}
			return a.run(cmd, ct, dispatcher.Options{Document: args[0], Indices: indices})
		},
	}
}

func newLaunchCmd(a *app) *cobra.Command {
	return newItemsCmd(a, "launch", MsgLaunchShort, MsgLaunchLong, dispatcher.CommandLaunch)
}

func newRevealCmd(a *app) *cobra.Command {
	return newItemsCmd(a, "reveal", MsgRevealShort, "", dispatcher.CommandReveal)
}

func newPreviewCmd(a *app) *cobra.Command {
	return newItemsCmd(a, "preview", MsgPreviewShort, "", dispatcher.CommandPreview)
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			out, err := config.DumpYAML(a.cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrEncoding, "cannot print configuration")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExist, path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot create configuration directory")
			}
			if err := os.WriteFile(path, []byte(config.GenerateConfigContent()), 0644); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot write configuration")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten+"\n", path)
			return err
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: MsgConfigPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFile()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// ManHeader is the header of the generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "STAPLER",
		Section: "1",
		Source:  "stapler " + version.Version,
		Manual:  "stapler manual",
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}
