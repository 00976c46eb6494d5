package stapler

import (
	_ "embed"
	"strings"
)

const (
	MsgRootShort       = "Keep files and folders together in a document"
	MsgNewShort        = "Create an empty document"
	MsgAddShort        = "Add files or folders to a document"
	MsgRemoveShort     = "Remove items by position"
	MsgListShort       = "List the items of a document"
	MsgLaunchShort     = "Open items with their default application"
	MsgRevealShort     = "Show items in the file browser"
	MsgPreviewShort    = "Print the current paths of items"
	MsgOpenShort       = "Open every item of a document, then close it"
	MsgWatchShort      = "List a document again whenever it changes on disk"
	MsgConfigShort     = "Show the configuration in effect"
	MsgConfigInitShort = "Write a commented configuration file"
	MsgConfigPathShort = "Print the configuration file path"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: "
	MsgFlagConfig    = "Configuration file"
	MsgFlagSet       = "Override a configuration key, e.g. --set launch.delay=1s"
	MsgFlagFilesOnly = "Refuse folders, add only files"
	MsgFlagEdit      = "List the items instead of opening them"
	MsgFlagForce     = "Overwrite an existing configuration file"

	MsgWatching       = "Watching %s"
	MsgConfigWritten  = "Wrote %s"
	MsgVersionFormat  = "stapler version %s\n  commit: %s\n  built:  %s\n"
	MsgErrNoCommand   = "no command specified"
	MsgErrPosition    = "invalid position %q: positions start at 1"
	MsgErrPositionMax = "invalid position %q: positions end at %d"
	MsgErrConfigExist = "%s already exists, use --force to overwrite"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/new-long.txt
	msgNewLongRaw string
	MsgNewLong    = strings.TrimSpace(msgNewLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/launch-long.txt
	msgLaunchLongRaw string
	MsgLaunchLong    = strings.TrimSpace(msgLaunchLongRaw)

	//go:embed msgs/open-long.txt
	msgOpenLongRaw string
	MsgOpenLong    = strings.TrimSpace(msgOpenLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
