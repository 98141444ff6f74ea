package hexmap

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Colourised, annotated hex dumps of binaries"
	MsgDumpShort       = "Render an annotated hex dump of a file"
	MsgInfoShort       = "List the blocks and ranges extracted from a file"
	MsgCompletionShort = "Generate shell completion script"

	// Error messages
	MsgErrNoCommand = "no command or file specified"
	MsgErrLoadImage = "failed to load %s"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Config file (default $XDG_CONFIG_HOME/hexmap/config.toml)"
	MsgFlagCols           = "Bytes per line"
	MsgFlagBreakOnBounds  = "Start a new line at every block and range boundary"
	MsgFlagHideEmpty      = "Hide zero-size ranges"
	MsgFlagDemangle       = "Demangle C++ and Rust symbol names"
	MsgFlagFormat         = "Input format: auto, elf, esp, ihex or raw"
	MsgFlagBlocks         = "ELF content source: segments or sections"
	MsgFlagBase           = "Load address for raw files"
	MsgFlagAnnotations    = "Annotation map (.toml, .yaml or .xml); repeatable"
	MsgFlagColor          = "Colour output: auto, always or never"
	MsgFlagSkipZero       = "Skip blocks mapped at address 0"
	MsgFlagLimit          = "Show at most this many ranges per layer (0 for all)"
	MsgVersionTemplate    = "hexmap version {{.Version}}\n"
	MsgVersionDetailsLine = "  commit: %s\n  built:  %s\n"
	MsgErrorHint          = "Run 'hexmap --help' for usage."
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/dump-long.txt
	msgDumpLongRaw string
	MsgDumpLong    = strings.TrimSpace(msgDumpLongRaw)

	//go:embed msgs/dump-example.txt
	msgDumpExampleRaw string
	MsgDumpExample    = strings.TrimRight(msgDumpExampleRaw, "\n")

	//go:embed msgs/info-long.txt
	msgInfoLongRaw string
	MsgInfoLong    = strings.TrimSpace(msgInfoLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
