package hexmap

import (
	"bufio"
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/arthur-debert/hexmap/internal/version"
	"github.com/arthur-debert/hexmap/pkg/annotations"
	"github.com/arthur-debert/hexmap/pkg/binfile"
	"github.com/arthur-debert/hexmap/pkg/cobrax/topics"
	"github.com/arthur-debert/hexmap/pkg/config"
	"github.com/arthur-debert/hexmap/pkg/display"
	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/logging"
	"github.com/arthur-debert/hexmap/pkg/render"
	"github.com/arthur-debert/hexmap/pkg/types"
	"github.com/arthur-debert/hexmap/pkg/ui"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

//go:embed help
var helpFS embed.FS

// flagKeys maps flags that mirror config keys to those keys
var flagKeys = map[string]string{
	"cols":            "columns",
	"break-on-bounds": "break_on_bounds",
	"hide-empty":      "hide_empty",
	"demangle":        "demangle",
	"format":          "format",
	"blocks":          "blocks",
	"base":            "base",
	"color":           "color",
	"skip-zero":       "skip_zero_address",
	"annotations":     "annotations",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithFs(afero.NewOsFs())
}

// NewRootCmdWithFs creates the root command reading inputs from fs
func NewRootCmdWithFs(fs afero.Fs) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "hexmap [FILE]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runDump(cmd, fs, args[0])
			}
			// No subcommand and no file: show help but report incorrect usage
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(MsgVersionTemplate +
		fmt.Sprintf(MsgVersionDetailsLine, version.Commit, version.Date))

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfig)
	addInputFlags(rootCmd.PersistentFlags())
	addDumpFlags(rootCmd.Flags())

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newDumpCmd(fs))
	rootCmd.AddCommand(newInfoCmd(fs))
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help system from the embedded topics
	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.InitializeWithOptions(rootCmd, helpFS, "help", opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// addInputFlags registers the flags shared by every command reading a file
func addInputFlags(flags *pflag.FlagSet) {
	flags.BoolP("hide-empty", "e", false, MsgFlagHideEmpty)
	flags.BoolP("demangle", "d", false, MsgFlagDemangle)
	flags.StringP("format", "f", "auto", MsgFlagFormat)
	flags.String("blocks", "segments", MsgFlagBlocks)
	flags.String("base", "0", MsgFlagBase)
	flags.StringArrayP("annotations", "a", nil, MsgFlagAnnotations)
	flags.String("color", "auto", MsgFlagColor)
}

// addDumpFlags registers the flags that only affect rendering
func addDumpFlags(flags *pflag.FlagSet) {
	flags.IntP("cols", "c", 16, MsgFlagCols)
	flags.BoolP("break-on-bounds", "b", false, MsgFlagBreakOnBounds)
	flags.Bool("skip-zero", false, MsgFlagSkipZero)
}

func newDumpCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dump FILE",
		Short:   MsgDumpShort,
		Long:    MsgDumpLong,
		Example: MsgDumpExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, fs, args[0])
		},
	}
	addDumpFlags(cmd.Flags())
	return cmd
}

func newInfoCmd(fs afero.Fs) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "info FILE",
		Short:   MsgInfoShort,
		Long:    MsgInfoLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			img, err := loadImage(fs, args[0], cfg)
			if err != nil {
				return err
			}
			profile := ui.Profile(cfg.ColorMode(), outputFile(cmd.OutOrStdout()))
			return display.RenderInfo(cmd.OutOrStdout(), args[0], img, display.InfoOptions{
				Limit:   limit,
				Plain:   profile == termenv.Ascii,
				Palette: cfg.StylePalette(),
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, MsgFlagLimit)
	return cmd
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
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func runDump(cmd *cobra.Command, fs afero.Fs, path string) error {
	logger := logging.GetLogger("cmd.dump")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	img, err := loadImage(fs, path, cfg)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	stats, err := render.Run(out, img, render.Options{
		Columns:         cfg.Columns,
		BreakOnBounds:   cfg.BreakOnBounds,
		Palette:         cfg.StylePalette(),
		Profile:         ui.Profile(cfg.ColorMode(), outputFile(cmd.OutOrStdout())),
		SkipZeroAddress: cfg.SkipZeroAddress,
	})
	if err == nil {
		if flushErr := out.Flush(); flushErr != nil {
			err = errors.Wrap(flushErr, errors.ErrRender, "failed to write output")
		}
	}
	if err != nil {
		// the reader went away, e.g. `hexmap big.elf | head`
		if stderrors.Is(err, syscall.EPIPE) {
			logger.Debug().Msg("Output closed early")
			return nil
		}
		return err
	}

	logger.Info().
		Str("file", path).
		Int("blocks", stats.Blocks).
		Int("bytes", stats.Bytes).
		Int("lines", stats.Lines).
		Int("gaps", stats.Gaps).
		Msg("Dump finished")
	return nil
}

// loadConfig merges the config layers with the flags set on cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Overrides:  flagOverrides(cmd.Flags()),
	})
}

// flagOverrides collects the explicitly set flags that mirror config keys.
// Values stay strings; the config decoder converts them.
func flagOverrides(flags *pflag.FlagSet) map[string]interface{} {
	overrides := make(map[string]interface{})
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if slice, isSlice := f.Value.(pflag.SliceValue); isSlice {
			overrides[key] = slice.GetSlice()
			return
		}
		overrides[key] = f.Value.String()
	})
	return overrides
}

// loadImage extracts the binary and layers the annotation maps on top
func loadImage(fs afero.Fs, path string, cfg *config.Config) (*types.Image, error) {
	img, err := binfile.Load(fs, path, cfg.LoadOptions())
	if err != nil {
		return nil, err
	}

	for _, mapPath := range cfg.Annotations {
		extra, err := annotations.LoadFile(fs, mapPath)
		if err != nil {
			return nil, err
		}
		if cfg.HideEmpty {
			extra.Background = types.DropEmpty(extra.Background)
			extra.Foreground = types.DropEmpty(extra.Foreground)
		}
		extra.Apply(img)
	}
	return img, nil
}

// outputFile returns w as a file when it is one, for terminal detection
func outputFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
