package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set during build time (e.g., via ldflags)
// Default is "dev" for local development.
var version = "dev"

// Log is the globally configured zerolog logger instance used throughout the cmd package.
// It's initialized in the root command's PersistentPreRunE based on the --log-level and --log-format flags.
var Log zerolog.Logger

// loggerConfigured is set once configureLogger has run.
var loggerConfigured bool

// configureLogger sets up the global zerolog logger. format "json" writes
// one JSON object per line, anything else a console writer.
func configureLogger(levelStr, format string, errOut io.Writer) error {
	if errOut == nil {
		errOut = os.Stderr
	}
	if strings.EqualFold(format, "json") {
		log.Logger = zerolog.New(errOut).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: errOut, TimeFormat: time.RFC3339})
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		log.Warn().Msgf("Invalid log level '%s', defaulting to 'info'", levelStr)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	Log = log.Logger
	loggerConfigured = true
	Log.Debug().Msgf("Log level set to '%s'", level.String())
	return nil
}

// NewRootCmd builds the command tree. Every call returns a fresh tree with
// its own flag state.
func NewRootCmd() *cobra.Command {
	var logLevel, logFormat string
	var showVersion bool

	root := &cobra.Command{
		Use:   "kouseian",
		Short: "Design brief generator",
		Long: `kouseian turns a creative-production request into a structured design brief
using a generation service, and shares briefs through short links.

Run 'kouseian serve' for the HTTP API and share pages, or use the
generate, resolve, draft and checklist commands directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				os.Exit(0)
			}
			return configureLogger(logLevel, logFormat, cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log level (debug, info, warn, error, fatal, panic)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console|json)")
	root.PersistentFlags().BoolVar(&showVersion, "version", false, "Show application version")

	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newPromptCmd(),
		newResolveCmd(),
		newDraftCmd(),
		newChecklistCmd(),
		newConfigCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute is the main entry point for the Cobra CLI application.
// It builds the command tree, executes the selected command and exits with
// status 1 on failure. This function is typically called directly from main.main().
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if !loggerConfigured {
			_ = configureLogger("info", "console", os.Stderr)
		}
		Log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `To load completions:

Bash:
  $ source <(kouseian completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ kouseian completion zsh > "${fpath[1]}/_kouseian"

Fish:
  $ kouseian completion fish | source

PowerShell:
  PS> kouseian completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell type %q", args[0])
			}
		},
	}
}
