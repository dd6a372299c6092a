package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kardolus/quickpatch/config"
	"github.com/kardolus/quickpatch/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

var (
	GitCommit  string
	GitVersion string
)

var (
	diffText       string
	diffFile       string
	historyIndex   int
	interactive    bool
	dryRun         bool
	reverse        bool
	outputPath     string
	quiet          bool
	undo           bool
	showVersion    bool
	showConfig     bool
	listHistory    bool
	showHistory    int
	clearHistory   bool
	setHistorySize int
	setCompletions string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "quickpatch [FILE]",
		Short: "Apply a quick-and-dirty diff by text search",
		Long: "Apply a unified diff, or a bare list of +/- lines, to FILE without trusting its line numbers.\n" +
			"Each hunk's before-text is searched from the start of the document and replaced by its after-text.\n" +
			"Without FILE the document is read from stdin and the result written to stdout.",
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&diffText, "diff", "d", "", "Diff text to apply")
	flags.StringVarP(&diffFile, "diff-file", "f", "", "Read the diff from a file ('-' for stdin)")
	flags.IntVarP(&historyIndex, "history", "H", 0, "Re-apply the N-th most recent diff from history")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Paste the diff at a prompt")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "Show the change without writing it")
	flags.BoolVarP(&reverse, "reverse", "R", false, "Apply the diff in reverse")
	flags.StringVarP(&outputPath, "output", "o", "", "Write the result to this path ('-' for stdout) instead of FILE")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Do not print a summary")
	flags.BoolVar(&undo, "undo", false, "Restore FILE from the backup taken before it was last patched")
	flags.BoolVar(&showVersion, "version", false, "Display the version information")
	flags.BoolVar(&showConfig, "show-config", false, "Display the effective configuration")
	flags.BoolVar(&listHistory, "list-history", false, "List previously applied diffs")
	flags.IntVar(&showHistory, "show-history", 0, "Print the N-th most recent diff from history")
	flags.BoolVar(&clearHistory, "clear-history", false, "Delete the diff history")
	flags.IntVar(&setHistorySize, "set-history-size", 0, "Persist the number of diffs kept in history")
	flags.StringVar(&setCompletions, "set-completions", "", "Generate autocompletion script for your current shell")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("no-color", false, "Disable colored output")

	internal.InitLogger()

	viper.SetEnvPrefix("quickpatch")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("no_color", flags.Lookup("no-color"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cm := config.NewManager(config.New()).WithEnvironment()
	cfg := cm.Config

	if viper.GetBool("debug") || cfg.Debug {
		internal.SetAllowedLogLevels(zapcore.InfoLevel, zapcore.DebugLevel)
	} else {
		internal.SetAllowedLogLevels(zapcore.InfoLevel)
	}
	cfg.NoColor = cfg.NoColor || viper.GetBool("no_color")

	var target string
	if len(args) == 1 {
		target = args[0]
	}

	switch {
	case showVersion:
		fmt.Printf("commit %s - version %s\n", GitCommit, GitVersion)
		return nil
	case showConfig:
		out, err := cm.ShowConfig()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	case setCompletions != "":
		return config.GenCompletions(cmd, setCompletions, os.Stdout)
	case cmd.Flags().Changed("set-history-size"):
		if setHistorySize < 1 {
			return errors.New("history size must be at least 1")
		}
		if err := cm.WriteHistorySize(setHistorySize); err != nil {
			return err
		}
		fmt.Printf("history size set to %d\n", setHistorySize)
		return nil
	case listHistory, showHistory != 0, clearHistory:
		return runHistory(cfg)
	case undo:
		if target == "" {
			return errors.New("--undo needs the FILE to restore")
		}
		return runUndo(target)
	}

	return runApply(cfg, target)
}

func exclusiveSources() error {
	var given []string
	if diffText != "" {
		given = append(given, "--diff")
	}
	if diffFile != "" {
		given = append(given, "--diff-file")
	}
	if historyIndex != 0 {
		given = append(given, "--history")
	}
	if interactive {
		given = append(given, "--interactive")
	}

	if len(given) > 1 {
		return fmt.Errorf("only one diff source can be used, got %s", strings.Join(given, ", "))
	}
	return nil
}
