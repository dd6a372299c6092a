package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/kardolus/quickpatch/cache"
	"github.com/kardolus/quickpatch/config"
	"github.com/kardolus/quickpatch/history"
	"github.com/kardolus/quickpatch/internal"
	"github.com/kardolus/quickpatch/internal/fsio"
	"github.com/kardolus/quickpatch/patch"
	"github.com/kardolus/quickpatch/preview"
	"github.com/kardolus/quickpatch/source"
	"go.uber.org/zap"
)

const stdoutPath = "-"

func runApply(cfg config.Config, target string) error {
	if err := exclusiveSources(); err != nil {
		return err
	}

	reader := &fsio.RealReader{}
	writer := &fsio.RealWriter{}

	if target == "" && (diffFile == stdoutPath || interactive) {
		return errors.New("the diff and the document cannot both come from stdin")
	}

	diff, fromHistory, err := readDiff(cfg, target)
	if err != nil {
		return err
	}

	var document string
	if target != "" {
		data, err := reader.ReadFile(target)
		if err != nil {
			return err
		}
		document = string(data)
	} else {
		document, err = readAll(os.Stdin)
		if err != nil {
			return err
		}
	}

	hunks := patch.Parse(diff)
	if len(hunks) == 0 {
		zap.S().Warn("the diff contains no hunks")
	}
	if reverse {
		hunks = patch.Reverse(hunks)
	}

	buf := patch.NewBuffer(document)
	result, err := patch.NewApplier().Apply(buf, hunks)
	if err != nil {
		return err
	}

	if dryRun {
		name := target
		if name == "" {
			name = "<stdin>"
		}
		fmt.Print(preview.New(cfg.ContextLines, !cfg.NoColor).Render(name, document, buf.String()))
		printSummary(cfg, result, os.Stderr)
		return nil
	}

	patched := buf.String()
	changed := patched != document

	summaryOut := io.Writer(os.Stdout)
	switch {
	case target == "" || outputPath == stdoutPath:
		if _, err := io.WriteString(os.Stdout, patched); err != nil {
			return err
		}
		summaryOut = os.Stderr
	case outputPath != "":
		if err := writer.WriteFile(outputPath, []byte(patched)); err != nil {
			return err
		}
	case !changed:
		zap.S().Debugf("%s is unchanged, leaving it alone", target)
	default:
		if !cfg.DisableBackup {
			if err := saveBackup(target, document); err != nil {
				return fmt.Errorf("failed to back up %s: %w", target, err)
			}
		}
		if err := writer.WriteFile(target, []byte(patched)); err != nil {
			return err
		}
	}

	if changed && !cfg.OmitHistory && !fromHistory {
		if err := recordHistory(cfg, target, diff, result); err != nil {
			zap.S().Warnf("failed to record diff in history: %v", err)
		}
	}

	printSummary(cfg, result, summaryOut)
	return nil
}

// readDiff returns the diff text and whether it was taken from history.
func readDiff(cfg config.Config, target string) (string, bool, error) {
	maxBytes := int64(cfg.MaxDiffBytes)

	switch {
	case diffText != "":
		return diffText, false, nil
	case diffFile == stdoutPath:
		diff, err := source.ReadDiff(os.Stdin, maxBytes)
		return diff, false, err
	case diffFile != "":
		diff, err := source.ReadDiffFile(diffFile, maxBytes)
		return diff, false, err
	case historyIndex != 0:
		hm, err := newHistory(cfg)
		if err != nil {
			return "", false, err
		}
		entry, err := hm.Get(historyIndex)
		if err != nil {
			return "", false, err
		}
		zap.S().Debugf("using diff %s recorded %s", entry.ID, entry.Timestamp.Format("2006-01-02 15:04:05"))
		return entry.Diff, true, nil
	case interactive:
		return readInteractive(cfg)
	case target != "" && !readline.IsTerminal(int(os.Stdin.Fd())):
		diff, err := source.ReadDiff(os.Stdin, maxBytes)
		return diff, false, err
	case target != "":
		return readInteractive(cfg)
	}

	return "", false, source.ErrNoDiff
}

func readInteractive(cfg config.Config) (string, bool, error) {
	prompt, closer, err := source.NewPrompt(cfg.InteractivePrompt, cfg.InteractiveTerminator)
	if err != nil {
		return "", false, err
	}
	defer closer()

	diff, err := prompt.ReadDiff()
	return diff, false, err
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

func printSummary(cfg config.Config, result patch.Result, out io.Writer) {
	if quiet {
		return
	}

	c := color.New(color.FgGreen)
	if cfg.NoColor {
		c.DisableColor()
	}

	msg := fmt.Sprintf("applied %d hunk(s)", result.HunksApplied)
	if result.HunksUsingFallback > 0 {
		msg += fmt.Sprintf(" (%d via whitespace fallback)", result.HunksUsingFallback)
	}
	if dryRun {
		msg = "would have " + msg
	}

	_, _ = c.Fprintln(out, msg)
}

func recordHistory(cfg config.Config, target, diff string, result patch.Result) error {
	hm, err := newHistory(cfg)
	if err != nil {
		return err
	}
	_, err = hm.Add(target, diff, result.HunksApplied, result.HunksUsingFallback)
	return err
}

func saveBackup(target, document string) error {
	backups, err := newBackups()
	if err != nil {
		return err
	}
	return backups.SaveBackup(target, document)
}

func runHistory(cfg config.Config) error {
	hm, err := newHistory(cfg)
	if err != nil {
		return err
	}

	switch {
	case clearHistory:
		if err := hm.Clear(); err != nil {
			return err
		}
		fmt.Println("history cleared")
	case showHistory != 0:
		entry, err := hm.Get(showHistory)
		if err != nil {
			return err
		}
		fmt.Print(entry.Diff)
	default:
		out, err := hm.Print()
		if err != nil {
			return err
		}
		fmt.Print(out)
	}

	return nil
}

func runUndo(target string) error {
	backups, err := newBackups()
	if err != nil {
		return err
	}

	entry, err := backups.GetBackup(target)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no backup found for %s", target)
	}
	if err != nil {
		return err
	}

	if err := (&fsio.RealWriter{}).WriteFile(target, []byte(entry.Content)); err != nil {
		return err
	}
	if err := backups.DeleteBackup(target); err != nil {
		return err
	}

	if !quiet {
		fmt.Printf("restored %s from backup taken %s\n", target, entry.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func newHistory(cfg config.Config) (*history.Manager, error) {
	store, err := history.New()
	if err != nil {
		return nil, fmt.Errorf("failed to locate history: %w", err)
	}
	return history.NewManager(store, cfg.HistorySize), nil
}

func newBackups() (*cache.Cache, error) {
	cacheHome, err := internal.GetCacheHome()
	if err != nil {
		return nil, fmt.Errorf("failed to locate backups: %w", err)
	}
	return cache.New(cache.NewFileStore(cacheHome)), nil
}
