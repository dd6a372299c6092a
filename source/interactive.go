package source

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kardolus/quickpatch/config"
)

var ErrAborted = errors.New("interactive input aborted")

// LineReader is the part of a readline instance used for pasting diffs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Ensure readline satisfies LineReader
var _ LineReader = &readline.Instance{}

type Prompt struct {
	reader     LineReader
	prompt     string
	terminator string
	now        func() time.Time
}

// NewPrompt returns a Prompt reading from the terminal.
func NewPrompt(prompt, terminator string) (*Prompt, func() error, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 config.FormatPrompt(prompt, 1, time.Now()),
		DisableAutoSaveHistory: true,
		HistoryLimit:           -1,
		InterruptPrompt:        "^C",
		EOFPrompt:              "",
	})
	if err != nil {
		return nil, nil, err
	}

	return NewPromptWithReader(rl, prompt, terminator), rl.Close, nil
}

func NewPromptWithReader(reader LineReader, prompt, terminator string) *Prompt {
	return &Prompt{
		reader:     reader,
		prompt:     prompt,
		terminator: terminator,
		now:        time.Now,
	}
}

// ReadDiff collects pasted lines until the terminator line or EOF.
func (p *Prompt) ReadDiff() (string, error) {
	var lines []string

	for {
		p.reader.SetPrompt(config.FormatPrompt(p.prompt, len(lines)+1, p.now()))

		line, err := p.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrAborted
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		if p.terminator != "" && line == p.terminator {
			break
		}
		lines = append(lines, line)
	}

	diff := strings.Join(lines, "\n")
	if strings.TrimSpace(diff) == "" {
		return "", ErrEmptyDiff
	}

	return diff + "\n", nil
}
