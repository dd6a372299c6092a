package patch

import (
	"fmt"

	"go.uber.org/zap"
)

// Result summarizes a fully applied diff.
type Result struct {
	HunksApplied       int `json:"hunks_applied"`
	HunksUsingFallback int `json:"hunks_using_fallback"`
}

// HunkMatchError reports the first hunk whose before-text could not be found,
// by its 1-based position in the diff.
type HunkMatchError struct {
	Index int
}

func (e *HunkMatchError) Error() string {
	return fmt.Sprintf("hunk #%d: could not locate before-text in document", e.Index)
}

type Applier struct {
	log *zap.SugaredLogger
}

type Option func(*Applier)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *Applier) {
		if l != nil {
			a.log = l
		}
	}
}

func NewApplier(opts ...Option) *Applier {
	a := &Applier{log: zap.S()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply replaces the first occurrence of each hunk's before-text with its
// after-text, hunk by hunk. A hunk whose strict rendering is missing is retried
// with relaxed context rendering. Application stops at the first hunk that
// cannot be located; hunks already applied stay applied.
func (a *Applier) Apply(doc Document, hunks []Hunk) (Result, error) {
	var result Result

	for i, h := range hunks {
		index := i + 1

		if a.replace(doc, h, false) {
			a.log.Debugf("hunk #%d: applied", index)
			result.HunksApplied++
			continue
		}

		if a.replace(doc, h, true) {
			a.log.Debugf("hunk #%d: applied with relaxed context", index)
			result.HunksApplied++
			result.HunksUsingFallback++
			continue
		}

		a.log.Debugf("hunk #%d: before-text not found", index)
		return Result{}, &HunkMatchError{Index: index}
	}

	return result, nil
}

func (a *Applier) replace(doc Document, h Hunk, relaxed bool) bool {
	before := Render(h.Before, relaxed)

	pos, ok := doc.FindFirst(before)
	if !ok {
		return false
	}

	doc.ReplaceAt(pos, len(before), Render(h.After, relaxed))
	return true
}

// Apply applies hunks to doc with the default logger.
func Apply(doc Document, hunks []Hunk) (Result, error) {
	return NewApplier().Apply(doc, hunks)
}

// ApplyString parses diff and applies it to text. On a HunkMatchError the
// returned text still carries the hunks applied before the failing one.
func ApplyString(text, diff string) (string, Result, error) {
	buf := NewBuffer(text)
	result, err := Apply(buf, Parse(diff))
	return buf.String(), result, err
}
