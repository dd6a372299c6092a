package history

import (
	"errors"
	"fmt"
	"github.com/kardolus/quickpatch/internal"
	"os"
	"strings"
	"time"
)

const (
	idPrefix   = "diff_"
	maxPreview = 60
)

var ErrNoEntry = errors.New("no such history entry")

type Manager struct {
	store Store
	size  int
	now   func() time.Time
}

func NewManager(store Store, size int) *Manager {
	return &Manager{store: store, size: size, now: time.Now}
}

func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Add records an applied diff as the most recent entry, dropping the oldest
// entries beyond the configured size.
func (m *Manager) Add(target, diff string, hunks, fallback int) (Entry, error) {
	entry := Entry{
		ID:        internal.GenerateUniqueSlug(idPrefix),
		Target:    target,
		Diff:      diff,
		Hunks:     hunks,
		Fallback:  fallback,
		Timestamp: m.now(),
	}

	err := m.store.Update(func(entries []Entry) []Entry {
		result := append([]Entry{entry}, entries...)
		if m.size > 0 && len(result) > m.size {
			result = result[:m.size]
		}
		return result
	})
	if err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// List returns all entries, most recent first. A missing history file is an
// empty history.
func (m *Manager) List() ([]Entry, error) {
	entries, err := m.store.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, err
	}

	return entries, nil
}

// Get returns the n-th most recent entry, starting at 1.
func (m *Manager) Get(n int) (Entry, error) {
	entries, err := m.List()
	if err != nil {
		return Entry{}, err
	}

	if n < 1 || n > len(entries) {
		return Entry{}, fmt.Errorf("%w: %d (history holds %d)", ErrNoEntry, n, len(entries))
	}

	return entries[n-1], nil
}

func (m *Manager) Clear() error {
	return m.store.Delete()
}

// Print renders one line per entry: its position, timestamp, target, hunk
// counts and the first changed line of the diff.
func (m *Manager) Print() (string, error) {
	entries, err := m.List()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, entry := range entries {
		target := entry.Target
		if target == "" {
			target = "<stdin>"
		}

		sb.WriteString(fmt.Sprintf("%2d  [%s]  %s  %d hunk(s)", i+1, entry.Timestamp.Format("2006-01-02 15:04:05"), target, entry.Hunks))
		if entry.Fallback > 0 {
			sb.WriteString(fmt.Sprintf(", %d fallback", entry.Fallback))
		}
		if summary := summarize(entry.Diff); summary != "" {
			sb.WriteString("  " + summary)
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func summarize(diff string) string {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "+") {
			line = strings.TrimSpace(line)
			if runes := []rune(line); len(runes) > maxPreview {
				line = string(runes[:maxPreview]) + "..."
			}
			return line
		}
	}
	return ""
}
