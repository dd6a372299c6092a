package patch

import "strings"

const (
	oldFileHeader = "--- "
	newFileHeader = "+++ "
	hunkMarker    = "@@"
)

// Parse turns raw diff text into hunks, in the order they appear.
//
// Parsing is permissive: file headers are skipped, "@@" lines only delimit hunks
// (their line ranges are ignored) and anything that is not a content line is
// dropped. A patch without "@@" markers becomes a single hunk.
func Parse(diff string) []Hunk {
	var (
		hunks         []Hunk
		before, after []Line
		inHunk        bool
	)

	for _, line := range splitLines(diff) {
		switch {
		case strings.HasPrefix(line, oldFileHeader), strings.HasPrefix(line, newFileHeader):
			continue
		case strings.HasPrefix(line, hunkMarker):
			if inHunk {
				hunks = append(hunks, Hunk{Before: before, After: after})
				before, after = nil, nil
			}
			inHunk = true
			continue
		}

		flag, ok := flagFor(line[0])
		if !ok {
			continue
		}
		inHunk = true

		l := Line{Text: line[1:], Flag: flag}
		switch flag {
		case Context:
			before = append(before, l)
			after = append(after, l)
		case Removed:
			before = append(before, l)
		case Added:
			after = append(after, l)
		}
	}

	if inHunk {
		hunks = append(hunks, Hunk{Before: before, After: after})
	}

	return hunks
}

// splitLines drops the empty line left by a terminal newline and every
// whitespace-only line.
func splitLines(text string) []string {
	raw := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}
