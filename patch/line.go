package patch

// Flag classifies a diff line by its leading marker.
type Flag int

const (
	Context Flag = iota
	Removed
	Added
)

func (f Flag) String() string {
	switch f {
	case Context:
		return "context"
	case Removed:
		return "removed"
	case Added:
		return "added"
	default:
		return "unknown"
	}
}

// Line is a single diff line with its marker stripped.
type Line struct {
	Text string
	Flag Flag
}

// Hunk pairs the lines a change expects to find with the lines that replace them.
// Context lines appear on both sides, in diff order.
type Hunk struct {
	Before []Line
	After  []Line
}

func flagFor(marker byte) (Flag, bool) {
	switch marker {
	case ' ':
		return Context, true
	case '-':
		return Removed, true
	case '+':
		return Added, true
	}
	return 0, false
}

// Reverse swaps the before and after side of every hunk, keeping hunk order.
func Reverse(hunks []Hunk) []Hunk {
	result := make([]Hunk, 0, len(hunks))

	for _, h := range hunks {
		result = append(result, Hunk{
			Before: swapFlags(h.After),
			After:  swapFlags(h.Before),
		})
	}

	return result
}

func swapFlags(lines []Line) []Line {
	if lines == nil {
		return nil
	}

	result := make([]Line, len(lines))
	for i, l := range lines {
		switch l.Flag {
		case Added:
			l.Flag = Removed
		case Removed:
			l.Flag = Added
		}
		result[i] = l
	}

	return result
}
