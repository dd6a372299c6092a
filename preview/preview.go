package preview

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const gapMarker = "..."

type line struct {
	op   diffmatchpatch.Operation
	text string
}

// Renderer shows what applying a diff would do to a document, as changed
// lines with a few unchanged lines around them.
type Renderer struct {
	context int

	header  *color.Color
	removed *color.Color
	added   *color.Color
	gap     *color.Color
}

func New(contextLines int, colored bool) *Renderer {
	r := &Renderer{
		context: contextLines,
		header:  color.New(color.Bold),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
		gap:     color.New(color.FgCyan),
	}

	for _, c := range []*color.Color{r.header, r.removed, r.added, r.gap} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

func (r *Renderer) Render(name, before, after string) string {
	lines := diffLines(before, after)

	changed := make([]bool, len(lines))
	anyChange := false
	for i, l := range lines {
		if l.op != diffmatchpatch.DiffEqual {
			changed[i] = true
			anyChange = true
		}
	}

	if !anyChange {
		return fmt.Sprintf("%s: no changes\n", name)
	}

	var sb strings.Builder
	sb.WriteString(r.header.Sprintf("--- %s", name) + "\n")
	sb.WriteString(r.header.Sprintf("+++ %s (patched)", name) + "\n")

	skipped := false
	for i, l := range lines {
		if !r.visible(changed, i) {
			skipped = true
			continue
		}
		if skipped {
			sb.WriteString(r.gap.Sprint(gapMarker) + "\n")
			skipped = false
		}

		switch l.op {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(r.removed.Sprint("-"+l.text) + "\n")
		case diffmatchpatch.DiffInsert:
			sb.WriteString(r.added.Sprint("+"+l.text) + "\n")
		default:
			sb.WriteString(" " + l.text + "\n")
		}
	}
	if skipped {
		sb.WriteString(r.gap.Sprint(gapMarker) + "\n")
	}

	return sb.String()
}

// visible reports whether line i is a change or within context of one.
func (r *Renderer) visible(changed []bool, i int) bool {
	lo, hi := i-r.context, i+r.context
	if lo < 0 {
		lo = 0
	}
	if hi > len(changed)-1 {
		hi = len(changed) - 1
	}

	for j := lo; j <= hi; j++ {
		if changed[j] {
			return true
		}
	}
	return false
}

func diffLines(before, after string) []line {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var result []line
	for _, d := range diffs {
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			result = append(result, line{op: d.Type, text: strings.TrimSuffix(text, "\n")})
		}
	}

	return result
}
