package patch

import "strings"

// Render flattens lines into newline-joined text. When relaxed is set, every
// context line gets one extra leading space.
func Render(lines []Line, relaxed bool) string {
	var sb strings.Builder

	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if relaxed && l.Flag == Context {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.Text)
	}

	return sb.String()
}
