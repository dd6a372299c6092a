package patch

import "strings"

// Document is the text surface hunks are applied to. Searches always start at
// the beginning of the document.
type Document interface {
	FindFirst(needle string) (int, bool)
	ReplaceAt(pos, length int, replacement string)
}

// Ensure Buffer implements the Document interface
var _ Document = &Buffer{}

// Buffer is an in-memory Document.
type Buffer struct {
	text string
}

func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

func (b *Buffer) FindFirst(needle string) (int, bool) {
	pos := strings.Index(b.text, needle)
	return pos, pos >= 0
}

func (b *Buffer) ReplaceAt(pos, length int, replacement string) {
	b.text = b.text[:pos] + replacement + b.text[pos+length:]
}

func (b *Buffer) String() string {
	return b.text
}
