package tune

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
)

// line is one physical line of the input.
type line struct {
	Number int
	// Text is the line trimmed of surrounding whitespace and lower-cased.
	Text  string
	Range hcl.Range
}

// blank reports whether the line has no content.
func (l line) blank() bool {
	return l.Text == ""
}

// comment reports whether the line starts with '#'.
func (l line) comment() bool {
	return strings.HasPrefix(l.Text, "#")
}

// closes reports whether the line ends the current block.
func (l line) closes() bool {
	return strings.HasPrefix(l.Text, "}")
}

// cursor is a forward-only iterator over the lines of a file.
type cursor struct {
	lines []line
	pos   int
}

func newCursor(filename string, src []byte) *cursor {
	var lines []line
	offset := 0
	for n := 1; offset < len(src); n++ {
		end := bytes.IndexByte(src[offset:], '\n')
		next := len(src)
		if end >= 0 {
			end += offset
			next = end + 1
		} else {
			end = len(src)
		}
		raw := src[offset:end]
		raw = bytes.TrimSuffix(raw, []byte("\r"))
		lines = append(lines, line{
			Number: n,
			Text:   strings.ToLower(strings.TrimSpace(string(raw))),
			Range: hcl.Range{
				Filename: filename,
				Start:    hcl.Pos{Line: n, Column: 1, Byte: offset},
				End:      hcl.Pos{Line: n, Column: utf8.RuneCount(raw) + 1, Byte: offset + len(raw)},
			},
		})
		offset = next
	}
	return &cursor{lines: lines}
}

// next returns the next line and advances, or false at end of input.
func (c *cursor) next() (line, bool) {
	if c.pos >= len(c.lines) {
		return line{}, false
	}
	l := c.lines[c.pos]
	c.pos++
	return l, true
}

