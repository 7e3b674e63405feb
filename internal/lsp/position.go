package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yacobolo/cssguide/internal/token"
)

// byteOffsetToUTF16 converts a byte offset within s to UTF-16 code units.
// Offsets past the end clamp to the length of s.
func byteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	units := 0
	for i := 0; i < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > byteOffset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}

// lineIndex maps 1-based byte positions to 0-based UTF-16 protocol positions.
type lineIndex struct {
	lines []string
}

func newLineIndex(text string) lineIndex {
	return lineIndex{lines: strings.Split(text, "\n")}
}

// position converts a source position. Lines past the end clamp to the end
// of the document.
func (idx lineIndex) position(p token.Position) protocol.Position {
	line := p.Line - 1
	if line < 0 {
		return protocol.Position{}
	}
	if line >= len(idx.lines) {
		return idx.end()
	}
	text := strings.TrimSuffix(idx.lines[line], "\r")
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(byteOffsetToUTF16(text, p.Column-1)),
	}
}

// end is the position just past the last character.
func (idx lineIndex) end() protocol.Position {
	last := len(idx.lines) - 1
	return protocol.Position{
		Line:      protocol.UInteger(last),
		Character: protocol.UInteger(byteOffsetToUTF16(idx.lines[last], len(idx.lines[last]))),
	}
}

// rangeOf returns the range for a start and optional end position. Without
// an end the range covers one character, or nothing at the end of a line.
func (idx lineIndex) rangeOf(start, end token.Position) protocol.Range {
	from := idx.position(start)
	if end.IsValid() && start.Before(end) {
		return protocol.Range{Start: from, End: idx.position(end)}
	}

	to := from
	line := int(from.Line)
	if line < len(idx.lines) {
		text := strings.TrimSuffix(idx.lines[line], "\r")
		if int(from.Character) < byteOffsetToUTF16(text, len(text)) {
			to.Character++
		}
	}
	return protocol.Range{Start: from, End: to}
}
