package concat

import (
	"sort"
	"strings"

	"github.com/dshills/cellsync/internal/protocol"
)

// Line is one derived line record. For concatenated lines Number and
// Offset are document global; for real lines they are local to the
// owning fragment. Text excludes the line terminator.
type Line struct {
	Fragment string
	Number   int
	Offset   int
	Text     string
}

// recomputeLines rebuilds both derived line slices from the span arena.
// O(total span text length); invoked once per mutation, never per query.
func (c *Concat) recomputeLines() {
	c.lines = buildConcatLines(c.spans)
	c.realLines = buildRealLines(c.spans)
}

// buildConcatLines derives the concatenated line slice. Consecutive
// spans of one fragment are accumulated and split on terminators; a
// trailing terminator closes the final line rather than opening an
// empty one. Every fragment run (and the header) ends in a terminator,
// so lines never straddle fragments.
func buildConcatLines(spans []span) []Line {
	var lines []Line
	number := 0
	offset := 0

	flush := func(fragment, text string) {
		for _, lineText := range splitTerminated(text) {
			lines = append(lines, Line{
				Fragment: fragment,
				Number:   number,
				Offset:   offset,
				Text:     lineText,
			})
			number++
			offset += len(lineText) + 1
		}
	}

	for i := 0; i < len(spans); {
		j := i
		var b strings.Builder
		for j < len(spans) && spans[j].fragment == spans[i].fragment {
			b.WriteString(spans[j].text)
			j++
		}
		flush(spans[i].fragment, b.String())
		i = j
	}

	return lines
}

// buildRealLines derives the fragment-local line slices from real span
// text only. Numbering and offsets restart at every fragment.
func buildRealLines(spans []span) map[string][]Line {
	realLines := make(map[string][]Line)

	for i := 0; i < len(spans); {
		j := i
		var b strings.Builder
		for j < len(spans) && spans[j].fragment == spans[i].fragment {
			b.WriteString(spans[j].realText)
			j++
		}
		if fragment := spans[i].fragment; fragment != "" {
			var group []Line
			offset := 0
			for number, lineText := range splitTerminated(b.String()) {
				group = append(group, Line{
					Fragment: fragment,
					Number:   number,
					Offset:   offset,
					Text:     lineText,
				})
				offset += len(lineText) + 1
			}
			realLines[fragment] = group
		}
		i = j
	}

	return realLines
}

// splitTerminated splits text into lines without terminators. A
// trailing terminator does not produce a final empty line.
func splitTerminated(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// linesTotalLen returns the total text length covered by a
// terminator-closed line slice.
func linesTotalLen(lines []Line) int {
	if len(lines) == 0 {
		return 0
	}
	last := lines[len(lines)-1]
	return last.Offset + len(last.Text) + 1
}

// positionForOffset converts a byte offset to a line/character position
// over a terminator-closed line slice. The end-of-text offset converts
// to the position after the final line. Character columns are UTF-16.
func positionForOffset(lines []Line, off int) (protocol.Position, bool) {
	if off < 0 {
		return protocol.Position{}, false
	}
	total := linesTotalLen(lines)
	if off > total {
		return protocol.Position{}, false
	}
	if off == total {
		return protocol.Position{Line: len(lines)}, true
	}

	i := sort.Search(len(lines), func(i int) bool {
		return lines[i].Offset > off
	}) - 1
	line := lines[i]

	delta := off - line.Offset
	if delta > len(line.Text) {
		delta = len(line.Text) // on the terminator
	}
	return protocol.Position{
		Line:      line.Number,
		Character: protocol.ByteToUTF16Offset(line.Text, delta),
	}, true
}

// offsetForPosition converts a line/character position to a byte offset
// over a terminator-closed line slice. The line just past the final one
// addresses the end of text; character columns are clamped to the line.
func offsetForPosition(lines []Line, pos protocol.Position) (int, bool) {
	if pos.Line < 0 || pos.Line > len(lines) {
		return 0, false
	}
	if pos.Line == len(lines) {
		return linesTotalLen(lines), true
	}

	line := lines[pos.Line]
	byteChar := protocol.UTF16ToByteOffset(line.Text, pos.Character)
	return line.Offset + byteChar, true
}
