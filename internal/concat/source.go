package concat

import (
	"github.com/dshills/cellsync/internal/protocol"
)

// TextSource is the capability shared by anything with lines and
// offsets: a full concatenation, or a single standalone fragment.
// Callers that only need text geometry depend on this interface rather
// than a concrete type.
type TextSource interface {
	URI() protocol.DocumentURI
	LanguageID() string
	Version() int
	Text() string
	Len() int
	LineCount() int
	LineText(number int) string
	PositionAt(offset int) (protocol.Position, bool)
	OffsetAt(pos protocol.Position) (int, bool)
}

// PositionAt converts a concatenated byte offset to a position.
func (c *Concat) PositionAt(offset int) (protocol.Position, bool) {
	return positionForOffset(c.lines, offset)
}

// OffsetAt converts a concatenated position to a byte offset.
func (c *Concat) OffsetAt(pos protocol.Position) (int, bool) {
	return offsetForPosition(c.lines, pos)
}

// SingleFragment is the TextSource over one standalone fragment's text,
// with no synthetic content and identical real and concatenated axes.
type SingleFragment struct {
	uri        protocol.DocumentURI
	languageID string
	version    int
	text       string
	lines      []Line
}

// NewSingleFragment wraps one fragment as a TextSource.
func NewSingleFragment(uri protocol.DocumentURI, languageID string, version int, text string) *SingleFragment {
	text = normalizeFragmentText(text)
	return &SingleFragment{
		uri:        uri,
		languageID: languageID,
		version:    version,
		text:       text,
		lines:      buildConcatLines([]span{{fragment: string(uri), text: text, realText: text, end: len(text), realEnd: len(text)}}),
	}
}

// URI returns the fragment's identifier.
func (f *SingleFragment) URI() protocol.DocumentURI { return f.uri }

// LanguageID returns the fragment's language tag.
func (f *SingleFragment) LanguageID() string { return f.languageID }

// Version returns the fragment's revision.
func (f *SingleFragment) Version() int { return f.version }

// Text returns the fragment text.
func (f *SingleFragment) Text() string { return f.text }

// Len returns the text length in bytes.
func (f *SingleFragment) Len() int { return len(f.text) }

// LineCount returns the number of lines.
func (f *SingleFragment) LineCount() int { return len(f.lines) }

// LineText returns one line without its terminator.
func (f *SingleFragment) LineText(number int) string {
	if number < 0 || number >= len(f.lines) {
		return ""
	}
	return f.lines[number].Text
}

// PositionAt converts a byte offset to a position.
func (f *SingleFragment) PositionAt(offset int) (protocol.Position, bool) {
	return positionForOffset(f.lines, offset)
}

// OffsetAt converts a position to a byte offset.
func (f *SingleFragment) OffsetAt(pos protocol.Position) (int, bool) {
	return offsetForPosition(f.lines, pos)
}

var (
	_ TextSource = (*Concat)(nil)
	_ TextSource = (*SingleFragment)(nil)
)
