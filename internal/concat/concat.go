package concat

import (
	"strings"

	"github.com/dshills/cellsync/internal/logging"
	"github.com/dshills/cellsync/internal/protocol"
)

// LanguageID is the fixed language tag of every concatenated document.
const LanguageID = "python"

// Fragment is one independently-editable unit of text as supplied by
// the host: a notebook cell or the interactive input box.
type Fragment struct {
	URI        string
	LanguageID string
	Version    int
	Text       string
}

// fragmentMeta tracks the host-supplied attributes of an open fragment.
type fragmentMeta struct {
	languageID string
	version    int
}

// Concat is the concatenation engine for one owner document. It owns
// the span arena and the derived line indexes, applies mutations
// serially, and reports minimal content changes. Not safe for
// concurrent use; callers serialize access (see registry).
type Concat struct {
	uri         protocol.DocumentURI
	ownerPath   string
	interactive bool
	version     int

	spans     []span
	lines     []Line
	realLines map[string][]Line
	meta      map[string]fragmentMeta

	// Fragment set at the previous RemapDiagnostics call, used to emit
	// explicit empty diagnostic lists for fragments that disappeared.
	lastDiagnosed map[string]struct{}

	logger *logging.Logger
}

// Option configures a Concat instance.
type Option func(*Concat)

// WithInteractive marks the concatenation as an interactive transcript.
// Interactive transcripts never close fragments and cannot be
// refreshed: history is retained even after its originating cell is
// notionally gone.
func WithInteractive() Option {
	return func(c *Concat) {
		c.interactive = true
	}
}

// WithLogger sets the logger used for degraded-mode reporting.
func WithLogger(l *logging.Logger) Option {
	return func(c *Concat) {
		c.logger = l
	}
}

// New creates the concatenation for an owner document path. The
// synthetic URI is derived deterministically from the path.
func New(ownerPath string, opts ...Option) *Concat {
	c := &Concat{
		uri:           DeriveURI(ownerPath),
		ownerPath:     ownerPath,
		realLines:     make(map[string][]Line),
		meta:          make(map[string]fragmentMeta),
		lastDiagnosed: make(map[string]struct{}),
		logger:        logging.Null,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("concat")
	return c
}

// URI returns the stable synthetic URI of the concatenated document.
func (c *Concat) URI() protocol.DocumentURI { return c.uri }

// OwnerPath returns the owner document path the URI was derived from.
func (c *Concat) OwnerPath() string { return c.ownerPath }

// Version returns the monotonically increasing document version.
func (c *Concat) Version() int { return c.version }

// Interactive reports whether this is an interactive transcript.
func (c *Concat) Interactive() bool { return c.interactive }

// Closed reports whether the span list is empty.
func (c *Concat) Closed() bool { return len(c.spans) == 0 }

// LanguageID returns the fixed language tag of the document.
func (c *Concat) LanguageID() string { return LanguageID }

// Len returns the total concatenated text length in bytes.
func (c *Concat) Len() int {
	if len(c.spans) == 0 {
		return 0
	}
	return c.spans[len(c.spans)-1].end
}

// LineCount returns the number of concatenated lines.
func (c *Concat) LineCount() int { return len(c.lines) }

// Lines returns a copy of the concatenated line records.
func (c *Concat) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// LineText returns one concatenated line without its terminator.
func (c *Concat) LineText(number int) string {
	if number < 0 || number >= len(c.lines) {
		return ""
	}
	return c.lines[number].Text
}

// Text reconstructs the full concatenated text.
func (c *Concat) Text() string {
	var b strings.Builder
	b.Grow(c.Len())
	for _, s := range c.spans {
		b.WriteString(s.text)
	}
	return b.String()
}

// RealText reconstructs the union of all fragment text in document
// order, excluding synthetic content.
func (c *Concat) RealText() string {
	var b strings.Builder
	for _, s := range c.spans {
		b.WriteString(s.realText)
	}
	return b.String()
}

// FragmentURIs returns the open fragment URIs in document order.
func (c *Concat) FragmentURIs() []string {
	var uris []string
	seen := make(map[string]struct{})
	for _, s := range c.spans {
		if s.fragment == "" {
			continue
		}
		if _, ok := seen[s.fragment]; ok {
			continue
		}
		seen[s.fragment] = struct{}{}
		uris = append(uris, s.fragment)
	}
	return uris
}

// FragmentVersion returns the host-supplied revision of a fragment.
func (c *Concat) FragmentVersion(uri string) (int, bool) {
	m, ok := c.meta[uri]
	return m.version, ok
}

// fragmentSpanRange locates the contiguous run of spans belonging to a
// fragment.
func (c *Concat) fragmentSpanRange(uri string) (first, last int, ok bool) {
	first = -1
	for i, s := range c.spans {
		if s.fragment != uri {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last, first >= 0
}

// fragmentText reconstructs a fragment's concatenated and real text
// from its span run.
func (c *Concat) fragmentText(first, last int) (text, realText string) {
	var tb, rb strings.Builder
	for i := first; i <= last; i++ {
		tb.WriteString(c.spans[i].text)
		rb.WriteString(c.spans[i].realText)
	}
	return tb.String(), rb.String()
}

// didChange wraps a change set in the outbound notification payload.
func (c *Concat) didChange(changes ...protocol.ContentChange) *protocol.DidChangeParams {
	return &protocol.DidChangeParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: c.uri},
			Version:                c.version,
		},
		Changes: changes,
	}
}

// Open adds a fragment to the concatenation at the position implied by
// its order key. The first open injects the import header. Opening an
// already-open fragment is a no-op. The returned change describes the
// insertion (zero-length deletion), including the header when it was
// just injected.
func (c *Concat) Open(uri, text string, version int, languageID string) *protocol.DidChangeParams {
	return c.open(uri, text, version, languageID, false)
}

// OpenAppend is Open with the insertion point forced to the end of the
// span list, used when replaying a host-supplied fragment order.
func (c *Concat) OpenAppend(uri, text string, version int, languageID string) *protocol.DidChangeParams {
	return c.open(uri, text, version, languageID, true)
}

func (c *Concat) open(uri, text string, version int, languageID string, forceAppend bool) *protocol.DidChangeParams {
	if _, _, ok := c.fragmentSpanRange(uri); ok {
		c.logger.Debug("open ignored, fragment already open: %s", uri)
		return nil
	}

	oldLines := c.lines
	injectHeader := len(c.spans) == 0

	spans := make([]span, len(c.spans), len(c.spans)+4)
	copy(spans, c.spans)
	if injectHeader {
		spans = append(spans, headerSpan(0))
	}

	order := FragmentOrder(uri)
	idx := len(spans)
	if !forceAppend {
		for i, s := range spans {
			if s.fragment == "" {
				continue
			}
			if orderSortsAfter(s.order, order) {
				idx = i
				break
			}
		}
	}

	concatStart := 0
	if idx > 0 {
		concatStart = spans[idx-1].end
	}

	newSpans := splitFragment(uri, order, normalizeFragmentText(text), concatStart)
	var inserted strings.Builder
	for _, s := range newSpans {
		inserted.WriteString(s.text)
	}

	spans = append(spans[:idx:idx], append(newSpans, spans[idx:]...)...)
	shiftSpans(spans, idx+len(newSpans), inserted.Len())

	// The reported range is in pre-open coordinates: the insertion point
	// before the header existed is the document origin.
	insertOffset := concatStart
	insertText := inserted.String()
	if injectHeader {
		insertOffset = 0
		insertText = HeaderText + insertText
	}
	pos, ok := positionForOffset(oldLines, insertOffset)
	if !ok {
		c.logger.Warn("open: insertion offset %d outside document, fragment %s", insertOffset, uri)
		return nil
	}

	c.spans = spans
	c.meta[uri] = fragmentMeta{languageID: languageID, version: version}
	c.version++
	c.recomputeLines()

	return c.didChange(protocol.ContentChange{
		Range:       protocol.Range{Start: pos, End: pos},
		RangeOffset: insertOffset,
		RangeLength: 0,
		Text:        insertText,
	})
}

// Change applies an incremental edit to a fragment, expressed in the
// fragment's own line/character coordinates, and reports the minimal
// resulting edit to the concatenated document. A change referencing an
// unknown fragment or an out-of-range position degrades to nil with
// the prior state intact.
func (c *Concat) Change(uri string, rng protocol.Range, newText string) *protocol.DidChangeParams {
	first, last, ok := c.fragmentSpanRange(uri)
	if !ok {
		c.logger.Debug("change ignored, fragment not open: %s", uri)
		return nil
	}

	oldFragText, oldRealText := c.fragmentText(first, last)
	realLines := c.realLines[uri]

	startOff, ok1 := offsetForPosition(realLines, rng.Start)
	endOff, ok2 := offsetForPosition(realLines, rng.End)
	if !ok1 || !ok2 || startOff > endOff || endOff > len(oldRealText) {
		c.logger.Warn("change dropped, range %v out of bounds for fragment %s", rng, uri)
		return nil
	}

	newRealText := normalizeFragmentText(oldRealText[:startOff] + newText + oldRealText[endOff:])

	concatStart := c.spans[first].start
	newSpans := splitFragment(uri, c.spans[first].order, newRealText, concatStart)
	var nb strings.Builder
	for _, s := range newSpans {
		nb.WriteString(s.text)
	}
	newFragText := nb.String()

	prefix, oldMid, newMid := trimCommon(oldFragText, newFragText)

	var change *protocol.ContentChange
	if oldFragText != newFragText {
		absStart := concatStart + prefix
		absOldEnd := concatStart + oldMid
		startPos, ok1 := positionForOffset(c.lines, absStart)
		endPos, ok2 := positionForOffset(c.lines, absOldEnd)
		if !ok1 || !ok2 {
			c.logger.Warn("change dropped, concatenated offsets unresolvable for fragment %s", uri)
			return nil
		}
		change = &protocol.ContentChange{
			Range:       protocol.Range{Start: startPos, End: endPos},
			RangeOffset: absStart,
			RangeLength: absOldEnd - absStart,
			Text:        newFragText[prefix:newMid],
		}
	}

	// Commit: everything above operated on copies of the edited
	// fragment's state only.
	spans := make([]span, 0, len(c.spans)-(last-first+1)+len(newSpans))
	spans = append(spans, c.spans[:first]...)
	spans = append(spans, newSpans...)
	tail := len(spans)
	spans = append(spans, c.spans[last+1:]...)
	shiftSpans(spans, tail, len(newFragText)-len(oldFragText))

	c.spans = spans
	if m, ok := c.meta[uri]; ok {
		m.version++
		c.meta[uri] = m
	}
	c.recomputeLines()

	if change == nil {
		return nil
	}
	c.version++
	return c.didChange(*change)
}

// Close removes a fragment and all of its spans. Closing an unknown
// fragment is a no-op, as is any close on an interactive transcript.
// When only the header would remain it is removed as part of the same
// deletion, leaving the concatenation closed.
func (c *Concat) Close(uri string) *protocol.DidChangeParams {
	if c.interactive {
		c.logger.Debug("close ignored on interactive transcript: %s", uri)
		return nil
	}

	first, last, ok := c.fragmentSpanRange(uri)
	if !ok {
		return nil
	}

	remStart := c.spans[first].start
	remEnd := c.spans[last].end

	// Detect a header-only remainder.
	headerOnly := true
	for i, s := range c.spans {
		if i >= first && i <= last {
			continue
		}
		if s.fragment != "" {
			headerOnly = false
			break
		}
	}
	if headerOnly {
		first, last = 0, len(c.spans)-1
		remStart, remEnd = 0, c.Len()
	}

	startPos, ok1 := positionForOffset(c.lines, remStart)
	endPos, ok2 := positionForOffset(c.lines, remEnd)
	if !ok1 || !ok2 {
		c.logger.Warn("close dropped, span range unresolvable for fragment %s", uri)
		return nil
	}

	spans := make([]span, 0, len(c.spans)-(last-first+1))
	spans = append(spans, c.spans[:first]...)
	tail := len(spans)
	spans = append(spans, c.spans[last+1:]...)
	shiftSpans(spans, tail, -(remEnd - remStart))

	c.spans = spans
	delete(c.meta, uri)
	c.version++
	c.recomputeLines()

	return c.didChange(protocol.ContentChange{
		Range:       protocol.Range{Start: startPos, End: endPos},
		RangeOffset: remStart,
		RangeLength: remEnd - remStart,
		Text:        "",
	})
}

// Refresh re-derives the concatenation from a freshly supplied, possibly
// reordered, full fragment list. A refresh whose order-normalized real
// content matches the current content is a no-op; otherwise the engine
// rebuilds from scratch and reports one coarse change replacing the
// entire old range. Not applicable to interactive transcripts.
func (c *Concat) Refresh(fragments []Fragment) *protocol.DidChangeParams {
	if c.interactive {
		c.logger.Debug("refresh ignored on interactive transcript")
		return nil
	}

	var wb strings.Builder
	for _, f := range fragments {
		wb.WriteString(normalizeFragmentText(f.Text))
	}
	if wb.String() == c.RealText() {
		return nil
	}

	oldLen := c.Len()
	oldEnd := protocol.Position{Line: len(c.lines)}
	if oldLen == 0 {
		oldEnd = protocol.Position{}
	}

	c.spans = nil
	c.meta = make(map[string]fragmentMeta)
	for _, f := range fragments {
		if len(c.spans) == 0 {
			c.spans = append(c.spans, headerSpan(0))
		}
		concatStart := 0
		if n := len(c.spans); n > 0 {
			concatStart = c.spans[n-1].end
		}
		text := normalizeFragmentText(f.Text)
		c.spans = append(c.spans, splitFragment(f.URI, FragmentOrder(f.URI), text, concatStart)...)
		c.meta[f.URI] = fragmentMeta{languageID: f.LanguageID, version: f.Version}
	}

	c.version++
	c.recomputeLines()

	return c.didChange(protocol.ContentChange{
		Range:       protocol.Range{Start: protocol.Position{}, End: oldEnd},
		RangeOffset: 0,
		RangeLength: oldLen,
		Text:        c.Text(),
	})
}
