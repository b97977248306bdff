package concat

import (
	"strings"
)

// HeaderText is the synthetic import header injected before any real
// content on the first open of a concatenation. It keeps the implicit
// IPython environment importable for tooling that analyzes the merged
// document and has zero length on the real axis.
const HeaderText = "import IPython\n"

// TypeIgnoreSuffix is the synthetic annotation spliced in between a
// special-syntax line and its terminator so analyzers skip the line.
const TypeIgnoreSuffix = " # type: ignore"

// span is the atomic unit of the concatenation. It covers either a
// contiguous slice of one fragment's text (real) or engine-injected
// text (synthetic). Offsets on the concatenated axis are document
// global; offsets on the real axis are local to the owning fragment.
// Synthetic spans never advance the real axis (realStart == realEnd).
type span struct {
	fragment  string // owning fragment URI; "" for the header
	order     int    // order key; OrderInteractiveInput sorts last
	synthetic bool

	start, end         int // concatenated byte offsets
	realStart, realEnd int // fragment-local byte offsets

	text     string // text on the concatenated axis
	realText string // covered fragment text; "" when synthetic
}

// isSpecialLine reports whether a fragment line uses IPython-only
// syntax that must be annotated in the concatenated document: shell
// escapes (!), magic commands (%), and top-level await expressions.
func isSpecialLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return false
	}
	if trimmed[0] == '!' || trimmed[0] == '%' {
		return true
	}
	if rest, ok := strings.CutPrefix(trimmed, "await"); ok {
		return rest != "" && (rest[0] == ' ' || rest[0] == '\t' || rest[0] == '(')
	}
	return false
}

// normalizeFragmentText guarantees the working text of a fragment ends
// with exactly one terminator. The appended terminator belongs to the
// real axis, so a fragment's real length may exceed the host-supplied
// text length by one.
func normalizeFragmentText(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// splitFragment derives the span run for one fragment. The text must be
// normalized. Every special-syntax line closes the current real span at
// its content end and is followed by a synthetic annotation span; the
// real axis resumes at the line terminator.
func splitFragment(fragment string, order int, text string, concatStart int) []span {
	var spans []span
	concatPos := concatStart
	segStart := 0

	appendReal := func(from, to int) {
		if from >= to {
			return
		}
		seg := text[from:to]
		spans = append(spans, span{
			fragment:  fragment,
			order:     order,
			start:     concatPos,
			end:       concatPos + len(seg),
			realStart: from,
			realEnd:   to,
			text:      seg,
			realText:  seg,
		})
		concatPos += len(seg)
	}

	lineStart := 0
	for lineStart < len(text) {
		nl := strings.IndexByte(text[lineStart:], '\n')
		if nl < 0 {
			break
		}
		contentEnd := lineStart + nl
		if isSpecialLine(text[lineStart:contentEnd]) {
			appendReal(segStart, contentEnd)
			spans = append(spans, span{
				fragment:  fragment,
				order:     order,
				synthetic: true,
				start:     concatPos,
				end:       concatPos + len(TypeIgnoreSuffix),
				realStart: contentEnd,
				realEnd:   contentEnd,
				text:      TypeIgnoreSuffix,
			})
			concatPos += len(TypeIgnoreSuffix)
			segStart = contentEnd
		}
		lineStart = contentEnd + 1
	}
	appendReal(segStart, len(text))

	return spans
}

// headerSpan builds the synthetic import header span at the given
// concatenated offset.
func headerSpan(at int) span {
	return span{
		synthetic: true,
		start:     at,
		end:       at + len(HeaderText),
		text:      HeaderText,
	}
}

// orderSortsAfter reports whether a span with order key existing sorts
// strictly after a fragment with order key candidate. The interactive
// input sentinel sorts after every cell key.
func orderSortsAfter(existing, candidate int) bool {
	if existing == OrderInteractiveInput {
		return candidate != OrderInteractiveInput
	}
	if candidate == OrderInteractiveInput {
		return false
	}
	return existing > candidate
}

// shiftSpans moves the concatenated offsets of spans[from:] by delta.
// The real axis is fragment local and never shifts across fragments.
func shiftSpans(spans []span, from, delta int) {
	for i := from; i < len(spans); i++ {
		spans[i].start += delta
		spans[i].end += delta
	}
}
