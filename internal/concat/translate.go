package concat

import (
	"sort"

	"github.com/dshills/cellsync/internal/protocol"
)

// Coordinate translation between real (fragment-local) and concatenated
// coordinates. All functions here are read-only and degrade to a zero
// value with ok=false when the input resolves to no known span; callers
// treat an unresolved mapping as "no change" rather than an error.

// spanAt locates the span containing a concatenated byte offset.
func (c *Concat) spanAt(off int) (span, bool) {
	if off < 0 || off >= c.Len() {
		return span{}, false
	}
	i := sort.Search(len(c.spans), func(i int) bool {
		return c.spans[i].start > off
	}) - 1
	return c.spans[i], true
}

// ToConcatOffset maps a fragment-local byte offset to its concatenated
// offset. The end-of-fragment offset maps to the end of the fragment's
// last real span.
func (c *Concat) ToConcatOffset(fragment string, realOffset int) (int, bool) {
	lastReal := -1
	for i, s := range c.spans {
		if s.fragment != fragment || s.synthetic {
			continue
		}
		if realOffset >= s.realStart && realOffset < s.realEnd {
			return s.start + (realOffset - s.realStart), true
		}
		lastReal = i
	}
	if lastReal >= 0 && realOffset == c.spans[lastReal].realEnd {
		return c.spans[lastReal].end, true
	}
	return 0, false
}

// ToClosestRealOffset maps a concatenated byte offset to the owning
// fragment and the closest real offset. Inside synthetic text there is
// no finer real position, so the mapping snaps to the synthetic span's
// real start; inside the header it snaps to offset 0 of the first real
// fragment.
func (c *Concat) ToClosestRealOffset(concatOffset int) (fragment string, realOffset int, ok bool) {
	s, ok := c.spanAt(concatOffset)
	if !ok {
		return "", 0, false
	}

	if s.fragment == "" {
		// Header: snap to the start of the first real content.
		for _, next := range c.spans {
			if next.fragment != "" {
				return next.fragment, 0, true
			}
		}
		return "", 0, false
	}

	if s.synthetic {
		return s.fragment, s.realStart, true
	}
	return s.fragment, s.realStart + (concatOffset - s.start), true
}

// OffsetsOfFragment returns the concatenated byte extent covered by all
// of a fragment's spans.
func (c *Concat) OffsetsOfFragment(fragment string) (start, end int, ok bool) {
	first, last, ok := c.fragmentSpanRange(fragment)
	if !ok {
		return 0, 0, false
	}
	return c.spans[first].start, c.spans[last].end, true
}

// RangeOfFragment returns the concatenated range spanning all of a
// fragment's spans: the whole cell's extent in the big document.
func (c *Concat) RangeOfFragment(fragment string) (protocol.Range, bool) {
	start, end, ok := c.OffsetsOfFragment(fragment)
	if !ok {
		return protocol.Range{}, false
	}
	startPos, ok1 := positionForOffset(c.lines, start)
	endPos, ok2 := positionForOffset(c.lines, end)
	if !ok1 || !ok2 {
		return protocol.Range{}, false
	}
	return protocol.Range{Start: startPos, End: endPos}, true
}

// PositionFromFragmentLocation maps a fragment-local position to the
// corresponding concatenated position.
func (c *Concat) PositionFromFragmentLocation(fragment string, pos protocol.Position) (protocol.Position, bool) {
	realOff, ok := offsetForPosition(c.realLines[fragment], pos)
	if !ok {
		return protocol.Position{}, false
	}
	concatOff, ok := c.ToConcatOffset(fragment, realOff)
	if !ok {
		return protocol.Position{}, false
	}
	return positionForOffset(c.lines, concatOff)
}

// FragmentLocationFromPosition maps a concatenated position to the
// owning fragment and the closest fragment-local position.
func (c *Concat) FragmentLocationFromPosition(pos protocol.Position) (fragment string, local protocol.Position, ok bool) {
	concatOff, ok := offsetForPosition(c.lines, pos)
	if !ok {
		return "", protocol.Position{}, false
	}
	if concatOff == c.Len() && concatOff > 0 {
		concatOff-- // end-of-document snaps into the final span
	}
	fragment, realOff, ok := c.ToClosestRealOffset(concatOff)
	if !ok {
		return "", protocol.Position{}, false
	}
	local, ok = positionForOffset(c.realLines[fragment], realOff)
	if !ok {
		return "", protocol.Position{}, false
	}
	return fragment, local, true
}

// RangeFromConcatRange maps a concatenated range to the owning fragment
// and its fragment-local range. The owning fragment is determined by
// the range start; the end is clamped to that fragment's real extent.
func (c *Concat) RangeFromConcatRange(rng protocol.Range) (fragment string, local protocol.Range, ok bool) {
	startOff, ok := offsetForPosition(c.lines, rng.Start)
	if !ok {
		return "", protocol.Range{}, false
	}
	endOff, ok := offsetForPosition(c.lines, rng.End)
	if !ok {
		return "", protocol.Range{}, false
	}

	fragment, realStart, ok := c.ToClosestRealOffset(startOff)
	if !ok {
		return "", protocol.Range{}, false
	}

	realLines := c.realLines[fragment]
	realEnd := realStart
	if endFrag, off, ok := c.ToClosestRealOffset(endOff); ok && endFrag == fragment {
		realEnd = off
	} else if total := linesTotalLen(realLines); endOff > startOff {
		realEnd = total
	}

	startPos, ok1 := positionForOffset(realLines, realStart)
	endPos, ok2 := positionForOffset(realLines, realEnd)
	if !ok1 || !ok2 {
		return "", protocol.Range{}, false
	}
	return fragment, protocol.Range{Start: startPos, End: endPos}, true
}
