package concat

import (
	"github.com/dshills/cellsync/internal/protocol"
)

// RemapDiagnostics translates a flat diagnostic list keyed to the
// concatenated document into a per-fragment map with ranges expressed
// in fragment-local coordinates. Diagnostics whose range falls entirely
// inside synthetic text are dropped. Every fragment seen on the
// previous call receives at least an empty list, so markers for
// fragments that disappeared (or became diagnostic-free) are cleared.
func (c *Concat) RemapDiagnostics(diags []protocol.Diagnostic) map[string][]protocol.Diagnostic {
	out := make(map[string][]protocol.Diagnostic)
	for fragment := range c.lastDiagnosed {
		out[fragment] = []protocol.Diagnostic{}
	}

	current := make(map[string]struct{})
	for _, fragment := range c.FragmentURIs() {
		current[fragment] = struct{}{}
		if _, ok := out[fragment]; !ok {
			out[fragment] = []protocol.Diagnostic{}
		}
	}

	for _, d := range diags {
		startOff, ok := offsetForPosition(c.lines, d.Range.Start)
		if !ok {
			continue
		}
		endOff, ok := offsetForPosition(c.lines, d.Range.End)
		if !ok {
			continue
		}

		if s, ok := c.spanAt(startOff); ok && s.synthetic && endOff <= s.end {
			continue
		}

		fragment, local, ok := c.RangeFromConcatRange(d.Range)
		if !ok {
			continue
		}
		if _, open := current[fragment]; !open {
			continue
		}

		mapped := d
		mapped.Range = local
		out[fragment] = append(out[fragment], mapped)
	}

	c.lastDiagnosed = current
	return out
}
