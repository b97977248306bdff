// Package concat maintains a synthetic concatenated Python document
// assembled from independently-editable fragments (notebook cells, plus
// an optional interactive input box) and translates positions, ranges,
// and offsets between fragment-local and concatenated coordinates.
//
// # Architecture
//
// The package is organized around these core components:
//
//   - Concat: the concatenation engine; owns the span arena and applies
//     open/change/close/refresh mutations, reporting minimal edits
//   - span arena: ordered slice of spans, each covering a slice of one
//     fragment's text or synthetic engine-injected text
//   - line index: concatenated and fragment-local line slices rebuilt
//     after every mutation
//   - translator: read-only offset and position mapping, including
//     diagnostic remapping back to fragment coordinates
//
// # Coordinate spaces
//
// Real coordinates are measured in a fragment's own text. Concatenated
// coordinates are measured in the merged document, which additionally
// contains a one-line import header and a " # type: ignore" suffix on
// lines using IPython-only syntax (shell escapes, magic commands, and
// top-level await). Synthetic text exists only on the concatenated axis;
// mapping back from inside it snaps to the nearest real offset.
//
// # Quick start
//
//	c := concat.New("/path/to/notebook.ipynb")
//	ev := c.Open("file:///path/to/notebook.ipynb#cell0000", "print(1)")
//	// ev describes the inserted header and cell text
//	pos, ok := c.PositionFromFragmentLocation(cellURI, protocol.Position{})
//
// All mutating operations run to completion synchronously and either
// return a change description or nil; internal failures degrade to nil
// with the prior state intact. A Concat is not safe for concurrent use;
// the registry serializes access.
package concat
