package registry

import (
	"net/url"
	"runtime"
	"strings"

	"github.com/dshills/cellsync/internal/concat"
)

// interactiveKeyPrefix marks normalized keys of interactive transcripts.
const interactiveKeyPrefix = "interactive:"

// NormalizeKey normalizes a fragment or document URI to the key of its
// owning concatenation. The rules, in order:
//
//   - interactive-input URIs ("interactive-input:...InteractiveInput-3")
//     and interactive transcript URIs ("interactive:...Interactive-3...")
//     both normalize to "interactive:3", so the input box and its owning
//     transcript key the same concatenation
//   - any URI fragment suffix is stripped, so a cell URI keys to its
//     owner document
//   - file-like URIs normalize to their path, case-folded on
//     case-insensitive platforms
func NormalizeKey(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return foldCase(uri)
	}

	switch u.Scheme {
	case concat.SchemeInteractiveInput, concat.SchemeInteractive:
		return interactiveKeyPrefix + trailingDigits(strings.TrimSuffix(u.Path, ".interactive"))
	}

	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return u.Scheme + ":" + foldCase(path)
	}
	return foldCase(path)
}

// IsInteractiveKey reports whether a normalized key addresses an
// interactive transcript.
func IsInteractiveKey(key string) bool {
	return strings.HasPrefix(key, interactiveKeyPrefix)
}

// trailingDigits returns the trailing digit run of s, or "0" when s has
// none.
func trailingDigits(s string) string {
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return "0"
	}
	return s[start:end]
}

// foldCase lower-cases paths on platforms with case-insensitive
// filesystems so differently-cased opens of one document share a key.
func foldCase(path string) string {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.ToLower(path)
	}
	return path
}
