package concat

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/dshills/cellsync/internal/protocol"
)

// URI schemes with engine-level meaning. Fragments of an interactive
// transcript arrive under SchemeInteractive; the interactive input box
// arrives under SchemeInteractiveInput and always sorts last.
const (
	SchemeInteractive      = "interactive"
	SchemeInteractiveInput = "interactive-input"
)

// OrderInteractiveInput is the sentinel order key of the interactive
// input fragment. It sorts after every cell order key.
const OrderInteractiveInput = -1

// syntheticURIHexLen is the truncation length of the owner-path hash in
// a derived concatenation URI. It is part of the identifier contract:
// two opens of the same owner path must derive the same URI.
const syntheticURIHexLen = 16

// FragmentOrder extracts the order key from a fragment URI. The key is
// the trailing digit run of the URI fragment part ("#cell0007" yields
// 7); the interactive input scheme yields OrderInteractiveInput; a URI
// with no fragment digits yields 0.
func FragmentOrder(uri string) int {
	if strings.HasPrefix(uri, SchemeInteractiveInput+":") {
		return OrderInteractiveInput
	}

	hash := strings.LastIndexByte(uri, '#')
	if hash < 0 {
		return 0
	}
	frag := uri[hash+1:]

	end := len(frag)
	start := end
	for start > 0 && frag[start-1] >= '0' && frag[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}

	order := 0
	for _, ch := range []byte(frag[start:end]) {
		order = order*10 + int(ch-'0')
	}
	return order
}

// DeriveURI derives the stable synthetic URI of the concatenation for
// an owner document path. The derivation hashes the path so repeated
// opens of the same document always correlate to the same identifier.
func DeriveURI(ownerPath string) protocol.DocumentURI {
	sum := sha256.Sum256([]byte(ownerPath))
	return protocol.DocumentURI("file:///" + hex.EncodeToString(sum[:])[:syntheticURIHexLen] + ".py")
}
