// Package sink delivers outbound notifications about synthesized
// documents to a protocol consumer.
//
// The engine itself does not know where its change notifications go; a
// Sink is the boundary. Writer frames notifications as JSON-RPC 2.0
// over any io.Writer using the LSP base protocol (Content-Length
// headers); Collector accumulates them in memory for tests.
package sink

import (
	"github.com/dshills/cellsync/internal/protocol"
)

// Sink consumes content-change notifications for synthesized documents.
type Sink interface {
	PublishChange(params protocol.DidChangeParams) error
}

// Discard is a Sink that drops every notification.
var Discard Sink = discard{}

type discard struct{}

func (discard) PublishChange(protocol.DidChangeParams) error { return nil }
