package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/dshills/cellsync/internal/protocol"
)

// MethodDidChange is the notification method used for content changes.
const MethodDidChange = "textDocument/didChange"

// notification is a JSON-RPC 2.0 notification envelope.
type notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Writer is a Sink that frames notifications as JSON-RPC 2.0 messages
// with Content-Length headers over an io.Writer, per the LSP base
// protocol. Safe for concurrent use.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a Writer over the given destination, typically a
// stdout pipe to the protocol client.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// PublishChange writes one didChange notification.
func (w *Writer) PublishChange(params protocol.DidChangeParams) error {
	return w.notify(MethodDidChange, params)
}

// notify marshals and frames a single notification.
func (w *Writer) notify(method string, params any) error {
	data, err := json.Marshal(notification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("sink: marshal %s: %w", method, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintf(w.w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return fmt.Errorf("sink: write header: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("sink: write body: %w", err)
	}
	return nil
}

// Collector is a Sink that records every published notification.
// Intended for tests.
type Collector struct {
	mu      sync.Mutex
	Changes []protocol.DidChangeParams
}

// PublishChange records the params.
func (c *Collector) PublishChange(params protocol.DidChangeParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Changes = append(c.Changes, params)
	return nil
}

// Reset clears the recorded notifications.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Changes = nil
}

// Len returns the number of recorded notifications.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Changes)
}

var (
	_ Sink = (*Writer)(nil)
	_ Sink = (*Collector)(nil)
)
