// Package registry maps fragment and document identifiers to their
// concatenation instances and dispatches host events to the engine.
//
// The registry owns the concatenation lifecycle: instances are created
// on first use, looked up from either direction (incoming fragment
// event by normalized document key, or outgoing diagnostic by synthetic
// URI), and released when a close empties the span list. All mutating
// dispatch is serialized with one mutex; the host guarantees ordered
// event delivery, the lock keeps independent callers safe.
package registry

import (
	"sync"

	"github.com/dshills/cellsync/internal/concat"
	"github.com/dshills/cellsync/internal/logging"
	"github.com/dshills/cellsync/internal/protocol"
	"github.com/dshills/cellsync/internal/sink"
)

// Registry tracks all live concatenations.
type Registry struct {
	mu    sync.Mutex
	byKey map[string]*concat.Concat
	byURI map[protocol.DocumentURI]*concat.Concat

	out    sink.Sink
	logger *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithSink sets the protocol sink change notifications are published to.
func WithSink(s sink.Sink) Option {
	return func(r *Registry) {
		r.out = s
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		byKey:  make(map[string]*concat.Concat),
		byURI:  make(map[protocol.DocumentURI]*concat.Concat),
		out:    sink.Discard,
		logger: logging.Null,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("registry")
	return r
}

// Resolve returns the concatenation owning the given fragment or
// document URI, creating it on first use. Interactive keys produce
// interactive-mode concatenations.
func (r *Registry) Resolve(uri string) *concat.Concat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(uri)
}

func (r *Registry) resolveLocked(uri string) *concat.Concat {
	key := NormalizeKey(uri)
	if c, ok := r.byKey[key]; ok {
		return c
	}

	opts := []concat.Option{concat.WithLogger(r.logger)}
	if IsInteractiveKey(key) {
		opts = append(opts, concat.WithInteractive())
	}
	c := concat.New(key, opts...)

	r.byKey[key] = c
	r.byURI[c.URI()] = c
	r.logger.Debug("created concatenation %s for key %s", c.URI(), key)
	return c
}

// Get returns the concatenation for a fragment or document URI without
// creating one.
func (r *Registry) Get(uri string) (*concat.Concat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byKey[NormalizeKey(uri)]
	return c, ok
}

// FromConcatURI reverse-looks-up a concatenation by its synthetic URI,
// used to route an incoming diagnostic back to its originating
// fragments.
func (r *Registry) FromConcatURI(uri protocol.DocumentURI) (*concat.Concat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byURI[uri]
	return c, ok
}

// Len returns the number of live concatenations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

// releaseLocked drops both map entries for a concatenation.
func (r *Registry) releaseLocked(c *concat.Concat) {
	for key, v := range r.byKey {
		if v == c {
			delete(r.byKey, key)
		}
	}
	delete(r.byURI, c.URI())
	r.logger.Debug("released concatenation %s", c.URI())
}

// publish forwards a change to the sink, if any.
func (r *Registry) publish(params *protocol.DidChangeParams) {
	if params == nil {
		return
	}
	if err := r.out.PublishChange(*params); err != nil {
		r.logger.Warn("publish change for %s: %v", params.TextDocument.URI, err)
	}
}

// Open dispatches a fragment open event.
func (r *Registry) Open(fragmentURI, text string, version int, languageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.resolveLocked(fragmentURI)
	r.publish(c.Open(fragmentURI, text, version, languageID))
}

// Change dispatches an incremental fragment edit.
func (r *Registry) Change(fragmentURI string, rng protocol.Range, newText string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byKey[NormalizeKey(fragmentURI)]
	if !ok {
		r.logger.Debug("change for unknown document: %s", fragmentURI)
		return
	}
	r.publish(c.Change(fragmentURI, rng, newText))
}

// Close dispatches a fragment close event and releases the
// concatenation when its span list becomes empty.
func (r *Registry) Close(fragmentURI string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byKey[NormalizeKey(fragmentURI)]
	if !ok {
		return
	}
	r.publish(c.Close(fragmentURI))
	if c.Closed() {
		r.releaseLocked(c)
	}
}

// Refresh dispatches a bulk reorder/replace of all fragments of an
// owner document.
func (r *Registry) Refresh(ownerURI string, fragments []concat.Fragment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.resolveLocked(ownerURI)
	r.publish(c.Refresh(fragments))
}

// RemapDiagnostics routes a diagnostic list published against a
// synthetic document back to per-fragment diagnostics in fragment-local
// coordinates.
func (r *Registry) RemapDiagnostics(uri protocol.DocumentURI, diags []protocol.Diagnostic) (map[string][]protocol.Diagnostic, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byURI[uri]
	if !ok {
		return nil, false
	}
	return c.RemapDiagnostics(diags), true
}
