package runtime

import (
	"chat-relay/contract"
	"sync"
)

// SinkRegistry maps connection ids to their delivery sinks. Unlike the
// stores, it is touched by transport goroutines on connect and close, so
// it carries its own lock.
type SinkRegistry struct {
	mu    sync.RWMutex
	sinks map[string]contract.EventSink
}

func NewSinkRegistry() *SinkRegistry {
	return &SinkRegistry{sinks: make(map[string]contract.EventSink)}
}

// Attach registers the sink for connID, replacing any previous one.
func (r *SinkRegistry) Attach(connID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[connID] = sink
}

// Detach removes the sink for connID; no-op if absent.
func (r *SinkRegistry) Detach(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sinks, connID)
}

func (r *SinkRegistry) Get(connID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sinks[connID]
	return sink, ok
}
