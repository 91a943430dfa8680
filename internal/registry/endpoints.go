// Package registry holds the three process-wide tables of the mock server:
// the endpoint table (canonical key → descriptor), the fixed-window
// rate-limit ledger, and the gRPC mock table.
//
// Each table encapsulates its own synchronization and exposes only narrow
// methods; the underlying maps are never handed out. The dispatch path
// follows a strict clone-out discipline: acquire the guard, copy the
// minimum data, release, then perform any I/O or sleeping.
package registry

import (
	"sync"

	"github.com/tbourn/go-mock-server/internal/domain"
)

// Endpoints is the concurrent mapping from canonical request key to
// endpoint descriptor. Writes are rare (admin calls); reads happen on every
// dynamic request, so it is guarded by a reader-writer lock.
//
// The zero value is not usable; construct with NewEndpoints.
type Endpoints struct {
	mu    sync.RWMutex
	table map[string]*domain.Endpoint
}

// NewEndpoints returns an empty endpoint table.
func NewEndpoints() *Endpoints {
	return &Endpoints{table: make(map[string]*domain.Endpoint)}
}

// Insert installs desc under key, overwriting any previous descriptor.
// The descriptor is cloned on the way in so later caller mutations cannot
// leak into the table.
func (r *Endpoints) Insert(key string, desc *domain.Endpoint) {
	clone := desc.Clone()
	r.mu.Lock()
	r.table[key] = clone
	r.mu.Unlock()
}

// Get returns a clone of the descriptor stored under key, or nil when the
// key is not registered.
func (r *Endpoints) Get(key string) *domain.Endpoint {
	r.mu.RLock()
	desc := r.table[key]
	r.mu.RUnlock()
	return desc.Clone()
}

// Remove deletes the descriptor under key and returns it, or nil when the
// key was not registered.
func (r *Endpoints) Remove(key string) *domain.Endpoint {
	r.mu.Lock()
	desc, ok := r.table[key]
	if ok {
		delete(r.table, key)
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return desc
}

// Snapshot returns a copy of the whole table, keyed by canonical request
// key. Iteration order of the result is unspecified.
func (r *Endpoints) Snapshot() map[string]*domain.Endpoint {
	r.mu.RLock()
	out := make(map[string]*domain.Endpoint, len(r.table))
	for k, v := range r.table {
		out[k] = v.Clone()
	}
	r.mu.RUnlock()
	return out
}

// Len reports the number of registered endpoints.
func (r *Endpoints) Len() int {
	r.mu.RLock()
	n := len(r.table)
	r.mu.RUnlock()
	return n
}
