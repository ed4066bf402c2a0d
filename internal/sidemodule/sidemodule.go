// Package sidemodule is the pluggable resolver registry spec.md §9
// describes as the Go-native replacement for the source engine's dynamic
// module loader: instead of importing an arbitrary file as code at load
// time, a format's rule_maker looks up a pre-registered Resolver by the
// reference string a ".exts"/".extw" dictionary file names.
package sidemodule

import (
	"sync"

	"github.com/avitko/dicrector/internal/dicerr"
)

// Resolver computes a rule's replacement from a node's text. It reports
// ok=false to decline a match, leaving the node unchanged.
type Resolver func(probe string) (replacement string, ok bool)

// Registry maps a side module reference string to the Resolver that backs
// it. References are opaque to the registry; by convention they look like
// "<module>@<function>" (wordstat.lua@on_word, dicdb.sql@lookup), but
// nothing here parses that shape — callers registering a resolver choose
// the key it should be found under.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

// Register binds ref to fn, replacing any existing binding.
func (r *Registry) Register(ref string, fn Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[ref] = fn
}

// Resolve looks up the resolver bound to ref.
func (r *Registry) Resolve(ref string) (Resolver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.resolvers[ref]
	if !ok {
		return nil, dicerr.SideModuleMissing(ref)
	}
	return fn, nil
}
