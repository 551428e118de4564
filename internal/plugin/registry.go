package plugin

import (
	"sort"
	"sync"
)

// Registry holds one live plugin instance per vendor service, plus an
// optional independently-stateful demo instance per service. Lookups
// select the variant by the caller's demo flag; unknown services and
// missing demo variants resolve to nil rather than an error, and the
// caller treats nil as "service unavailable".
//
// All public methods are thread-safe. Registration happens once at
// startup; lookups dominate afterwards.
type Registry struct {
	mu    sync.RWMutex
	real  map[string]Plugin
	demos map[string]Plugin
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{
		real:  make(map[string]Plugin),
		demos: make(map[string]Plugin),
	}
}

// Register adds or replaces the real plugin for its service id.
func (r *Registry) Register(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.real[p.ID()] = p
}

// RegisterDemo adds or replaces the demo variant for a service id.
// The demo instance keeps state of its own; connecting it never
// touches the real plugin.
func (r *Registry) RegisterDemo(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.demos[p.ID()] = p
}

// Get resolves a service id to a plugin instance. With demoMode set it
// returns the demo variant. Returns nil for an unknown id, and nil
// when demoMode is set but no demo variant exists.
func (r *Registry) Get(serviceID string, demoMode bool) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if demoMode {
		return r.demos[serviceID]
	}
	return r.real[serviceID]
}

// GetAll returns every registered real plugin, ordered by service id.
func (r *Registry) GetAll() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugins := make([]Plugin, 0, len(r.real))
	for _, id := range r.idsLocked() {
		plugins = append(plugins, r.real[id])
	}
	return plugins
}

// GetIDs returns all registered service ids in sorted order.
func (r *Registry) GetIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idsLocked()
}

// Has reports whether a real plugin is registered for the service id.
func (r *Registry) Has(serviceID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.real[serviceID]
	return ok
}

// GetAllMetadata returns metadata for every registered service, with
// DemoAvailable reflecting whether a demo variant exists.
func (r *Registry) GetAllMetadata() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metas := make([]Metadata, 0, len(r.real))
	for _, id := range r.idsLocked() {
		meta := r.real[id].Metadata()
		_, meta.DemoAvailable = r.demos[id]
		metas = append(metas, meta)
	}
	return metas
}

// idsLocked returns sorted real-plugin ids. Caller holds mu.
func (r *Registry) idsLocked() []string {
	ids := make([]string, 0, len(r.real))
	for id := range r.real {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
