package fibmod

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maintains a thread-safe mapping from backend names to their
// constructors and caches the wrapped Backend instances for reuse.
type Registry struct {
	mu       sync.RWMutex
	creators map[string]func() coreBackend
	backends map[string]Backend
}

// NewRegistry creates a Registry with the standard backends pre-registered.
//
// Pre-registered backends:
//   - "fixed":  uint64 fast doubling with 128-bit widened multiply-reduce
//   - "big":    math/big fast doubling, unbounded index and modulus
//   - "matrix": uint64 companion-matrix exponentiation
//
// Building with the "gmp" tag additionally registers "gmp".
func NewRegistry() *Registry {
	r := &Registry{
		creators: make(map[string]func() coreBackend),
		backends: make(map[string]Backend),
	}

	r.Register("fixed", func() coreBackend { return fixedCore{} })
	r.Register("big", func() coreBackend { return bigCore{} })
	r.Register("matrix", func() coreBackend { return matrixCore{} })

	for name, creator := range extraBackends {
		r.Register(name, creator)
	}

	return r
}

// extraBackends collects backends contributed by build-tagged files
// (see gmp.go). Populated by init functions before NewRegistry runs.
var extraBackends = map[string]func() coreBackend{}

// Register adds a backend type. An existing registration with the same
// name is replaced and its cached instance discarded.
func (r *Registry) Register(name string, creator func() coreBackend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.creators[name] = creator
	delete(r.backends, name)
}

// Get returns the Backend registered under name, creating and caching it
// on first use.
func (r *Registry) Get(name string) (Backend, error) {
	r.mu.RLock()
	if b, exists := r.backends[name]; exists {
		r.mu.RUnlock()
		return b, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if b, exists := r.backends[name]; exists {
		return b, nil
	}

	creator, ok := r.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", name)
	}

	b := NewBackend(creator())
	r.backends[name] = b
	return b, nil
}

// Has reports whether a backend with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.creators[name]
	return exists
}

// List returns the registered backend names, sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.creators))
	for name := range r.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the full name-to-Backend map, lazily
// initializing any backend not yet created.
func (r *Registry) GetAll() map[string]Backend {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, creator := range r.creators {
		if _, exists := r.backends[name]; !exists {
			r.backends[name] = NewBackend(creator())
		}
	}

	result := make(map[string]Backend, len(r.backends))
	for name, b := range r.backends {
		result[name] = b
	}
	return result
}
