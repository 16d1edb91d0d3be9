package cache

import (
	"sort"
	"sync"
)

// Manager owns one Store per logical namespace. It is constructed explicitly
// at process startup and passed by reference to collaborators that need
// caching; there is no package-global registry. Namespaces are fully
// independent: each Store has its own lock, counters and sweeper.
type Manager struct {
	mu       sync.Mutex
	stores   map[string]*Store
	defaults Config
}

// NewManager creates a Manager whose lazily created Stores use defaults.
// Zero fields of defaults fall back to the package defaults.
func NewManager(defaults Config) *Manager {
	return &Manager{
		stores:   make(map[string]*Store),
		defaults: defaults.withDefaults(),
	}
}

// GetCache returns the Store for namespace, creating it with the Manager's
// default configuration on first reference. Identity is stable: every
// subsequent call for the same namespace returns the identical instance.
func (m *Manager) GetCache(namespace string) *Store {
	return m.getOrCreate(namespace, m.defaults)
}

// Configure returns the Store for namespace, creating it with cfg if it does
// not exist yet. A Store already created for the namespace keeps its original
// configuration; first reference wins.
func (m *Manager) Configure(namespace string, cfg Config) *Store {
	return m.getOrCreate(namespace, cfg)
}

func (m *Manager) getOrCreate(namespace string, cfg Config) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[namespace]; ok {
		return s
	}
	s := NewStore(cfg)
	m.stores[namespace] = s
	return s
}

// Lookup returns the Store for namespace without creating one.
func (m *Manager) Lookup(namespace string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[namespace]
	return s, ok
}

// Namespaces returns the registered namespace names, sorted.
func (m *Manager) Namespaces() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.stores))
	for name := range m.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shutdown destroys every registered Store. Safe to call more than once;
// Store.Destroy is idempotent.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		s.Destroy()
	}
}
