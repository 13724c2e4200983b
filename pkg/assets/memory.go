package assets

import "sync"

// MemoryStore is an in-process Store used by tests and local runs.
type MemoryStore struct {
	mu         sync.RWMutex
	namespaces map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		namespaces: make(map[string]map[string][]byte),
	}
}

func (m *MemoryStore) EnsureNamespace(namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.namespaces[namespace]; !ok {
		m.namespaces[namespace] = make(map[string][]byte)
	}
	return nil
}

func (m *MemoryStore) Write(namespace, fileName string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.namespaces[namespace]
	if !ok {
		ns = make(map[string][]byte)
		m.namespaces[namespace] = ns
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	ns[fileName] = buf

	return LogicalPath(namespace, fileName), nil
}

func (m *MemoryStore) Delete(namespace, fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.namespaces[namespace]
	if !ok {
		return ErrNotFound
	}
	if _, ok := ns[fileName]; !ok {
		return ErrNotFound
	}

	delete(ns, fileName)
	return nil
}

func (m *MemoryStore) Exists(namespace, fileName string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ns, ok := m.namespaces[namespace]
	if !ok {
		return false, nil
	}
	_, ok = ns[fileName]
	return ok, nil
}
