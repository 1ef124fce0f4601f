package collection

import "sync"

// SyncMap is a map guarded by a read/write mutex.
type SyncMap[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

func (m *SyncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

func (m *SyncMap[K, V]) Put(k K, v V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.m[k] = v
}

// Delete removes k and reports whether it was present.
func (m *SyncMap[K, V]) Delete(k K) bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.m[k]; !ok {
		return false
	}
	delete(m.m, k)
	return true
}

// Range calls f on a snapshot of the entries; f may modify the map.
func (m *SyncMap[K, V]) Range(f func(key K, value V) bool) {
	for k, v := range m.Snapshot() {
		if !f(k, v) {
			return
		}
	}
}

// Snapshot returns a copy of the entries.
func (m *SyncMap[K, V]) Snapshot() map[K]V {
	m.mux.RLock()
	defer m.mux.RUnlock()
	ret := make(map[K]V, len(m.m))
	for k, v := range m.m {
		ret[k] = v
	}
	return ret
}

func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{m: make(map[K]V)}
}
